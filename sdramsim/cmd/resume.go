package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Cold boot, enter deep sleep, and resume.",
	Long: "`resume` brings the DRAM up, saves the controller state into the " +
		"PMC scratch registers, cuts the power of everything else, and " +
		"brings the DRAM back from the scratch registers without training.",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRig(opts)
		if err != nil {
			return err
		}
		defer r.finish()

		if err := coldBoot(r); err != nil {
			return err
		}

		snap, err := r.sub.SaveSleepParameters()
		if err != nil {
			return err
		}

		fmt.Printf("saved %d scratch words: %s\n", len(snap.Words()), snap)

		r.reboot(opts)

		start := r.clock.Now()

		err = r.sub.Resume(r.sub.LoadSleepParameters())
		if err != nil {
			return err
		}

		fmt.Printf("%s resumed in %.6f s\n",
			r.sub.Name(), r.clock.Now()-start)

		if dumpStateFlag {
			return dumpState(cmd.OutOrStdout(), r.sub)
		}

		return nil
	},
}

func init() {
	resumeCmd.Flags().BoolVar(&dumpStateFlag, "dump-state", false,
		"print the controller state as JSON after the resume")
	rootCmd.AddCommand(resumeCmd)
}
