package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/sdraminit/sdram"
	"github.com/sarchlab/sdraminit/sdram/emc"
	"github.com/sarchlab/sdraminit/sdram/params"
)

var dumpStateFlag bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Cold boot the DRAM.",
	Long: "`init` identifies the DRAM package, selects its parameters and " +
		"brings the controller up with full training.",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRig(opts)
		if err != nil {
			return err
		}
		defer r.finish()

		if err := coldBoot(r); err != nil {
			return err
		}

		if dumpStateFlag {
			return dumpState(os.Stdout, r.sub)
		}

		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&dumpStateFlag, "dump-state", false,
		"print the controller state as JSON after the bring-up")
	rootCmd.AddCommand(initCmd)
}

func coldBoot(r *rig) error {
	rec, err := r.sub.PatchedParameters()
	if err != nil {
		return err
	}

	printRecord(r.sub, rec)

	err = r.sub.Initialize()
	if err != nil {
		return err
	}

	v := r.sub.Controller().Verification()
	fmt.Printf("%s ready at %.6f s, vendor %s, density 0x%02x, "+
		"%d mismatches\n",
		r.sub.Name(), r.clock.Now(),
		emc.Vendor(v.Vendor.Chip0.Rank0Ch0), v.Density.Chip0.Rank0Ch0,
		len(v.Mismatches))

	return nil
}

func printRecord(sub *sdram.Subsystem, rec params.Record) {
	fmt.Printf("%s: DRAM id %d (%s), %s\n",
		sub.Revision(), sub.PackageID(), sub.PackageID(), sub.Resolved())
	fmt.Printf("  %s, %s %d MB, %d Mbps, EMC %s\n",
		rec.Name, rec.Protocol, rec.SizeMB, rec.RateMbps, rec.EmcFreq())
}
