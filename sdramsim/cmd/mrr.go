package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sarchlab/sdraminit/sdram/emc"
)

var mrrCmd = &cobra.Command{
	Use:   "mrr <register>",
	Short: "Read a mode register of every device.",
	Long: "`mrr 5` brings the DRAM up and reads MR5 from both chip selects, " +
		"both ranks and both channels.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.ParseUint(args[0], 0, 8)
		if err != nil {
			return fmt.Errorf("bad mode register %q: %w", args[0], err)
		}

		r, err := newRig(opts)
		if err != nil {
			return err
		}
		defer r.finish()

		if err := coldBoot(r); err != nil {
			return err
		}

		mr := emc.ModeRegister(n)

		v, err := r.sub.ReadModeRegister(mr)
		if err != nil {
			return err
		}

		for chip, data := range []emc.ChipData{v.Chip0, v.Chip1} {
			b := data.Bytes()
			fmt.Printf("%s chip %d: rank0 %02x %02x, rank1 %02x %02x\n",
				mr, chip, b[0], b[1], b[2], b[3])
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(mrrCmd)
}
