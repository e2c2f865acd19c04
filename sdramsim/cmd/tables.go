package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/sdraminit/sdram/params"
)

var showPatches bool

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the parameter records of a revision.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rev, err := params.ParseRevision(opts.revision)
		if err != nil {
			return err
		}

		for _, e := range params.Entries(rev) {
			rec := e.Record
			fmt.Printf("%-11s %-38s %-7s %5d MB %4d Mbps %6.2f GiB/s\n",
				e.Resolved, rec.Name, rec.Protocol, rec.SizeMB,
				rec.RateMbps,
				rec.BandwidthGiBps(rec.RatedFreq()))
		}

		if showPatches && rev == params.RevisionB {
			fmt.Println()
			printPatches()
		}

		return nil
	},
}

func printPatches() {
	for _, p := range params.Patches() {
		fmt.Printf("%-26s 0x%08x codes", p.Param, p.Value)
		for code := uint8(1); code <= params.NumPatchCodes; code++ {
			if p.Applies(code) {
				fmt.Printf(" %d", code)
			}
		}
		fmt.Println()
	}
}

func init() {
	tablesCmd.Flags().BoolVar(&showPatches, "patches", false,
		"also list the T210B01 patch entries")
	rootCmd.AddCommand(tablesCmd)
}
