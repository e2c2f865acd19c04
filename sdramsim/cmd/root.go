// Package cmd provides the command-line interface of sdramsim.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/sdraminit/sdram/params"
	"github.com/sarchlab/sdraminit/sdram/strap"
)

type options struct {
	revision  string
	dramID    int
	record    string
	verbose   bool
	pollLimit int
	vendorID  int
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "sdramsim",
	Short: "sdramsim runs the DRAM bring-up against a simulated SoC.",
	Long: `sdramsim runs the DRAM bring-up of T210 and T210B01 against a ` +
		`simulated register file. The strap id and the revision come from ` +
		`flags, or from SDRAM_DRAM_ID and SDRAM_REVISION in the environment ` +
		`or in a .env file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func init() {
	// A missing .env file is fine; the environment and the flags still apply.
	_ = godotenv.Load()

	f := rootCmd.PersistentFlags()
	f.StringVar(&opts.revision, "revision", envString("SDRAM_REVISION", "a"),
		"silicon revision: a (T210) or b (T210B01)")
	f.IntVar(&opts.dramID, "dram-id", envInt("SDRAM_DRAM_ID", 0),
		"DRAM id reported by the straps")
	f.StringVar(&opts.record, "record", envString("SDRAM_RECORD", ""),
		"record the trace into this SQLite database (without .sqlite3)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false,
		"print tasks, register writes and waits")
	f.IntVar(&opts.pollLimit, "poll-limit", 1000,
		"status polls before a calibration step times out")
	f.IntVar(&opts.vendorID, "vendor-id", -1,
		"manufacturer id the devices report, -1 to match the record")
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return def
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring %s=%q: %v\n", key, v, err)
		return def
	}

	return n
}

func (o options) parse() (params.Revision, strap.PackageID, error) {
	rev, err := params.ParseRevision(o.revision)
	if err != nil {
		return 0, 0, err
	}

	if o.dramID < 0 || o.dramID > 0xFF {
		return 0, 0, fmt.Errorf("DRAM id %d out of range", o.dramID)
	}

	return rev, strap.PackageID(o.dramID), nil
}
