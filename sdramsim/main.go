// Package main runs the DRAM bring-up against a simulated SoC.
package main

import "github.com/sarchlab/sdraminit/sdramsim/cmd"

func main() {
	cmd.Execute()
}
