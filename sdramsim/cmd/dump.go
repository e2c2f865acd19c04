package cmd

import (
	"fmt"
	"io"

	"github.com/syifan/goseth"

	"github.com/sarchlab/sdraminit/hw"
	"github.com/sarchlab/sdraminit/sdram"
	"github.com/sarchlab/sdraminit/sdram/emc"
	"github.com/sarchlab/sdraminit/sdram/lp0"
)

// stateDump is what --dump-state prints.
type stateDump struct {
	Name         string
	State        string
	Revision     string
	PackageID    string
	Resolved     string
	Record       string
	Verification emc.Verification
	Registers    map[string]string
}

func dumpState(w io.Writer, sub *sdram.Subsystem) error {
	d := stateDump{
		Name:      sub.Name(),
		State:     sub.State().String(),
		Revision:  sub.Revision().String(),
		PackageID: sub.PackageID().String(),
		Resolved:  sub.Resolved().String(),
		Registers: make(map[string]string),
	}

	if state := sub.Controller(); state != nil {
		d.Record = state.Record().Name
		d.Verification = state.Verification()

		for _, reg := range lp0.Registers() {
			d.Registers[hw.RegName(reg)] = fmt.Sprintf("0x%08x", state.Peek(reg))
		}
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&d)
	serializer.SetMaxDepth(3)

	err := serializer.Serialize(w)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w)

	return err
}
