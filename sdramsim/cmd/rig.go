package cmd

import (
	"log"
	"os"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/sdraminit/datarecording"
	"github.com/sarchlab/sdraminit/hw"
	"github.com/sarchlab/sdraminit/hw/simbus"
	"github.com/sarchlab/sdraminit/sdram"
	"github.com/sarchlab/sdraminit/sdram/emc"
	"github.com/sarchlab/sdraminit/sdram/patch"
	"github.com/sarchlab/sdraminit/sdram/params"
	"github.com/sarchlab/sdraminit/sdram/strap"
	"github.com/sarchlab/sdraminit/sim/hooking"
	"github.com/sarchlab/sdraminit/sim/timing"
)

// rig is a simulated SoC with a memory subsystem on top of it.
type rig struct {
	rev   params.Revision
	id    strap.PackageID
	clock *timing.SimClock
	sim   *simbus.Bus
	bus   *hw.TracedBus
	sub   *sdram.Subsystem

	logger   *log.Logger
	recorder datarecording.DataRecorder
	session  *datarecording.SessionRecorder
	access   *datarecording.AccessHook
	tracer   *hooking.DBTracer
}

func newRig(o options) (*rig, error) {
	rev, id, err := o.parse()
	if err != nil {
		return nil, err
	}

	r := &rig{
		rev:    rev,
		id:     id,
		clock:  timing.NewSimClock("Clock"),
		logger: log.New(os.Stdout, "", 0),
	}

	r.sim = r.simBuilder(o).Build("SoC")
	r.bus = hw.NewTracedBus("Bus", r.sim, false)
	r.sim.AcceptHook(simbus.NewViolationLogger(r.logger))

	if o.verbose {
		r.bus.AcceptHook(hw.NewAccessLogger(r.logger))
		r.clock.AcceptHook(timing.NewDelayLogger(r.logger))
	}

	if o.record != "" {
		r.startRecording(o)
	}

	r.sub = r.buildSubsystem(o)

	return r, nil
}

// simBuilder makes the devices answer like the package the straps name,
// unless another vendor is asked for.
func (r *rig) simBuilder(o options) simbus.Builder {
	b := simbus.MakeBuilder().
		WithClock(r.clock).
		WithFuseOdm4(strap.Encode(r.id, r.rev))

	if _, rec, err := patch.Select(r.rev, r.id); err == nil {
		b = b.WithDevice(uint8(rec.Vendor), rec.Density)
	}

	if o.vendorID >= 0 {
		b = b.WithModeRegister(uint8(emc.MR5ManID), uint8(o.vendorID))
	}

	return b
}

func (r *rig) startRecording(o options) {
	r.recorder = datarecording.New(o.record)
	atexit.Register(func() { r.finish() })

	r.session = datarecording.NewSessionRecorder(r.recorder)
	r.session.Start()
	r.session.Set("Revision", r.rev.String())
	r.session.Set("DRAM ID", r.id.String())

	r.access = datarecording.NewAccessHook(r.recorder,
		timing.AsTimeTeller(r.clock))
	r.bus.AcceptHook(r.access)
	r.sim.AcceptHook(r.access)

	r.tracer = hooking.NewDBTracer(timing.AsTimeTeller(r.clock),
		datarecording.NewTaskBackend(r.recorder))
}

func (r *rig) buildSubsystem(o options) *sdram.Subsystem {
	b := sdram.MakeBuilder().
		WithBus(r.bus).
		WithClock(r.clock).
		WithRevision(r.rev).
		WithPollLimit(o.pollLimit).
		WithHook(emc.NewMismatchLogger(r.logger))

	if o.verbose {
		b = b.WithHook(hooking.NewTaskLogger(r.logger,
			timing.AsTimeTeller(r.clock)))
	}

	if r.tracer != nil {
		b = b.WithHook(r.tracer)
	}

	return b.Build("SDRAM")
}

// reboot loses power on everything but the retention domain, and starts a
// new subsystem on the same SoC.
func (r *rig) reboot(o options) {
	r.sim.PowerOnReset()
	r.sub = r.buildSubsystem(o)
}

// finish writes the open tasks and the session, and closes the database.
func (r *rig) finish() {
	if r.recorder == nil {
		return
	}

	r.tracer.Terminate()
	r.session.End()

	if err := r.recorder.Close(); err != nil {
		r.logger.Printf("closing the trace: %v", err)
	}

	r.recorder = nil
}
