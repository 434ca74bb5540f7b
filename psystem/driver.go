package psystem

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jtomasevic/psystem/observer"
)

// Driver walks the membrane tree step by step until a fixed point or a
// step cap is reached, recording trace lines and per-step output-membrane
// counts (spec.md §4.6). It holds the only mutable state the simulation
// touches: the System's membrane tree and the RNG.
type Driver struct {
	System *System
	RNG    RNG
	Trace  observer.TraceWriter
	CSV    observer.CSVWriter
	Logger *zap.Logger

	// RunID tags every log record emitted during Run, so concurrent runs
	// (or repeated runs against the same sink) can be told apart.
	RunID uuid.UUID
}

// NewDriver wires a Driver with sane defaults: a Nop trace/CSV sink, a Nop
// logger, and a fresh run id. Callers override what they need.
func NewDriver(sys *System, rng RNG) *Driver {
	return &Driver{
		System: sys,
		RNG:    rng,
		Trace:  observer.NopTraceWriter{},
		CSV:    observer.NopCSVWriter{},
		Logger: zap.NewNop(),
		RunID:  uuid.New(),
	}
}

// Run executes spec.md §4.6's loop:
//
//	counter := 0
//	while applied_last_step and (max_steps is None or counter < max_steps):
//	  counter += 1
//	  derive_step(root)
//	  applied_last_step := apply_queue()
//	  observe(root, counter)
//
// The initial observation (counter == 0) is recorded before any step runs.
// ctx is checked once per iteration as a cooperative cancellation point
// (spec.md §5); a cancelled context stops the run cleanly and returns
// ctx.Err().
func (d *Driver) Run(ctx context.Context, maxSteps *int) (int, error) {
	if err := d.observe(0); err != nil {
		return 0, err
	}

	counter := 0
	appliedLastStep := true
	for appliedLastStep && (maxSteps == nil || counter < *maxSteps) {
		select {
		case <-ctx.Done():
			return counter, ctx.Err()
		default:
		}

		counter++
		if err := d.Trace.WriteLine(fmt.Sprintf("=============== STEP %d ===============", counter)); err != nil {
			return counter, fmt.Errorf("psystem: writing trace header: %w", err)
		}

		firings := DeriveStep(d.System.Root, d.System, d.RNG)
		applied, err := d.applyQueue(firings)
		if err != nil {
			return counter, err
		}
		appliedLastStep = applied

		if err := d.observe(counter); err != nil {
			return counter, err
		}
	}
	return counter, nil
}

// applyQueue applies every queued firing in FIFO order and returns whether
// at least one firing actually applied (the driver's fixed-point signal).
func (d *Driver) applyQueue(firings []Firing) (bool, error) {
	applied := false
	for _, f := range firings {
		ok, trace, err := d.applyOne(f)
		if err != nil {
			return applied, fmt.Errorf("psystem: resource error applying firing: %w", err)
		}
		if err := d.Trace.WriteLine(trace); err != nil {
			return applied, fmt.Errorf("psystem: writing trace line: %w", err)
		}
		applied = applied || ok
	}
	return applied, nil
}

// applyOne re-validates and applies a single firing (spec.md §7
// best-effort sequential policy): a precondition failure discovered at
// apply time yields a "NOT Applied" trace line rather than aborting the
// step. Only I/O failures from the sinks are propagated as resource
// errors; everything else is recorded and swallowed.
func (d *Driver) applyOne(f Firing) (applied bool, trace string, err error) {
	m, r, k := f.Membrane, f.Candidate.Rule, f.Count

	var applyErr error
	switch r.Move {
	case Here:
		applyErr = m.ApplyHere(r, k)
		trace = fmt.Sprintf(" - Applying HERE %7s -> %d x %s", m.ID, k, r)
	case Out:
		applyErr = m.ApplyOut(r, k)
		if m.Parent == nil {
			d.Logger.Debug("products discarded: OUT fired at the skin membrane",
				zap.String("run_id", d.RunID.String()), zap.String("membrane", m.ID), zap.String("rule", r.ID))
		}
		trace = fmt.Sprintf(" - Applying OUT %8s -> %d x %s", m.ID, k, r)
	case In:
		dest := findChildByID(m, r.Destination)
		if dest == nil {
			applyErr = ErrDestinationNotChild
			break
		}
		applyErr = m.ApplyIn(r, dest, k)
		trace = fmt.Sprintf(" - Applying IN %9s -> %d x %s", m.ID, k, r)
	case MemwOB:
		dest := findChildByID(d.System.Root, r.Destination)
		if dest == nil {
			applyErr = ErrMoveTargetNotFound
			break
		}
		applyErr = m.ApplyMoveMem(r, dest, f.Candidate.Index)
		trace = fmt.Sprintf(" - Applying MEMwOB %5s -> %s, Child Nº %d from %s to %s",
			m.ID, r, f.Candidate.Index, m.ID, dest.ID)
	case DissKeep:
		applyErr = m.ApplyDissolveToParent(r)
		trace = fmt.Sprintf(" - Applying DISS_KEEP %2s -> %s", m.ID, r)
	case DMEM:
		applyErr = m.ApplyDMEM(r, k, d.RNG)
		trace = fmt.Sprintf(" - Applying DMEM %7s -> %d x %s", m.ID, k, r)
	default:
		applyErr = ErrMoveNotImplemented
	}

	if applyErr != nil {
		d.Logger.Warn("firing not applied",
			zap.String("run_id", d.RunID.String()), zap.String("membrane", m.ID),
			zap.String("rule", r.ID), zap.Error(applyErr))
		return false, fmt.Sprintf(" - NOT Applied %5s -> %s", m.ID, r), nil
	}
	return true, trace, nil
}

func findChildByID(m *Membrane, id string) *Membrane {
	for _, c := range m.Children {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// observe appends one CSV row per observed symbol of the output membrane
// (spec.md §4.7), if an OutputSpec is configured. A write failure is a
// resource error (spec.md §7) and is propagated to the caller.
func (d *Driver) observe(step int) error {
	out := d.System.Output
	if out == nil {
		return nil
	}
	mem := d.System.FindMembrane(out.MembraneID)
	if mem == nil {
		d.Logger.Warn("output membrane not found",
			zap.String("run_id", d.RunID.String()), zap.String("membrane", out.MembraneID))
		return nil
	}
	for _, sym := range out.Symbols {
		if err := d.CSV.WriteRow(step, sym, mem.Objects.Count(sym)); err != nil {
			return fmt.Errorf("psystem: writing csv row: %w", err)
		}
	}
	return nil
}
