package vagrant

import "fmt"

// bringUp returns the subcommand that takes a box from state to running.
func bringUp(state PowerState) (string, bool) {
	switch state {
	case PowerOff, Aborted:
		return "up", true
	case Saved:
		return "resume", true
	}
	return "", false
}

// restore returns the subcommand that returns a running box to state.
func restore(state PowerState) (string, bool) {
	switch state {
	case PowerOff, Aborted:
		return "halt", true
	case Saved:
		return "suspend", true
	}
	return "", false
}

// TemporaryPowerOn is a box we brought up and owe a restore to.
// Callers defer Release as soon as PowerOn succeeds.
type TemporaryPowerOn struct {
	vagrant  *Vagrant
	box      Box
	original PowerState
	released bool
}

// PowerOn brings box up from state. If the bring-up fails no guard
// is returned and nothing needs undoing.
func (v *Vagrant) PowerOn(box Box, state PowerState) (*TemporaryPowerOn, error) {
	subcommand, ok := bringUp(state)
	if !ok {
		return nil, fmt.Errorf("%s is already %s", box, state)
	}

	v.announce("Powering on %s", box)
	if err := v.run(box, subcommand, box.Name); err != nil {
		return nil, fmt.Errorf("powering on %s: %w", box, err)
	}
	return &TemporaryPowerOn{vagrant: v, box: box, original: state}, nil
}

// Box returns the guarded box.
func (p *TemporaryPowerOn) Box() Box { return p.box }

// Release returns the box to its original state. Failures are logged and
// swallowed so an error already being returned is not masked. Calls after
// the first are no-ops.
func (p *TemporaryPowerOn) Release() {
	if p == nil || p.released {
		return
	}
	p.released = true

	subcommand, _ := restore(p.original)
	v := p.vagrant
	v.announce("Powering off %s", p.box)
	if err := v.run(p.box, subcommand, p.box.Name); err != nil {
		v.logger.Warn("failed to restore box state",
			"box", p.box.Name, "dir", p.box.Directory, "state", p.original.String(), "error", err)
	}
}

func (v *Vagrant) announce(format string, args ...any) {
	if v.printer != nil {
		v.printer.Announce(format, args...)
	}
}
