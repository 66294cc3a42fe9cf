package vagrant

import (
	"errors"
	"fmt"
)

// Options controls an upkeep run.
type Options struct {
	Directories []string
	// PowerOn brings up boxes that are not running. When false they are skipped.
	PowerOn bool
	// Yes runs topgrade non-interactively.
	Yes bool
	// KeepGoing continues with the next box when one fails, returning
	// every box failure at the end. Listing failures always stop the run.
	KeepGoing bool
}

// RemoteCommand is the command run inside a box over ssh.
func RemoteCommand(prefix string, yes bool) string {
	cmd := fmt.Sprintf("env TOPGRADE_PREFIX=%s topgrade", prefix)
	if yes {
		cmd += " -y"
	}
	return cmd
}

// Upkeep runs topgrade in every box of every directory, in listing order.
func (v *Vagrant) Upkeep(opts Options) error {
	if v.printer != nil {
		v.printer.Separator("Vagrant")
	}

	var failures []error
	for _, directory := range opts.Directories {
		boxes, err := v.Boxes(directory)
		if err != nil {
			if len(failures) == 0 {
				return err
			}
			return errors.Join(append(failures, err)...)
		}

		for _, status := range boxes {
			err := v.UpkeepBox(status, opts)
			if err == nil {
				continue
			}
			if !opts.KeepGoing {
				return err
			}
			v.logger.Error("box upkeep failed, continuing", "box", status.Box.Name, "dir", directory, "error", err)
			if v.printer != nil {
				v.printer.Warn("upkeep of %s failed, continuing", status.Box)
			}
			failures = append(failures, err)
		}
	}
	return errors.Join(failures...)
}

// UpkeepBox runs topgrade in one box, powering it on first if needed and
// restoring its state before returning.
func (v *Vagrant) UpkeepBox(status BoxStatus, opts Options) error {
	box := status.Box
	if !status.State.PoweredOn() && !opts.PowerOn {
		v.logger.Info("skipping powered off box", "box", box.Name, "dir", box.Directory, "state", status.State.String())
		v.announce("Skipping %s (%s, power on disabled)", box, status.State)
		return nil
	}

	prefix, err := box.Prefix()
	if err != nil {
		return err
	}

	if !status.State.PoweredOn() {
		guard, err := v.PowerOn(box, status.State)
		if err != nil {
			return err
		}
		defer guard.Release()
	}

	v.announce("Running Topgrade in %s", box)
	if err := v.run(box, "ssh", "-c", RemoteCommand(prefix, opts.Yes)); err != nil {
		return fmt.Errorf("running topgrade in %s: %w", box, err)
	}
	return nil
}
