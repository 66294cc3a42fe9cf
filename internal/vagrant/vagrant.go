package vagrant

import (
	"log/slog"

	"github.com/zpdzap/upkeep/internal/executor"
	"github.com/zpdzap/upkeep/internal/terminal"
)

// Vagrant drives the vagrant binary.
type Vagrant struct {
	binary  string
	runner  executor.Runner
	printer *terminal.Printer
	logger  *slog.Logger
}

// New returns a Vagrant invoking binary through runner.
func New(binary string, runner executor.Runner, printer *terminal.Printer, logger *slog.Logger) *Vagrant {
	if logger == nil {
		logger = slog.Default()
	}
	return &Vagrant{
		binary:  binary,
		runner:  runner,
		printer: printer,
		logger:  logger.With("component", "vagrant"),
	}
}

// Boxes runs `vagrant status` in directory and returns the listed boxes in order.
func (v *Vagrant) Boxes(directory string) ([]BoxStatus, error) {
	out, err := v.runner.Output(directory, v.binary, "status")
	if err != nil {
		return nil, err
	}
	v.logger.Debug("vagrant status output", "dir", directory, "output", out)

	boxes, err := ParseStatus(directory, out)
	if err != nil {
		return nil, err
	}
	for _, b := range boxes {
		v.logger.Debug("found box", "box", b.Box.Name, "dir", directory, "state", b.State.String())
	}
	return boxes, nil
}

// run runs a vagrant subcommand against a box in its directory.
func (v *Vagrant) run(box Box, args ...string) error {
	return v.runner.Run(box.Directory, v.binary, args...)
}
