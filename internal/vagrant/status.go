package vagrant

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PowerState is the state vagrant reports for a box.
type PowerState int

const (
	PowerOff PowerState = iota
	Running
	Saved
	Aborted
)

func (s PowerState) String() string {
	switch s {
	case PowerOff:
		return "poweroff"
	case Running:
		return "running"
	case Saved:
		return "saved"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("PowerState(%d)", int(s))
	}
}

// PoweredOn reports whether the box is up and accepting ssh.
func (s PowerState) PoweredOn() bool { return s == Running }

// ParsePowerState matches a status keyword case-insensitively.
func ParsePowerState(token string) (PowerState, error) {
	switch strings.ToLower(token) {
	case "poweroff":
		return PowerOff, nil
	case "running":
		return Running, nil
	case "saved":
		return Saved, nil
	case "aborted":
		return Aborted, nil
	}
	return 0, fmt.Errorf("unknown box state %q", token)
}

// Box identifies one vagrant machine within a working directory.
type Box struct {
	Name      string
	Directory string
}

func (b Box) String() string {
	return fmt.Sprintf("%s @ %s", b.Name, b.Directory)
}

// Prefix returns the TOPGRADE_PREFIX value for the box: the directory's base
// name for the "default" machine, the machine name otherwise.
func (b Box) Prefix() (string, error) {
	if b.Name != "default" {
		return b.Name, nil
	}
	base := filepath.Base(b.Directory)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("cannot derive a prefix for %s: directory has no name", b)
	}
	return base, nil
}

// BoxStatus pairs a box with the state it was listed in.
type BoxStatus struct {
	Box   Box
	State PowerState
}

// ParseError reports a status line that could not be understood.
type ParseError struct {
	Directory string
	Line      string
	Reason    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected vagrant status output in %s: %s: %q", e.Directory, e.Reason, e.Line)
}

// ParseStatus parses the output of `vagrant status` run in directory.
//
// The first two lines are a header. Box lines follow until an empty line or
// one starting with a carriage return; everything after is ignored.
func ParseStatus(directory, output string) ([]BoxStatus, error) {
	lines := strings.Split(output, "\n")
	if len(lines) <= 2 {
		return nil, nil
	}

	var boxes []BoxStatus
	seen := make(map[string]bool)
	for _, line := range lines[2:] {
		if line == "" || strings.HasPrefix(line, "\r") {
			break
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, &ParseError{Directory: directory, Line: line, Reason: "missing box name or state"}
		}
		state, err := ParsePowerState(fields[1])
		if err != nil {
			return nil, &ParseError{Directory: directory, Line: line, Reason: err.Error()}
		}
		if seen[fields[0]] {
			return nil, &ParseError{Directory: directory, Line: line, Reason: "duplicate box name"}
		}
		seen[fields[0]] = true

		boxes = append(boxes, BoxStatus{
			Box:   Box{Name: fields[0], Directory: directory},
			State: state,
		})
	}
	return boxes, nil
}
