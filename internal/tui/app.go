package tui

import (
	"bufio"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zpdzap/upkeep/internal/vagrant"
)

// boxRunner is the part of vagrant.Vagrant the foreground run needs.
type boxRunner interface {
	lister
	UpkeepBox(status vagrant.BoxStatus, opts vagrant.Options) error
}

// Run starts the dashboard. It cycles between the Bubble Tea program and
// foreground upkeep runs on the selected box until the user quits.
func Run(v *vagrant.Vagrant, opts vagrant.Options) error {
	stdin := bufio.NewReader(os.Stdin)
	message, isError := "", false
	for {
		m := newModel(v, opts.Directories, message, isError)
		p := tea.NewProgram(m, tea.WithAltScreen())
		result, err := p.Run()
		if err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}

		final := result.(model)

		if final.quitting || final.target == nil {
			return nil
		}

		message, isError = upkeepTarget(v, *final.target, opts)

		if !waitForEnter(os.Stdout, stdin) {
			return nil
		}
	}
}

// upkeepTarget re-reads the state of the selected box and runs upkeep on it.
// The dashboard listing may be stale, and the guard must restore the state
// the box is in now. It returns the message to show back on the dashboard.
func upkeepTarget(r boxRunner, target vagrant.BoxStatus, opts vagrant.Options) (string, bool) {
	box := target.Box

	boxes, err := r.Boxes(box.Directory)
	if err != nil {
		return fmt.Sprintf("Listing %s failed: %v", box.Directory, err), true
	}
	current, ok := findByName(boxes, box.Name)
	if !ok {
		return fmt.Sprintf("%s no longer exists", box), true
	}

	if !current.State.PoweredOn() && !opts.PowerOn {
		return fmt.Sprintf("%s is %s and power on is disabled", box, current.State), true
	}

	if err := r.UpkeepBox(current, opts); err != nil {
		return fmt.Sprintf("Upkeep of %s failed: %v", box, err), true
	}
	return fmt.Sprintf("Upkeep of %s finished", box), false
}

// waitForEnter pauses until the user presses enter. It reports false once
// stdin is closed.
func waitForEnter(w io.Writer, r *bufio.Reader) bool {
	fmt.Fprint(w, "\nPress enter to return to the dashboard...")
	if _, err := r.ReadString('\n'); err != nil {
		fmt.Fprintln(w)
		return false
	}
	return true
}

func findByName(boxes []vagrant.BoxStatus, name string) (vagrant.BoxStatus, bool) {
	for _, b := range boxes {
		if b.Box.Name == name {
			return b, true
		}
	}
	return vagrant.BoxStatus{}, false
}
