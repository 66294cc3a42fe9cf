package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zpdzap/upkeep/internal/vagrant"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 6 // account for "  > /" prefix
		return m, nil

	case refreshTickMsg:
		if m.refreshing {
			return m, tickCmd()
		}
		m2, cmd := m.startRefresh()
		return m2, tea.Batch(cmd, tickCmd())

	case boxesMsg:
		m.refreshing = false
		m.boxes = msg.boxes
		if m.cursor >= len(m.boxes) {
			m.cursor = max(0, len(m.boxes)-1)
		}
		if msg.err != nil {
			m.message = fmt.Sprintf("Error: %v", msg.err)
			m.isError = true
		}
		return m, nil

	case spinner.TickMsg:
		if !m.refreshing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.commanding {
			return m.handleCommandMode(msg)
		}
		return m.handleNormalMode(msg)
	}

	// Forward to input if in command mode
	if m.commanding {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// startRefresh kicks off a background listing unless one is in flight.
func (m model) startRefresh() (model, tea.Cmd) {
	if m.refreshing {
		return m, nil
	}
	m.refreshing = true
	return m, tea.Batch(refreshCmd(m.lister, m.directories), m.spinner.Tick)
}

// handleNormalMode handles keys when navigating the box list.
func (m model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Dismiss help modal
	if m.showHelp {
		switch msg.String() {
		case "?", "esc":
			m.showHelp = false
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "/":
		m.commanding = true
		m.input.Focus()
		m.input.SetValue("")
		return m, textinput.Blink

	case "r":
		m.message = ""
		m.isError = false
		return m.startRefresh()

	case "?":
		m.showHelp = true
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		} else if len(m.boxes) > 0 {
			m.cursor = len(m.boxes) - 1
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.boxes)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		if m.refreshing {
			m.message = "Still refreshing, try again in a moment"
			m.isError = false
			return m, nil
		}
		if m.cursor < len(m.boxes) {
			target := m.boxes[m.cursor]
			m.target = &target
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

// handleCommandMode handles keys when the command input is active.
func (m model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.commanding = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil

	case "enter":
		m.commanding = false
		m.input.Blur()
		return m.processInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) processInput() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	// Allow commands with or without the / prefix
	if !strings.HasPrefix(input, "/") {
		input = "/" + input
	}
	cmd := ParseCommand(input)
	if cmd == nil {
		return m, nil
	}

	switch cmd.Name {
	case "/upkeep", "/run":
		if m.refreshing {
			m.message = "Still refreshing, try again in a moment"
			m.isError = false
			return m, nil
		}
		if len(cmd.Args) != 1 {
			m.message = "Usage: /upkeep <name> or /upkeep <name>@<directory>"
			m.isError = true
			return m, nil
		}
		box, err := findBox(m.boxes, cmd.Args[0])
		if err != nil {
			m.message = err.Error()
			m.isError = true
			return m, nil
		}
		m.target = &box
		return m, tea.Quit

	case "/refresh":
		m.message = ""
		m.isError = false
		return m.startRefresh()

	case "/quit":
		m.quitting = true
		return m, tea.Quit

	default:
		m.message = fmt.Sprintf("Unknown command: %s", cmd.Name)
		m.isError = true
		return m, nil
	}
}

// findBox resolves "name" or "name@dir", where dir is the base name of the
// box's directory.
func findBox(boxes []vagrant.BoxStatus, ref string) (vagrant.BoxStatus, error) {
	name, dir, qualified := strings.Cut(ref, "@")

	var matches []vagrant.BoxStatus
	for _, b := range boxes {
		if b.Box.Name != name {
			continue
		}
		if qualified && filepath.Base(b.Box.Directory) != dir {
			continue
		}
		matches = append(matches, b)
	}

	switch len(matches) {
	case 0:
		return vagrant.BoxStatus{}, fmt.Errorf("box %q not found", ref)
	case 1:
		return matches[0], nil
	default:
		return vagrant.BoxStatus{}, fmt.Errorf("box %q is ambiguous, use %s@<directory>", ref, name)
	}
}
