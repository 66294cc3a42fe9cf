package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zpdzap/upkeep/internal/vagrant"
)

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Header
	title := "upkeep"
	stats := statsStyle.Render(fmt.Sprintf("%d boxes in %d directories", len(m.boxes), len(m.directories)))
	if m.refreshing {
		stats = m.spinner.View() + statsStyle.Render(" refreshing")
	}
	gap := max(1, m.width-lipgloss.Width(title)-lipgloss.Width(stats)-4)
	b.WriteString(headerStyle.Width(m.width).Render(title + strings.Repeat(" ", gap) + stats))
	b.WriteString("\n")

	if len(m.boxes) == 0 {
		msg := "No boxes found in the configured directories."
		if m.refreshing {
			msg = "Listing boxes..."
		}
		b.WriteString(emptyStyle.Render(msg))
		b.WriteString("\n")
	}

	nameWidth := 0
	for _, bs := range m.boxes {
		nameWidth = max(nameWidth, lipgloss.Width(bs.Box.Name))
	}
	for i, bs := range m.boxes {
		b.WriteString(m.renderBox(i, bs, nameWidth))
		b.WriteString("\n")
	}

	b.WriteString(dividerStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	// Hotkeys
	if m.commanding {
		b.WriteString(hotkeysStyle.Render("[enter] execute  [esc] cancel"))
	} else {
		b.WriteString(hotkeysStyle.Render("[↑↓] select  [enter] upkeep  [r]efresh  [/] command  [?] help  [q] quit"))
	}
	b.WriteString("\n")

	m.renderStatusAndInput(&b)

	if m.showHelp {
		return m.renderHelpOverlay(b.String())
	}
	return b.String()
}

func (m model) renderBox(index int, bs vagrant.BoxStatus, nameWidth int) string {
	cursor := "  "
	nStyle := nameStyle
	if index == m.cursor {
		cursor = "▸ "
		nStyle = selectedNameStyle
	}

	icon, iStyle := stateIcon(bs.State)
	pad := strings.Repeat(" ", nameWidth-lipgloss.Width(bs.Box.Name))

	return fmt.Sprintf("  %s%s %s%s  %s  %s",
		cursor,
		iStyle.Render(icon),
		nStyle.Render(bs.Box.Name),
		pad,
		iStyle.Render(fmt.Sprintf("%-8s", bs.State)),
		dirStyle.Render(filepath.Base(bs.Box.Directory)),
	)
}

// stateIcon returns the icon and style for a power state.
func stateIcon(state vagrant.PowerState) (string, lipgloss.Style) {
	switch state {
	case vagrant.Running:
		return "●", stateRunning
	case vagrant.Saved:
		return "◍", stateSaved
	default:
		return "○", stateOff
	}
}

func (m model) renderStatusAndInput(b *strings.Builder) {
	if m.message != "" {
		if m.isError {
			b.WriteString(errorStyle.Render(m.message))
		} else {
			b.WriteString(messageStyle.Render(m.message))
		}
		b.WriteString("\n")
	}
	if m.commanding {
		b.WriteString("  ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
}

func (m model) renderHelpOverlay(base string) string {
	help := strings.Join([]string{
		helpHeaderStyle.Render("Navigation"),
		helpKeyStyle.Render("  ↑/k  ↓/j") + helpDescStyle.Render("   Select box"),
		helpKeyStyle.Render("  Enter") + helpDescStyle.Render("       Run upkeep in the selected box"),
		helpKeyStyle.Render("  r") + helpDescStyle.Render("           Refresh box states"),
		"",
		helpHeaderStyle.Render("Commands"),
		helpKeyStyle.Render("  /") + helpDescStyle.Render("           Open command bar"),
		helpDescStyle.Render("  /upkeep <name>[@<directory>]"),
		helpDescStyle.Render("  /refresh"),
		helpDescStyle.Render("  /quit"),
		"",
		helpKeyStyle.Render("  q") + helpDescStyle.Render("  quit") + "     " + helpKeyStyle.Render("?") + helpDescStyle.Render("  close this help"),
	}, "\n")

	modal := helpStyle.Render(help)

	// Center the modal over the base view
	modalWidth := lipgloss.Width(modal)
	modalHeight := lipgloss.Height(modal)
	xOffset := max(0, (m.width-modalWidth)/2)
	yOffset := max(0, (m.height-modalHeight)/2)

	baseLines := strings.Split(base, "\n")
	for len(baseLines) < yOffset+modalHeight {
		baseLines = append(baseLines, "")
	}

	padding := strings.Repeat(" ", xOffset)
	for i, mLine := range strings.Split(modal, "\n") {
		baseLines[yOffset+i] = padding + mLine + strings.Repeat(" ", max(0, m.width-xOffset-lipgloss.Width(mLine)))
	}

	return strings.Join(baseLines, "\n")
}
