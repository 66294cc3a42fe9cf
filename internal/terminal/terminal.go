package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const defaultWidth = 80

var (
	separatorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD700"))

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#333333"))

	announceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5599FF"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	dirStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// Printer writes operator-facing output.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter returns a Printer for out. Width is taken from the terminal when
// out is one, otherwise 80 columns.
func NewPrinter(out io.Writer) *Printer {
	width := defaultWidth
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	return &Printer{out: out, width: width}
}

// Width returns the column count separators are drawn to.
func (p *Printer) Width() int { return p.width }

// Separator prints a full-width rule labelled with title.
func (p *Printer) Separator(title string) {
	label := separatorStyle.Render(title)
	fill := max(2, p.width-lipgloss.Width(label)-4)
	fmt.Fprintf(p.out, "\n%s %s %s\n",
		ruleStyle.Render("──"), label, ruleStyle.Render(strings.Repeat("─", fill)))
}

// Announce prints a line describing an action about to happen.
func (p *Printer) Announce(format string, args ...any) {
	fmt.Fprintln(p.out, announceStyle.Render(fmt.Sprintf(format, args...)))
}

// Warn prints a warning line.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.out, warnStyle.Render("Warning: "+fmt.Sprintf(format, args...)))
}

// Row is one line of a status table.
type Row struct {
	Name  string
	State string
}

// Table prints rows under a directory heading, names padded to a column.
func (p *Printer) Table(directory string, rows []Row) {
	fmt.Fprintln(p.out, headingStyle.Render(directory))
	if len(rows) == 0 {
		fmt.Fprintln(p.out, dirStyle.Render("  (no boxes)"))
		return
	}
	col := 0
	for _, r := range rows {
		col = max(col, lipgloss.Width(r.Name))
	}
	for _, r := range rows {
		pad := strings.Repeat(" ", col-lipgloss.Width(r.Name))
		fmt.Fprintf(p.out, "  %s%s  %s\n", r.Name, pad, StateStyle(r.State).Render(r.State))
	}
}

// StateStyle colours a power state name.
func StateStyle(state string) lipgloss.Style {
	switch state {
	case "running":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	case "poweroff", "aborted":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))
	}
}
