package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zpdzap/upkeep/internal/vagrant"
)

const refreshInterval = 30 * time.Second

// boxesMsg carries the result of a background status refresh. On error,
// boxes holds whatever was listed before the failing directory.
type boxesMsg struct {
	boxes []vagrant.BoxStatus
	err   error
}

// refreshTickMsg triggers a periodic status refresh.
type refreshTickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// lister is the part of vagrant.Vagrant the dashboard polls.
type lister interface {
	Boxes(directory string) ([]vagrant.BoxStatus, error)
}

// refreshCmd lists every directory in order.
func refreshCmd(l lister, directories []string) tea.Cmd {
	return func() tea.Msg {
		var all []vagrant.BoxStatus
		for _, dir := range directories {
			boxes, err := l.Boxes(dir)
			if err != nil {
				return boxesMsg{boxes: all, err: err}
			}
			all = append(all, boxes...)
		}
		return boxesMsg{boxes: all}
	}
}
