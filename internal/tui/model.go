package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zpdzap/upkeep/internal/vagrant"
	"golang.org/x/term"
)

// model is the Bubble Tea model for the upkeep dashboard.
type model struct {
	lister      lister
	directories []string
	boxes       []vagrant.BoxStatus
	refreshing  bool
	spinner     spinner.Model
	input       textinput.Model
	cursor      int
	message     string
	isError     bool
	commanding  bool // true when in command mode (/ pressed)
	showHelp    bool
	quitting    bool
	target      *vagrant.BoxStatus // box to run upkeep on after tea quits
	width       int
	height      int
}

func newModel(l lister, directories []string, message string, isError bool) model {
	ti := textinput.New()
	ti.Placeholder = "upkeep <name>, refresh, quit"
	ti.CharLimit = 256
	ti.Width = 80
	// Input starts unfocused, activated by pressing /
	ti.Blur()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	// Get initial terminal size so the first render isn't at width=0
	w, h, _ := term.GetSize(int(os.Stdout.Fd()))
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	return model{
		lister:      l,
		directories: directories,
		refreshing:  true,
		spinner:     sp,
		input:       ti,
		message:     message,
		isError:     isError,
		width:       w,
		height:      h,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(refreshCmd(m.lister, m.directories), m.spinner.Tick, tickCmd())
}
