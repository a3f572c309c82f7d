package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmModel wraps a ConfirmationDialog in a standalone program.
type confirmModel struct {
	dialog    ConfirmationDialog
	confirmed bool
	width     int
	height    int
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.confirmed = false
			return m, tea.Quit
		case "enter":
			m.confirmed = m.dialog.YesSelected
			return m, tea.Quit
		case "y":
			m.confirmed = true
			return m, tea.Quit
		case "n":
			m.confirmed = false
			return m, tea.Quit
		default:
			m.dialog.Update(msg)
			return m, nil
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.width == 0 {
		return m.dialog.View()
	}
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.dialog.View(),
	)
}

// RunConfirm shows a yes/no dialog and reports the choice. Cancelling
// with esc or q counts as no.
func RunConfirm(title, message string) (bool, error) {
	p := tea.NewProgram(confirmModel{
		dialog: NewConfirmationDialog(title, message),
	})

	final, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := final.(confirmModel)
	if !ok {
		return false, nil
	}
	return m.confirmed, nil
}
