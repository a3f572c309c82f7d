package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marshallshelly/quarry/pkg/codegen"
)

// ConfirmationDialog represents a yes/no confirmation dialog. The host
// model reads YesSelected when enter is pressed.
type ConfirmationDialog struct {
	Title       string
	Message     string
	YesSelected bool
}

// NewConfirmationDialog creates a new confirmation dialog with "No"
// selected, so enter alone never confirms.
func NewConfirmationDialog(title, message string) ConfirmationDialog {
	return ConfirmationDialog{
		Title:       title,
		Message:     message,
		YesSelected: false,
	}
}

// Update handles selection movement inside the dialog
func (d *ConfirmationDialog) Update(msg tea.Msg) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return
	}
	switch keyMsg.String() {
	case "left", "h":
		d.YesSelected = true
	case "right", "l":
		d.YesSelected = false
	case "tab":
		d.YesSelected = !d.YesSelected
	}
}

// View renders the confirmation dialog
func (d ConfirmationDialog) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n\n")
	b.WriteString(d.Message)
	b.WriteString("\n\n")

	yesButton := inactiveButtonStyle.Render("Yes")
	noButton := inactiveButtonStyle.Render("No")

	if d.YesSelected {
		yesButton = activeButtonStyle.Render("Yes")
	} else {
		noButton = activeButtonStyle.Render("No")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, yesButton, "  ", noButton))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(FormatKey("←/→", "select") + " • " + FormatKey("enter", "confirm") + " • " + FormatKey("esc/q", "cancel")))

	return boxStyle.Render(b.String())
}

// ArtifactItem represents one artifact kind in the picker list
type ArtifactItem struct {
	Kind     codegen.Kind
	Desc     string
	File     string
	Selected bool
}

func (i ArtifactItem) FilterValue() string { return string(i.Kind) }
func (i ArtifactItem) Title() string {
	checkbox := mutedStyle.Render("[ ]")
	if i.Selected {
		checkbox = checkedStyle.Render("[✓]")
	}
	return fmt.Sprintf("%s %s", checkbox, i.Kind)
}
func (i ArtifactItem) Description() string {
	return mutedStyle.Render(i.Desc + " → " + i.File)
}

// ArtifactItemDelegate is a custom delegate for artifact list items
type ArtifactItemDelegate struct{}

func (d ArtifactItemDelegate) Height() int                             { return 2 }
func (d ArtifactItemDelegate) Spacing() int                            { return 1 }
func (d ArtifactItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d ArtifactItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(ArtifactItem)
	if !ok {
		return
	}

	var s string
	if index == m.Index() {
		s = selectedItemStyle.Render("▸ " + i.Title() + "\n  " + i.Description())
	} else {
		s = unselectedItemStyle.Render("  " + i.Title() + "\n  " + i.Description())
	}

	_, _ = fmt.Fprint(w, s)
}
