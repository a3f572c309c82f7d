package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marshallshelly/quarry/pkg/codegen"
	"github.com/marshallshelly/quarry/pkg/model"
)

// GenerateMode represents the current mode of the generate UI
type GenerateMode int

const (
	ModeBrowse GenerateMode = iota
	ModePreview
	ModeGenerating
	ModeComplete
	ModeError
)

// GenerateModel is the main Bubbletea model for interactive generation
type GenerateModel struct {
	mode        GenerateMode
	list        list.Model
	preview     viewport.Model
	previewName string
	progress    progress.Model
	dataModel   *model.DataModel
	opts        codegen.Options
	outDir      string
	queue       []codegen.Kind
	done        int
	written     []string
	err         error
	width       int
	height      int
}

// NewGenerateModel creates a new generate UI model. The kinds named in
// preselect start out checked.
func NewGenerateModel(m *model.DataModel, outDir string, preselect []codegen.Kind, opts codegen.Options) GenerateModel {
	checked := make(map[codegen.Kind]bool, len(preselect))
	for _, k := range preselect {
		checked[k] = true
	}

	kinds := codegen.Kinds()
	items := make([]list.Item, len(kinds))
	for i, k := range kinds {
		items[i] = ArtifactItem{
			Kind:     k,
			Desc:     k.Description(),
			File:     k.FileName(),
			Selected: checked[k],
		}
	}

	l := list.New(items, ArtifactItemDelegate{}, 0, 0)
	l.Title = fmt.Sprintf("Artifacts: %s", m.Name)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle

	return GenerateModel{
		mode:      ModeBrowse,
		list:      l,
		progress:  progress.New(progress.WithDefaultGradient()),
		dataModel: m,
		opts:      opts,
		outDir:    outDir,
	}
}

// Init initializes the model
func (m GenerateModel) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Messages
type artifactWrittenMsg struct {
	kind codegen.Kind
	path string
	err  error
}

// Commands
func writeArtifactCmd(dm *model.DataModel, kind codegen.Kind, opts codegen.Options, outDir string) tea.Cmd {
	return func() tea.Msg {
		content, err := codegen.Generate(kind, dm, opts)
		if err != nil {
			return artifactWrittenMsg{kind: kind, err: err}
		}

		if err := os.MkdirAll(outDir, 0755); err != nil {
			return artifactWrittenMsg{kind: kind, err: err}
		}

		path := filepath.Join(outDir, kind.FileName())
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return artifactWrittenMsg{kind: kind, err: err}
		}

		return artifactWrittenMsg{kind: kind, path: path}
	}
}

// Update handles messages
func (m GenerateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)
		m.preview.Width = msg.Width - 6
		m.preview.Height = msg.Height - 8
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case artifactWrittenMsg:
		if msg.err != nil {
			m.mode = ModeError
			m.err = fmt.Errorf("%s: %w", msg.kind, msg.err)
			return m, nil
		}

		m.written = append(m.written, msg.path)
		m.done++

		if m.done >= len(m.queue) {
			m.mode = ModeComplete
			return m, nil
		}

		return m, writeArtifactCmd(m.dataModel, m.queue[m.done], m.opts, m.outDir)

	case tea.KeyMsg:
		switch m.mode {
		case ModeBrowse:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit

			case " ":
				idx := m.list.Index()
				if item, ok := m.list.Items()[idx].(ArtifactItem); ok {
					item.Selected = !item.Selected
					return m, m.list.SetItem(idx, item)
				}
				return m, nil

			case "a":
				return m, m.setAllSelected(true)

			case "n":
				return m, m.setAllSelected(false)

			case "enter":
				idx := m.list.Index()
				item, ok := m.list.Items()[idx].(ArtifactItem)
				if !ok {
					return m, nil
				}
				content, err := codegen.Generate(item.Kind, m.dataModel, m.opts)
				if err != nil {
					m.mode = ModeError
					m.err = fmt.Errorf("%s: %w", item.Kind, err)
					return m, nil
				}
				m.previewName = item.File
				m.preview.SetContent(content)
				m.preview.GotoTop()
				m.mode = ModePreview
				return m, nil

			case "g":
				m.queue = m.selectedKinds()
				if len(m.queue) == 0 {
					return m, nil
				}
				m.done = 0
				m.written = nil
				m.mode = ModeGenerating
				return m, writeArtifactCmd(m.dataModel, m.queue[0], m.opts, m.outDir)
			}

		case ModePreview:
			switch msg.String() {
			case "ctrl+c", "q", "esc", "enter":
				m.mode = ModeBrowse
				return m, nil
			}
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd

		case ModeComplete, ModeError:
			switch msg.String() {
			case "ctrl+c", "q", "enter", "esc":
				return m, tea.Quit
			}
		}
	}

	// Update list
	if m.mode == ModeBrowse {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

// selectedKinds returns the checked kinds in list order.
func (m *GenerateModel) selectedKinds() []codegen.Kind {
	var kinds []codegen.Kind
	for _, item := range m.list.Items() {
		if ai, ok := item.(ArtifactItem); ok && ai.Selected {
			kinds = append(kinds, ai.Kind)
		}
	}
	return kinds
}

func (m *GenerateModel) setAllSelected(selected bool) tea.Cmd {
	var cmds []tea.Cmd
	for idx, item := range m.list.Items() {
		if ai, ok := item.(ArtifactItem); ok {
			ai.Selected = selected
			cmds = append(cmds, m.list.SetItem(idx, ai))
		}
	}
	return tea.Batch(cmds...)
}

// View renders the UI
func (m GenerateModel) View() string {
	switch m.mode {
	case ModeBrowse:
		help := helpStyle.Render(
			FormatKey("↑/↓", "navigate") + " • " +
				FormatKey("space", "toggle") + " • " +
				FormatKey("a/n", "all/none") + " • " +
				FormatKey("enter", "preview") + " • " +
				FormatKey("g", "generate") + " • " +
				FormatKey("q", "quit"),
		)
		return lipgloss.JoinVertical(lipgloss.Left,
			m.list.View(),
			help,
		)

	case ModePreview:
		header := titleStyle.Render(m.previewName) + " " +
			mutedStyle.Render(fmt.Sprintf("%3.f%%", m.preview.ScrollPercent()*100))
		help := helpStyle.Render(
			FormatKey("↑/↓", "scroll") + " • " + FormatKey("esc", "back"),
		)
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			previewBorderStyle.Render(m.preview.View()),
			help,
		)

	case ModeGenerating:
		var label string
		if m.done < len(m.queue) {
			label = infoStyle.Render(fmt.Sprintf("Generating %s...", m.queue[m.done]))
		}
		body := titleStyle.Render("Generating Artifacts") + "\n\n" +
			label + "\n\n" +
			m.progress.ViewAs(float64(m.done)/float64(len(m.queue))) + "\n\n" +
			mutedStyle.Render(fmt.Sprintf("%d/%d", m.done, len(m.queue)))

		return lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			lipgloss.Center,
			boxStyle.Render(body),
		)

	case ModeComplete:
		body := titleStyle.Render("Generation Complete!") + "\n\n"
		for _, path := range m.written {
			body += successStyle.Render("✓ ") + path + "\n"
		}
		body += "\n" + successStyle.Render(fmt.Sprintf("Wrote %d artifact(s) to %s", len(m.written), m.outDir)) +
			"\n\n" + helpStyle.Render(FormatKey("enter/q", "exit"))

		return lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			lipgloss.Center,
			boxStyle.Render(body),
		)

	case ModeError:
		body := titleStyle.Render("Generation Failed") + "\n\n" +
			errorStyle.Render(m.err.Error()) + "\n\n" +
			helpStyle.Render(FormatKey("enter/q", "exit"))

		return lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			lipgloss.Center,
			boxStyle.Render(body),
		)
	}

	return "Unknown mode"
}

// RunGenerateUI starts the interactive artifact picker
func RunGenerateUI(dm *model.DataModel, outDir string, preselect []codegen.Kind, opts codegen.Options) error {
	p := tea.NewProgram(NewGenerateModel(dm, outDir, preselect, opts))
	_, err := p.Run()
	return err
}
