// Package tui provides terminal user interface components for cellar-ctl
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cellar-works/cellar-ctl/internal/profile"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionSwitch
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action     Action
	Generation *profile.Generation
}

// generationItem implements list.Item for generation display
type generationItem struct {
	gen     profile.Generation
	current bool
}

func (i generationItem) Title() string {
	marker := "  "
	if i.current {
		marker = "* "
	}
	return fmt.Sprintf("%sgeneration %d", marker, i.gen.Number)
}

func (i generationItem) Description() string {
	if i.gen.Target == "" {
		return "✗ dangling (target removed)"
	}

	status := "●"
	if i.current {
		status = "✓ current"
	}
	return fmt.Sprintf("%s %s", status, i.gen.Target)
}

func (i generationItem) FilterValue() string {
	return fmt.Sprintf("%d %s", i.gen.Number, i.gen.Target)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the generation picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new generation picker for a profile's history.
// current is the number of the live generation, or zero.
func NewPicker(profileName string, gens []profile.Generation, current int) Model {
	items := make([]list.Item, len(gens))
	for i, g := range gens {
		items[i] = generationItem{
			gen:     g,
			current: g.Number == current,
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = fmt.Sprintf("cellar-ctl - Generations of %s", profileName)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{
		list: l,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(generationItem); ok {
				gen := item.gen
				m.result = PickerResult{
					Action:     ActionSwitch,
					Generation: &gen,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Switch  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive generation picker
func RunPicker(profileName string, gens []profile.Generation, current int) (PickerResult, error) {
	if len(gens) == 0 {
		return PickerResult{Action: ActionQuit}, nil
	}

	m := NewPicker(profileName, gens, current)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}
