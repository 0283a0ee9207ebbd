// Package picker presents a small, filterable list on a TTY for commands
// that need the user to disambiguate between several matches — e.g.
// `wt switch --filter` landing on more than one branch.
package picker

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Item is one selectable entry. Title/Description satisfy
// list.DefaultItem so bubbles/list's built-in fuzzy filtering (backed by
// sahilm/fuzzy) works without a custom delegate.
type Item struct {
	Label  string
	Detail string
	Value  string
}

func (i Item) Title() string       { return i.Label }
func (i Item) Description() string { return i.Detail }
func (i Item) FilterValue() string { return i.Label }

type model struct {
	list     list.Model
	chosen   string
	quitting bool
}

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if it, ok := m.list.SelectedItem().(Item); ok {
				m.chosen = it.Value
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// Pick runs an interactive filterable list over items and returns the
// chosen item's Value, or "" if the user cancelled.
func Pick(title string, items []Item) (string, error) {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}
	delegate := list.NewDefaultDelegate()
	l := list.New(listItems, delegate, 0, 0)
	l.Title = fmt.Sprintf(" %s ", title)
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	m := model{list: l}
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	return final.(model).chosen, nil
}
