package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"flux"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
var helpStyle = lipgloss.NewStyle().Faint(true)

type model struct {
	list *flux.ListModel[string]
	next int
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c":
			m.list.Dispose()
			return m, tea.Quit
		case "a":
			cmd := m.list.InsertAt(m.list.Count()/2, fmt.Sprintf("entry %d", m.next))
			m.next++
			return m, cmd
		case "d":
			if m.list.Count() > 0 {
				return m, m.list.RemoveAt(m.list.Count() / 2)
			}
			return m, nil
		}
	}

	_, cmd := m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	return titleStyle.Render("animated list") + "\n\n" +
		m.list.View() + "\n" +
		helpStyle.Render("a: insert  d: remove  q: quit") + "\n"
}

func main() {
	items := []string{"entry 0", "entry 1", "entry 2"}
	list := flux.NewListModel(items, func(item string, index int) string {
		return fmt.Sprintf("%3d  %s", index, item)
	}, 300*time.Millisecond)

	if _, err := tea.NewProgram(model{list: list, next: len(items)}).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
