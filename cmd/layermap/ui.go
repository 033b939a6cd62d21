package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"layermap/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	cycleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type issueItem struct {
	title, desc string
}

func (i issueItem) Title() string       { return i.title }
func (i issueItem) Description() string { return i.desc }
func (i issueItem) FilterValue() string { return i.title + i.desc }

type uiModel struct {
	list       list.Model
	proj       model.ProjectStructure
	lastUpdate time.Time
}

type updateMsg struct {
	proj model.ProjectStructure
}

func (m uiModel) Init() tea.Cmd {
	return nil
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.proj = msg.proj
		m.lastUpdate = time.Now()

		items := []list.Item{}
		for _, c := range m.proj.Cycles {
			items = append(items, issueItem{
				title: "Import Cycle",
				desc:  strings.Join(c.Nodes, " -> "),
			})
		}
		for _, d := range m.proj.Dependencies {
			if strings.HasPrefix(d.To, "[Missing] ") {
				items = append(items, issueItem{
					title: "Missing Import",
					desc:  fmt.Sprintf("%s -> %s", d.From, d.To),
				})
			}
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m uiModel) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %s | %d files | %d dependencies",
		m.lastUpdate.Format("15:04:05"), m.proj.Stats.TotalFiles, m.proj.Stats.TotalDependencies))

	missingCount := 0
	for _, d := range m.proj.Dependencies {
		if strings.HasPrefix(d.To, "[Missing] ") {
			missingCount++
		}
	}

	var summary string
	if m.proj.Stats.CycleCount == 0 && missingCount == 0 {
		summary = successStyle.Render("clean: no cycles or missing imports")
	} else {
		summary = fmt.Sprintf("%s | %s",
			cycleStyle.Render(fmt.Sprintf("%d cycles", m.proj.Stats.CycleCount)),
			missingStyle.Render(fmt.Sprintf("%d missing", missingCount)))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("layermap"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func newUIModel() uiModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Detected Issues"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return uiModel{
		list:       l,
		lastUpdate: time.Now(),
	}
}
