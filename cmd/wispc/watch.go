package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/wisp-lang/wispc/internal/pipeline"
	"github.com/wisp-lang/wispc/internal/scenarios"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Check every built-in scenario with a live progress display",
	Long: "watch walks internal/scenarios one program at a time, rendering pass/fail\n" +
		"status as each finishes, in place of watching a real source tree for\n" +
		"changes until a file-backed front end feeds this compiler core directly.",
	RunE: runWatch,
}

type scenarioEvent struct {
	name     string
	finished bool
	hasError bool
}

type scenarioEventMsg scenarioEvent
type watchDoneMsg struct{}

type scenarioItem struct {
	name   string
	status string
}

type watchModel struct {
	events  <-chan scenarioEvent
	spinner spinner.Model
	items   []scenarioItem
	index   map[string]int
	done    bool
	failed  bool
}

func newWatchModel(events <-chan scenarioEvent) *watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	items := make([]scenarioItem, 0, len(scenarios.Registry))
	index := make(map[string]int, len(scenarios.Registry))
	for i, s := range scenarios.Registry {
		items = append(items, scenarioItem{name: s.Name, status: "queued"})
		index[s.Name] = i
	}
	return &watchModel{events: events, spinner: sp, items: items, index: index}
}

func (m *watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scenarioEventMsg:
		ev := scenarioEvent(msg)
		idx, ok := m.index[ev.name]
		if ok {
			if ev.finished {
				if ev.hasError {
					m.items[idx].status = "fail"
					m.failed = true
				} else {
					m.items[idx].status = "ok"
				}
			} else {
				m.items[idx].status = "checking"
			}
		}
		return m, m.listenForEvent()
	case watchDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *watchModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := "checking scenarios"
	if m.done {
		header = "done"
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := 24
	for _, item := range m.items {
		name := truncateName(item.name, nameWidth)
		status := styleScenarioStatus(item.status).Render(fmt.Sprintf("%-9s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s\n", status, name))
	}
	if !m.done {
		b.WriteString("\npress q to quit\n")
	}
	return b.String()
}

func (m *watchModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return watchDoneMsg{}
		}
		return scenarioEventMsg(ev)
	}
}

func styleScenarioStatus(status string) lipgloss.Style {
	switch status {
	case "ok":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "fail":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "checking":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncateName(value string, width int) string {
	if runewidth.StringWidth(value) <= width {
		return value
	}
	return runewidth.Truncate(value, width-3, "...")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	jobs, _, err := pipelineFlags(cmd)
	if err != nil {
		return err
	}

	events := make(chan scenarioEvent, len(scenarios.Registry)*2)
	go func() {
		defer close(events)
		for _, s := range scenarios.Registry {
			events <- scenarioEvent{name: s.Name}
			prog := s.Build()
			results, perr := pipeline.CheckProgram(cmd.Context(), prog, jobs)
			hasErr := perr != nil || pipeline.HasErrors(results)
			events <- scenarioEvent{name: s.Name, finished: true, hasError: hasErr}
		}
	}()

	model := newWatchModel(events)
	program := tea.NewProgram(model)
	finalModel, runErr := program.Run()
	if runErr != nil {
		return runErr
	}
	if wm, ok := finalModel.(*watchModel); ok && wm.failed {
		return fmt.Errorf("one or more scenarios failed")
	}
	return nil
}
