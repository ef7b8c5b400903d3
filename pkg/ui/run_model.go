package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Philipao0122/audioAgentTour/pkg/provision"
)

// stepState is the view-side status of one step.
type stepState int

const (
	statePending stepState = iota
	stateRunning
	stateDone
	stateIgnored
	stateFailed
)

// progressMsg wraps a provision progress event.
type progressMsg provision.Progress

// completeMsg signals that the run finished.
type completeMsg struct {
	record *provision.Record
	err    error
}

// stepView is one row in the step list.
type stepView struct {
	stage provision.Stage
	name  string
	state stepState
	err   error
}

// RunModel is a Bubble Tea model showing provisioning progress.
type RunModel struct {
	targetName string
	runFn      func(onProgress func(provision.Progress)) (*provision.Record, error)

	spinner      spinner.Model
	steps        []stepView
	progressChan chan provision.Progress

	record   *provision.Record
	err      error
	done     bool
	quitting bool
}

// NewRunModel builds the model for a run. steps is the planned step list;
// runFn executes the run with a progress callback.
func NewRunModel(targetName string, steps []provision.Step, runFn func(onProgress func(provision.Progress)) (*provision.Record, error)) RunModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	views := make([]stepView, len(steps))
	for i, step := range steps {
		views[i] = stepView{stage: step.Stage, name: step.Name, state: statePending}
	}

	return RunModel{
		targetName:   targetName,
		runFn:        runFn,
		spinner:      s,
		steps:        views,
		progressChan: make(chan provision.Progress, 64),
	}
}

// Record returns the finished run record, if any.
func (m RunModel) Record() *provision.Record {
	return m.record
}

// Err returns the run error, if any.
func (m RunModel) Err() error {
	return m.err
}

func (m RunModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.startRun(),
		m.waitForProgress(),
	)
}

func (m RunModel) startRun() tea.Cmd {
	return func() tea.Msg {
		record, err := m.runFn(func(p provision.Progress) {
			m.progressChan <- p
		})
		close(m.progressChan)
		return completeMsg{record: record, err: err}
	}
}

func (m RunModel) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		p, ok := <-m.progressChan
		if !ok {
			return nil
		}
		return progressMsg(p)
	}
}

func (m RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if m.done {
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progressMsg:
		m.apply(provision.Progress(msg))
		return m, m.waitForProgress()

	case completeMsg:
		m.record = msg.record
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// apply updates the step list from a progress event.
func (m *RunModel) apply(p provision.Progress) {
	for i := range m.steps {
		if m.steps[i].stage != p.Stage {
			continue
		}
		switch p.Event {
		case provision.EventStart:
			m.steps[i].state = stateRunning
		case provision.EventDone:
			m.steps[i].state = stateDone
		case provision.EventIgnored:
			m.steps[i].state = stateIgnored
			m.steps[i].err = p.Err
		case provision.EventFailed:
			m.steps[i].state = stateFailed
			m.steps[i].err = p.Err
		}
		return
	}
}

func (m RunModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Provisioning %s", m.targetName)))
	b.WriteString("\n")

	for _, step := range m.steps {
		var glyph, name string
		switch step.state {
		case stateRunning:
			glyph = m.spinner.View()
			name = ActiveStyle.Render(step.name)
		case stateDone:
			glyph = SuccessStyle.Render(GlyphOK)
			name = step.name
		case stateIgnored:
			glyph = WarningStyle.Render(GlyphWarn)
			name = step.name + DimStyle.Render(" (ignored: "+step.err.Error()+")")
		case stateFailed:
			glyph = ErrorStyle.Render(GlyphFail)
			name = ErrorStyle.Render(step.name)
		default:
			glyph = DimStyle.Render(GlyphPending)
			name = DimStyle.Render(step.name)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", glyph, name))
	}

	if m.done {
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(ErrorStyle.Render("Provisioning failed: " + m.err.Error()))
		} else {
			b.WriteString(SuccessStyle.Render("Provisioning complete"))
		}
		b.WriteString(DimStyle.Render("\nPress enter to exit"))
	} else {
		b.WriteString(DimStyle.Render("\nPress q to abort"))
	}

	return b.String()
}
