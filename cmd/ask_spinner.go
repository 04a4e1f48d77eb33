package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type askDoneMsg struct {
	reply string
	err   error
}

type askSpinnerModel struct {
	spinner spinner.Model
	label   string
	ask     tea.Cmd
	reply   string
	err     error
	done    bool
}

func newAskSpinnerModel(label string, ask tea.Cmd) askSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("212"))),
	)

	return askSpinnerModel{
		spinner: s,
		label:   label,
		ask:     ask,
	}
}

func (m askSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.ask)
}

func (m askSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case askDoneMsg:
		m.done = true
		m.reply = msg.reply
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m askSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runAskSpinner draws a spinner on output while ask runs and returns its reply.
func runAskSpinner(ctx context.Context, output io.Writer, ask func(context.Context) (string, error)) (string, error) {
	askCmd := func() tea.Msg {
		reply, err := ask(ctx)
		return askDoneMsg{reply: reply, err: err}
	}

	p := tea.NewProgram(
		newAskSpinnerModel("Asking MiraAI...", askCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	result, ok := finalModel.(askSpinnerModel)
	if !ok {
		return "", fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.reply, result.err
}
