package chat

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/mira/internal/domain"
)

const (
	DefaultTickInterval   = 200 * time.Millisecond
	DefaultRecentMessages = 5
)

var ErrUnexpectedChatModel = errors.New("unexpected final chat model type")

// Conversation is the session state the chat screen reads and submits to.
type Conversation interface {
	Submit(ctx context.Context, utterance string) string
	ConsumeRerender() bool
	Recent(n int) []domain.Turn
	Notice() string
	Busy() bool
}

type LiveStatusSource interface {
	LiveStatus() string
}

type Options struct {
	// Live is nil when the camera is off.
	Live           LiveStatusSource
	Summary        func(ctx context.Context) string
	TickInterval   time.Duration
	RecentMessages int
}

type tickMsg time.Time

type model struct {
	ctx     context.Context
	conv    Conversation
	opts    Options
	styles  styles
	input   textinput.Model
	spinner spinner.Model

	turns   []domain.Turn
	notice  string
	summary string
	live    string
	busy    bool
	width   int
	quit    bool
}

func newModel(ctx context.Context, conv Conversation, opts Options) model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.RecentMessages <= 0 {
		opts.RecentMessages = DefaultRecentMessages
	}

	input := textinput.New()
	input.Placeholder = "Ask MiraAI for style advice..."
	input.Prompt = "> "
	input.CharLimit = 500
	input.Focus()

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	m := model{
		ctx:     ctx,
		conv:    conv,
		opts:    opts,
		styles:  newStyles(),
		input:   input,
		spinner: s,
	}
	m.refresh()

	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.tick())
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.opts.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(10, msg.Width-4)
		return m, nil
	case tickMsg:
		if m.conv.ConsumeRerender() {
			m.refresh()
		}
		m.busy = m.conv.Busy()
		m.live = m.liveStatus()
		return m, m.tick()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) submit() {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return
	}

	m.input.Reset()
	m.conv.Submit(m.ctx, text)
	m.busy = true
	m.refresh()
}

func (m *model) refresh() {
	m.turns = m.conv.Recent(m.opts.RecentMessages)
	m.notice = m.conv.Notice()
	m.busy = m.conv.Busy()
	m.live = m.liveStatus()
	if m.opts.Summary != nil {
		m.summary = m.opts.Summary(m.ctx)
	}
}

func (m model) liveStatus() string {
	if m.opts.Live == nil {
		return ""
	}
	return m.opts.Live.LiveStatus()
}

func (m model) View() string {
	if m.quit {
		return ""
	}
	return renderView(m)
}

// Run draws the chat screen until the user quits or ctx is done.
func Run(ctx context.Context, conv Conversation, opts Options, input io.Reader, output io.Writer) error {
	programOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(output)}
	if input != nil {
		programOpts = append(programOpts, tea.WithInput(input), tea.WithAltScreen())
	} else {
		programOpts = append(programOpts, tea.WithInput(nil))
	}

	p := tea.NewProgram(newModel(ctx, conv, opts), programOpts...)
	finalModel, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	if _, ok := finalModel.(model); !ok {
		return ErrUnexpectedChatModel
	}

	return nil
}
