package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/mira/internal/domain"
)

const cameraOff = "Camera off."

func renderView(m model) string {
	s := m.styles

	lines := []string{
		s.title.Render("MiraAI") + " " + s.subtitle.Render("your live personal stylist"),
		s.liveKey.Render("Live outfit:") + " " + s.liveValue.Render(liveLine(m)),
	}

	if m.summary != "" {
		lines = append(lines, s.panel.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			s.panelHead.Render("Wardrobe"),
			s.message.Render(m.summary),
		)))
	}

	lines = append(lines, s.panel.Render(renderTurns(m.turns, m.width, s)))

	if m.notice != "" {
		lines = append(lines, s.notice.Render(m.notice))
	}
	if m.busy {
		lines = append(lines, m.spinner.View()+" "+s.thinking.Render("MiraAI is thinking..."))
	}

	lines = append(lines, m.input.View(), s.help.Render("enter send · esc quit"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func liveLine(m model) string {
	if m.opts.Live == nil {
		return cameraOff
	}
	if strings.TrimSpace(m.live) == "" {
		return domain.NothingInFocus
	}
	return m.live
}

func renderTurns(turns []domain.Turn, width int, s styles) string {
	if len(turns) == 0 {
		return s.empty.Render("No messages yet.")
	}

	msgStyle := s.message
	if width > 12 {
		msgStyle = msgStyle.Width(width - 12)
	}

	rows := make([]string, 0, len(turns))
	for _, turn := range turns {
		speaker := s.user.Render("You:")
		if turn.Role == domain.RoleAssistant {
			speaker = s.assistant.Render("MiraAI:")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, speaker, " ", msgStyle.Render(turn.Content)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
