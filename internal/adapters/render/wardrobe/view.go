package wardrobe

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/mira/internal/domain"
)

const confidenceBarWidth = 20

type RenderOptions struct {
	Now time.Time
}

func renderView(items []domain.Item, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Virtual Wardrobe"),
		s.header.Render(fmt.Sprintf("items: %d", len(items))),
	}

	if len(items) == 0 {
		lines = append(lines, s.empty.Render(domain.EmptyWardrobeSentence))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, item := range items {
		lines = append(lines, itemLine(item, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func itemLine(item domain.Item, opts RenderOptions, s styles) string {
	color := item.Color
	if color == "" {
		color = domain.UnknownColor
	}

	confidence := clampPercent(item.Confidence * 100)
	percentStyle := lipgloss.NewStyle().Foreground(interpolateColor(confidence, 0, 100))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.label.Render(fmt.Sprintf("%-12s", item.DisplayLabel())),
		" ",
		s.color.Render(fmt.Sprintf("%-8s", color)),
		" ",
		renderConfidenceBar(confidence, confidenceBarWidth, s),
		" ",
		percentStyle.Render(fmt.Sprintf("%3.0f%%", confidence)),
		" ",
		s.meta.Render(fmt.Sprintf("(%s)", formatAdded(item.AddedOn, opts.Now))),
	)
}

func renderConfidenceBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatAdded(addedOn, now time.Time) string {
	if addedOn.IsZero() {
		return "added: unknown"
	}
	if now.IsZero() {
		return "added " + addedOn.Format("15:04 on 02 Jan")
	}

	elapsed := now.Sub(addedOn)
	switch {
	case elapsed < time.Minute:
		return "added just now"
	case elapsed < time.Hour:
		return plural(int(elapsed.Minutes()), "minute")
	case elapsed < 24*time.Hour:
		return plural(int(elapsed.Hours()), "hour")
	default:
		return plural(int(elapsed.Hours()/24), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("added 1 %s ago", unit)
	}
	return fmt.Sprintf("added %d %ss ago", n, unit)
}

// interpolateColor fades from grey at min to bright white at max on the ANSI
// 256 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}
