package theme

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title      lipgloss.Style
	ModePill   lipgloss.Style
	Intro      lipgloss.Style
	Pinned     lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style

	PostTitle   lipgloss.Style
	PinnedTitle lipgloss.Style
	Abstract    lipgloss.Style
	Cover       lipgloss.Style
	Counter     lipgloss.Style
	PromptError lipgloss.Style
}

func Default() Theme {
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpBlue := lipgloss.Color("#89b4fa")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext0 := lipgloss.Color("#a6adc8")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")

	return Theme{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		ModePill:    lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Intro:       lipgloss.NewStyle().Italic(true).Foreground(cpSubtext0),
		Pinned:      lipgloss.NewStyle().Foreground(cpYellow).Bold(true),
		ActiveLine:  lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:   lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:   lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:   lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:   lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:   lipgloss.NewStyle().Foreground(cpPeach),
		PostTitle:   lipgloss.NewStyle().Bold(true).Foreground(cpText),
		PinnedTitle: lipgloss.NewStyle().Bold(true).Italic(true).Foreground(cpYellow),
		Abstract:    lipgloss.NewStyle().Foreground(cpSubtext0),
		Cover:       lipgloss.NewStyle().Foreground(cpBlue).Faint(true),
		Counter:     lipgloss.NewStyle().Foreground(cpYellow),
		PromptError: lipgloss.NewStyle().Foreground(cpRed).Italic(true),
	}
}

// StylePostTitle renders pinned posts distinctly from regular list items.
func (t Theme) StylePostTitle(pinned bool, title string) string {
	if title == "" {
		return title
	}
	if pinned {
		return t.PinnedTitle.Render(title)
	}
	return t.PostTitle.Render(title)
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
