package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bitemap/bitemap-cli/internal/feed"
)

type Theme struct {
	Title      lipgloss.Style
	TabPill    lipgloss.Style
	TabActive  lipgloss.Style
	Section    lipgloss.Style
	Rating     lipgloss.Style
	Price      lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	Tag        lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style
	CardBorder lipgloss.Style
	Poster     lipgloss.Style

	DishPlain      lipgloss.Style
	DishLiked      lipgloss.Style
	DishBookmarked lipgloss.Style
	DishBoth       lipgloss.Style

	MarkerActive   lipgloss.Style
	MarkerInactive lipgloss.Style
}

func Default() Theme {
	cpRosewater := lipgloss.Color("#f5e0dc")
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")

	return Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		TabPill:    lipgloss.NewStyle().Foreground(cpOverlay1).Padding(0, 1),
		TabActive:  lipgloss.NewStyle().Bold(true).Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Section:    lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		Rating:     lipgloss.NewStyle().Foreground(cpYellow).Bold(true),
		Price:      lipgloss.NewStyle().Foreground(cpGreen).Bold(true),
		MetaLabel:  lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:  lipgloss.NewStyle().Foreground(cpSubtext1),
		Tag:        lipgloss.NewStyle().Foreground(cpTeal),
		StateIdle:  lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:  lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:  lipgloss.NewStyle().Foreground(cpPeach),
		CardBorder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(cpSurface0),
		Poster:     lipgloss.NewStyle().Foreground(cpOverlay1).Italic(true),

		DishPlain: lipgloss.NewStyle().Bold(true).Foreground(cpText),
		DishLiked: lipgloss.NewStyle().Bold(true).Foreground(cpRed),
		DishBookmarked: lipgloss.NewStyle().
			Bold(true).
			Foreground(cpLavender),
		DishBoth: lipgloss.NewStyle().Bold(true).Foreground(cpRosewater),

		MarkerActive:   lipgloss.NewStyle().Foreground(cpMauve).Bold(true),
		MarkerInactive: lipgloss.NewStyle().Foreground(cpSurface0),
	}
}

func (t Theme) StyleDishName(flags feed.Flags, name string) string {
	if name == "" {
		return name
	}
	switch {
	case flags.Liked && flags.Bookmarked:
		return t.DishBoth.Render(name)
	case flags.Liked:
		return t.DishLiked.Render(name)
	case flags.Bookmarked:
		return t.DishBookmarked.Render(name)
	default:
		return t.DishPlain.Render(name)
	}
}

func (t Theme) RenderTab(active bool, label string) string {
	if active {
		return t.TabActive.Render(label)
	}
	return t.TabPill.Render(label)
}
