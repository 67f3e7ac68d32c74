package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/bitemap/bitemap-cli/internal/dish"
	"github.com/bitemap/bitemap-cli/internal/feed"
	"github.com/bitemap/bitemap-cli/internal/render/desc"
	tuitheme "github.com/bitemap/bitemap-cli/internal/tui/theme"
)

const mediaSurfaceRows = 8

type PosterState struct {
	Loading bool
	Raw     string
	Err     string
}

type CardParams struct {
	Dish     dish.Dish
	Flags    feed.Flags
	State    feed.PlaybackState
	Fallback bool
	Position time.Duration
	Length   time.Duration
	Progress float64
	Width    int
	Poster   PosterState
}

// RenderDishCard draws the full-screen card for the active dish: the clip
// surface on top, then name, restaurant, meta, tags, description and the
// action bar.
func RenderDishCard(p CardParams, th tuitheme.Theme) string {
	width := p.Width
	if width < 24 {
		width = 24
	}
	inner := width - 4

	lines := make([]string, 0, 24)
	lines = append(lines, mediaSurfaceLines(p, inner, th)...)
	lines = append(lines, ProgressBar(p.Progress, inner))
	lines = append(lines, clipClock(p, th))
	lines = append(lines, "")
	lines = append(lines, th.StyleDishName(p.Flags, truncateRunes(p.Dish.Name, inner)))

	restaurant := strings.TrimSpace(p.Dish.RestaurantName)
	if restaurant != "" {
		if addr := strings.TrimSpace(p.Dish.RestaurantAddress); addr != "" {
			restaurant += " · " + addr
		}
		lines = append(lines, th.MetaValue.Render(truncateRunes(restaurant, inner)))
	}
	lines = append(lines, metaLine(p.Dish, th))
	if len(p.Dish.Tags) > 0 {
		lines = append(lines, th.Tag.Render(truncateRunes("#"+strings.Join(p.Dish.Tags, " #"), inner)))
	}

	if body := desc.Lines(p.Dish.Description, inner); len(body) > 0 {
		lines = append(lines, "")
		for _, l := range body {
			lines = append(lines, th.MetaValue.Render(l))
		}
	}

	lines = append(lines, "")
	lines = append(lines, ActionBar(p.Flags, th))

	return th.CardBorder.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func mediaSurfaceLines(p CardParams, width int, th tuitheme.Theme) []string {
	if p.Fallback {
		return posterLines(p.Poster, width, th)
	}

	lines := make([]string, 0, mediaSurfaceRows)
	badge := "▶ playing"
	switch p.State {
	case feed.StatePaused:
		badge = "⏸ paused"
	case feed.StateStopped:
		badge = "■ stopped"
	}
	blank := mediaSurfaceRows - 1
	for i := 0; i < blank/2; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, centerLine(badge, width))
	for len(lines) < mediaSurfaceRows {
		lines = append(lines, "")
	}
	return lines
}

func posterLines(poster PosterState, width int, th tuitheme.Theme) []string {
	lines := make([]string, 0, mediaSurfaceRows)
	switch {
	case poster.Loading:
		lines = append(lines, centerLine(th.Poster.Render("loading photo..."), width))
	case strings.TrimSpace(poster.Raw) != "":
		for _, l := range strings.Split(strings.TrimRight(poster.Raw, "\r\n"), "\n") {
			lines = append(lines, centerLine(l, width))
		}
	case strings.TrimSpace(poster.Err) != "":
		lines = append(lines, centerLine(th.Poster.Render("video unavailable"), width))
		lines = append(lines, centerLine(th.Poster.Render(poster.Err), width))
	default:
		lines = append(lines, centerLine(th.Poster.Render("video unavailable, showing photo"), width))
	}
	for len(lines) < mediaSurfaceRows {
		lines = append(lines, "")
	}
	if len(lines) > mediaSurfaceRows {
		lines = lines[:mediaSurfaceRows]
	}
	return lines
}

func metaLine(d dish.Dish, th tuitheme.Theme) string {
	parts := make([]string, 0, 3)
	if d.Rating > 0 {
		parts = append(parts, th.Rating.Render(fmt.Sprintf("★ %.1f", d.Rating)))
	}
	if d.Distance > 0 {
		parts = append(parts, th.MetaValue.Render(fmt.Sprintf("%.1f km", d.Distance)))
	}
	parts = append(parts, th.Price.Render(fmt.Sprintf("$%.2f", d.Price)))
	return strings.Join(parts, th.MetaLabel.Render(" · "))
}

func ActionBar(flags feed.Flags, th tuitheme.Theme) string {
	like := th.MetaValue.Render("♡ like")
	if flags.Liked {
		like = th.StateWarn.Render("♥ liked")
	}
	save := th.MetaValue.Render("⚐ save")
	if flags.Bookmarked {
		save = th.Section.Render("⚑ saved")
	}
	return strings.Join([]string{
		like,
		save,
		th.MetaValue.Render("↗ share"),
		th.MetaValue.Render("» order"),
	}, "   ")
}

func ProgressBar(fraction float64, width int) string {
	if width < 1 {
		width = 1
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func clipClock(p CardParams, th tuitheme.Theme) string {
	if p.Fallback {
		return th.MetaLabel.Render(formatClock(0) + " / --:--")
	}
	return th.MetaLabel.Render(formatClock(p.Position) + " / " + formatClock(p.Length))
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Markers renders the feed position dots, one per dish, active highlighted.
func Markers(markers []bool, th tuitheme.Theme) string {
	if len(markers) == 0 {
		return ""
	}
	parts := make([]string, len(markers))
	for i, active := range markers {
		if active {
			parts[i] = th.MarkerActive.Render("●")
			continue
		}
		parts[i] = th.MarkerInactive.Render("○")
	}
	return strings.Join(parts, " ")
}

func centerLine(line string, width int) string {
	visible := visibleLen(line)
	if width <= 0 || visible >= width {
		return line
	}
	return strings.Repeat(" ", (width-visible)/2) + line
}
