package view

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bitemap/bitemap-cli/internal/dish"
	"github.com/bitemap/bitemap-cli/internal/feed"
	tuitheme "github.com/bitemap/bitemap-cli/internal/tui/theme"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type DishLineParams struct {
	Dish   dish.Dish
	Flags  feed.Flags
	Active bool
	Width  int
}

// RenderDishLine draws one row of the search and saved lists: cursor,
// dish name, restaurant, price right-aligned.
func RenderDishLine(p DishLineParams, th tuitheme.Theme) string {
	cursor := "  "
	if p.Active {
		cursor = "> "
	}
	price := th.Price.Render(fmt.Sprintf("$%.2f", p.Dish.Price))

	label := strings.TrimSpace(p.Dish.Name)
	if label == "" {
		label = "(unnamed dish)"
	}
	if restaurant := strings.TrimSpace(p.Dish.RestaurantName); restaurant != "" {
		label += " | " + restaurant
	}

	available := p.Width - visibleLen(cursor) - 1 - visibleLen(price)
	if available < 1 {
		available = 1
	}
	label = truncateRunes(label, available)
	styled := th.StyleDishName(p.Flags, label)

	gap := p.Width - visibleLen(cursor) - visibleLen(label) - visibleLen(price)
	if gap < 1 {
		gap = 1
	}
	return cursor + styled + strings.Repeat(" ", gap) + price
}

// RenderOrderLine draws one row of the order history.
func RenderOrderLine(o dish.Order, now time.Time, width int, active bool, th tuitheme.Theme) string {
	cursor := "  "
	if active {
		cursor = "> "
	}
	when := th.MetaLabel.Render(RelativeTimeLabel(now, o.CreatedAt))

	label := strings.TrimSpace(o.DishName)
	if label == "" {
		label = "(unknown dish)"
	}
	label += " | " + fmt.Sprintf("$%.2f", o.Total) + " | " + o.Status

	available := width - visibleLen(cursor) - 1 - visibleLen(when)
	if available < 1 {
		available = 1
	}
	label = truncateRunes(label, available)

	gap := width - visibleLen(cursor) - visibleLen(label) - visibleLen(when)
	if gap < 1 {
		gap = 1
	}
	return cursor + th.MetaValue.Render(label) + strings.Repeat(" ", gap) + when
}

func RelativeTimeLabel(now, then time.Time) string {
	if now.IsZero() {
		now = time.Now()
	}
	if then.IsZero() {
		return "unknown"
	}
	if then.After(now) {
		return "just now"
	}
	d := now.Sub(then)
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		n := int(d / time.Minute)
		if n == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", n)
	}
	if d < 24*time.Hour {
		n := int(d / time.Hour)
		if n == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", n)
	}
	n := int(d / (24 * time.Hour))
	if n == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", n)
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
