package view

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bitemap/bitemap-cli/internal/dish"
	"github.com/bitemap/bitemap-cli/internal/feed"
	tuitheme "github.com/bitemap/bitemap-cli/internal/tui/theme"
)

func TestRenderDishLine(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	th := tuitheme.Default()

	got := stripANSI(RenderDishLine(DishLineParams{
		Dish:   dish.Dish{Name: "Spicy Korean Tacos", RestaurantName: "Seoul Street", Price: 9.75},
		Active: true,
		Width:  60,
	}, th))

	if !strings.HasPrefix(got, "> ") {
		t.Fatalf("expected cursor prefix, got %q", got)
	}
	for _, want := range []string{"Spicy Korean Tacos | Seoul Street", "$9.75"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in line, got %q", want, got)
		}
	}
}

func TestRenderDishLineTruncates(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	th := tuitheme.Default()

	got := stripANSI(RenderDishLine(DishLineParams{
		Dish:  dish.Dish{Name: strings.Repeat("x", 80), Price: 5},
		Width: 30,
	}, th))

	if !strings.Contains(got, "...") {
		t.Fatalf("expected truncated label, got %q", got)
	}
	if visibleLen(got) > 30 {
		t.Fatalf("line overflows width: %d", visibleLen(got))
	}
}

func TestRenderDishLineStyledByFlags(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	th := tuitheme.Default()
	th.DishLiked = th.DishLiked.Transform(strings.ToUpper)
	th.DishBookmarked = th.DishBookmarked.Transform(func(s string) string { return "*" + s })

	plain := stripANSI(RenderDishLine(DishLineParams{Dish: dish.Dish{Name: "ramen"}, Width: 40}, th))
	if !strings.Contains(plain, "ramen") {
		t.Fatalf("expected plain name, got %q", plain)
	}

	liked := stripANSI(RenderDishLine(DishLineParams{Dish: dish.Dish{Name: "ramen"}, Flags: feed.Flags{Liked: true}, Width: 40}, th))
	if !strings.Contains(liked, "RAMEN") {
		t.Fatalf("liked dish should go through the liked style, got %q", liked)
	}

	bookmarked := stripANSI(RenderDishLine(DishLineParams{Dish: dish.Dish{Name: "ramen"}, Flags: feed.Flags{Bookmarked: true}, Width: 40}, th))
	if !strings.Contains(bookmarked, "*ramen") {
		t.Fatalf("bookmarked dish should go through the bookmarked style, got %q", bookmarked)
	}
}

func TestRenderOrderLine(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	th := tuitheme.Default()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	got := stripANSI(RenderOrderLine(dish.Order{
		DishName:  "Tonkotsu Ramen",
		Total:     14.00,
		Status:    "preparing",
		CreatedAt: now.Add(-2 * time.Hour),
	}, now, 70, false, th))

	for _, want := range []string{"Tonkotsu Ramen | $14.00 | preparing", "2 hours ago"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in order line, got %q", want, got)
		}
	}
}

func TestRelativeTimeLabel(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		then time.Time
		want string
	}{
		{time.Time{}, "unknown"},
		{now.Add(time.Hour), "just now"},
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-time.Minute), "1 minute ago"},
		{now.Add(-45 * time.Minute), "45 minutes ago"},
		{now.Add(-time.Hour), "1 hour ago"},
		{now.Add(-26 * time.Hour), "1 day ago"},
		{now.Add(-72 * time.Hour), "3 days ago"},
	}
	for _, tc := range cases {
		if got := RelativeTimeLabel(now, tc.then); got != tc.want {
			t.Errorf("RelativeTimeLabel(%v) = %q, want %q", tc.then, got, tc.want)
		}
	}
}
