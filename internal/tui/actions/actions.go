package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bitemap/bitemap-cli/internal/app"
	"github.com/bitemap/bitemap-cli/internal/dish"
	"github.com/bitemap/bitemap-cli/internal/share"
)

type Service interface {
	LoadFeed(ctx context.Context, limit int) ([]dish.Dish, app.FeedSource, error)
	Search(ctx context.Context, query string, limit int) ([]dish.Dish, error)
	ListSaved(ctx context.Context, limit int) ([]dish.SavedDish, error)
	ListOrders(ctx context.Context, limit int) ([]dish.Order, error)
	RecordLike(ctx context.Context, dishID string, liked bool) error
	RecordBookmark(ctx context.Context, dishID string, bookmarked bool) error
	PlaceOrder(ctx context.Context, d dish.Dish) (dish.Order, error)
}

type FeedLoadedMsg struct {
	Dishes   []dish.Dish
	Source   app.FeedSource
	Duration time.Duration
}

type FeedLoadErrorMsg struct {
	Err      error
	Duration time.Duration
}

type SearchResultsMsg struct {
	Query  string
	Dishes []dish.Dish
}

type SearchErrorMsg struct {
	Err error
}

type SavedLoadedMsg struct {
	Dishes []dish.SavedDish
}

type SavedLoadErrorMsg struct {
	Err error
}

type OrdersLoadedMsg struct {
	Orders []dish.Order
}

type OrdersLoadErrorMsg struct {
	Err error
}

// LikeFailedMsg and BookmarkFailedMsg report the background sync outcome.
// The optimistic flag flip already happened; these only feed the failure log.
type LikeFailedMsg struct {
	DishID string
	Err    error
}

type BookmarkFailedMsg struct {
	DishID string
	Err    error
}

type OrderPlacedMsg struct {
	Order dish.Order
}

type OrderErrorMsg struct {
	DishID string
	Err    error
}

type SharedMsg struct {
	Status string
}

type ShareErrorMsg struct {
	Err error
}

func LoadFeedCmd(service Service, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		start := time.Now()

		dishes, source, err := service.LoadFeed(ctx, limit)
		if err != nil {
			return FeedLoadErrorMsg{Err: err, Duration: time.Since(start)}
		}
		return FeedLoadedMsg{Dishes: dishes, Source: source, Duration: time.Since(start)}
	}
}

func SearchCmd(service Service, query string, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		dishes, err := service.Search(ctx, query, limit)
		if err != nil {
			return SearchErrorMsg{Err: err}
		}
		return SearchResultsMsg{Query: query, Dishes: dishes}
	}
}

func LoadSavedCmd(service Service, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		saved, err := service.ListSaved(ctx, limit)
		if err != nil {
			return SavedLoadErrorMsg{Err: err}
		}
		return SavedLoadedMsg{Dishes: saved}
	}
}

func LoadOrdersCmd(service Service, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		orders, err := service.ListOrders(ctx, limit)
		if err != nil {
			return OrdersLoadErrorMsg{Err: err}
		}
		return OrdersLoadedMsg{Orders: orders}
	}
}

// RecordLikeCmd syncs a like flip in the background, once per flip in either
// direction. It never produces a success message: the UI already shows the
// new state.
func RecordLikeCmd(service Service, dishID string, liked bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := service.RecordLike(ctx, dishID, liked); err != nil {
			return LikeFailedMsg{DishID: dishID, Err: err}
		}
		return nil
	}
}

func RecordBookmarkCmd(service Service, dishID string, bookmarked bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := service.RecordBookmark(ctx, dishID, bookmarked); err != nil {
			return BookmarkFailedMsg{DishID: dishID, Err: err}
		}
		return nil
	}
}

func PlaceOrderCmd(service Service, d dish.Dish) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		order, err := service.PlaceOrder(ctx, d)
		if err != nil {
			return OrderErrorMsg{DishID: d.ID, Err: err}
		}
		return OrderPlacedMsg{Order: order}
	}
}

func ShareCmd(p share.Payload, openFn func(share.Payload) error, copyFn func(share.Payload) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(p); err == nil {
				return SharedMsg{Status: "Shared via system handler"}
			}
		}
		if copyFn != nil {
			if err := copyFn(p); err == nil {
				return SharedMsg{Status: "Share link copied to clipboard"}
			}
		}
		return ShareErrorMsg{Err: fmt.Errorf("could not share or copy link")}
	}
}
