package app

import (
	"context"
	"fmt"
	"time"

	"github.com/bitemap/bitemap-cli/internal/dish"
)

const DefaultFeedLimit = 50

// APIClient is the remote data service surface the app needs.
type APIClient interface {
	ListDishes(ctx context.Context, limit int) ([]dish.Dish, error)
	RecordLike(ctx context.Context, dishID string) error
	DeleteLike(ctx context.Context, dishID string) error
	RecordBookmark(ctx context.Context, dishID string) error
	CreateOrder(ctx context.Context, dishID string) (string, error)
}

// Repository is the local cache surface the app needs.
type Repository interface {
	SaveDishes(ctx context.Context, dishes []dish.Dish) error
	ListDishes(ctx context.Context, limit int) ([]dish.Dish, error)
	SearchDishes(ctx context.Context, query string, limit int) ([]dish.Dish, error)
	SaveBookmark(ctx context.Context, dishID string) error
	DeleteBookmark(ctx context.Context, dishID string) error
	ListSaved(ctx context.Context, limit int) ([]dish.SavedDish, error)
	SaveOrder(ctx context.Context, o dish.Order) error
	ListOrders(ctx context.Context, limit int) ([]dish.Order, error)
}

// FeedSource reports where a loaded feed collection came from.
type FeedSource string

const (
	SourceRemote FeedSource = "remote"
	SourceCache  FeedSource = "cache"
)

type Service struct {
	client APIClient
	repo   Repository
}

func NewService(client APIClient, repo Repository) *Service {
	return &Service{client: client, repo: repo}
}

// LoadFeed fetches the full dish collection from the service and caches it.
// When the service is unreachable it falls back to the cached feed, so the
// app still opens offline.
func (s *Service) LoadFeed(ctx context.Context, limit int) ([]dish.Dish, FeedSource, error) {
	dishes, err := s.client.ListDishes(ctx, limit)
	if err != nil {
		cached, cacheErr := s.repo.ListDishes(ctx, limit)
		if cacheErr != nil || len(cached) == 0 {
			return nil, "", fmt.Errorf("fetch dishes from service: %w", err)
		}
		return cached, SourceCache, nil
	}

	if err := s.repo.SaveDishes(ctx, dishes); err != nil {
		return nil, "", fmt.Errorf("save dishes to cache: %w", err)
	}
	return dishes, SourceRemote, nil
}

// Search runs a query over the cached feed.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]dish.Dish, error) {
	dishes, err := s.repo.SearchDishes(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search cached dishes: %w", err)
	}
	return dishes, nil
}

func (s *Service) ListSaved(ctx context.Context, limit int) ([]dish.SavedDish, error) {
	saved, err := s.repo.ListSaved(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load saved dishes: %w", err)
	}
	return saved, nil
}

func (s *Service) ListOrders(ctx context.Context, limit int) ([]dish.Order, error) {
	orders, err := s.repo.ListOrders(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load order history: %w", err)
	}
	return orders, nil
}

// RecordLike is the persistence target of the optimistic like toggle, fired
// once per flip in either direction. Best-effort: by the time it runs the
// local flag has already flipped.
func (s *Service) RecordLike(ctx context.Context, dishID string, liked bool) error {
	if !liked {
		if err := s.client.DeleteLike(ctx, dishID); err != nil {
			return fmt.Errorf("delete like for %s: %w", dishID, err)
		}
		return nil
	}
	if err := s.client.RecordLike(ctx, dishID); err != nil {
		return fmt.Errorf("record like for %s: %w", dishID, err)
	}
	return nil
}

// RecordBookmark persists a bookmark toggle: on, it records remotely and
// adds the dish to the local saved list; off, it only drops the local entry
// (the service keeps bookmark history append-only).
func (s *Service) RecordBookmark(ctx context.Context, dishID string, bookmarked bool) error {
	if !bookmarked {
		if err := s.repo.DeleteBookmark(ctx, dishID); err != nil {
			return fmt.Errorf("drop saved dish %s: %w", dishID, err)
		}
		return nil
	}
	if err := s.client.RecordBookmark(ctx, dishID); err != nil {
		return fmt.Errorf("record bookmark for %s: %w", dishID, err)
	}
	if err := s.repo.SaveBookmark(ctx, dishID); err != nil {
		return fmt.Errorf("save bookmark for %s: %w", dishID, err)
	}
	return nil
}

// PlaceOrder enqueues an order for the dish and records it in the local
// history with the status the kitchen starts from.
func (s *Service) PlaceOrder(ctx context.Context, d dish.Dish) (dish.Order, error) {
	orderID, err := s.client.CreateOrder(ctx, d.ID)
	if err != nil {
		return dish.Order{}, fmt.Errorf("enqueue order for %s: %w", d.ID, err)
	}
	order := dish.Order{
		ID:        orderID,
		DishID:    d.ID,
		DishName:  d.Name,
		Total:     d.Price,
		Status:    "preparing",
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.SaveOrder(ctx, order); err != nil {
		return dish.Order{}, fmt.Errorf("save order %s: %w", order.ID, err)
	}
	return order, nil
}
