package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bitemap/bitemap-cli/internal/dish"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "bitemap.db")
	repo, err := NewRepository(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	require.NoError(t, repo.Init(context.Background()))
	require.NoError(t, repo.CheckWritable(context.Background()))
	return repo
}

func sampleDishes() []dish.Dish {
	return []dish.Dish{
		{
			ID:                "d1",
			Name:              "Truffle Mac & Cheese",
			Price:             24.99,
			RestaurantName:    "Bistro Downtown",
			RestaurantAddress: "123 Main St, Downtown",
			Distance:          0.8,
			Rating:            4.8,
			VideoURL:          "https://cdn.example.com/d1.mp4",
			ImageURL:          "https://cdn.example.com/d1.jpg",
			VideoSeconds:      12,
			Tags:              []string{"Cheesy", "Comfort Food", "Truffle"},
			Description:       "Creamy mac and cheese elevated with black truffle shavings",
		},
		{
			ID:             "d2",
			Name:           "Spicy Korean Tacos",
			Price:          16.50,
			RestaurantName: "Seoul Kitchen",
			Distance:       1.2,
			Rating:         4.6,
			VideoURL:       "https://cdn.example.com/d2.mp4",
			Tags:           []string{"Spicy", "Korean", "Fusion"},
			Description:    "Korean-style beef tacos with kimchi",
		},
	}
}

func TestRepository_SaveAndListDishesKeepsFeedOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveDishes(ctx, sampleDishes()))

	dishes, err := repo.ListDishes(ctx, 10)
	require.NoError(t, err)
	require.Len(t, dishes, 2)
	require.Equal(t, "d1", dishes[0].ID)
	require.Equal(t, "d2", dishes[1].ID)
	require.Equal(t, []string{"Cheesy", "Comfort Food", "Truffle"}, dishes[0].Tags)
	require.Equal(t, 24.99, dishes[0].Price)
}

func TestRepository_SaveDishesReplacesCache(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveDishes(ctx, sampleDishes()))
	require.NoError(t, repo.SaveDishes(ctx, []dish.Dish{{ID: "d3", Name: "Ramen", Price: 14}}))

	dishes, err := repo.ListDishes(ctx, 10)
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	require.Equal(t, "d3", dishes[0].ID)
}

func TestRepository_SearchDishes(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SaveDishes(ctx, sampleDishes()))

	byTag, err := repo.SearchDishes(ctx, "korean", 10)
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	require.Equal(t, "d2", byTag[0].ID)

	byRestaurant, err := repo.SearchDishes(ctx, "bistro", 10)
	require.NoError(t, err)
	require.Len(t, byRestaurant, 1)
	require.Equal(t, "d1", byRestaurant[0].ID)

	none, err := repo.SearchDishes(ctx, "sushi", 10)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestRepository_BookmarksInsertionOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SaveDishes(ctx, sampleDishes()))

	require.NoError(t, repo.SaveBookmark(ctx, "d2"))
	require.NoError(t, repo.SaveBookmark(ctx, "d1"))
	// Saving again must not move d2 to the end.
	require.NoError(t, repo.SaveBookmark(ctx, "d2"))

	saved, err := repo.ListSaved(ctx, 10)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	require.Equal(t, "d2", saved[0].Dish.ID)
	require.Equal(t, "d1", saved[1].Dish.ID)
	require.False(t, saved[0].SavedAt.IsZero())
}

func TestRepository_DeleteBookmark(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SaveDishes(ctx, sampleDishes()))
	require.NoError(t, repo.SaveBookmark(ctx, "d1"))

	require.NoError(t, repo.DeleteBookmark(ctx, "d1"))

	saved, err := repo.ListSaved(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, saved)
}

func TestRepository_OrdersNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	older := dish.Order{
		ID:        "o1",
		DishID:    "d1",
		DishName:  "Truffle Mac & Cheese",
		Total:     24.99,
		Status:    "delivered",
		CreatedAt: time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC),
	}
	newer := dish.Order{
		ID:        "o2",
		DishID:    "d2",
		DishName:  "Spicy Korean Tacos",
		Total:     16.50,
		Status:    "preparing",
		CreatedAt: time.Date(2026, 8, 2, 19, 45, 0, 0, time.UTC),
	}
	require.NoError(t, repo.SaveOrder(ctx, older))
	require.NoError(t, repo.SaveOrder(ctx, newer))

	orders, err := repo.ListOrders(ctx, 10)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, "o2", orders[0].ID)
	require.Equal(t, "o1", orders[1].ID)

	// Re-saving an order updates its status in place.
	newer.Status = "delivered"
	require.NoError(t, repo.SaveOrder(ctx, newer))
	orders, err = repo.ListOrders(ctx, 10)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, "delivered", orders[0].Status)
}
