package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bitemap/bitemap-cli/internal/dish"
)

// Repository is the local sqlite cache: the last fetched feed (for offline
// fallback and search), the saved-dish list and the order history.
type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS dishes (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price REAL NOT NULL,
  restaurant_name TEXT,
  restaurant_address TEXT,
  distance REAL,
  rating REAL,
  video_url TEXT,
  image_url TEXT,
  video_seconds INTEGER,
  tags TEXT,
  description TEXT,
  position INTEGER NOT NULL,
  fetched_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS bookmarks (
  dish_id TEXT PRIMARY KEY,
  saved_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  dish_id TEXT NOT NULL,
  dish_name TEXT,
  total REAL,
  status TEXT NOT NULL,
  created_at TEXT NOT NULL
);
`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (r *Repository) CheckWritable(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS write_probe (id INTEGER)`); err != nil {
		return fmt.Errorf("write probe: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DROP TABLE write_probe`); err != nil {
		return fmt.Errorf("write probe cleanup: %w", err)
	}
	return nil
}

// SaveDishes replaces the cached feed with the given sequence, keeping the
// service's ordering via the position column.
func (r *Repository) SaveDishes(ctx context.Context, dishes []dish.Dish) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM dishes`); err != nil {
		return fmt.Errorf("clear dish cache: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO dishes (id, name, price, restaurant_name, restaurant_address, distance, rating,
  video_url, image_url, video_seconds, tags, description, position, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return fmt.Errorf("prepare save statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for pos, d := range dishes {
		tags, err := json.Marshal(d.Tags)
		if err != nil {
			return fmt.Errorf("encode tags for dish %s: %w", d.ID, err)
		}
		_, err = stmt.ExecContext(
			ctx,
			d.ID,
			d.Name,
			d.Price,
			d.RestaurantName,
			d.RestaurantAddress,
			d.Distance,
			d.Rating,
			d.VideoURL,
			d.ImageURL,
			d.VideoSeconds,
			string(tags),
			d.Description,
			pos,
			now,
		)
		if err != nil {
			return fmt.Errorf("save dish %s: %w", d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ListDishes returns the cached feed in the order the service delivered it.
func (r *Repository) ListDishes(ctx context.Context, limit int) ([]dish.Dish, error) {
	if limit < 1 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, dishColumns+`
FROM dishes
ORDER BY position ASC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query dishes: %w", err)
	}
	defer rows.Close()
	return scanDishes(rows, limit)
}

// SearchDishes matches the query against name, restaurant, tags and
// description with LIKE semantics, keeping feed order among matches.
func (r *Repository) SearchDishes(ctx context.Context, query string, limit int) ([]dish.Dish, error) {
	if limit < 1 {
		limit = 50
	}
	pattern := "%" + query + "%"
	rows, err := r.db.QueryContext(ctx, dishColumns+`
FROM dishes
WHERE name LIKE ? COLLATE NOCASE
   OR restaurant_name LIKE ? COLLATE NOCASE
   OR tags LIKE ? COLLATE NOCASE
   OR description LIKE ? COLLATE NOCASE
ORDER BY position ASC
LIMIT ?
`, pattern, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search dishes: %w", err)
	}
	defer rows.Close()
	return scanDishes(rows, limit)
}

// SaveBookmark records the dish on the saved list. Saving again keeps the
// original insertion time.
func (r *Repository) SaveBookmark(ctx context.Context, dishID string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := r.db.ExecContext(ctx, `
INSERT INTO bookmarks (dish_id, saved_at) VALUES (?, ?)
ON CONFLICT(dish_id) DO NOTHING
`, dishID, now)
	if err != nil {
		return fmt.Errorf("save bookmark %s: %w", dishID, err)
	}
	return nil
}

func (r *Repository) DeleteBookmark(ctx context.Context, dishID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE dish_id = ?`, dishID); err != nil {
		return fmt.Errorf("delete bookmark %s: %w", dishID, err)
	}
	return nil
}

// ListSaved returns bookmarked dishes in insertion order.
func (r *Repository) ListSaved(ctx context.Context, limit int) ([]dish.SavedDish, error) {
	if limit < 1 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, dishColumns+`, b.saved_at
FROM bookmarks b
JOIN dishes ON dishes.id = b.dish_id
ORDER BY b.saved_at ASC, b.rowid ASC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query saved dishes: %w", err)
	}
	defer rows.Close()

	saved := make([]dish.SavedDish, 0, limit)
	for rows.Next() {
		var (
			d       dish.Dish
			tags    string
			savedAt string
		)
		if err := scanDishColumns(rows, &d, &tags, &savedAt); err != nil {
			return nil, err
		}
		if err := decodeTags(&d, tags); err != nil {
			return nil, err
		}
		at, err := time.Parse(time.RFC3339Nano, savedAt)
		if err != nil {
			return nil, fmt.Errorf("parse saved_at %q: %w", savedAt, err)
		}
		saved = append(saved, dish.SavedDish{Dish: d, SavedAt: at})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return saved, nil
}

func (r *Repository) SaveOrder(ctx context.Context, o dish.Order) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO orders (id, dish_id, dish_name, total, status, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET status=excluded.status
`, o.ID, o.DishID, o.DishName, o.Total, o.Status, o.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save order %s: %w", o.ID, err)
	}
	return nil
}

// ListOrders returns the order history, newest first.
func (r *Repository) ListOrders(ctx context.Context, limit int) ([]dish.Order, error) {
	if limit < 1 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, dish_id, dish_name, total, status, created_at
FROM orders
ORDER BY created_at DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]dish.Order, 0, limit)
	for rows.Next() {
		var (
			o         dish.Order
			createdAt string
		)
		if err := rows.Scan(&o.ID, &o.DishID, &o.DishName, &o.Total, &o.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse order created_at %q: %w", createdAt, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return orders, nil
}

const dishColumns = `
SELECT dishes.id, dishes.name, dishes.price, dishes.restaurant_name, dishes.restaurant_address,
  dishes.distance, dishes.rating, dishes.video_url, dishes.image_url, dishes.video_seconds,
  dishes.tags, dishes.description`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDishColumns(rows rowScanner, d *dish.Dish, tags *string, extra ...*string) error {
	dest := []any{
		&d.ID,
		&d.Name,
		&d.Price,
		&d.RestaurantName,
		&d.RestaurantAddress,
		&d.Distance,
		&d.Rating,
		&d.VideoURL,
		&d.ImageURL,
		&d.VideoSeconds,
		tags,
		&d.Description,
	}
	for _, e := range extra {
		dest = append(dest, e)
	}
	if err := rows.Scan(dest...); err != nil {
		return fmt.Errorf("scan dish: %w", err)
	}
	return nil
}

func scanDishes(rows *sql.Rows, limit int) ([]dish.Dish, error) {
	dishes := make([]dish.Dish, 0, limit)
	for rows.Next() {
		var (
			d    dish.Dish
			tags string
		)
		if err := scanDishColumns(rows, &d, &tags); err != nil {
			return nil, err
		}
		if err := decodeTags(&d, tags); err != nil {
			return nil, err
		}
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return dishes, nil
}

func decodeTags(d *dish.Dish, raw string) error {
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), &d.Tags); err != nil {
		return fmt.Errorf("decode tags for dish %s: %w", d.ID, err)
	}
	return nil
}
