package dish

import "time"

const defaultClipSeconds = 15

// Dish is one feed entry: a short dish clip plus the metadata shown over it.
type Dish struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Price             float64  `json:"price"`
	RestaurantName    string   `json:"restaurant_name"`
	RestaurantAddress string   `json:"restaurant_address"`
	Distance          float64  `json:"distance"`
	Rating            float64  `json:"rating"`
	VideoURL          string   `json:"video_url"`
	ImageURL          string   `json:"image_url"`
	VideoSeconds      int      `json:"video_seconds"`
	Tags              []string `json:"tags"`
	Description       string   `json:"description"`
}

// ClipLength is the loop period for the dish clip. Rows without a recorded
// length fall back to a nominal period so playback still loops.
func (d Dish) ClipLength() time.Duration {
	if d.VideoSeconds <= 0 {
		return defaultClipSeconds * time.Second
	}
	return time.Duration(d.VideoSeconds) * time.Second
}

// Order is one entry in the order history.
type Order struct {
	ID        string    `json:"id"`
	DishID    string    `json:"dish_id"`
	DishName  string    `json:"dish_name"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// SavedDish is a bookmarked dish together with when it was saved.
type SavedDish struct {
	Dish    Dish
	SavedAt time.Time
}
