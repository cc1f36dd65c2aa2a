package models

import (
	"math"
	"math/rand"
)

const DefaultCategory = "other"

// Image is a flat record persisted in images.json. Path is the absolute
// location of the uploaded file on disk; UserID is the owning user's id and
// is never checked against the user store.
type Image struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Filename    string  `json:"filename"`
	UserID      string  `json:"user_id"`
	Path        string  `json:"path"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
	CreatedAt   string  `json:"created_at"`
}

// DefaultPrice returns a randomized listing price between 5.00 and 54.99,
// used when the uploader supplies no parsable price.
func DefaultPrice() float64 {
	return math.Round((5+rand.Float64()*50)*100) / 100
}

// DefaultRating returns a randomized rating between 3.0 and 5.0.
func DefaultRating() float64 {
	return math.Round((3+rand.Float64()*2)*10) / 10
}
