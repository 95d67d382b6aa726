package user

import (
	"time"

	"github.com/aboodsamad/TravelMateV0/internal/place"
)

type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// LikedPlace is a favorite association joined with its place record.
type LikedPlace struct {
	place.Place
	UserRating *int      `json:"user_rating"`
	LikedAt    time.Time `json:"liked_at"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LikeRequest struct {
	PlaceID int64 `json:"place_id"`
	Rating  *int  `json:"rating,omitempty"`
}
