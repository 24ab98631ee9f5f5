package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/forkcast-app/forkcast/internal/catalog"
	"github.com/forkcast-app/forkcast/internal/profile"
)

// Rating is one recorded user rating of a restaurant.
type Rating struct {
	ID           uuid.UUID `json:"id"`
	UserID       string    `json:"user_id"`
	RestaurantID string    `json:"restaurant_id"`
	Value        float64   `json:"value"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// FriendRecommendation records one friend suggesting a restaurant to a user.
type FriendRecommendation struct {
	ID           uuid.UUID `json:"id"`
	UserID       string    `json:"user_id"` // recipient
	FriendID     string    `json:"friend_id"`
	RestaurantID string    `json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type Stats struct {
	TotalProfiles    int     `json:"total_profiles"`
	TotalRestaurants int     `json:"total_restaurants"`
	TotalRatings     int     `json:"total_ratings"`
	TotalFriendLinks int     `json:"total_friend_links"`
	AvgRating        float64 `json:"avg_rating"`
}

type Store interface {
	GetProfile(ctx context.Context, userID string) (*profile.TasteProfile, error)
	PutProfile(ctx context.Context, p *profile.TasteProfile) error

	CreateRestaurant(ctx context.Context, r *catalog.Restaurant) error
	GetRestaurant(ctx context.Context, id string) (*catalog.Restaurant, error)
	ListRestaurants(ctx context.Context, limit int) ([]catalog.Restaurant, error)
	ApplyRestaurantRating(ctx context.Context, restaurantID string, value float64) error

	CreateRating(ctx context.Context, r *Rating) error
	TopRatedRestaurantIDs(ctx context.Context, userID string, minRating float64, limit int) ([]string, error)
	TrendingRestaurantIDs(ctx context.Context, since time.Time, limit int) ([]string, error)

	CreateFriendLink(ctx context.Context, userID, friendID string) error
	AreFriends(ctx context.Context, userID, friendID string) (bool, error)
	CreateFriendRecommendation(ctx context.Context, rec *FriendRecommendation) error
	FriendRecommendedIDs(ctx context.Context, userID string) ([]string, error)

	GetStats(ctx context.Context) (*Stats, error)

	Close() error
}
