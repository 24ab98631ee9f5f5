package events

import "time"

type ProfileUpdatedEvent struct {
	UserID       string  `json:"user_id"`
	TotalRatings int     `json:"total_ratings"`
	AvgRating    float64 `json:"avg_rating,omitempty"`
}

type RatingRecordedEvent struct {
	UserID       string  `json:"user_id"`
	RestaurantID string  `json:"restaurant_id"`
	Value        float64 `json:"value"`
}

type FriendPickEvent struct {
	UserID       string `json:"user_id"`
	FriendID     string `json:"friend_id"`
	RestaurantID string `json:"restaurant_id"`
}

type RecommendationsServedEvent struct {
	UserID      string `json:"user_id"`
	Count       int    `json:"count"`
	MeetingType string `json:"meeting_type,omitempty"`
	TopMatch    string `json:"top_match,omitempty"`
	Group       bool   `json:"group,omitempty"`
}

type StatsEvent struct {
	Profiles    int       `json:"profiles"`
	Restaurants int       `json:"restaurants"`
	Ratings     int       `json:"ratings"`
	AvgRating   float64   `json:"avg_rating"`
	Timestamp   time.Time `json:"timestamp"`
}
