package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/forkcast-app/forkcast/internal/catalog"
	"github.com/forkcast-app/forkcast/internal/events"
	"github.com/forkcast-app/forkcast/internal/profile"
	"github.com/forkcast-app/forkcast/internal/store"
)

type RestaurantsHandler struct {
	store    store.Store
	resolver *profile.Resolver
	events   events.Client
}

func NewRestaurantsHandler(s store.Store, r *profile.Resolver, ev events.Client) *RestaurantsHandler {
	return &RestaurantsHandler{store: s, resolver: r, events: ev}
}

func (h *RestaurantsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rec catalog.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := rec.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	restaurant := rec.Restaurant()
	if err := h.store.CreateRestaurant(r.Context(), &restaurant); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, restaurant)
}

func (h *RestaurantsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	restaurants, err := h.store.ListRestaurants(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if restaurants == nil {
		restaurants = []catalog.Restaurant{}
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *RestaurantsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	restaurant, err := h.store.GetRestaurant(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if restaurant == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "restaurant not found"})
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

type RateRequest struct {
	Value   float64 `json:"value"`
	Comment string  `json:"comment,omitempty"`
}

// Rate records a rating, updates the restaurant's aggregate, and folds the
// rating into the rater's profile learning data.
func (h *RestaurantsHandler) Rate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID := r.Header.Get("X-User-ID")

	var req RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Value < 0 || req.Value > 5 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "value must be between 0 and 5"})
		return
	}

	restaurant, err := h.store.GetRestaurant(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if restaurant == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "restaurant not found"})
		return
	}

	rating := &store.Rating{
		UserID:       userID,
		RestaurantID: id,
		Value:        req.Value,
		Comment:      req.Comment,
	}
	if err := h.store.CreateRating(r.Context(), rating); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if err := h.store.ApplyRestaurantRating(r.Context(), id, req.Value); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	p := h.resolver.Resolve(r.Context(), userID)
	p.ApplyRating(req.Value, time.Now())
	if err := h.store.PutProfile(r.Context(), &p); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectRatingRecorded(id), events.RatingRecordedEvent{
			UserID:       userID,
			RestaurantID: id,
			Value:        req.Value,
		})
		_ = h.events.Publish(events.SubjectProfileUpdated(userID), events.ProfileUpdatedEvent{
			UserID:       userID,
			TotalRatings: p.Learning.TotalRatings,
			AvgRating:    p.Learning.AverageRating,
		})
	}

	writeJSON(w, http.StatusCreated, rating)
}

type RecommendToFriendRequest struct {
	FriendID string `json:"friend_id"`
}

// Recommend lets the caller suggest a restaurant to one of their friends.
func (h *RestaurantsHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID := r.Header.Get("X-User-ID")

	var req RecommendToFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.FriendID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "friend_id required"})
		return
	}

	ok, err := h.store.AreFriends(r.Context(), userID, req.FriendID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !ok {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "not friends"})
		return
	}

	restaurant, err := h.store.GetRestaurant(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if restaurant == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "restaurant not found"})
		return
	}

	rec := &store.FriendRecommendation{
		UserID:       req.FriendID,
		FriendID:     userID,
		RestaurantID: id,
	}
	if err := h.store.CreateFriendRecommendation(r.Context(), rec); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectFriendPick(id), events.FriendPickEvent{
			UserID:       req.FriendID,
			FriendID:     userID,
			RestaurantID: id,
		})
	}

	writeJSON(w, http.StatusCreated, rec)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
