package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forkcast-app/forkcast/internal/catalog"
	"github.com/forkcast-app/forkcast/internal/events"
	"github.com/forkcast-app/forkcast/internal/profile"
	"github.com/forkcast-app/forkcast/internal/store"
)

type ProfilesHandler struct {
	store    store.Store
	resolver *profile.Resolver
	events   events.Client
}

func NewProfilesHandler(s store.Store, r *profile.Resolver, ev events.Client) *ProfilesHandler {
	return &ProfilesHandler{store: s, resolver: r, events: ev}
}

// Get resolves a profile, falling back to (and persisting) the default when
// the user has none yet. It never 404s: every user has a profile.
func (h *ProfilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	p := h.resolver.Resolve(r.Context(), userID)
	writeJSON(w, http.StatusOK, p)
}

type PutProfileRequest struct {
	Preferences  profile.Preferences `json:"preferences"`
	CuisineTypes []string            `json:"cuisine_types"`
	PriceRange   catalog.PriceRange  `json:"price_range"`
}

func (h *ProfilesHandler) Put(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	var req PutProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	// Wholesale edit keeps the learning data the user has already accrued.
	p := h.resolver.Resolve(r.Context(), userID)
	p.Preferences = req.Preferences.Clamped()
	p.CuisineTypes = req.CuisineTypes
	if p.CuisineTypes == nil {
		p.CuisineTypes = []string{}
	}
	if req.PriceRange != (catalog.PriceRange{}) {
		p.PriceRange = req.PriceRange
	}

	if err := p.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.store.PutProfile(r.Context(), &p); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectProfileUpdated(userID), events.ProfileUpdatedEvent{
			UserID:       userID,
			TotalRatings: p.Learning.TotalRatings,
			AvgRating:    p.Learning.AverageRating,
		})
	}

	writeJSON(w, http.StatusOK, p)
}

type AddFriendRequest struct {
	FriendID string `json:"friend_id"`
}

func (h *ProfilesHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")

	var req AddFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.FriendID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "friend_id required"})
		return
	}
	if req.FriendID == userID {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cannot befriend yourself"})
		return
	}

	if err := h.store.CreateFriendLink(r.Context(), userID, req.FriendID); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}
