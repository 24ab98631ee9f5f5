package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/forkcast-app/forkcast/internal/catalog"
	"github.com/forkcast-app/forkcast/internal/events"
	"github.com/forkcast-app/forkcast/internal/geocode"
	"github.com/forkcast-app/forkcast/internal/profile"
	"github.com/forkcast-app/forkcast/internal/recommend"
	"github.com/forkcast-app/forkcast/internal/social"
	"github.com/forkcast-app/forkcast/internal/store"
	"github.com/forkcast-app/forkcast/internal/trending"
)

type RecommendationsHandler struct {
	store        store.Store
	resolver     *profile.Resolver
	scorer       *recommend.Scorer
	signals      *social.Source
	geocoder     geocode.Client
	events       events.Client
	trending     *trending.Tracker
	catalogLimit int
	logger       *slog.Logger
}

func NewRecommendationsHandler(deps RouterDeps) *RecommendationsHandler {
	return &RecommendationsHandler{
		store:        deps.Store,
		resolver:     deps.Resolver,
		scorer:       deps.Scorer,
		signals:      deps.Signals,
		geocoder:     deps.Geocoder,
		events:       deps.Events,
		trending:     deps.Trending,
		catalogLimit: deps.CatalogLimit,
		logger:       deps.Logger,
	}
}

// Personal serves ranked recommendations for the calling user.
//
// Query parameters: meeting_type, limit, and either lat+lng or near=<query>
// (resolved through the geocoder). All are optional; a failed or missing
// location simply disables the proximity rules.
func (h *RecommendationsHandler) Personal(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	q := r.URL.Query()

	meetingType := catalog.MeetingType(q.Get("meeting_type"))
	if meetingType != "" && !meetingType.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown meeting_type"})
		return
	}

	limit := 0
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}

	location := h.resolveLocation(r)

	p := h.resolver.Resolve(r.Context(), userID)
	sig := h.signals.Collect(r.Context(), userID)

	restaurants, err := h.store.ListRestaurants(r.Context(), h.catalogLimit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	opts := recommend.Options{
		FavoriteIDs:          sig.FavoriteIDs,
		FriendRecommendedIDs: sig.FriendRecommendedIDs,
		MeetingType:          meetingType,
		UserLocation:         location,
		Limit:                limit,
	}
	if h.trending != nil {
		opts.TrendingIDs = h.trending.IDs()
	}

	recs, err := h.scorer.Score(p, restaurants, opts)
	if err != nil {
		writeJSON(w, statusForScoringError(err), map[string]string{"error": err.Error()})
		return
	}

	h.publishServed(userID, meetingType, recs, false)
	writeJSON(w, http.StatusOK, recs)
}

type GroupRequest struct {
	UserIDs     []string `json:"user_ids"`
	MeetingType string   `json:"meeting_type,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
}

// Group serves recommendations for a set of participants. The first user
// in the list anchors the personal signals; the rest contribute through
// the merged group profile.
func (h *RecommendationsHandler) Group(w http.ResponseWriter, r *http.Request) {
	var req GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	meetingType := catalog.MeetingType(req.MeetingType)
	if meetingType != "" && !meetingType.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown meeting_type"})
		return
	}

	profiles := make([]profile.TasteProfile, 0, len(req.UserIDs))
	for _, id := range req.UserIDs {
		profiles = append(profiles, h.resolver.Resolve(r.Context(), id))
	}

	restaurants, err := h.store.ListRestaurants(r.Context(), h.catalogLimit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	opts := recommend.Options{MeetingType: meetingType}
	if req.Lat != nil && req.Lng != nil {
		opts.UserLocation = &catalog.Coordinates{Lat: *req.Lat, Lng: *req.Lng}
	}
	if len(req.UserIDs) > 0 {
		sig := h.signals.Collect(r.Context(), req.UserIDs[0])
		opts.FavoriteIDs = sig.FavoriteIDs
		opts.FriendRecommendedIDs = sig.FriendRecommendedIDs
	}
	if h.trending != nil {
		opts.TrendingIDs = h.trending.IDs()
	}

	recs, err := h.scorer.AggregateGroup(profiles, restaurants, opts)
	if err != nil {
		writeJSON(w, statusForScoringError(err), map[string]string{"error": err.Error()})
		return
	}

	caller := r.Header.Get("X-User-ID")
	h.publishServed(caller, meetingType, recs, true)
	writeJSON(w, http.StatusOK, recs)
}

// FriendPicks lists the restaurants friends have recommended to the caller,
// shuffled when the signal source carries a random source.
func (h *RecommendationsHandler) FriendPicks(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	ids, err := h.signals.FriendCandidates(r.Context(), userID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	picks := make([]catalog.Restaurant, 0, len(ids))
	for _, id := range ids {
		restaurant, err := h.store.GetRestaurant(r.Context(), id)
		if err != nil || restaurant == nil {
			continue
		}
		picks = append(picks, *restaurant)
	}
	writeJSON(w, http.StatusOK, picks)
}

// resolveLocation prefers explicit lat/lng; otherwise it tries the geocoder
// on the near query. Any failure degrades to nil rather than an error.
func (h *RecommendationsHandler) resolveLocation(r *http.Request) *catalog.Coordinates {
	q := r.URL.Query()

	latStr, lngStr := q.Get("lat"), q.Get("lng")
	if latStr != "" && lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat == nil && errLng == nil {
			return &catalog.Coordinates{Lat: lat, Lng: lng}
		}
		return nil
	}

	near := q.Get("near")
	if near == "" || h.geocoder == nil {
		return nil
	}
	loc, err := h.geocoder.Resolve(r.Context(), near)
	if err != nil {
		h.logger.Warn("geocode failed, proceeding without location", "query", near, "error", err)
		return nil
	}
	return loc
}

func (h *RecommendationsHandler) publishServed(userID string, meetingType catalog.MeetingType, recs []recommend.Recommendation, group bool) {
	if h.events == nil {
		return
	}
	ev := events.RecommendationsServedEvent{
		UserID:      userID,
		Count:       len(recs),
		MeetingType: string(meetingType),
		Group:       group,
	}
	if len(recs) > 0 {
		ev.TopMatch = recs[0].Restaurant.ID
	}
	subject := events.SubjectRecommendationsServed(userID)
	if group {
		subject = events.SubjectGroupRecommendationsServed()
	}
	_ = h.events.Publish(subject, ev)
}

func statusForScoringError(err error) int {
	switch {
	case errors.Is(err, recommend.ErrInvalidLimit),
		errors.Is(err, recommend.ErrInvalidPreferences),
		errors.Is(err, recommend.ErrInvalidLocation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
