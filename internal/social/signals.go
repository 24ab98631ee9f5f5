package social

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/forkcast-app/forkcast/internal/store"
)

// Favorite thresholds: a restaurant the user rated at least FavoriteMinRating
// counts as a favorite, capped at the FavoriteLimit most recent.
const (
	FavoriteMinRating = 4.0
	FavoriteLimit     = 10
)

// Signals are the personal id sets fed into the scorer.
type Signals struct {
	FavoriteIDs          map[string]bool
	FriendRecommendedIDs map[string]bool
}

// Source gathers favorite and friend-recommendation signals from the store.
// The rng, when non-nil, shuffles friend candidate lists; inject a seeded
// source in tests for determinism, or nil to disable shuffling.
type Source struct {
	store  store.Store
	rng    *rand.Rand
	logger *slog.Logger
}

func NewSource(s store.Store, rng *rand.Rand, logger *slog.Logger) *Source {
	return &Source{store: s, rng: rng, logger: logger}
}

// Collect fetches both signal sets for a user. Best-effort: a failed lookup
// is logged and yields an empty set, since scoring treats a missing signal
// as simply absent.
func (s *Source) Collect(ctx context.Context, userID string) Signals {
	sig := Signals{
		FavoriteIDs:          map[string]bool{},
		FriendRecommendedIDs: map[string]bool{},
	}

	favorites, err := s.store.TopRatedRestaurantIDs(ctx, userID, FavoriteMinRating, FavoriteLimit)
	if err != nil {
		s.logger.Warn("favorite lookup failed", "user_id", userID, "error", err)
	}
	for _, id := range favorites {
		sig.FavoriteIDs[id] = true
	}

	friendPicks, err := s.store.FriendRecommendedIDs(ctx, userID)
	if err != nil {
		s.logger.Warn("friend recommendation lookup failed", "user_id", userID, "error", err)
	}
	for _, id := range friendPicks {
		sig.FriendRecommendedIDs[id] = true
	}

	return sig
}

// FriendCandidates returns the restaurants friends have recommended to a
// user as an ordered list, shuffled when a random source is configured,
// truncated to limit.
func (s *Source) FriendCandidates(ctx context.Context, userID string, limit int) ([]string, error) {
	ids, err := s.store.FriendRecommendedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.rng != nil {
		s.rng.Shuffle(len(ids), func(i, j int) {
			ids[i], ids[j] = ids[j], ids[i]
		})
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}
