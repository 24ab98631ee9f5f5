package profile

import (
	"context"
	"log/slog"
)

// Store is the slice of the persistence layer the resolver needs.
type Store interface {
	GetProfile(ctx context.Context, userID string) (*TasteProfile, error)
	PutProfile(ctx context.Context, p *TasteProfile) error
}

// Resolver supplies a taste profile for a user, falling back to the
// canonical default when none is stored.
type Resolver struct {
	store  Store
	logger *slog.Logger
}

func NewResolver(store Store, logger *slog.Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

// Resolve never fails: store errors and missing profiles both yield the
// default profile. The first resolution for a new user persists the default
// best-effort so subsequent reads are stable.
func (r *Resolver) Resolve(ctx context.Context, userID string) TasteProfile {
	stored, err := r.store.GetProfile(ctx, userID)
	if err != nil {
		r.logger.Warn("profile lookup failed, using default", "user_id", userID, "error", err)
		return DefaultProfile(userID)
	}
	if stored == nil {
		def := DefaultProfile(userID)
		if err := r.store.PutProfile(ctx, &def); err != nil {
			r.logger.Warn("failed to persist default profile", "user_id", userID, "error", err)
		}
		return def
	}
	return *stored
}
