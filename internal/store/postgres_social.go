package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// --- Ratings ---

func (s *PostgresStore) CreateRating(ctx context.Context, r *Rating) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO ratings (user_id, restaurant_id, value, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		r.UserID, r.RestaurantID, r.Value, r.Comment,
	).Scan(&r.ID, &r.CreatedAt)
}

func (s *PostgresStore) TopRatedRestaurantIDs(ctx context.Context, userID string, minRating float64, limit int) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT restaurant_id
		FROM ratings
		WHERE user_id = $1 AND value >= $2
		GROUP BY restaurant_id
		ORDER BY MAX(value) DESC, MAX(created_at) DESC
		LIMIT $3`, userID, minRating, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (s *PostgresStore) TrendingRestaurantIDs(ctx context.Context, since time.Time, limit int) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT restaurant_id
		FROM ratings
		WHERE created_at >= $1
		GROUP BY restaurant_id
		ORDER BY COUNT(*) DESC, MAX(created_at) DESC
		LIMIT $2`, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

// --- Friends ---

func (s *PostgresStore) CreateFriendLink(ctx context.Context, userID, friendID string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO friend_links (user_id, friend_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, friend_id) DO NOTHING`,
		userID, friendID,
	)
	return err
}

func (s *PostgresStore) AreFriends(ctx context.Context, userID, friendID string) (bool, error) {
	var linked bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM friend_links
			WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
		)`, userID, friendID,
	).Scan(&linked)
	return linked, err
}

func (s *PostgresStore) CreateFriendRecommendation(ctx context.Context, rec *FriendRecommendation) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO friend_recommendations (user_id, friend_id, restaurant_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		rec.UserID, rec.FriendID, rec.RestaurantID,
	).Scan(&rec.ID, &rec.CreatedAt)
}

func (s *PostgresStore) FriendRecommendedIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT restaurant_id
		FROM friend_recommendations
		WHERE user_id = $1
		GROUP BY restaurant_id
		ORDER BY MAX(created_at) DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

// --- Stats ---

func (s *PostgresStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM taste_profiles),
			(SELECT COUNT(*) FROM restaurants),
			(SELECT COUNT(*) FROM ratings),
			(SELECT COUNT(*) FROM friend_links),
			COALESCE((SELECT AVG(value) FROM ratings), 0)`,
	).Scan(&stats.TotalProfiles, &stats.TotalRestaurants, &stats.TotalRatings, &stats.TotalFriendLinks, &stats.AvgRating)
	return stats, err
}

func scanIDs(rows pgx.Rows) ([]string, error) {
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
