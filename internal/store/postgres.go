package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forkcast-app/forkcast/internal/catalog"
	"github.com/forkcast-app/forkcast/internal/profile"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// --- Taste profiles ---

const profileColumns = `user_id, quietness, service_quality, healthiness, value_pref, atmosphere,
	cuisine_types, price_min, price_max,
	total_ratings, average_rating, last_updated`

func (s *PostgresStore) GetProfile(ctx context.Context, userID string) (*profile.TasteProfile, error) {
	p := &profile.TasteProfile{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM taste_profiles WHERE user_id = $1`, userID,
	).Scan(
		&p.UserID, &p.Preferences.Quietness, &p.Preferences.ServiceQuality,
		&p.Preferences.Healthiness, &p.Preferences.Value, &p.Preferences.Atmosphere,
		&p.CuisineTypes, &p.PriceRange.Min, &p.PriceRange.Max,
		&p.Learning.TotalRatings, &p.Learning.AverageRating, &p.Learning.LastUpdated,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if p.CuisineTypes == nil {
		p.CuisineTypes = []string{}
	}
	return p, nil
}

func (s *PostgresStore) PutProfile(ctx context.Context, p *profile.TasteProfile) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO taste_profiles (user_id, quietness, service_quality, healthiness, value_pref, atmosphere,
			cuisine_types, price_min, price_max,
			total_ratings, average_rating, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			quietness = EXCLUDED.quietness,
			service_quality = EXCLUDED.service_quality,
			healthiness = EXCLUDED.healthiness,
			value_pref = EXCLUDED.value_pref,
			atmosphere = EXCLUDED.atmosphere,
			cuisine_types = EXCLUDED.cuisine_types,
			price_min = EXCLUDED.price_min,
			price_max = EXCLUDED.price_max,
			total_ratings = EXCLUDED.total_ratings,
			average_rating = EXCLUDED.average_rating,
			last_updated = EXCLUDED.last_updated,
			updated_at = now()`,
		p.UserID, p.Preferences.Quietness, p.Preferences.ServiceQuality,
		p.Preferences.Healthiness, p.Preferences.Value, p.Preferences.Atmosphere,
		p.CuisineTypes, p.PriceRange.Min, p.PriceRange.Max,
		p.Learning.TotalRatings, p.Learning.AverageRating, p.Learning.LastUpdated,
	)
	return err
}

// --- Restaurants ---

const restaurantColumns = `id, name, address, lat, lng, cuisine_types,
	price_min, price_max,
	quietness, service_speed, atmosphere, private_booths, walkable_distance, ideal_meeting_types,
	rating_average, rating_count`

func (s *PostgresStore) CreateRestaurant(ctx context.Context, r *catalog.Restaurant) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	meetings := meetingTypesToStrings(r.Attributes.IdealMeetingTypes)
	_, err := s.pool.Exec(ctx, `
		INSERT INTO restaurants (id, name, address, lat, lng, cuisine_types,
			price_min, price_max,
			quietness, service_speed, atmosphere, private_booths, walkable_distance, ideal_meeting_types,
			rating_average, rating_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		r.ID, r.Name, r.Address, r.Coordinates.Lat, r.Coordinates.Lng, r.CuisineTypes,
		r.PriceRange.Min, r.PriceRange.Max,
		r.Attributes.Quietness, string(r.Attributes.ServiceSpeed), string(r.Attributes.Atmosphere),
		r.Attributes.PrivateBooths, r.Attributes.WalkableDistance, meetings,
		r.Rating.Average, r.Rating.Count,
	)
	return err
}

func (s *PostgresStore) GetRestaurant(ctx context.Context, id string) (*catalog.Restaurant, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants WHERE id = $1`, id)
	r, err := scanRestaurant(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *PostgresStore) ListRestaurants(ctx context.Context, limit int) ([]catalog.Restaurant, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		ORDER BY created_at ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// ApplyRestaurantRating folds one rating into the restaurant's aggregate.
func (s *PostgresStore) ApplyRestaurantRating(ctx context.Context, restaurantID string, value float64) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE restaurants SET
			rating_average = (rating_average * rating_count + $2) / (rating_count + 1),
			rating_count = rating_count + 1
		WHERE id = $1`,
		restaurantID, value,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRestaurant(row rowScanner) (*catalog.Restaurant, error) {
	r := &catalog.Restaurant{}
	var serviceSpeed, atmosphere string
	var meetings []string
	if err := row.Scan(
		&r.ID, &r.Name, &r.Address, &r.Coordinates.Lat, &r.Coordinates.Lng, &r.CuisineTypes,
		&r.PriceRange.Min, &r.PriceRange.Max,
		&r.Attributes.Quietness, &serviceSpeed, &atmosphere,
		&r.Attributes.PrivateBooths, &r.Attributes.WalkableDistance, &meetings,
		&r.Rating.Average, &r.Rating.Count,
	); err != nil {
		return nil, err
	}
	r.Attributes.ServiceSpeed = catalog.ServiceSpeed(serviceSpeed)
	r.Attributes.Atmosphere = catalog.Atmosphere(atmosphere)
	r.Attributes.IdealMeetingTypes = stringsToMeetingTypes(meetings)
	return r, nil
}

func meetingTypesToStrings(in []catalog.MeetingType) []string {
	out := make([]string, 0, len(in))
	for _, m := range in {
		out = append(out, string(m))
	}
	return out
}

func stringsToMeetingTypes(in []string) []catalog.MeetingType {
	if len(in) == 0 {
		return nil
	}
	out := make([]catalog.MeetingType, 0, len(in))
	for _, m := range in {
		out = append(out, catalog.MeetingType(m))
	}
	return out
}
