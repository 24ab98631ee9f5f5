package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Events    EventsConfig    `yaml:"events"`
	Geocoder  GeocoderConfig  `yaml:"geocoder"`
	Recommend RecommendConfig `yaml:"recommend"`
	Trending  TrendingConfig  `yaml:"trending"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

type GeocoderConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

type RecommendConfig struct {
	Bonuses            BonusConfig `yaml:"bonuses"`
	CatalogFetchLimit  int         `yaml:"catalog_fetch_limit"`
	ShuffleFriendPicks bool        `yaml:"shuffle_friend_picks"`
}

type BonusConfig struct {
	Favorite         int `yaml:"favorite"`
	FriendPick       int `yaml:"friend_pick"`
	QuietnessMatch   int `yaml:"quietness_match"`
	PriceMatch       int `yaml:"price_match"`
	CuisineMatch     int `yaml:"cuisine_match"`
	MeetingTypeMatch int `yaml:"meeting_type_match"`
	ProximityNear    int `yaml:"proximity_near"`
	ProximityNearby  int `yaml:"proximity_nearby"`
	HighRating       int `yaml:"high_rating"`
	Fallback         int `yaml:"fallback"`
	GroupFit         int `yaml:"group_fit"`
}

type TrendingConfig struct {
	RefreshIntervalMs int `yaml:"refresh_interval_ms"`
	WindowHours       int `yaml:"window_hours"`
	Limit             int `yaml:"limit"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) TrendingRefreshInterval() time.Duration {
	return time.Duration(c.Trending.RefreshIntervalMs) * time.Millisecond
}

func (c *Config) TrendingWindow() time.Duration {
	return time.Duration(c.Trending.WindowHours) * time.Hour
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Events: EventsConfig{
			URL: "nats://localhost:4222",
		},
		Geocoder: GeocoderConfig{
			URL: "http://localhost:8710",
		},
		Recommend: RecommendConfig{
			Bonuses: BonusConfig{
				Favorite:         50,
				FriendPick:       40,
				QuietnessMatch:   15,
				PriceMatch:       10,
				CuisineMatch:     10,
				MeetingTypeMatch: 20,
				ProximityNear:    15,
				ProximityNearby:  10,
				HighRating:       10,
				Fallback:         5,
				GroupFit:         30,
			},
			CatalogFetchLimit:  200,
			ShuffleFriendPicks: true,
		},
		Trending: TrendingConfig{
			RefreshIntervalMs: 300000,
			WindowHours:       168,
			Limit:             20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FORKCAST_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("FORKCAST_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("FORKCAST_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("FORKCAST_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("FORKCAST_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("FORKCAST_GEOCODER_URL"); v != "" {
		cfg.Geocoder.URL = v
	}
	if v := os.Getenv("FORKCAST_GEOCODER_TOKEN"); v != "" {
		cfg.Geocoder.Token = v
	}
	if v := os.Getenv("FORKCAST_CATALOG_FETCH_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Recommend.CatalogFetchLimit = n
		}
	}
	if v := os.Getenv("FORKCAST_SHUFFLE_FRIEND_PICKS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Recommend.ShuffleFriendPicks = b
		}
	}
	if v := os.Getenv("FORKCAST_TRENDING_REFRESH_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Trending.RefreshIntervalMs = n
		}
	}
	if v := os.Getenv("FORKCAST_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
