package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/cepbuch/temptok/model"
)

// Config is the top-level structure of config.yaml.
type Config struct {
	Token    string        `mapstructure:"token"`
	Database Database      `mapstructure:"database"`
	Club     Club          `mapstructure:"club"`
	Resolver Resolver      `mapstructure:"resolver"`
	Members  []MemberEntry `mapstructure:"members"`

	// Cutoff is parsed from Club.CutoffDate on load.
	Cutoff time.Time `mapstructure:"-"`
}

// Database holds the sqlite settings.
type Database struct {
	Path string `mapstructure:"path"`
}

// Club holds the group-specific settings.
type Club struct {
	ChannelID string   `mapstructure:"channel_id"`
	Admins    []string `mapstructure:"admins"`

	// CutoffDate (YYYY-MM-DD, UTC) marks when obligation enforcement
	// began. Submissions before it are grandfathered.
	CutoffDate string `mapstructure:"cutoff_date"`

	// ReminderGrace is how old an outstanding submission must be before
	// the bot nags about it.
	ReminderGrace time.Duration `mapstructure:"reminder_grace"`

	MilestoneLifetime int `mapstructure:"milestone_lifetime"`
	MilestoneDaily    int `mapstructure:"milestone_daily"`
}

// Resolver holds the video id resolution settings.
type Resolver struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// MemberEntry is one roster record. Gender is "masculine" or "feminine".
type MemberEntry struct {
	ID     string `mapstructure:"id"`
	Name   string `mapstructure:"name"`
	Gender string `mapstructure:"gender"`
}

const defaultCutoffDate = "2021-02-15"

// Load reads config.yaml from the working directory, applying defaults
// and environment overrides.
func Load() (*Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	viper.SetDefault("database.path", "./data/temptok.db")
	viper.SetDefault("club.cutoff_date", defaultCutoffDate)
	viper.SetDefault("club.reminder_grace", time.Hour)
	viper.SetDefault("club.milestone_lifetime", 100)
	viper.SetDefault("club.milestone_daily", 15)
	viper.SetDefault("resolver.timeout", 10*time.Second)
	viper.SetDefault("resolver.cache_ttl", 24*time.Hour)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cutoff, err := time.ParseInLocation("2006-01-02", cfg.Club.CutoffDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parse cutoff_date %q: %w", cfg.Club.CutoffDate, err)
	}
	cfg.Cutoff = cutoff

	if cfg.Club.MilestoneLifetime <= 0 {
		return nil, fmt.Errorf("milestone_lifetime must be positive, got %d", cfg.Club.MilestoneLifetime)
	}
	if cfg.Club.MilestoneDaily <= 0 {
		return nil, fmt.Errorf("milestone_daily must be positive, got %d", cfg.Club.MilestoneDaily)
	}

	for _, m := range cfg.Members {
		if m.Gender != string(model.GenderMasculine) && m.Gender != string(model.GenderFeminine) {
			return nil, fmt.Errorf("member %s: unknown gender %q", m.ID, m.Gender)
		}
	}

	return &cfg, nil
}

// IsAdmin reports whether the user may run moderation commands.
func (c *Config) IsAdmin(userID string) bool {
	for _, id := range c.Club.Admins {
		if id == userID {
			return true
		}
	}
	return false
}
