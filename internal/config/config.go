// Package config loads gymctl settings from an optional YAML file and GYM_
// environment variables.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"gymdesk/internal/application/orchestrators"
)

// Config is the full runtime configuration.
type Config struct {
	Storage    Storage    `yaml:"storage"`
	Admin      Admin      `yaml:"admin"`
	Membership Membership `yaml:"membership"`
	Payments   Payments   `yaml:"payments"`
	Members    Members    `yaml:"members"`
	Log        Log        `yaml:"log"`
}

// Storage configures the SQLite file and its instrumentation.
type Storage struct {
	Path                  string `yaml:"path" env:"GYM_DB_PATH" env-default:"gym.db" env-description:"SQLite database file"`
	SlowQueryMs           int    `yaml:"slow_query_ms" env:"GYM_SLOW_QUERY_MS" env-default:"50" env-description:"queries at or above this duration are logged at WARN"`
	MaxOpenConns          int    `yaml:"max_open_conns" env:"GYM_MAX_OPEN_CONNS" env-default:"1" env-description:"connection pool size"`
	ResetAttendanceOnInit bool   `yaml:"reset_attendance_on_init" env:"GYM_RESET_ATTENDANCE" env-default:"false" env-description:"drop all attendance history on init"`
}

// Admin is the account seeded into an empty users table.
type Admin struct {
	Username string `yaml:"username" env:"GYM_ADMIN_USERNAME" env-default:"admin" env-description:"seeded admin username"`
	Password string `yaml:"password" env:"GYM_ADMIN_PASSWORD" env-default:"admin123" env-description:"seeded admin password"`
}

// Membership tunes renewal and the expiry warning window.
type Membership struct {
	RenewalDays      int `yaml:"renewal_days" env:"GYM_RENEWAL_DAYS" env-default:"30" env-description:"days one payment extends a membership"`
	ExpiringSoonDays int `yaml:"expiring_soon_days" env:"GYM_EXPIRING_SOON_DAYS" env-default:"7" env-description:"expiry warning window in days"`
}

// Payments tunes the payment report.
type Payments struct {
	DueSoonDays int `yaml:"due_soon_days" env:"GYM_DUE_SOON_DAYS" env-default:"3" env-description:"due date warning window in days"`
}

// Members holds member lifecycle settings.
type Members struct {
	DeletePolicy string `yaml:"delete_policy" env:"GYM_DELETE_POLICY" env-default:"cascade" env-description:"cascade or reject"`
}

// Log selects the slog handler.
type Log struct {
	Level  string `yaml:"level" env:"GYM_LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	Format string `yaml:"format" env:"GYM_LOG_FORMAT" env-default:"text" env-description:"text or json"`
}

// Load reads the configuration. An empty path reads the environment only;
// environment variables always override the file.
// PRE: path is empty or names a readable YAML file
// POST: Returns a validated Config or an error naming the bad setting
func Load(path string) (*Config, error) {
	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values cleanenv cannot.
func (c *Config) Validate() error {
	c.Members.DeletePolicy = strings.ToLower(strings.TrimSpace(c.Members.DeletePolicy))
	if !orchestrators.ValidDeletePolicy(c.Members.DeletePolicy) {
		return fmt.Errorf("members.delete_policy must be cascade or reject, got %q", c.Members.DeletePolicy)
	}
	if c.Membership.RenewalDays <= 0 {
		return fmt.Errorf("membership.renewal_days must be positive, got %d", c.Membership.RenewalDays)
	}
	if c.Membership.ExpiringSoonDays < 1 {
		return fmt.Errorf("membership.expiring_soon_days must be at least 1, got %d", c.Membership.ExpiringSoonDays)
	}
	if c.Payments.DueSoonDays < 1 {
		return fmt.Errorf("payments.due_soon_days must be at least 1, got %d", c.Payments.DueSoonDays)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// SlogLevel parses Level.
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// NewLogger builds the handler Log describes, writing to w.
// PRE: Validate has passed
func (l Log) NewLogger(w io.Writer) *slog.Logger {
	lvl, _ := l.SlogLevel()
	opts := &slog.HandlerOptions{Level: lvl}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Usage writes the environment variables Config understands.
func Usage(w io.Writer) {
	var cfg Config
	cleanenv.FUsage(w, &cfg, nil)()
}
