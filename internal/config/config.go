package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all deployment configuration values.
type Config struct {
	ProjectID      string `mapstructure:"FIREBASE_PROJECT_ID"`
	Port           string `mapstructure:"PORT"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	Env            string `mapstructure:"ENV"`

	// Admin identities. Comma-separated Firebase UIDs; booking admins are a
	// deployment decision, not a runtime-assigned role.
	AdminUIDs string `mapstructure:"ADMIN_UIDS"`

	// Business-day slot grid.
	OpenTime    string `mapstructure:"OPEN_TIME"`
	CloseTime   string `mapstructure:"CLOSE_TIME"`
	SlotMinutes int    `mapstructure:"SLOT_MINUTES"`

	// Date offering policy.
	HorizonDays    int    `mapstructure:"HORIZON_DAYS"`
	OfferedDates   int    `mapstructure:"OFFERED_DATES"`
	ClosedWeekdays string `mapstructure:"CLOSED_WEEKDAYS"` // comma-separated 0-6, 0=Sunday

	// Optional Redis-backed rate limiting. Disabled when REDIS_ADDR is empty.
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisDB           int    `mapstructure:"REDIS_DB"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

// Load reads configuration from config.yaml (if present) and the environment.
func Load() Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("FIREBASE_PROJECT_ID", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("ADMIN_UIDS", "")
	viper.SetDefault("OPEN_TIME", "09:00")
	viper.SetDefault("CLOSE_TIME", "17:30")
	viper.SetDefault("SLOT_MINUTES", 30)
	viper.SetDefault("HORIZON_DAYS", 30)
	viper.SetDefault("OFFERED_DATES", 5)
	viper.SetDefault("CLOSED_WEEKDAYS", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("no config file found, using environment variables only")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Origins returns the parsed CORS origin list.
func (c Config) Origins() []string {
	return splitList(c.AllowedOrigins)
}

// Admins returns the parsed admin UID allow-list.
func (c Config) Admins() []string {
	return splitList(c.AdminUIDs)
}

// IsAdmin reports whether uid is in the configured admin allow-list.
func (c Config) IsAdmin(uid string) bool {
	if uid == "" {
		return false
	}
	for _, a := range c.Admins() {
		if a == uid {
			return true
		}
	}
	return false
}

// Closed returns the weekdays on which no dates are offered.
func (c Config) Closed() map[time.Weekday]bool {
	out := map[time.Weekday]bool{}
	for _, s := range splitList(c.ClosedWeekdays) {
		switch strings.ToLower(s) {
		case "0", "sun", "sunday":
			out[time.Sunday] = true
		case "1", "mon", "monday":
			out[time.Monday] = true
		case "2", "tue", "tuesday":
			out[time.Tuesday] = true
		case "3", "wed", "wednesday":
			out[time.Wednesday] = true
		case "4", "thu", "thursday":
			out[time.Thursday] = true
		case "5", "fri", "friday":
			out[time.Friday] = true
		case "6", "sat", "saturday":
			out[time.Saturday] = true
		}
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
