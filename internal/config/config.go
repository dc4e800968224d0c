package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string

	Database DatabaseConfig
	RedisURL string

	JWTSecret    string
	JWTTTL       time.Duration
	JWTIssuer    string
	AuthRequired bool

	LoginMaxAttempts    int
	LoginThrottleWindow time.Duration

	MeiliSearchHost string
	MeiliMasterKey  string

	CloudinaryURL          string
	CloudinaryUploadFolder string

	Analytics AnalyticsConfig

	SeedSuperAdminEmail    string
	SeedSuperAdminPassword string
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AnalyticsConfig struct {
	CountVerified         bool
	StudentTimelineGroup  string
	OrganizationGroupings map[string]string
}

func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		AppEnv:         v.GetString("APP_ENV"),
		Port:           v.GetString("PORT"),
		AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),

		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASS"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		RedisURL: v.GetString("REDIS_URL"),

		JWTSecret:    v.GetString("JWT_SECRET"),
		JWTTTL:       time.Duration(v.GetInt("JWT_TTL_MINUTES")) * time.Minute,
		JWTIssuer:    v.GetString("JWT_ISSUER"),
		AuthRequired: v.GetBool("AUTH_REQUIRED"),

		LoginMaxAttempts:    v.GetInt("LOGIN_MAX_ATTEMPTS"),
		LoginThrottleWindow: v.GetDuration("LOGIN_THROTTLE_WINDOW"),

		MeiliSearchHost: v.GetString("MEILISEARCH_HOST"),
		MeiliMasterKey:  v.GetString("MEILI_MASTER_KEY"),

		CloudinaryURL:          v.GetString("CLOUDINARY_URL"),
		CloudinaryUploadFolder: v.GetString("CLOUDINARY_UPLOAD_FOLDER"),

		Analytics: AnalyticsConfig{
			CountVerified:        v.GetBool("ANALYTICS_COUNT_VERIFIED"),
			StudentTimelineGroup: v.GetString("STUDENT_TIMELINE_GROUP_BY"),
		},

		SeedSuperAdminEmail:    v.GetString("SEED_SUPER_ADMIN_EMAIL"),
		SeedSuperAdminPassword: v.GetString("SEED_SUPER_ADMIN_PASSWORD"),
	}

	if raw := v.GetString("ORG_TIMELINE_GROUPING"); raw != "" {
		groupings, err := parseGroupings(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid ORG_TIMELINE_GROUPING: %w", err)
		}
		cfg.Analytics.OrganizationGroupings = groupings
	}

	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("invalid JWT_TTL_MINUTES: must be positive")
	}
	if cfg.LoginThrottleWindow <= 0 {
		return nil, fmt.Errorf("invalid LOGIN_THROTTLE_WINDOW: must be positive")
	}
	if !cfg.IsDevelopment() && cfg.JWTSecret == "change-me" {
		return nil, fmt.Errorf("JWT_SECRET must be set outside development")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_NAME", "langanalytics")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_TTL_MINUTES", 60)
	v.SetDefault("JWT_ISSUER", "langanalytics")
	v.SetDefault("AUTH_REQUIRED", true)
	v.SetDefault("LOGIN_MAX_ATTEMPTS", 5)
	v.SetDefault("LOGIN_THROTTLE_WINDOW", "15m")
	v.SetDefault("CLOUDINARY_UPLOAD_FOLDER", "langanalytics")
	v.SetDefault("ANALYTICS_COUNT_VERIFIED", false)
	v.SetDefault("STUDENT_TIMELINE_GROUP_BY", "day")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseGroupings reads "7days=day,1month=week,year=month".
func parseGroupings(raw string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range splitList(raw) {
		timeframe, group, ok := strings.Cut(pair, "=")
		if !ok || timeframe == "" || group == "" {
			return nil, fmt.Errorf("malformed pair %q", pair)
		}
		out[strings.TrimSpace(timeframe)] = strings.TrimSpace(group)
	}
	return out, nil
}
