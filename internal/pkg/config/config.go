package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeouts, policy knobs, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Billing BillingConfig
	Meeting MeetingConfig
	Reaper  ReaperConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

// BillingConfig carries the monetization policy knobs.
type BillingConfig struct {
	// Price of one mock interview, in cents of the settlement currency.
	PricePerInterviewCents int64 `envconfig:"BILLING_PRICE_PER_INTERVIEW_CENTS" default:"50000"`
	// Interviews each job seeker may take without payment or coupon (legacy tier).
	FreeInterviewLimit int `envconfig:"BILLING_FREE_INTERVIEW_LIMIT" default:"1"`
	// How long a request stays claimable.
	RequestTTL time.Duration `envconfig:"BILLING_REQUEST_TTL" default:"168h"`
}

type MeetingConfig struct {
	BaseURL string        `envconfig:"MEETING_BASE_URL" default:"http://localhost:9090"`
	Timeout time.Duration `envconfig:"MEETING_TIMEOUT" default:"3s"`
	// Used when the meeting service is down or slow; never blocks a claim.
	FallbackURLPattern string `envconfig:"MEETING_FALLBACK_URL_PATTERN" default:"https://meet.mockomi.app/panel/%s"`
}

type ReaperConfig struct {
	// cron spec for the expiry sweep.
	Schedule string `envconfig:"REAPER_SCHEDULE" default:"@every 5m"`
	Enabled  bool   `envconfig:"REAPER_ENABLED" default:"true"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level:      "error",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Billing: BillingConfig{
			PricePerInterviewCents: 50000,
			FreeInterviewLimit:     1,
			RequestTTL:             168 * time.Hour,
		},
		Meeting: MeetingConfig{
			BaseURL:            "http://localhost:9090",
			Timeout:            time.Second,
			FallbackURLPattern: "https://meet.mockomi.app/panel/%s",
		},
	}
}
