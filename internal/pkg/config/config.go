package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, gateway keys)
// - default: Values common across all environments (timezone, intervals, fee windows)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	Payment PaymentConfig
	Booking BookingConfig
	Jobs    JobsConfig
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
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Africa/Lagos"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-User-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

type PaymentConfig struct {
	// Empty secret key selects the sandbox gateway; the real Paystack client
	// is never constructed without credentials.
	PaystackSecretKey string        `envconfig:"PAYSTACK_SECRET_KEY" default:""`
	PaystackBaseURL   string        `envconfig:"PAYSTACK_BASE_URL" default:"https://api.paystack.co"`
	CallbackURL       string        `envconfig:"PAYMENT_CALLBACK_URL" default:""`
	GatewayTimeout    time.Duration `envconfig:"PAYMENT_GATEWAY_TIMEOUT" default:"15s"`
}

type BookingConfig struct {
	// Unpaid bookings older than this are expired by the timeout job.
	PaymentTimeout time.Duration `envconfig:"BOOKING_PAYMENT_TIMEOUT" default:"30m"`
	// Refund window: cancellations at least this far before check-in refund in full.
	FreeCancellationWindow time.Duration `envconfig:"BOOKING_FREE_CANCELLATION_WINDOW" default:"24h"`
	RefundProcessingDays   int           `envconfig:"BOOKING_REFUND_PROCESSING_DAYS" default:"7"`
}

type JobsConfig struct {
	TimeZone           string        `envconfig:"JOBS_TIMEZONE" default:"Africa/Lagos"`
	ExpiryInterval     time.Duration `envconfig:"JOBS_EXPIRY_INTERVAL" default:"5m"`
	CompletionInterval time.Duration `envconfig:"JOBS_COMPLETION_INTERVAL" default:"1h"`
	ReminderInterval   time.Duration `envconfig:"JOBS_REMINDER_INTERVAL" default:"1h"`
	MaxRetries         int           `envconfig:"JOBS_MAX_RETRIES" default:"3"`
	RetryDelay         time.Duration `envconfig:"JOBS_RETRY_DELAY" default:"30s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
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
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Africa/Lagos",
		},
		Log: LogConfig{
			Level: "error", // Error level only for tests
		},
		Payment: PaymentConfig{
			GatewayTimeout: 15 * time.Second,
		},
		Booking: BookingConfig{
			PaymentTimeout:         30 * time.Minute,
			FreeCancellationWindow: 24 * time.Hour,
			RefundProcessingDays:   7,
		},
		Jobs: JobsConfig{
			TimeZone:           "Africa/Lagos",
			ExpiryInterval:     5 * time.Minute,
			CompletionInterval: time.Hour,
			ReminderInterval:   time.Hour,
			MaxRetries:         3,
			RetryDelay:         30 * time.Second,
		},
	}
}
