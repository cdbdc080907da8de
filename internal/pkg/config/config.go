package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// Integrations (calendar, mail, redis, postgres, nats) are optional and enabled by presence.
// -----------------------------------------------------------------------------

// LegacyEncryptionSecret is the fallback secret of earlier deployments. Links they issued
// only decode if it is kept.
const LegacyEncryptionSecret = "default-secret-key-change-in-production-32-chars!!"

type Config struct {
	Server   ServerConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Admin    AdminConfig
	Booking  BookingConfig
	Calendar CalendarConfig
	Mail     MailConfig
	Settings SettingsConfig
	Redis    RedisConfig
	DB       DBConfig
	NATS     NATSConfig
	Metrics  MetricsConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" required:"true"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/Argentina/Buenos_Aires"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-10800"` // -3*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"12h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string `envconfig:"COOKIE_SAMESITE" default:"Lax"`
}

type AdminConfig struct {
	Username     string `envconfig:"ADMIN_USERNAME" default:"admin"`
	Password     string `envconfig:"ADMIN_PASSWORD" default:"admin123"`
	PasswordHash string `envconfig:"ADMIN_PASSWORD_HASH" default:""` // bcrypt; wins over ADMIN_PASSWORD
}

type BookingConfig struct {
	BaseURL           string `envconfig:"BASE_URL" default:"http://localhost:3000"`
	ConfirmPath       string `envconfig:"CONFIRM_PATH" default:"/confirmar-turno"`
	EncryptionSecret  string `envconfig:"ENCRYPTION_SECRET" default:"default-secret-key-change-in-production-32-chars!!"`
	DefaultAdminEmail string `envconfig:"DEFAULT_CALENDAR_EMAIL" default:""`
}

type CalendarConfig struct {
	CalendarID      string        `envconfig:"GOOGLE_CALENDAR_ID" default:""`
	ClientEmail     string        `envconfig:"GOOGLE_CLIENT_EMAIL" default:""`
	PrivateKey      string        `envconfig:"GOOGLE_PRIVATE_KEY" default:""`
	CredentialsFile string        `envconfig:"GOOGLE_CREDENTIALS_FILE" default:""`
	Endpoint        string        `envconfig:"GOOGLE_CALENDAR_ENDPOINT" default:""`
	Timeout         time.Duration `envconfig:"GOOGLE_CALENDAR_TIMEOUT" default:"10s"`
}

type MailConfig struct {
	From             string        `envconfig:"EMAIL_FROM" default:""` // falls back to GMAIL_USER, then noreply@turnos.com
	FromName         string        `envconfig:"EMAIL_FROM_NAME" default:"Turnos"`
	SMTPHost         string        `envconfig:"SMTP_HOST" default:""`
	SMTPPort         int           `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser         string        `envconfig:"SMTP_USER" default:""`
	SMTPPass         string        `envconfig:"SMTP_PASS" default:""`
	SMTPSecure       bool          `envconfig:"SMTP_SECURE" default:"false"`
	GmailUser        string        `envconfig:"GMAIL_USER" default:""`
	GmailAppPassword string        `envconfig:"GMAIL_APP_PASSWORD" default:""`
	MailerSendAPIKey string        `envconfig:"MAILERSEND_API_KEY" default:""`
	Timeout          time.Duration `envconfig:"MAIL_TIMEOUT" default:"10s"`
}

type SettingsConfig struct {
	Store    string `envconfig:"SETTINGS_STORE" default:"memory"` // memory | file | redis | postgres
	File     string `envconfig:"SETTINGS_FILE" default:"settings.toml"`
	RedisKey string `envconfig:"SETTINGS_REDIS_KEY" default:"turnos:settings"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	PoolSize int    `envconfig:"REDIS_POOL_SIZE" default:"10"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"turnos"`
	Password string `envconfig:"DB_PASSWORD" default:""`
	DBName   string `envconfig:"DB_NAME" default:"turnos"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"America/Argentina/Buenos_Aires"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"5"`
}

type NATSConfig struct {
	URL           string `envconfig:"NATS_URL" default:""`
	SubjectPrefix string `envconfig:"NATS_SUBJECT_PREFIX" default:"turnos"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"METRICS_PATH" default:"/metrics"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// UsesLegacySecret reports whether tokens are sealed with the publicly known fallback secret.
func (c BookingConfig) UsesLegacySecret() bool {
	return c.EncryptionSecret == LegacyEncryptionSecret
}

func (c CalendarConfig) Configured() bool {
	return c.CalendarID != "" && (c.CredentialsFile != "" || (c.ClientEmail != "" && c.PrivateKey != ""))
}

// LoadConfig reads an optional .env file, then the process environment. Variables already
// set in the environment win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

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
			Port:            "8889", // Test port
			ShutdownTimeout: time.Second,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "America/Argentina/Buenos_Aires",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: -10800,
		},
		JWT: JWTConfig{
			Secret:   "test-jwt-secret",
			Duration: "1h",
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Admin: AdminConfig{
			Username: "admin",
			Password: "admin123",
		},
		Booking: BookingConfig{
			BaseURL:           "http://localhost:3000",
			ConfirmPath:       "/confirmar-turno",
			EncryptionSecret:  "test-encryption-secret",
			DefaultAdminEmail: "admin@example.com",
		},
		Mail: MailConfig{
			From:     "noreply@example.com",
			FromName: "Turnos",
			Timeout:  time.Second,
		},
		Settings: SettingsConfig{
			Store:    "memory",
			RedisKey: "turnos:test:settings",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}
