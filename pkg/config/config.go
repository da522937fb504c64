package config

import (
	"fmt"
	"net"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Auth         AuthConfig
	FeatureFlags FeatureFlagsConfig
	DocuSeal     DocuSealConfig
	Stripe       StripeConfig
	Email        EmailConfig
	RateLimit    RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Auth.validate(); err != nil {
		return nil, err
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"PARTNERHUB_APP_ENV" required:"true"`
	Port         string   `envconfig:"PARTNERHUB_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"PARTNERHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"PARTNERHUB_LOG_WARN_STACK" default:"false"`
	LogFormat    string   `envconfig:"PARTNERHUB_LOG_FORMAT" default:"json"`
	CORSOrigins  []string `envconfig:"PARTNERHUB_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PARTNERHUB_DB_DSN"`
	Driver string `envconfig:"PARTNERHUB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PARTNERHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"PARTNERHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PARTNERHUB_DB_USER"`
	LegacyPassword string `envconfig:"PARTNERHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"PARTNERHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"PARTNERHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PARTNERHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PARTNERHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PARTNERHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PARTNERHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	SlowQuery       time.Duration `envconfig:"PARTNERHUB_DB_SLOW_QUERY" default:"500ms"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PARTNERHUB_REDIS_URL"`
	Address      string        `envconfig:"PARTNERHUB_REDIS_ADDR"`
	Password     string        `envconfig:"PARTNERHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"PARTNERHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PARTNERHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PARTNERHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PARTNERHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PARTNERHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PARTNERHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AuthConfig describes how bearer tokens minted by the identity provider are verified.
type AuthConfig struct {
	JWTSecret string        `envconfig:"PARTNERHUB_AUTH_JWT_SECRET" required:"true"`
	Issuer    string        `envconfig:"PARTNERHUB_AUTH_ISSUER" required:"true"`
	Leeway    time.Duration `envconfig:"PARTNERHUB_AUTH_LEEWAY" default:"30s"`
}

// validate rejects blank values; envconfig's required tag only checks presence.
func (a AuthConfig) validate() error {
	var blank []string
	if strings.TrimSpace(a.JWTSecret) == "" {
		blank = append(blank, EnvAuthJWTSecret)
	}
	if strings.TrimSpace(a.Issuer) == "" {
		blank = append(blank, EnvAuthIssuer)
	}
	if len(blank) > 0 {
		return fmt.Errorf("%s must not be empty", strings.Join(blank, ", "))
	}
	return nil
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PARTNERHUB_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PARTNERHUB_AUTO_MIGRATE" default:"false"`
}

type DocuSealConfig struct {
	BaseURL       string        `envconfig:"PARTNERHUB_DOCUSEAL_BASE_URL" default:"https://api.docuseal.com"`
	APIKey        string        `envconfig:"PARTNERHUB_DOCUSEAL_API_KEY"`
	FolderName    string        `envconfig:"PARTNERHUB_DOCUSEAL_FOLDER" default:"Partner Hub"`
	WebhookSecret string        `envconfig:"PARTNERHUB_DOCUSEAL_WEBHOOK_SECRET"`
	Timeout       time.Duration `envconfig:"PARTNERHUB_DOCUSEAL_TIMEOUT" default:"15s"`
}

type StripeConfig struct {
	APIKey     string `envconfig:"PARTNERHUB_STRIPE_API_KEY"`
	Env        string `envconfig:"PARTNERHUB_STRIPE_ENV" default:"test"`
	Currency   string `envconfig:"PARTNERHUB_STRIPE_CURRENCY" default:"usd"`
	SuccessURL string `envconfig:"PARTNERHUB_STRIPE_SUCCESS_URL" default:"http://localhost:3000/portal/store?checkout=success"`
	CancelURL  string `envconfig:"PARTNERHUB_STRIPE_CANCEL_URL" default:"http://localhost:3000/portal/store?checkout=cancel"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type EmailConfig struct {
	Region          string `envconfig:"PARTNERHUB_EMAIL_SES_REGION" default:"us-east-1"`
	FromAddress     string `envconfig:"PARTNERHUB_EMAIL_FROM"`
	PortalInviteURL string `envconfig:"PARTNERHUB_EMAIL_INVITE_URL" default:"http://localhost:3000/portal/sign-up"`
}

// Enabled reports whether outbound email has a sender identity configured.
func (e EmailConfig) Enabled() bool {
	return strings.TrimSpace(e.FromAddress) != ""
}

// RateLimitConfig throttles the unauthenticated partner application form.
type RateLimitConfig struct {
	ApplicationWindow     time.Duration `envconfig:"PARTNERHUB_APPLICATION_RL_WINDOW" default:"1h"`
	ApplicationIPLimit    int           `envconfig:"PARTNERHUB_APPLICATION_RL_IP_LIMIT" default:"20"`
	ApplicationEmailLimit int           `envconfig:"PARTNERHUB_APPLICATION_RL_EMAIL_LIMIT" default:"3"`
}

// ensureDSN fills DSN from the discrete PARTNERHUB_DB_* parts when no DSN is given.
func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	var missing []string
	for env, value := range map[string]string{EnvDBHost: db.LegacyHost, EnvDBUser: db.LegacyUser, EnvDBName: db.LegacyName} {
		if value == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	user := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		user = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}
	u := url.URL{
		Scheme: "postgres",
		User:   user,
		Host:   net.JoinHostPort(db.LegacyHost, strconv.Itoa(db.LegacyPort)),
		Path:   db.LegacyName,
	}
	if db.LegacySSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {db.LegacySSLMode}}.Encode()
	}
	db.DSN = u.String()
	return nil
}
