package config

// EnvPrefix is handed to envconfig; every field declares its full name explicitly.
const EnvPrefix = "PARTNERHUB"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "PARTNERHUB_APP_ENV"
	EnvPort     = "PARTNERHUB_APP_PORT"
	EnvLogLevel = "PARTNERHUB_LOG_LEVEL"
	EnvCORS     = "PARTNERHUB_CORS_ORIGINS"

	EnvDBDSN  = "PARTNERHUB_DB_DSN"
	EnvDBHost = "PARTNERHUB_DB_HOST"
	EnvDBUser = "PARTNERHUB_DB_USER"
	EnvDBName = "PARTNERHUB_DB_NAME"

	EnvRedisURL = "PARTNERHUB_REDIS_URL"

	EnvAuthJWTSecret = "PARTNERHUB_AUTH_JWT_SECRET"
	EnvAuthIssuer    = "PARTNERHUB_AUTH_ISSUER"

	EnvDocuSealAPIKey = "PARTNERHUB_DOCUSEAL_API_KEY"
	EnvStripeAPIKey   = "PARTNERHUB_STRIPE_API_KEY"
	EnvEmailFrom      = "PARTNERHUB_EMAIL_FROM"
)
