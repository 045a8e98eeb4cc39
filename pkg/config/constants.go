package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "stocklot"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names, shared with tests and deployment manifests.
const (
	EnvAppEnv      = "STOCKLOT_APP_ENV"
	EnvPort        = "STOCKLOT_APP_PORT"
	EnvLogLevel    = "STOCKLOT_LOG_LEVEL"
	EnvDBDSN       = "STOCKLOT_DB_DSN"
	EnvDBHost      = "STOCKLOT_DB_HOST"
	EnvDBPort      = "STOCKLOT_DB_PORT"
	EnvDBUser      = "STOCKLOT_DB_USER"
	EnvDBPassword  = "STOCKLOT_DB_PASSWORD"
	EnvDBName      = "STOCKLOT_DB_NAME"
	EnvDBSSLMode   = "STOCKLOT_DB_SSLMODE"
	EnvRedisURL    = "STOCKLOT_REDIS_URL"
	EnvAutoMigrate = "STOCKLOT_AUTO_MIGRATE"
	EnvCORSOrigins = "STOCKLOT_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
