package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	CORS         CORSConfig
	Idempotency  IdempotencyConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOCKLOT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOCKLOT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOCKLOT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKLOT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOCKLOT_DB_DSN"`
	Driver string `envconfig:"STOCKLOT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOCKLOT_DB_HOST"`
	LegacyPort     int    `envconfig:"STOCKLOT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOCKLOT_DB_USER"`
	LegacyPassword string `envconfig:"STOCKLOT_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOCKLOT_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOCKLOT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOCKLOT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOCKLOT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOCKLOT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOCKLOT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional: an empty URL disables the idempotency middleware
// and the redis readiness probe.
type RedisConfig struct {
	URL          string        `envconfig:"STOCKLOT_REDIS_URL"`
	PoolSize     int           `envconfig:"STOCKLOT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOCKLOT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOCKLOT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOCKLOT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOCKLOT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STOCKLOT_CORS_ALLOWED_ORIGINS" default:"*"`
	MaxAge         int      `envconfig:"STOCKLOT_CORS_MAX_AGE" default:"300"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"STOCKLOT_IDEMPOTENCY_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOCKLOT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
