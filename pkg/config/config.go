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
	RFID         RFIDConfig
	Cache        CacheConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	// UseSQLite overrides whatever driver the env configured.
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DriverSQLite
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"INVENTAIRE_APP_ENV" required:"true"`
	Port         string `envconfig:"INVENTAIRE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"INVENTAIRE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"INVENTAIRE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"INVENTAIRE_DB_DSN"`
	Driver string `envconfig:"INVENTAIRE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"INVENTAIRE_DB_HOST"`
	LegacyPort     int    `envconfig:"INVENTAIRE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"INVENTAIRE_DB_USER"`
	LegacyPassword string `envconfig:"INVENTAIRE_DB_PASSWORD"`
	LegacyName     string `envconfig:"INVENTAIRE_DB_NAME"`
	LegacySSLMode  string `envconfig:"INVENTAIRE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"INVENTAIRE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"INVENTAIRE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"INVENTAIRE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"INVENTAIRE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite dialector should be used. The DSN is
// a plain file path (or :memory:) in that mode.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"INVENTAIRE_REDIS_URL"`
	Address      string        `envconfig:"INVENTAIRE_REDIS_ADDR"`
	Password     string        `envconfig:"INVENTAIRE_REDIS_PASSWORD"`
	DB           int           `envconfig:"INVENTAIRE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"INVENTAIRE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"INVENTAIRE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"INVENTAIRE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"INVENTAIRE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"INVENTAIRE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"INVENTAIRE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type RFIDConfig struct {
	// TagKeyPrefix is the redis key prefix the scanner fleet writes tag
	// registrations under.
	TagKeyPrefix string `envconfig:"INVENTAIRE_RFID_TAG_KEY_PREFIX" default:"rfid:tag"`
}

type CacheConfig struct {
	BarcodeTTL time.Duration `envconfig:"INVENTAIRE_CACHE_BARCODE_TTL" default:"30s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"INVENTAIRE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"INVENTAIRE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required when driver is sqlite", EnvDBDSN)
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
