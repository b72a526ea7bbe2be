package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Cart          CartConfig
	Quotes        QuotesConfig
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
	Env          string `envconfig:"AQUASUR_APP_ENV" required:"true"`
	Port         string `envconfig:"AQUASUR_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"AQUASUR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AQUASUR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"AQUASUR_DB_DSN"`
	Driver string `envconfig:"AQUASUR_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"AQUASUR_DB_HOST"`
	LegacyPort     int    `envconfig:"AQUASUR_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"AQUASUR_DB_USER"`
	LegacyPassword string `envconfig:"AQUASUR_DB_PASSWORD"`
	LegacyName     string `envconfig:"AQUASUR_DB_NAME"`
	LegacySSLMode  string `envconfig:"AQUASUR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"AQUASUR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AQUASUR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AQUASUR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AQUASUR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"AQUASUR_REDIS_URL" required:"true"`
	Address      string        `envconfig:"AQUASUR_REDIS_ADDR"`
	Password     string        `envconfig:"AQUASUR_REDIS_PASSWORD"`
	DB           int           `envconfig:"AQUASUR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AQUASUR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AQUASUR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AQUASUR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AQUASUR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AQUASUR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"AQUASUR_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"AQUASUR_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"AQUASUR_JWT_EXPIRATION_MINUTES" default:"480"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"AQUASUR_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"AQUASUR_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"AQUASUR_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"AQUASUR_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"AQUASUR_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"AQUASUR_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"AQUASUR_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"AQUASUR_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"AQUASUR_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"AQUASUR_AUTO_MIGRATE" default:"false"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"AQUASUR_CART_TTL" default:"168h"`
}

type QuotesConfig struct {
	NumberPrefix    string `envconfig:"AQUASUR_QUOTE_NUMBER_PREFIX" default:"COT"`
	WhatsAppBaseURL string `envconfig:"AQUASUR_WHATSAPP_BASE_URL" default:"https://wa.me/56912345678"`
	BusinessName    string `envconfig:"AQUASUR_BUSINESS_NAME" default:"AquaSur Piscinas y Spas"`
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
