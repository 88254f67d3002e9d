package config

import (
	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/tdnguyen/debt-ledger/pkg/logger"
)

const ConfigTagName = "env"
const ConfigDefaultTagName = "default"

var config *Config

// Config holds every env-sourced value the ledger uses. Only this
// struct must be used to hold configuration values, no direct access
// to env, ini or any other config source should be made.
type Config struct {
	AppEnv              string `env:"APP_ENV" default:"dev"`
	AppName             string `env:"APP_NAME" default:"debt_ledger"`
	AppDebug            bool   `env:"APP_DEBUG" default:"1"`
	AppDebugMetricsAddr string `env:"APP_DEBUG_METRIC_ADDR"`
	AppDebugMetricsURI  string `env:"APP_DEBUG_METRIC_URI"`

	HttpListenAddr            string `env:"HTTP_LISTEN_ADDR" validation:"mustExists"`
	HttpServerReadTimeout     int    `env:"HTTP_SERVER_READ_TIMEOUT"`
	HttpServerWriteTimeout    int    `env:"HTTP_SERVER_WRITE_TIMEOUT"`
	HttpServerReadBufferSize  int    `env:"HTTP_SERVER_READ_BUFFER_SIZE"`
	HttpServerWriteBufferSize int    `env:"HTTP_SERVER_WRITE_BUFFER_SIZE"`

	PostgresReadHost     string `env:"POSTGRES_READ_HOST"`
	PostgresReadPort     string `env:"POSTGRES_READ_PORT"`
	PostgresReadUser     string `env:"POSTGRES_READ_USER"`
	PostgresReadPassword string `env:"POSTGRES_READ_PASSWORD"`
	PostgresReadDatabase string `env:"POSTGRES_READ_DBNAME"`

	PostgresWriteHost     string `env:"POSTGRES_WRITE_HOST"`
	PostgresWritePort     string `env:"POSTGRES_WRITE_PORT"`
	PostgresWriteUser     string `env:"POSTGRES_WRITE_USER"`
	PostgresWritePassword string `env:"POSTGRES_WRITE_PASSWORD"`
	PostgresWriteDatabase string `env:"POSTGRES_WRITE_DBNAME"`

	RedisAddr               string `env:"REDIS_ADDR"`
	RedisUsername           string `env:"REDIS_USER"`
	RedisPassword           string `env:"REDIS_PASS"`
	RedisDatabase           int    `env:"REDIS_DATABASE"`
	RedisUniversalKeyPrefix string `env:"REDIS_UNIVERSAL_KEY_PREFIX"`

	PromNamespace string `env:"PROM_NAMESPACE"`

	LogLevel []string `env:"LOG_LEVEL"`

	// AdminPassword may be plaintext or a bcrypt hash.
	AdminPassword string `env:"ADMIN_PASSWORD" validation:"mustExists"`
	RecoveryCode  string `env:"RECOVERY_CODE"`

	MigrationsDir string `env:"MIGRATIONS_DIR" default:"migrations"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	var err error
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		err = godotenv.Load(path)
		if err != nil {
			return errors.New("failed to load configuration file " + path + " error: " + err.Error())
		}
	}

	_, err = env.UnmarshalFromEnviron(c)

	if err != nil {
		return errors.New("failed to map env variables to Configuration object " + " error: " + err.Error())
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}
