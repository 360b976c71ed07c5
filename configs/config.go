package configs

import (
	errs "errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DriverMongo  = "mongo"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type Config struct {
	Port            int    `mapstructure:"PORT"`
	CORSOrigin      string `mapstructure:"CORS_ORIGIN"`
	StoreDriver     string `mapstructure:"STORE_DRIVER"`
	MongoURI        string `mapstructure:"MONGO_URI"`
	MongoDatabase   string `mapstructure:"MONGO_DATABASE"`
	MongoCollection string `mapstructure:"MONGO_COLLECTION"`
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	SQLitePath      string `mapstructure:"SQLITE_PATH"`
	GRPCPort        int    `mapstructure:"GRPC_PORT"`
	ConsulAddress   string `mapstructure:"CONSUL_ADDRESS"`
	ServiceAddress  string `mapstructure:"SERVICE_ADDRESS"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
}

var keys = []string{
	"PORT", "CORS_ORIGIN", "STORE_DRIVER", "MONGO_URI", "MONGO_DATABASE",
	"MONGO_COLLECTION", "REDIS_ADDR", "SQLITE_PATH", "GRPC_PORT",
	"CONSUL_ADDRESS", "SERVICE_ADDRESS", "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 5000)
	v.SetDefault("CORS_ORIGIN", "http://localhost:5173")
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("MONGO_DATABASE", "quicknotes")
	v.SetDefault("MONGO_COLLECTION", "notes")
	v.SetDefault("GRPC_PORT", 50051)
	v.SetDefault("SERVICE_ADDRESS", "localhost")
	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads configuration from a .env file (if present), the environment,
// and flags. Flags are matched by their upper-cased, underscored name, so
// --mongo-uri overrides MONGO_URI.
func Load(flags *pflag.FlagSet, envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		logrus.Debugf("No .env file loaded: %v", err)
	}

	v := viper.New()
	setDefaults(v)
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, errors.Wrapf(err, "binding %s", key)
		}
	}
	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			bindErr = errs.Join(bindErr, v.BindPFlag(key, f))
		})
		if bindErr != nil {
			return Config{}, errors.Wrap(bindErr, "binding flags")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decoding configuration")
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	return cfg, cfg.Validate()
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var retErr error
	if c.Port <= 0 || c.Port > 65535 {
		retErr = errs.Join(retErr, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		retErr = errs.Join(retErr, fmt.Errorf("GRPC_PORT must be between 0 and 65535, got %d", c.GRPCPort))
	}
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			retErr = errs.Join(retErr, fmt.Errorf("You must define env MONGO_URI"))
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			retErr = errs.Join(retErr, fmt.Errorf("You must define env REDIS_ADDR"))
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			retErr = errs.Join(retErr, fmt.Errorf("You must define env SQLITE_PATH"))
		}
	case DriverMemory:
	default:
		retErr = errs.Join(retErr, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing LOG_LEVEL"))
	}
	return retErr
}

func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
