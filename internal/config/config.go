package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultPath = "./config/config.yaml"

// Load reads .env (if any), the optional yaml file at path and the environment
// into the global viper instance. Environment keys use "_" for ".",
// e.g. SERVER_GWPORT overrides server.gwport.
func Load(path string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	SetDefaults(viper.GetViper())

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
	}

	// Legacy env names still honored by older deployments.
	_ = viper.BindEnv("server.gwport", "SERVER_GWPORT", "PORT")
	_ = viper.BindEnv("server.cors_origin", "SERVER_CORS_ORIGIN", "CORS_ORIGIN")
	_ = viper.BindEnv("redis.address", "REDIS_ADDRESS", "REDIS_URL")
	return nil
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "50051")
	v.SetDefault("server.gwport", "3003")
	v.SetDefault("server.sseport", "3004")
	v.SetDefault("server.cors_origin", "*")
	v.SetDefault("server.environment", "development")

	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.name", "interviews")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_idle_time", 5)
	v.SetDefault("db.conn_max_life_time", 30)
	v.SetDefault("db.migrate", true)

	v.SetDefault("bus.transport", "redis")
	v.SetDefault("bus.request_timeout", 5*time.Second)
	v.SetDefault("bus.retry_attempts", 5)
	v.SetDefault("bus.retry_delay", time.Second)
	v.SetDefault("bus.emit_workers", 4)
	v.SetDefault("bus.emit_queue_size", 256)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.dial_timeout", 10*time.Second)
	v.SetDefault("redis.read_timeout", 5*time.Second)
	v.SetDefault("redis.write_timeout", 5*time.Second)

	v.SetDefault("rabbitmq.address", "localhost")
	v.SetDefault("rabbitmq.port", 5672)
	v.SetDefault("rabbitmq.username", "guest")
	v.SetDefault("rabbitmq.password", "guest")
	v.SetDefault("rabbitmq.consume_queue", "interview_service")
	v.SetDefault("rabbitmq.public_queue", "interview_events")
	v.SetDefault("rabbitmq.max_consumer", 10)

	v.SetDefault("log.level", "info")
}
