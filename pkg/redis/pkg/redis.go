package redis

import (
	"context"
	"time"

	"github.com/spf13/viper"
	redis "github.com/redis/go-redis/v9"
	redistrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/redis/go-redis.v9"
)

type Config struct {
	Address        string
	Username       string
	Password       string
	DB             int
	MaxRetries     int
	DialTimeout    time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	PoolSize       int
	ClientName     string
	Debug          bool
	TracingEnabled bool
}

func ReadConfig() *Config {
	return &Config{
		Address:        viper.GetString("redis.address"),
		Username:       viper.GetString("redis.username"),
		Password:       viper.GetString("redis.password"),
		DB:             viper.GetInt("redis.db"),
		MaxRetries:     viper.GetInt("redis.max_retries"),
		DialTimeout:    viper.GetDuration("redis.dial_timeout"),
		ReadTimeout:    viper.GetDuration("redis.read_timeout"),
		WriteTimeout:   viper.GetDuration("redis.write_timeout"),
		PoolSize:       viper.GetInt("redis.pool_size"),
		ClientName:     viper.GetString("redis.client_name"),
		Debug:          viper.GetBool("redis.debug"),
		TracingEnabled: viper.GetBool("redis.tracing_enabled"),
	}
}

// New builds a client and pings it once.
func New(ctx context.Context, config *Config, opts ...Option) (*redis.Client, error) {
	o := &Opt{
		Options: &redis.Options{
			Addr: config.Address,
		},
	}
	if len(config.Username) > 0 {
		o.Username = config.Username
	}
	if len(config.Password) > 0 {
		o.Password = config.Password
	}
	if config.DB > 0 {
		o.DB = config.DB
	}
	if config.MaxRetries != 0 {
		o.MaxRetries = config.MaxRetries
	}
	if config.DialTimeout != 0 {
		o.DialTimeout = config.DialTimeout
	}
	if config.ReadTimeout != 0 {
		o.ReadTimeout = config.ReadTimeout
	}
	if config.WriteTimeout != 0 {
		o.WriteTimeout = config.WriteTimeout
	}
	if config.PoolSize != 0 {
		o.PoolSize = config.PoolSize
	}
	if len(config.ClientName) > 0 {
		o.ClientName = config.ClientName
	}

	for _, o0 := range opts {
		o0.Apply(o)
	}

	client := redis.NewClient(o.Options)
	client.AddHook(&debugHook{config.Debug})

	if config.TracingEnabled {
		redistrace.WrapClient(client, redistrace.WithServiceName("redis"))
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

type Opt struct {
	*redis.Options
}

type Option interface {
	Apply(o *Opt)
}

type OptionFunc func(*Opt)

func (f OptionFunc) Apply(o *Opt) {
	f(o)
}

// Limiter interface used to implemented circuit breaker or rate limiter.
func Limiter(limiter redis.Limiter) Option {
	return OptionFunc(func(o *Opt) {
		o.Limiter = limiter
	})
}
