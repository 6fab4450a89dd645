package client

import (
	"database/sql/driver"
	"fmt"
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/spf13/viper"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Driver          string
	Username        string
	Password        string
	Host            string
	Port            uint32
	Name            string
	SSLMode         string
	TracingEnabled  bool
	MaxOpenConns    uint32
	MaxIdleConns    uint32
	ConnMaxIdleTime time.Duration
	ConnMaxLifeTime time.Duration
	Migrate         bool
}

func ReadConfig() *Config {
	// Enable environment variable usage
	viper.BindEnv("db.driver", "DB_DRIVER")
	viper.BindEnv("db.user", "DB_USER")
	viper.BindEnv("db.password", "DB_PASSWORD")
	viper.BindEnv("db.host", "DB_HOST")
	viper.BindEnv("db.port", "DB_PORT")
	viper.BindEnv("db.name", "DB_NAME")

	return &Config{
		Driver:          viper.GetString("db.driver"),
		Username:        viper.GetString("db.user"),
		Password:        viper.GetString("db.password"),
		Host:            viper.GetString("db.host"),
		Port:            viper.GetUint32("db.port"),
		Name:            viper.GetString("db.name"),
		SSLMode:         viper.GetString("db.sslmode"),
		TracingEnabled:  viper.GetBool("db.tracing_enabled"),
		MaxOpenConns:    viper.GetUint32("db.max_open_conns"),
		MaxIdleConns:    viper.GetUint32("db.max_idle_conns"),
		ConnMaxIdleTime: time.Duration(viper.GetInt64("db.conn_max_idle_time")) * time.Minute,
		ConnMaxLifeTime: time.Duration(viper.GetInt64("db.conn_max_life_time")) * time.Minute,
		Migrate:         viper.GetBool("db.migrate"),
	}
}

// NewDriver returns the database/sql driver for config.Driver. The returned
// driver ignores the DSN given to Open and always connects with config.
func NewDriver(config *Config) (driver.Driver, error) {
	switch config.Driver {
	case DriverMySQL:
		return &Driver{config: config}, nil
	case DriverPostgres:
		return &pgDriver{dsn: postgresDSN(config)}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}
}

type Driver struct {
	drv    mysql.MySQLDriver
	config *Config
}

func (d *Driver) Open(_ string) (driver.Conn, error) {
	return d.drv.Open(mysqlDSN(d.config))
}

func mysqlDSN(config *Config) string {
	mysqlConfig := mysql.NewConfig()
	mysqlConfig.Net = "tcp"
	mysqlConfig.Addr = fmt.Sprintf("%s:%d", config.Host, config.Port)
	mysqlConfig.DBName = config.Name
	mysqlConfig.User = config.Username
	mysqlConfig.Passwd = config.Password
	mysqlConfig.AllowNativePasswords = true
	mysqlConfig.ParseTime = true
	mysqlConfig.Loc = time.UTC
	// RowsAffected must count matched rows so that an update with unchanged values is not a miss.
	mysqlConfig.ClientFoundRows = true
	mysqlConfig.MultiStatements = true
	return mysqlConfig.FormatDSN()
}

type pgDriver struct {
	drv pq.Driver
	dsn string
}

func (d *pgDriver) Open(_ string) (driver.Conn, error) {
	return d.drv.Open(d.dsn)
}

func postgresDSN(config *Config) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(config.Username, config.Password),
		Host:   fmt.Sprintf("%s:%d", config.Host, config.Port),
		Path:   "/" + config.Name,
	}
	q := u.Query()
	sslMode := config.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	q.Set("sslmode", sslMode)
	// Timestamps come back in UTC, matching what was written.
	q.Set("timezone", "UTC")
	u.RawQuery = q.Encode()
	return u.String()
}
