package client

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"slices"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	sqltrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/database/sql"
)

var registerMu sync.Mutex

// Dialect maps the configured driver to its ent dialect.
func Dialect(driverName string) (string, error) {
	switch driverName {
	case DriverMySQL:
		return dialect.MySQL, nil
	case DriverPostgres:
		return dialect.Postgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driverName)
	}
}

// Open initializes a new Ent SQL driver from config. name is the database/sql
// driver name the connection is registered under.
func Open(name string, cfg *Config) (*entsql.Driver, error) {
	d, err := Dialect(cfg.Driver)
	if err != nil {
		return nil, err
	}
	drv, err := NewDriver(cfg)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	if cfg.TracingEnabled {
		sqltrace.Register(name, drv, sqltrace.WithServiceName(os.Getenv("DD_SERVICE")))
		db, err = sqltrace.Open(name, "", sqltrace.WithServiceName(os.Getenv("DD_SERVICE")))
	} else {
		register(name, drv)
		db, err = sql.Open(name, "")
	}
	if err != nil {
		return nil, err
	}

	entDrv := entsql.OpenDB(d, db)
	if cfg.MaxIdleConns > 0 {
		entDrv.DB().SetMaxIdleConns(int(cfg.MaxIdleConns))
	}
	if cfg.MaxOpenConns > 0 {
		entDrv.DB().SetMaxOpenConns(int(cfg.MaxOpenConns))
	}
	if cfg.ConnMaxIdleTime > 0 {
		entDrv.DB().SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
	if cfg.ConnMaxLifeTime > 0 {
		entDrv.DB().SetConnMaxLifetime(cfg.ConnMaxLifeTime)
	}
	return entDrv, nil
}

// register is sql.Register without the panic on a repeated name.
func register(name string, drv driver.Driver) {
	registerMu.Lock()
	defer registerMu.Unlock()
	if slices.Contains(sql.Drivers(), name) {
		return
	}
	sql.Register(name, drv)
}
