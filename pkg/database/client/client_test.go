package client

import (
	"testing"

	"entgo.io/ent/dialect"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLDSN(t *testing.T) {
	dsn := mysqlDSN(&Config{Host: "db", Port: 3306, Name: "interviews", Username: "svc", Password: "secret"})

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "db:3306", parsed.Addr)
	assert.Equal(t, "interviews", parsed.DBName)
	assert.Equal(t, "svc", parsed.User)
	assert.Equal(t, "secret", parsed.Passwd)
	assert.True(t, parsed.ParseTime)
	assert.True(t, parsed.ClientFoundRows)
}

func TestPostgresDSN(t *testing.T) {
	dsn := postgresDSN(&Config{Host: "pg", Port: 5432, Name: "interviews", Username: "svc", Password: "p@ss"})
	assert.Equal(t, "postgres://svc:p%40ss@pg:5432/interviews?sslmode=disable&timezone=UTC", dsn)

	dsn = postgresDSN(&Config{Host: "pg", Port: 5432, Name: "x", Username: "u", SSLMode: "require"})
	assert.Contains(t, dsn, "sslmode=require")
}

func TestDialect(t *testing.T) {
	d, err := Dialect(DriverMySQL)
	require.NoError(t, err)
	assert.Equal(t, dialect.MySQL, d)

	d, err = Dialect(DriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, dialect.Postgres, d)

	_, err = Dialect("oracle")
	assert.Error(t, err)

	_, err = NewDriver(&Config{Driver: DriverMemory})
	assert.Error(t, err)
}

func TestOpen_RegistersOnce(t *testing.T) {
	cfg := &Config{Driver: DriverPostgres, Host: "localhost", Port: 5432, Name: "x", MaxOpenConns: 3}

	drv, err := Open("postgres_test_once", cfg)
	require.NoError(t, err)
	defer drv.Close()
	assert.Equal(t, dialect.Postgres, drv.Dialect())
	assert.Equal(t, 3, drv.DB().Stats().MaxOpenConnections)

	again, err := Open("postgres_test_once", cfg)
	require.NoError(t, err)
	defer again.Close()
}
