package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles(t *testing.T) {
	for _, dialect := range []string{"mysql", "postgres"} {
		files, err := Files(dialect)
		require.NoError(t, err)
		assert.Equal(t, []string{"00001_create_interview_tables.sql"}, files)

		body, err := migrations.ReadFile("migrations/" + dialect + "/" + files[0])
		require.NoError(t, err)
		for _, table := range []string{"interview_configs", "interviews", "questions", "interview_results", "interview_reports"} {
			assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table+" (")
		}
		assert.Contains(t, string(body), "-- +goose Up")
		assert.Contains(t, string(body), "-- +goose Down")
	}
}

func TestMigrate_UnknownDialect(t *testing.T) {
	err := Migrate(context.Background(), nil, "sqlite3")
	assert.EqualError(t, err, `no migrations for dialect "sqlite3"`)
}
