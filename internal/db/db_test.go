package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndMigrate(t *testing.T) {
	database, err := Init("sqlite", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	defer database.Close()

	require.NoError(t, RunMigrations(database.DB, "sqlite"))

	// The schema is queryable after migrating up.
	var count int
	require.NoError(t, database.Get(&count, `SELECT COUNT(*) FROM users`))
	assert.Zero(t, count)

	require.NoError(t, MigrateDown(database.DB, "sqlite"))
	assert.Error(t, database.Get(&count, `SELECT COUNT(*) FROM users`))
}

func TestGetDialect(t *testing.T) {
	assert.Equal(t, "sqlite3", getDialect("sqlite"))
	assert.Equal(t, "postgres", getDialect("pgx"))
	assert.Equal(t, "mysql", getDialect("mysql"))
}
