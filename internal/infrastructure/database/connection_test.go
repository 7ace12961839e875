package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulse-inc/pulse/internal/shared/config"
)

func TestDialector_UnknownDriver(t *testing.T) {
	_, err := Dialector(&config.DatabaseConfig{Driver: "postgres", URL: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestDialector_Names(t *testing.T) {
	for _, driver := range []string{DriverSQLite, DriverSQLitePure, DriverLibSQL, DriverMySQL} {
		d, err := Dialector(&config.DatabaseConfig{Driver: driver, URL: "file:test.db"})
		require.NoError(t, err, driver)
		assert.NotNil(t, d)
	}
	assert.Equal(t, "mysql", GooseDialect(DriverMySQL))
	assert.Equal(t, "sqlite3", GooseDialect(DriverLibSQL))
}

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver: DriverSQLite,
		URL:    filepath.Join(t.TempDir(), "pulse.db"),
	}

	database, err := Open(cfg)
	require.NoError(t, err)
	assert.NoError(t, Ping(context.Background(), database))

	sqlDB, err := database.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestPing_Nil(t *testing.T) {
	assert.Error(t, Ping(context.Background(), nil))
}
