package helper

import (
	"errors"
	"io/fs"
	"smartpark/config"
	"smartpark/migrations"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionString(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "dev_"
	cfg.DB.Postgres.MigrationTable = "schema_migrations"
	cfg.DB.Postgres.Write.Username = "park"
	cfg.DB.Postgres.Write.Password = "p@ss"
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Name = "smartpark"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	assert.Equal(t,
		"postgres://park:p%40ss@db:5432/dev_smartpark?sslmode=disable&x-migrations-table=schema_migrations",
		connectionString(cfg),
	)
}

func TestRunner_UnknownAction(t *testing.T) {
	err := Runner(&config.Config{}, "sideways")

	assert.True(t, errors.Is(err, ErrUnknownAction))
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrations.Postgres, "postgres/*.up.sql")
	require.NoError(t, err)

	downs, err := fs.Glob(migrations.Postgres, "postgres/*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
