package migrations

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestRun_AppliesSchemaToSQLite(t *testing.T) {
	db, err := sql.Open("sqlite", "file:migrations_up?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, Run(ctx, db, "sqlite3"))

	_, err = db.ExecContext(ctx, `INSERT INTO users (username, password) VALUES ('alice', 'h')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO users (username, password) VALUES ('alice', 'h2')`)
	assert.Error(t, err, "username must be unique")

	// a second run is a no-op
	require.NoError(t, Run(ctx, db, "sqlite3"))
}

func TestRun_UsesEmbeddedDir(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, d string, opts ...goose.OptionsFunc) error {
		if d != dir {
			return errors.New("unexpected dir")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	require.NoError(t, Run(context.Background(), db, "postgres"))
}

func TestRun_PropagatesGooseError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, d string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	err = Run(context.Background(), db, "postgres")
	assert.EqualError(t, err, "migration error: boom")
}

func TestRun_BadDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Error(t, Run(context.Background(), db, "cobol"))
}
