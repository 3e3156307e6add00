// Package repotest opens a migrated in-memory store for tests.
package repotest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	pkgdb "github.com/Skotchmaster/showcase/pkg/db"

	"github.com/Skotchmaster/showcase/internal/repo"
)

// New returns a repo over a fresh sqlite database that lives as long as the test.
func New(t testing.TB) *repo.GormRepo {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := pkgdb.Open(context.Background(), pkgdb.DriverSQLite, dsn)
	require.NoError(t, err)

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.Migrate(context.Background()))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return r
}
