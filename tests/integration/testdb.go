// Package integration runs the invoice engine against a real PostgreSQL
// started with testcontainers and migrated with the repository's SQL files.
package integration

import (
	"context"
	"database/sql"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/JostinQuilca/FoodApp/internal/infrastructure/migration"
	"github.com/JostinQuilca/FoodApp/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestDB is a migrated PostgreSQL database owned by one test
type TestDB struct {
	DB    *gorm.DB
	SqlDB *sql.DB
	DSN   string
}

// NewTestDB starts a fresh container, applies every migration and registers
// cleanup. Tests using it must skip in -short mode.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("foodapp_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := persistence.Open(gormpostgres.Open(dsn), nil)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(10)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.New(sqlDB, migrationsDir(t), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())

	return &TestDB{DB: db, SqlDB: sqlDB, DSN: dsn}
}

// Exec runs raw SQL and fails the test on error
func (tdb *TestDB) Exec(t *testing.T, query string, args ...any) {
	t.Helper()
	require.NoError(t, tdb.DB.Exec(query, args...).Error)
}

func migrationsDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	dir, err := filepath.Abs(filepath.Join(filepath.Dir(file), "..", "..", "migrations"))
	require.NoError(t, err)
	return dir
}
