package telemetry_test

import (
	"testing"

	"github.com/JostinQuilca/FoodApp/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type tracedRow struct {
	ID   int64
	Name string
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	return db
}

func TestRegisterDBTracing_EmitsQuerySpans(t *testing.T) {
	sr := setupTestTracer(t)
	db := openSQLite(t)

	err := telemetry.RegisterDBTracing(db, telemetry.DBTracingConfig{Enabled: true, DBName: "foodapp"}, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, db.Create(&tracedRow{ID: 1, Name: "Ceviche"}).Error)
	var row tracedRow
	require.NoError(t, db.First(&row, 1).Error)

	spans := sr.Ended()
	require.NotEmpty(t, spans)
	for _, s := range spans {
		for _, kv := range s.Attributes() {
			if kv.Key == "db.statement" {
				assert.NotContains(t, kv.Value.AsString(), "Ceviche")
			}
		}
	}
}

func TestRegisterDBTracing_Disabled(t *testing.T) {
	sr := setupTestTracer(t)
	db := openSQLite(t)

	require.NoError(t, telemetry.RegisterDBTracing(db, telemetry.DBTracingConfig{}, zap.NewNop()))
	require.NoError(t, db.Create(&tracedRow{ID: 1, Name: "Ceviche"}).Error)
	assert.Empty(t, sr.Ended())
}
