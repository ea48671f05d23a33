package persistence

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendRecord(t *testing.T, repo *GormAuditRepository, actor, entityID string, at time.Time, after json.RawMessage) *audit.Record {
	t.Helper()
	record, err := audit.NewRecord(actor, audit.ActionInsert, "invoice", entityID, nil, after, at)
	require.NoError(t, err)
	require.NoError(t, repo.Append(context.Background(), record))
	return record
}

func TestGormAuditRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAuditRepository(db)
	ctx := context.Background()

	first := appendRecord(t, repo, "S1", "1", testDay, json.RawMessage(`{"status":"EMITIDA"}`))
	second := appendRecord(t, repo, "S1", "2", testDay.Add(time.Minute), nil)
	third := appendRecord(t, repo, "A1", "1", testDay.Add(2*time.Minute), json.RawMessage(`{"status":"PAGADA"}`))

	t.Run("ids are assigned in insertion order", func(t *testing.T) {
		assert.NotZero(t, first.ID)
		assert.Greater(t, second.ID, first.ID)
		assert.Greater(t, third.ID, second.ID)
	})

	t.Run("find all newest first", func(t *testing.T) {
		records, err := repo.FindAll(ctx, audit.Filter{})
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, third.ID, records[0].ID)
		assert.Equal(t, first.ID, records[2].ID)
	})

	t.Run("find by actor", func(t *testing.T) {
		records, err := repo.FindByActor(ctx, "S1", audit.Filter{})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "2", records[0].EntityID)
	})

	t.Run("find by entity", func(t *testing.T) {
		records, err := repo.FindByEntity(ctx, "invoice", "1", audit.Filter{})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "A1", records[0].ActorID)
		assert.Equal(t, "S1", records[1].ActorID)
	})

	t.Run("pagination", func(t *testing.T) {
		records, err := repo.FindAll(ctx, audit.Filter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, first.ID, records[0].ID)
	})

	t.Run("snapshots round trip", func(t *testing.T) {
		records, err := repo.FindByEntity(ctx, "invoice", "2", audit.Filter{})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Nil(t, records[0].Before)
		assert.Nil(t, records[0].After)

		records, err = repo.FindByEntity(ctx, "invoice", "1", audit.Filter{PageSize: 1})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.JSONEq(t, `{"status":"PAGADA"}`, string(records[0].After))
		assert.Equal(t, audit.ActionInsert, records[0].Action)
		assert.True(t, records[0].OccurredAt.Equal(testDay.Add(2*time.Minute)))
	})
}
