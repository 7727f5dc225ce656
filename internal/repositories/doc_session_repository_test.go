package repositories

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"doccraft/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.DocSession{}))
	return db
}

func testSession(i int, base time.Time) *models.DocSession {
	return &models.DocSession{
		ID:           fmt.Sprintf("s%02d", i),
		Timestamp:    base.Add(time.Duration(i) * time.Minute),
		DocType:      models.DocTypeUserGuide,
		Audience:     models.AudienceTechnical,
		Tone:         models.ToneFormal,
		InputSummary: "summary",
		GeneratedDoc: "# Doc",
	}
}

func TestDocSessionRepository_CreateEvictsOldestPastCap(t *testing.T) {
	ctx := context.Background()
	repo := NewDocSessionRepository(openTestDB(t))
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i <= HistoryLimit; i++ {
		require.NoError(t, repo.Create(ctx, testSession(i, base)))
	}

	list, err := repo.ListRecent(ctx)
	require.NoError(t, err)
	require.Len(t, list, HistoryLimit)
	assert.Equal(t, "s10", list[0].ID, "newest row first")
	assert.Equal(t, "s01", list[HistoryLimit-1].ID)

	evicted, err := repo.Get(ctx, "s00")
	require.NoError(t, err)
	assert.Nil(t, evicted, "oldest row is gone after the 11th create")
}

func TestDocSessionRepository_ListRecentOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewDocSessionRepository(openTestDB(t))
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Insertion order deliberately differs from timestamp order.
	for _, i := range []int{2, 0, 1} {
		require.NoError(t, repo.Create(ctx, testSession(i, base)))
	}

	list, err := repo.ListRecent(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "s02", list[0].ID)
	assert.Equal(t, "s01", list[1].ID)
	assert.Equal(t, "s00", list[2].ID)
}

func TestDocSessionRepository_GetMissingReturnsNil(t *testing.T) {
	repo := NewDocSessionRepository(openTestDB(t))

	session, err := repo.Get(context.Background(), "nope")

	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestDocSessionRepository_DeleteAndDeleteAll(t *testing.T) {
	ctx := context.Background()
	repo := NewDocSessionRepository(openTestDB(t))
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, testSession(0, base)))
	require.NoError(t, repo.Create(ctx, testSession(1, base)))

	require.NoError(t, repo.Delete(ctx, "s00"))
	list, err := repo.ListRecent(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "s01", list[0].ID)

	require.NoError(t, repo.DeleteAll(ctx))
	list, err = repo.ListRecent(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
