package services

import (
	"testing"

	"github.com/canvaspace/database"
	"github.com/canvaspace/dto"
	"github.com/canvaspace/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points database.DB at a fresh in-memory sqlite database
// with the full schema migrated. TranslateError matches the production
// configuration so the duplicate-key retry path behaves the same.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models...))

	database.DB = db
}

// newTestServices wires the service graph without external
// collaborators.
func newTestServices(t *testing.T) (*SpaceService, *CanvasService, *VersionService, *PurgeService) {
	t.Helper()
	setupTestDB(t)

	purgeService := NewPurgeService(nil, nil)
	return NewSpaceService(purgeService),
		NewCanvasService(purgeService),
		NewVersionService(nil),
		purgeService
}

// createTestSpace bootstraps a space with its default canvas.
func createTestSpace(t *testing.T, spaceService *SpaceService, ownerID, name string) dto.SpaceDetail {
	t.Helper()
	detail, err := spaceService.CreateSpace(ownerID, dto.CreateSpaceRequest{Name: name})
	require.NoError(t, err)
	require.NotNil(t, detail.DefaultCanvas)
	return detail
}

// assertSingleActive checks the core invariant: a version group never
// holds more than one active row, and in steady state exactly one.
func assertSingleActive(t *testing.T, groupID string) {
	t.Helper()
	var count int64
	err := database.DB.Model(&models.Canvas{}).
		Where("version_group_id = ? AND is_active = ?", groupID, true).
		Count(&count).Error
	require.NoError(t, err)
	require.Equal(t, int64(1), count, "group %s must have exactly one active version", groupID)
}

// assertContiguousSort checks that a space's sort orders form 1..N
// with no duplicates.
func assertContiguousSort(t *testing.T, spaceID string) {
	t.Helper()
	var orders []int
	err := database.DB.Model(&models.SpaceCanvas{}).
		Where("space_id = ?", spaceID).
		Order("sort_order ASC").
		Pluck("sort_order", &orders).Error
	require.NoError(t, err)
	for i, order := range orders {
		require.Equal(t, i+1, order, "space %s sort orders must be contiguous, got %v", spaceID, orders)
	}
}
