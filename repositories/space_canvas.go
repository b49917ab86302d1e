package repositories

import (
	"github.com/canvaspace/database"
	"github.com/canvaspace/models"
	"gorm.io/gorm"
)

// SpaceCanvasRepository handles database operations for the
// space-canvas junction table
type SpaceCanvasRepository struct{}

// NewSpaceCanvasRepository creates a new junction repository instance
func NewSpaceCanvasRepository() *SpaceCanvasRepository {
	return &SpaceCanvasRepository{}
}

// FindBySpace retrieves the junction rows of a space ordered by sort
// order, with the pointed-to canvas preloaded.
func (r *SpaceCanvasRepository) FindBySpace(spaceID string) ([]models.SpaceCanvas, error) {
	var rows []models.SpaceCanvas
	err := database.DB.
		Preload("Canvas").
		Where("space_id = ?", spaceID).
		Order("sort_order ASC").
		Find(&rows).Error
	return rows, err
}

// FindBySpaceAndGroup retrieves the single junction row binding a
// space to a logical canvas.
func (r *SpaceCanvasRepository) FindBySpaceAndGroup(tx *gorm.DB, spaceID, groupID string) (models.SpaceCanvas, error) {
	if tx == nil {
		tx = database.DB
	}
	var row models.SpaceCanvas
	err := tx.First(&row, "space_id = ? AND version_group_id = ?", spaceID, groupID).Error
	return row, err
}

// CountBySpace counts the junction rows of a space.
func (r *SpaceCanvasRepository) CountBySpace(tx *gorm.DB, spaceID string) (int64, error) {
	var count int64
	err := tx.Model(&models.SpaceCanvas{}).Where("space_id = ?", spaceID).Count(&count).Error
	return count, err
}

// CountByGroup counts the junction rows referencing a group anywhere,
// across all spaces. This is the reference-existence check the purge
// service recomputes instead of keeping a live reference-count column.
func (r *SpaceCanvasRepository) CountByGroup(tx *gorm.DB, groupID string) (int64, error) {
	var count int64
	err := tx.Model(&models.SpaceCanvas{}).Where("version_group_id = ?", groupID).Count(&count).Error
	return count, err
}

// MaxSortOrder returns the highest sort order within a space, or 0 for
// an empty space.
func (r *SpaceCanvasRepository) MaxSortOrder(tx *gorm.DB, spaceID string) (int, error) {
	var max int
	err := tx.Model(&models.SpaceCanvas{}).
		Where("space_id = ?", spaceID).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&max).Error
	return max, err
}

// Create inserts a new junction row within the given transaction.
func (r *SpaceCanvasRepository) Create(tx *gorm.DB, row *models.SpaceCanvas) error {
	return tx.Create(row).Error
}

// RepointGroup swaps the canvas pointer of every junction row bound to
// a group to the given version row. Activation changes which version
// is live for every space that includes the group.
func (r *SpaceCanvasRepository) RepointGroup(tx *gorm.DB, groupID, canvasID string) error {
	return tx.Model(&models.SpaceCanvas{}).
		Where("version_group_id = ?", groupID).
		Update("canvas_id", canvasID).Error
}

// DeleteByID removes a single junction row.
func (r *SpaceCanvasRepository) DeleteByID(tx *gorm.DB, id string) error {
	return tx.Delete(&models.SpaceCanvas{}, "id = ?", id).Error
}

// DeleteBySpaces removes every junction row of the given spaces.
func (r *SpaceCanvasRepository) DeleteBySpaces(tx *gorm.DB, spaceIDs []string) error {
	return tx.Delete(&models.SpaceCanvas{}, "space_id IN ?", spaceIDs).Error
}

// GroupIDsBySpaces collects the distinct version groups junctioned to
// the given spaces.
func (r *SpaceCanvasRepository) GroupIDsBySpaces(tx *gorm.DB, spaceIDs []string) ([]string, error) {
	var groupIDs []string
	err := tx.Model(&models.SpaceCanvas{}).
		Distinct("version_group_id").
		Where("space_id IN ?", spaceIDs).
		Pluck("version_group_id", &groupIDs).Error
	return groupIDs, err
}
