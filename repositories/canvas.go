package repositories

import (
	"github.com/canvaspace/database"
	"github.com/canvaspace/models"
	"gorm.io/gorm"
)

// CanvasRepository handles database operations for canvas version rows
type CanvasRepository struct{}

// NewCanvasRepository creates a new canvas repository instance
func NewCanvasRepository() *CanvasRepository {
	return &CanvasRepository{}
}

// FindByID retrieves a single version row by id.
func (r *CanvasRepository) FindByID(tx *gorm.DB, id string) (models.Canvas, error) {
	if tx == nil {
		tx = database.DB
	}
	var canvas models.Canvas
	err := tx.First(&canvas, "id = ?", id).Error
	return canvas, err
}

// FindByIDInGroup retrieves a version row and checks it belongs to the
// given group.
func (r *CanvasRepository) FindByIDInGroup(tx *gorm.DB, id, groupID string) (models.Canvas, error) {
	var canvas models.Canvas
	err := tx.First(&canvas, "id = ? AND version_group_id = ?", id, groupID).Error
	return canvas, err
}

// FindByGroup retrieves all version rows of a group, oldest version
// first (version index ascending, creation date as tie-breaker).
func (r *CanvasRepository) FindByGroup(groupID string) ([]models.Canvas, error) {
	var canvases []models.Canvas
	err := database.DB.
		Where("version_group_id = ?", groupID).
		Order("version_index ASC, created_at ASC").
		Find(&canvases).Error
	return canvases, err
}

// CountInGroup counts the version rows of a group.
func (r *CanvasRepository) CountInGroup(tx *gorm.DB, groupID string) (int64, error) {
	var count int64
	err := tx.Model(&models.Canvas{}).Where("version_group_id = ?", groupID).Count(&count).Error
	return count, err
}

// MaxVersionIndex returns the highest version index in a group, or 0
// for an empty group. Always computed server-side; never trust a
// client-supplied index.
func (r *CanvasRepository) MaxVersionIndex(tx *gorm.DB, groupID string) (int, error) {
	var max int
	err := tx.Model(&models.Canvas{}).
		Where("version_group_id = ?", groupID).
		Select("COALESCE(MAX(version_index), 0)").
		Scan(&max).Error
	return max, err
}

// DeactivateGroup clears the active flag on every row of a group. Uses
// the (version_group_id, is_active) index.
func (r *CanvasRepository) DeactivateGroup(tx *gorm.DB, groupID string) error {
	return tx.Model(&models.Canvas{}).
		Where("version_group_id = ? AND is_active = ?", groupID, true).
		Update("is_active", false).Error
}

// Create inserts a new version row within the given transaction.
func (r *CanvasRepository) Create(tx *gorm.DB, canvas *models.Canvas) error {
	return tx.Create(canvas).Error
}

// DeleteByID hard-deletes a single version row.
func (r *CanvasRepository) DeleteByID(tx *gorm.DB, id string) error {
	return tx.Delete(&models.Canvas{}, "id = ?", id).Error
}

// DeleteGroup hard-deletes every version row of a group and returns
// the ids of the deleted rows for out-of-band cleanup.
func (r *CanvasRepository) DeleteGroup(tx *gorm.DB, groupID string) ([]string, error) {
	var ids []string
	if err := tx.Model(&models.Canvas{}).Where("version_group_id = ?", groupID).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if err := tx.Delete(&models.Canvas{}, "version_group_id = ?", groupID).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
