package repositories

import (
	"github.com/canvaspace/database"
	"github.com/canvaspace/models"
	"gorm.io/gorm"
)

// SpaceRepository handles database operations for spaces
type SpaceRepository struct{}

// NewSpaceRepository creates a new space repository instance
func NewSpaceRepository() *SpaceRepository {
	return &SpaceRepository{}
}

// SpaceWithCount is a space row joined with its canvas count.
type SpaceWithCount struct {
	models.Space
	CanvasCount int64 `json:"canvasCount"`
}

// FindByOwnerWithCounts retrieves all spaces of an owner together with
// the number of canvases junctioned to each, newest first.
func (r *SpaceRepository) FindByOwnerWithCounts(ownerID string) ([]SpaceWithCount, error) {
	var spaces []SpaceWithCount
	err := database.DB.Model(&models.Space{}).
		Select("spaces.*, COUNT(space_canvases.id) AS canvas_count").
		Joins("LEFT JOIN space_canvases ON space_canvases.space_id = spaces.id").
		Where("spaces.owner_id = ?", ownerID).
		Group("spaces.id").
		Order("spaces.created_at DESC").
		Find(&spaces).Error
	return spaces, err
}

// FindIDsByOwner resolves space ids for an owner, optionally filtered
// to a subset.
func (r *SpaceRepository) FindIDsByOwner(tx *gorm.DB, ownerID string, spaceIDs []string) ([]string, error) {
	query := tx.Model(&models.Space{}).Where("owner_id = ?", ownerID)
	if len(spaceIDs) > 0 {
		query = query.Where("id IN ?", spaceIDs)
	}
	var ids []string
	err := query.Pluck("id", &ids).Error
	return ids, err
}

// Create inserts a new space within the given transaction.
func (r *SpaceRepository) Create(tx *gorm.DB, space *models.Space) error {
	return tx.Create(space).Error
}

// Update modifies an existing space
func (r *SpaceRepository) Update(space *models.Space) error {
	return database.DB.Save(space).Error
}
