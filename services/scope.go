package services

import (
	"errors"

	"github.com/canvaspace/models"
	"github.com/canvaspace/utils"
	"gorm.io/gorm"
)

// Scope resolution shared by the space, canvas and version services.
// Every mutating operation resolves its owner/space/canvas triple
// before touching anything; a triple that does not resolve is a
// NotFound, never a partial effect.

func resolveSpace(tx *gorm.DB, ownerID, spaceID string) (models.Space, error) {
	var space models.Space
	err := tx.First(&space, "id = ? AND owner_id = ?", spaceID, ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return space, utils.NewNotFound("space not found")
	}
	return space, err
}

// resolveScopedCanvas resolves a canvas version row by id and checks
// that its version group is junctioned to the given space of the given
// owner. The returned junction row carries the canvas's sort order.
func resolveScopedCanvas(tx *gorm.DB, ownerID, spaceID, canvasID string) (models.Canvas, models.SpaceCanvas, error) {
	var canvas models.Canvas
	var junction models.SpaceCanvas

	if _, err := resolveSpace(tx, ownerID, spaceID); err != nil {
		return canvas, junction, err
	}

	err := tx.First(&canvas, "id = ?", canvasID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return canvas, junction, utils.NewNotFound("canvas not found")
	}
	if err != nil {
		return canvas, junction, err
	}

	err = tx.First(&junction, "space_id = ? AND version_group_id = ?", spaceID, canvas.VersionGroupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return canvas, junction, utils.NewNotFound("canvas not found in space")
	}
	return canvas, junction, err
}
