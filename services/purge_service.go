package services

import (
	"context"
	"time"

	"github.com/canvaspace/database"
	"github.com/canvaspace/lib/publish"
	"github.com/canvaspace/logutils"
	"github.com/canvaspace/models"
	"github.com/canvaspace/repositories"
	"github.com/canvaspace/utils"
	"gorm.io/gorm"
)

// AssetRemover removes the out-of-band file storage tied to a canvas.
type AssetRemover interface {
	RemoveCanvasAssets(ctx context.Context, canvasID string) error
}

// PurgeService deletes spaces together with the canvases that become
// orphaned. The two-pass "collect candidates, filter by continued
// reference, delete" protocol guarantees a canvas group is never
// deleted while any space still points at it; reference existence is
// recomputed from the junction table at delete time rather than kept
// in a counter column.
type PurgeService struct {
	spaceRepo       *repositories.SpaceRepository
	canvasRepo      *repositories.CanvasRepository
	spaceCanvasRepo *repositories.SpaceCanvasRepository
	assets          AssetRemover
	publishStore    publish.Store
}

// NewPurgeService creates a new purge service instance. Both
// collaborators may be nil, which disables the corresponding cleanup.
func NewPurgeService(assets AssetRemover, publishStore publish.Store) *PurgeService {
	return &PurgeService{
		spaceRepo:       repositories.NewSpaceRepository(),
		canvasRepo:      repositories.NewCanvasRepository(),
		spaceCanvasRepo: repositories.NewSpaceCanvasRepository(),
		assets:          assets,
		publishStore:    publishStore,
	}
}

// PurgeSpaces deletes the given spaces of an owner, or every space of
// the owner when spaceIDs is empty. Canvas groups still junctioned to
// a surviving space are left intact; the rest are hard-deleted with
// their child records. External cleanup runs after the transaction
// commits and never rolls it back.
func (s *PurgeService) PurgeSpaces(ownerID string, spaceIDs []string) error {
	var deletedCanvasIDs []string
	var deletedGroupIDs []string

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		targetIDs, err := s.spaceRepo.FindIDsByOwner(tx, ownerID, spaceIDs)
		if err != nil {
			return err
		}
		if len(targetIDs) == 0 {
			if len(spaceIDs) > 0 {
				return utils.NewNotFound("space not found")
			}
			return nil
		}

		// Pass 1: collect every group junctioned to the doomed spaces.
		candidateGroups, err := s.spaceCanvasRepo.GroupIDsBySpaces(tx, targetIDs)
		if err != nil {
			return err
		}

		if err := s.spaceCanvasRepo.DeleteBySpaces(tx, targetIDs); err != nil {
			return err
		}
		if err := tx.Delete(&models.Space{}, "id IN ?", targetIDs).Error; err != nil {
			return err
		}

		// Pass 2: keep only groups with no remaining reference anywhere.
		for _, groupID := range candidateGroups {
			refs, err := s.spaceCanvasRepo.CountByGroup(tx, groupID)
			if err != nil {
				return err
			}
			if refs > 0 {
				continue
			}

			canvasIDs, err := s.canvasRepo.DeleteGroup(tx, groupID)
			if err != nil {
				return err
			}
			deletedCanvasIDs = append(deletedCanvasIDs, canvasIDs...)
			deletedGroupIDs = append(deletedGroupIDs, groupID)
		}

		return deleteCanvasChildRecords(tx, deletedCanvasIDs)
	})
	if err != nil {
		return err
	}

	s.CleanupCanvases(deletedCanvasIDs, deletedGroupIDs)
	return nil
}

// CleanupCanvases removes the external traces of already-deleted
// canvases: file storage objects and publish-link targets. Best-effort
// after commit; per-id failures are logged, never retried
// synchronously.
func (s *PurgeService) CleanupCanvases(canvasIDs, groupIDs []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if s.assets != nil {
		for _, canvasID := range canvasIDs {
			if err := s.assets.RemoveCanvasAssets(ctx, canvasID); err != nil {
				logutils.Log.WithFields(logutils.Fields{
					"canvas": canvasID,
				}).WithError(err).Warn("failed to remove canvas assets")
			}
		}
	}

	if s.publishStore != nil {
		for _, groupID := range groupIDs {
			if err := s.publishStore.RemoveGroup(ctx, groupID); err != nil {
				logutils.Log.WithFields(logutils.Fields{
					"group": groupID,
				}).WithError(err).Warn("failed to remove publish link")
			}
		}
	}
}

// deleteCanvasChildRecords removes the dependent records of the given
// canvases: chat messages, feedback, upsert history and leads.
func deleteCanvasChildRecords(tx *gorm.DB, canvasIDs []string) error {
	if len(canvasIDs) == 0 {
		return nil
	}
	for _, model := range []interface{}{
		&models.ChatMessage{},
		&models.Feedback{},
		&models.UpsertHistory{},
		&models.Lead{},
	} {
		if err := tx.Where("canvas_id IN ?", canvasIDs).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
