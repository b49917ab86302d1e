package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canvaspace/database"
	"github.com/canvaspace/dto"
	"github.com/canvaspace/lib/publish"
	"github.com/canvaspace/logutils"
	"github.com/canvaspace/models"
	"github.com/canvaspace/repositories"
	"github.com/canvaspace/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// createVersionAttempts bounds the retry on the version-index unique
// constraint when concurrent requests compute the same next index.
const createVersionAttempts = 3

// VersionService manages the version rows of a canvas group and
// enforces "exactly one active version per group".
type VersionService struct {
	canvasRepo      *repositories.CanvasRepository
	spaceCanvasRepo *repositories.SpaceCanvasRepository
	publishStore    publish.Store
}

// NewVersionService creates a new version service instance. The
// publish store may be nil when publishing is disabled.
func NewVersionService(publishStore publish.Store) *VersionService {
	return &VersionService{
		canvasRepo:      repositories.NewCanvasRepository(),
		spaceCanvasRepo: repositories.NewSpaceCanvasRepository(),
		publishStore:    publishStore,
	}
}

// ListVersions retrieves the version history of a canvas group, sorted
// by version index ascending.
func (s *VersionService) ListVersions(ownerID, spaceID, canvasID string) (dto.VersionListResponse, error) {
	var response dto.VersionListResponse

	canvas, _, err := resolveScopedCanvas(database.DB, ownerID, spaceID, canvasID)
	if err != nil {
		return response, err
	}

	versions, err := s.canvasRepo.FindByGroup(canvas.VersionGroupID)
	if err != nil {
		return response, err
	}

	response.Versions = make([]dto.VersionResponse, 0, len(versions))
	for _, version := range versions {
		response.Versions = append(response.Versions, dto.NewVersionResponse(version))
	}
	return response, nil
}

// CreateVersion snapshots a new version of the canvas group resolved
// from canvasID. The base row's content is cloned; the new row gets a
// fresh version uuid and the next version index. With activate set the
// new row becomes live for every space that includes the group.
//
// The next index is always computed server-side inside the
// transaction. Two racing requests can still compute the same value;
// the unique index on (version_group_id, version_index) rejects the
// loser and the whole transaction is retried.
func (s *VersionService) CreateVersion(ownerID, spaceID, canvasID string, req dto.CreateVersionRequest) (dto.VersionResponse, error) {
	var response dto.VersionResponse

	label, err := utils.ValidateOptionalName("label", req.Label)
	if err != nil {
		return response, err
	}
	description, err := utils.ValidateDescription("description", req.Description)
	if err != nil {
		return response, err
	}

	var created models.Canvas
	var groupID string

	for attempt := 1; ; attempt++ {
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			base, _, err := resolveScopedCanvas(tx, ownerID, spaceID, canvasID)
			if err != nil {
				return err
			}
			groupID = base.VersionGroupID

			if req.Activate {
				if err := s.canvasRepo.DeactivateGroup(tx, groupID); err != nil {
					return err
				}
			}

			nextIndex, err := s.canvasRepo.MaxVersionIndex(tx, groupID)
			if err != nil {
				return err
			}
			nextIndex++

			versionLabel := label
			if versionLabel == "" {
				versionLabel = fmt.Sprintf("v%d", nextIndex)
			}

			created = models.Canvas{
				Name:               base.Name,
				FlowData:           base.FlowData,
				Deployed:           base.Deployed,
				IsPublic:           base.IsPublic,
				APIConfig:          base.APIConfig,
				ChatbotConfig:      base.ChatbotConfig,
				Category:           base.Category,
				VersionGroupID:     groupID,
				VersionUUID:        uuid.NewString(),
				VersionLabel:       versionLabel,
				VersionDescription: description,
				VersionIndex:       nextIndex,
				IsActive:           req.Activate,
			}
			if err := s.canvasRepo.Create(tx, &created); err != nil {
				return err
			}

			if req.Activate {
				if err := s.spaceCanvasRepo.RepointGroup(tx, groupID, created.ID); err != nil {
					return err
				}
			}
			return nil
		})

		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) || attempt >= createVersionAttempts {
			break
		}
		logutils.Log.WithFields(logutils.Fields{
			"group":   groupID,
			"attempt": attempt,
		}).Warn("version index conflict, retrying")
	}
	if err != nil {
		return response, err
	}

	if req.Activate {
		s.notifyPublish(groupID, created.ID)
	}
	return dto.NewVersionResponse(created), nil
}

// ActivateVersion makes versionID the live version of its group.
// Transactionally deactivates every row of the group, activates the
// target and re-points every junction row bound to the group. Returns
// the now-active canvas snapshot with its sort order in the requesting
// space.
func (s *VersionService) ActivateVersion(ownerID, spaceID, canvasID, versionID string) (dto.CanvasResponse, error) {
	var response dto.CanvasResponse
	var groupID string
	var target models.Canvas

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		base, junction, err := resolveScopedCanvas(tx, ownerID, spaceID, canvasID)
		if err != nil {
			return err
		}
		groupID = base.VersionGroupID

		target, err = s.canvasRepo.FindByIDInGroup(tx, versionID, groupID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Cross-group activation is a rule violation, not a no-op.
			return utils.NewConflict("version does not belong to this canvas")
		}
		if err != nil {
			return err
		}

		if err := s.canvasRepo.DeactivateGroup(tx, groupID); err != nil {
			return err
		}
		if err := tx.Model(&models.Canvas{}).Where("id = ?", target.ID).Update("is_active", true).Error; err != nil {
			return err
		}
		target.IsActive = true

		if err := s.spaceCanvasRepo.RepointGroup(tx, groupID, target.ID); err != nil {
			return err
		}

		response = dto.NewCanvasResponse(target, junction.SortOrder)
		return nil
	})
	if err != nil {
		return response, err
	}

	s.notifyPublish(groupID, target.ID)
	return response, nil
}

// DeleteVersion hard-deletes a non-active, non-sole version row of a
// group, together with its child records. Version indices are not
// renumbered; the index is a monotonic counter, not a dense position.
func (s *VersionService) DeleteVersion(ownerID, spaceID, canvasID, versionID string) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		base, _, err := resolveScopedCanvas(tx, ownerID, spaceID, canvasID)
		if err != nil {
			return err
		}

		target, err := s.canvasRepo.FindByIDInGroup(tx, versionID, base.VersionGroupID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NewNotFound("version not found")
		}
		if err != nil {
			return err
		}

		if target.IsActive {
			return utils.NewConflict("cannot delete the active version, activate a different version first")
		}
		count, err := s.canvasRepo.CountInGroup(tx, target.VersionGroupID)
		if err != nil {
			return err
		}
		if count <= 1 {
			return utils.NewConflict("cannot delete the last version of a canvas")
		}

		if err := deleteCanvasChildRecords(tx, []string{target.ID}); err != nil {
			return err
		}
		return s.canvasRepo.DeleteByID(tx, target.ID)
	})
	return err
}

// UpdateVersionMetadata edits the label and description of a version
// row without changing any versioning state. Omitted fields stay put;
// a label cleared to "" falls back to v{versionIndex}.
func (s *VersionService) UpdateVersionMetadata(ownerID, spaceID, canvasID, versionID string, req dto.UpdateVersionRequest) (dto.VersionResponse, error) {
	var response dto.VersionResponse

	var label string
	if req.Label != nil {
		var err error
		label, err = utils.ValidateOptionalName("label", *req.Label)
		if err != nil {
			return response, err
		}
	}
	if req.Description != nil {
		if _, err := utils.ValidateDescription("description", *req.Description); err != nil {
			return response, err
		}
	}

	var target models.Canvas
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		base, _, err := resolveScopedCanvas(tx, ownerID, spaceID, canvasID)
		if err != nil {
			return err
		}

		target, err = s.canvasRepo.FindByIDInGroup(tx, versionID, base.VersionGroupID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NewNotFound("version not found")
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Label != nil {
			if label == "" {
				label = fmt.Sprintf("v%d", target.VersionIndex)
			}
			updates["version_label"] = label
		}
		if req.Description != nil {
			updates["version_description"] = *req.Description
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&models.Canvas{}).Where("id = ?", target.ID).Updates(updates).Error; err != nil {
			return err
		}
		if req.Label != nil {
			target.VersionLabel = label
		}
		if req.Description != nil {
			target.VersionDescription = *req.Description
		}
		return nil
	})
	if err != nil {
		return response, err
	}
	return dto.NewVersionResponse(target), nil
}

// notifyPublish pushes the group's new live target to the publish-link
// store. Best-effort after commit: a failure is logged, never bubbled
// back into the already-committed operation.
func (s *VersionService) notifyPublish(groupID, canvasID string) {
	if s.publishStore == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.publishStore.SetActiveTarget(ctx, groupID, canvasID); err != nil {
		logutils.Log.WithFields(logutils.Fields{
			"group":  groupID,
			"canvas": canvasID,
		}).WithError(err).Warn("failed to update publish link target")
	}
}
