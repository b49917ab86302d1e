package services

import (
	"errors"
	"fmt"

	"github.com/canvaspace/database"
	"github.com/canvaspace/dto"
	"github.com/canvaspace/models"
	"github.com/canvaspace/repositories"
	"github.com/canvaspace/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// reorderShift is the temporary offset applied to every affected sort
// order before final values are written. A naive single-pass update
// can momentarily collide on the (space_id, sort_order) unique index
// and abort the transaction.
const reorderShift = 1000

// CanvasService manages space membership: which logical canvases a
// space contains and in what order.
type CanvasService struct {
	spaceCanvasRepo *repositories.SpaceCanvasRepository
	canvasRepo      *repositories.CanvasRepository
	purgeService    *PurgeService
}

// NewCanvasService creates a new canvas service instance. The purge
// service performs the out-of-band cleanup when a canvas group is
// removed from its last space.
func NewCanvasService(purgeService *PurgeService) *CanvasService {
	return &CanvasService{
		spaceCanvasRepo: repositories.NewSpaceCanvasRepository(),
		canvasRepo:      repositories.NewCanvasRepository(),
		purgeService:    purgeService,
	}
}

// ListCanvases retrieves the canvases of a space ordered by sort order.
func (s *CanvasService) ListCanvases(ownerID, spaceID string) (dto.CanvasListResponse, error) {
	var response dto.CanvasListResponse

	if _, err := resolveSpace(database.DB, ownerID, spaceID); err != nil {
		return response, err
	}

	rows, err := s.spaceCanvasRepo.FindBySpace(spaceID)
	if err != nil {
		return response, err
	}

	response.Canvases = make([]dto.CanvasResponse, 0, len(rows))
	for _, row := range rows {
		response.Canvases = append(response.Canvases, dto.NewCanvasResponse(row.Canvas, row.SortOrder))
	}
	return response, nil
}

// CreateCanvasInSpace creates a brand-new version group (index 1,
// active) and attaches it at the next sort position. This is how a
// user adds an additional logical canvas tab to a space.
func (s *CanvasService) CreateCanvasInSpace(ownerID, spaceID string, req dto.CreateCanvasRequest) (dto.CanvasResponse, error) {
	var response dto.CanvasResponse

	name, err := utils.ValidateName("name", req.Name)
	if err != nil {
		return response, err
	}

	flowData := req.FlowData
	if len(flowData) == 0 {
		flowData = []byte("{}")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		space, err := resolveSpace(tx, ownerID, spaceID)
		if err != nil {
			return err
		}

		canvas := models.Canvas{
			Name:         name,
			FlowData:     datatypes.JSON(flowData),
			VersionLabel: "v1",
			VersionIndex: 1,
			IsActive:     true,
		}
		if err := s.canvasRepo.Create(tx, &canvas); err != nil {
			return err
		}

		junction, err := s.attachCanvasToSpace(tx, space, canvas)
		if err != nil {
			return err
		}

		response = dto.NewCanvasResponse(canvas, junction.SortOrder)
		return nil
	})
	return response, err
}

// attachCanvasToSpace binds a canvas group to a space at the next sort
// position. Idempotent: an existing (space, group) binding is returned
// unchanged.
func (s *CanvasService) attachCanvasToSpace(tx *gorm.DB, space models.Space, canvas models.Canvas) (models.SpaceCanvas, error) {
	existing, err := s.spaceCanvasRepo.FindBySpaceAndGroup(tx, space.ID, canvas.VersionGroupID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return existing, err
	}

	maxSort, err := s.spaceCanvasRepo.MaxSortOrder(tx, space.ID)
	if err != nil {
		return existing, err
	}

	junction := models.SpaceCanvas{
		SpaceID:        space.ID,
		CanvasID:       canvas.ID,
		VersionGroupID: canvas.VersionGroupID,
		SortOrder:      maxSort + 1,
	}
	if err := s.spaceCanvasRepo.Create(tx, &junction); err != nil {
		return junction, err
	}
	return junction, nil
}

// UpdateCanvas is the editor save path: rename a version row, replace
// its flow data, or toggle its deployment flags. Versioning state is
// untouched.
func (s *CanvasService) UpdateCanvas(ownerID, spaceID, canvasID string, req dto.UpdateCanvasRequest) (dto.CanvasResponse, error) {
	var response dto.CanvasResponse

	updates := map[string]interface{}{}
	if req.Name != "" {
		name, err := utils.ValidateName("name", req.Name)
		if err != nil {
			return response, err
		}
		updates["name"] = name
	}
	if len(req.FlowData) > 0 {
		updates["flow_data"] = datatypes.JSON(req.FlowData)
	}
	if req.Deployed != nil {
		updates["deployed"] = *req.Deployed
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		canvas, junction, err := resolveScopedCanvas(tx, ownerID, spaceID, canvasID)
		if err != nil {
			return err
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.Canvas{}).Where("id = ?", canvas.ID).Updates(updates).Error; err != nil {
				return err
			}
			canvas, err = s.canvasRepo.FindByID(tx, canvas.ID)
			if err != nil {
				return err
			}
		}

		response = dto.NewCanvasResponse(canvas, junction.SortOrder)
		return nil
	})
	return response, err
}

// ReorderCanvases rewrites the sort orders of a space's canvases in
// two phases inside one transaction: first every affected row is
// shifted out of the live range, then the requested values are
// written. The request must list every canvas of the space exactly
// once with target positions forming 1..N; anything less would commit
// gaps or collide with an untouched row.
func (s *CanvasService) ReorderCanvases(ownerID, spaceID string, req dto.ReorderCanvasesRequest) (dto.CanvasListResponse, error) {
	var response dto.CanvasListResponse

	seen := make(map[int]bool, len(req.CanvasOrders))
	for _, order := range req.CanvasOrders {
		if seen[order.SortOrder] {
			return response, utils.NewValidation(fmt.Sprintf("duplicate sort order %d", order.SortOrder))
		}
		seen[order.SortOrder] = true
		if order.SortOrder < 1 || order.SortOrder > len(req.CanvasOrders) {
			return response, utils.NewValidation(fmt.Sprintf("sort orders must form a contiguous sequence 1..%d", len(req.CanvasOrders)))
		}
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := resolveSpace(tx, ownerID, spaceID); err != nil {
			return err
		}

		// Distinct positions in 1..N over the full membership is a
		// permutation; a partial request cannot stay contiguous.
		count, err := s.spaceCanvasRepo.CountBySpace(tx, spaceID)
		if err != nil {
			return err
		}
		if int(count) != len(req.CanvasOrders) {
			return utils.NewValidation("reorder must include every canvas in the space exactly once")
		}

		// Resolve every entry to its junction row before mutating. Two
		// version ids of the same canvas resolve to the same junction.
		junctionIDs := make([]string, 0, len(req.CanvasOrders))
		targets := make(map[string]int, len(req.CanvasOrders))
		for _, order := range req.CanvasOrders {
			_, junction, err := resolveScopedCanvas(tx, ownerID, spaceID, order.CanvasID)
			if err != nil {
				return err
			}
			if _, dup := targets[junction.ID]; dup {
				return utils.NewValidation(fmt.Sprintf("canvas %s listed more than once", order.CanvasID))
			}
			junctionIDs = append(junctionIDs, junction.ID)
			targets[junction.ID] = order.SortOrder
		}

		// Phase 1: move affected rows out of the contiguous range.
		err = tx.Model(&models.SpaceCanvas{}).
			Where("id IN ?", junctionIDs).
			Update("sort_order", gorm.Expr("sort_order + ?", reorderShift)).Error
		if err != nil {
			return err
		}

		// Phase 2: write the requested positions.
		for id, sortOrder := range targets {
			err := tx.Model(&models.SpaceCanvas{}).
				Where("id = ?", id).
				Update("sort_order", sortOrder).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return response, err
	}

	return s.ListCanvases(ownerID, spaceID)
}

// DeleteCanvasFromSpace removes a logical canvas from a space: the
// junction row goes, the version group is hard-deleted once no
// junction row anywhere still references it, and the remaining
// canvases are renumbered to a contiguous 1..N sequence. A space must
// always contain at least one canvas.
func (s *CanvasService) DeleteCanvasFromSpace(ownerID, spaceID, canvasID string) error {
	var deletedCanvasIDs []string
	var deletedGroupIDs []string

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		canvas, junction, err := resolveScopedCanvas(tx, ownerID, spaceID, canvasID)
		if err != nil {
			return err
		}

		count, err := s.spaceCanvasRepo.CountBySpace(tx, spaceID)
		if err != nil {
			return err
		}
		if count <= 1 {
			return utils.NewConflict("cannot delete the last canvas in a space")
		}

		if err := s.spaceCanvasRepo.DeleteByID(tx, junction.ID); err != nil {
			return err
		}

		// Same reference-existence check as the purge path: a group
		// junctioned into another space must survive.
		refs, err := s.spaceCanvasRepo.CountByGroup(tx, canvas.VersionGroupID)
		if err != nil {
			return err
		}
		if refs == 0 {
			deletedCanvasIDs, err = s.canvasRepo.DeleteGroup(tx, canvas.VersionGroupID)
			if err != nil {
				return err
			}
			deletedGroupIDs = append(deletedGroupIDs, canvas.VersionGroupID)
			if err := deleteCanvasChildRecords(tx, deletedCanvasIDs); err != nil {
				return err
			}
		}

		return renumberSpaceCanvases(tx, spaceID)
	})
	if err != nil {
		return err
	}

	if len(deletedGroupIDs) > 0 {
		s.purgeService.CleanupCanvases(deletedCanvasIDs, deletedGroupIDs)
	}
	return nil
}

// renumberSpaceCanvases compacts a space's sort orders to 1..N ordered
// by their prior values. Processing in ascending order never collides
// on the unique index because each target position is at or below the
// row's current one.
func renumberSpaceCanvases(tx *gorm.DB, spaceID string) error {
	var rows []models.SpaceCanvas
	err := tx.Where("space_id = ?", spaceID).Order("sort_order ASC").Find(&rows).Error
	if err != nil {
		return err
	}

	for i, row := range rows {
		target := i + 1
		if row.SortOrder == target {
			continue
		}
		err := tx.Model(&models.SpaceCanvas{}).
			Where("id = ?", row.ID).
			Update("sort_order", target).Error
		if err != nil {
			return err
		}
	}
	return nil
}
