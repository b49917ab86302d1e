package services

import (
	"github.com/canvaspace/database"
	"github.com/canvaspace/dto"
	"github.com/canvaspace/models"
	"github.com/canvaspace/repositories"
	"github.com/canvaspace/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// defaultCanvasName seeds the first canvas of a new space when the
// request does not name one.
const defaultCanvasName = "Main Canvas"

// SpaceService handles space CRUD and the read façade over
// space/canvas joins.
type SpaceService struct {
	spaceRepo       *repositories.SpaceRepository
	canvasRepo      *repositories.CanvasRepository
	spaceCanvasRepo *repositories.SpaceCanvasRepository
	purgeService    *PurgeService
}

// NewSpaceService creates a new space service instance.
func NewSpaceService(purgeService *PurgeService) *SpaceService {
	return &SpaceService{
		spaceRepo:       repositories.NewSpaceRepository(),
		canvasRepo:      repositories.NewCanvasRepository(),
		spaceCanvasRepo: repositories.NewSpaceCanvasRepository(),
		purgeService:    purgeService,
	}
}

// ListSpaces retrieves the owner's spaces with their canvas counts.
func (s *SpaceService) ListSpaces(ownerID string) (dto.SpaceListResponse, error) {
	var response dto.SpaceListResponse

	rows, err := s.spaceRepo.FindByOwnerWithCounts(ownerID)
	if err != nil {
		return response, err
	}

	response.Spaces = make([]dto.SpaceSummary, 0, len(rows))
	for _, row := range rows {
		response.Spaces = append(response.Spaces, dto.NewSpaceSummary(row.Space, row.CanvasCount))
	}
	return response, nil
}

// CreateSpace creates a space together with its default canvas (one
// version group, index 1, active) in a single transaction. A space is
// never observable without a canvas.
func (s *SpaceService) CreateSpace(ownerID string, req dto.CreateSpaceRequest) (dto.SpaceDetail, error) {
	var response dto.SpaceDetail

	name, err := utils.ValidateName("name", req.Name)
	if err != nil {
		return response, err
	}
	description, err := utils.ValidateDescription("description", req.Description)
	if err != nil {
		return response, err
	}
	canvasName, err := utils.ValidateOptionalName("defaultCanvasName", req.DefaultCanvasName)
	if err != nil {
		return response, err
	}
	if canvasName == "" {
		canvasName = defaultCanvasName
	}

	flowData := req.DefaultCanvasFlowData
	if len(flowData) == 0 {
		flowData = []byte("{}")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		space := models.Space{
			Name:        name,
			Description: description,
			Visibility:  models.VisibilityPrivate,
			OwnerID:     ownerID,
		}
		if err := s.spaceRepo.Create(tx, &space); err != nil {
			return err
		}

		canvas := models.Canvas{
			Name:         canvasName,
			FlowData:     datatypes.JSON(flowData),
			VersionLabel: "v1",
			VersionIndex: 1,
			IsActive:     true,
		}
		if err := s.canvasRepo.Create(tx, &canvas); err != nil {
			return err
		}

		junction := models.SpaceCanvas{
			SpaceID:        space.ID,
			CanvasID:       canvas.ID,
			VersionGroupID: canvas.VersionGroupID,
			SortOrder:      1,
		}
		if err := s.spaceCanvasRepo.Create(tx, &junction); err != nil {
			return err
		}

		canvasResponse := dto.NewCanvasResponse(canvas, junction.SortOrder)
		response = dto.NewSpaceDetail(space, []dto.CanvasResponse{canvasResponse})
		response.DefaultCanvas = &canvasResponse
		return nil
	})
	return response, err
}

// GetSpaceDetail retrieves a space with its ordered canvas list.
func (s *SpaceService) GetSpaceDetail(ownerID, spaceID string) (dto.SpaceDetail, error) {
	var response dto.SpaceDetail

	space, err := resolveSpace(database.DB, ownerID, spaceID)
	if err != nil {
		return response, err
	}

	rows, err := s.spaceCanvasRepo.FindBySpace(spaceID)
	if err != nil {
		return response, err
	}

	canvases := make([]dto.CanvasResponse, 0, len(rows))
	for _, row := range rows {
		canvases = append(canvases, dto.NewCanvasResponse(row.Canvas, row.SortOrder))
	}
	return dto.NewSpaceDetail(space, canvases), nil
}

// UpdateSpace edits a space's name and description.
func (s *SpaceService) UpdateSpace(ownerID, spaceID string, req dto.UpdateSpaceRequest) (dto.SpaceDetail, error) {
	var response dto.SpaceDetail

	name, err := utils.ValidateName("name", req.Name)
	if err != nil {
		return response, err
	}
	description, err := utils.ValidateDescription("description", req.Description)
	if err != nil {
		return response, err
	}

	space, err := resolveSpace(database.DB, ownerID, spaceID)
	if err != nil {
		return response, err
	}

	space.Name = name
	space.Description = description
	if err := s.spaceRepo.Update(&space); err != nil {
		return response, err
	}

	return s.GetSpaceDetail(ownerID, spaceID)
}

// DeleteSpace purges a single space, cascading to canvases that have
// no remaining space reference.
func (s *SpaceService) DeleteSpace(ownerID, spaceID string) error {
	return s.purgeService.PurgeSpaces(ownerID, []string{spaceID})
}

// DeleteOwner tears down every space of an owner.
func (s *SpaceService) DeleteOwner(ownerID string) error {
	return s.purgeService.PurgeSpaces(ownerID, nil)
}
