package services

import (
	"testing"

	"github.com/canvaspace/database"
	"github.com/canvaspace/dto"
	"github.com/canvaspace/models"
	"github.com/canvaspace/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCanvasInSpaceAppendsAtEnd(t *testing.T) {
	spaceService, canvasService, _, _ := newTestServices(t)
	ownerID := uuid.NewString()

	space := createTestSpace(t, spaceService, ownerID, "Demo")

	second, err := canvasService.CreateCanvasInSpace(ownerID, space.ID, dto.CreateCanvasRequest{Name: "Second"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.SortOrder)
	assert.Equal(t, 1, second.VersionIndex)
	assert.Equal(t, "v1", second.VersionLabel)
	assert.True(t, second.IsActive)
	assert.NotEqual(t, space.DefaultCanvas.VersionGroupID, second.VersionGroupID)

	assertContiguousSort(t, space.ID)
	assertSingleActive(t, second.VersionGroupID)
}

func TestAttachCanvasToSpaceIdempotent(t *testing.T) {
	spaceService, canvasService, _, _ := newTestServices(t)
	ownerID := uuid.NewString()

	detail := createTestSpace(t, spaceService, ownerID, "Demo")

	var space models.Space
	require.NoError(t, database.DB.First(&space, "id = ?", detail.ID).Error)
	var canvas models.Canvas
	require.NoError(t, database.DB.First(&canvas, "id = ?", detail.DefaultCanvas.ID).Error)

	junction, err := canvasService.attachCanvasToSpace(database.DB, space, canvas)
	require.NoError(t, err)
	again, err := canvasService.attachCanvasToSpace(database.DB, space, canvas)
	require.NoError(t, err)
	assert.Equal(t, junction.ID, again.ID)

	var count int64
	require.NoError(t, database.DB.Model(&models.SpaceCanvas{}).
		Where("space_id = ? AND version_group_id = ?", space.ID, canvas.VersionGroupID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateCanvas(t *testing.T) {
	spaceService, canvasService, _, _ := newTestServices(t)
	ownerID := uuid.NewString()

	space := createTestSpace(t, spaceService, ownerID, "Demo")
	base := *space.DefaultCanvas

	deployed := true
	updated, err := canvasService.UpdateCanvas(ownerID, space.ID, base.ID, dto.UpdateCanvasRequest{
		Name:     "Renamed",
		FlowData: []byte(`{"nodes":[]}`),
		Deployed: &deployed,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.True(t, updated.Deployed)
	assert.JSONEq(t, `{"nodes":[]}`, string(updated.FlowData))

	// Versioning state is untouched by the editor save path.
	assert.True(t, updated.IsActive)
	assert.Equal(t, base.VersionIndex, updated.VersionIndex)
}

func TestReorderCanvasesSwap(t *testing.T) {
	spaceService, canvasService, _, _ := newTestServices(t)
	ownerID := uuid.NewString()

	space := createTestSpace(t, spaceService, ownerID, "Demo")
	a := *space.DefaultCanvas
	b, err := canvasService.CreateCanvasInSpace(ownerID, space.ID, dto.CreateCanvasRequest{Name: "B"})
	require.NoError(t, err)

	// Swapping positions must not trip the (space, sort_order) unique
	// index mid-transaction.
	response, err := canvasService.ReorderCanvases(ownerID, space.ID, dto.ReorderCanvasesRequest{
		CanvasOrders: []dto.CanvasOrder{
			{CanvasID: b.ID, SortOrder: 1},
			{CanvasID: a.ID, SortOrder: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, response.Canvases, 2)
	assert.Equal(t, b.ID, response.Canvases[0].ID)
	assert.Equal(t, a.ID, response.Canvases[1].ID)
	assertContiguousSort(t, space.ID)
}

func TestReorderCanvasesRejectsDuplicatePositions(t *testing.T) {
	spaceService, canvasService, _, _ := newTestServices(t)
	ownerID := uuid.NewString()

	space := createTestSpace(t, spaceService, ownerID, "Demo")
	a := *space.DefaultCanvas
	b, err := canvasService.CreateCanvasInSpace(ownerID, space.ID, dto.CreateCanvasRequest{Name: "B"})
	require.NoError(t, err)

	_, err = canvasService.ReorderCanvases(ownerID, space.ID, dto.ReorderCanvasesRequest{
		CanvasOrders: []dto.CanvasOrder{
			{CanvasID: a.ID, SortOrder: 1},
			{CanvasID: b.ID, SortOrder: 1},
		},
	})
	apiErr, ok := utils.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION", apiErr.Code)
}

func TestReorderCanvasesRejectsPartialRequest(t *testing.T) {
	spaceService, canvasService, _, _ := newTestServices(t)
	ownerID := uuid.NewString()

	space := createTestSpace(t, spaceService, ownerID, "Demo")
	b, err := canvasService.CreateCanvasInSpace(ownerID, space.ID, dto.CreateCanvasRequest{Name: "B"})
	require.NoError(t, err)

	// Listing only one of two canvases would leave a gap behind.
	_, err = canvasService.ReorderCanvases(ownerID, space.ID, dto.ReorderCanvasesRequest{
		CanvasOrders: []dto.CanvasOrder{{CanvasID: b.ID, SortOrder: 2}},
	})
	apiErr, ok := utils.AsAPIError(err)
	require.True(t, ok, "expected an API error, got %v", err)
	assert.Equal(t, "VALIDATION", apiErr.Code)

	// A partial request colliding with an untouched row's position is a
	// validation failure too, never a raw database error.
	_, err = canvasService.ReorderCanvases(ownerID, space.ID, dto.ReorderCanvasesRequest{
		CanvasOrders: []dto.CanvasOrder{{CanvasID: b.ID, SortOrder: 1}},
	})
	apiErr, ok = utils.AsAPIError(err)
	require.True(t, ok, "expected an API error, got %v", err)
	assert.Equal(t, "VALIDATION", apiErr.Code)

	assertContiguousSort(t, space.ID)
}

func TestReorderCanvasesRejectsOutOfRangePositions(t *testing.T) {
	spaceService, canvasService, _, _ := newTestServices(t)
	ownerID := uuid.NewString()

	space := createTestSpace(t, spaceService, ownerID, "Demo")
	a := *space.DefaultCanvas
	b, err := canvasService.CreateCanvasInSpace(ownerID, space.ID, dto.CreateCanvasRequest{Name: "B"})
	require.NoError(t, err)

	// Full membership but positions 2..3 instead of 1..2.
	_, err = canvasService.ReorderCanvases(ownerID, space.ID, dto.ReorderCanvasesRequest{
		CanvasOrders: []dto.CanvasOrder{
			{CanvasID: a.ID, SortOrder: 2},
			{CanvasID: b.ID, SortOrder: 3},
		},
	})
	apiErr, ok := utils.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION", apiErr.Code)

	assertContiguousSort(t, space.ID)
}

func TestReorderCanvasesRejectsSameCanvasTwice(t *testing.T) {
	spaceService, canvasService, versionService, _ := newTestServices(t)
	ownerID := uuid.NewString()

	space := createTestSpace(t, spaceService, ownerID, "Demo")
	a := *space.DefaultCanvas
	_, err := canvasService.CreateCanvasInSpace(ownerID, space.ID, dto.CreateCanvasRequest{Name: "B"})
	require.NoError(t, err)

	// Two version ids of the same canvas resolve to the same junction
	// row and must not pass the membership check.
	a2, err := versionService.CreateVersion(ownerID, space.ID, a.ID, dto.CreateVersionRequest{})
	require.NoError(t, err)

	_, err = canvasService.ReorderCanvases(ownerID, space.ID, dto.ReorderCanvasesRequest{
		CanvasOrders: []dto.CanvasOrder{
			{CanvasID: a.ID, SortOrder: 1},
			{CanvasID: a2.ID, SortOrder: 2},
		},
	})
	apiErr, ok := utils.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION", apiErr.Code)
}

func TestReorderCanvasesUnknownCanvas(t *testing.T) {
	spaceService, canvasService, _, _ := newTestServices(t)
	ownerID := uuid.NewString()

	space := createTestSpace(t, spaceService, ownerID, "Demo")

	_, err := canvasService.ReorderCanvases(ownerID, space.ID, dto.ReorderCanvasesRequest{
		CanvasOrders: []dto.CanvasOrder{{CanvasID: uuid.NewString(), SortOrder: 1}},
	})
	apiErr, ok := utils.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)

	// The failed reorder left the original order alone.
	assertContiguousSort(t, space.ID)
}

func TestDeleteCanvasFromSpaceLastCanvasConflict(t *testing.T) {
	spaceService, canvasService, _, _ := newTestServices(t)
	ownerID := uuid.NewString()

	space := createTestSpace(t, spaceService, ownerID, "Demo")

	err := canvasService.DeleteCanvasFromSpace(ownerID, space.ID, space.DefaultCanvas.ID)
	apiErr, ok := utils.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", apiErr.Code)
}

func TestDeleteCanvasFromSpaceRemovesGroupAndRenumbers(t *testing.T) {
	spaceService, canvasService, versionService, _ := newTestServices(t)
	ownerID := uuid.NewString()

	space := createTestSpace(t, spaceService, ownerID, "Demo")
	first := *space.DefaultCanvas
	second, err := canvasService.CreateCanvasInSpace(ownerID, space.ID, dto.CreateCanvasRequest{Name: "Second"})
	require.NoError(t, err)
	third, err := canvasService.CreateCanvasInSpace(ownerID, space.ID, dto.CreateCanvasRequest{Name: "Third"})
	require.NoError(t, err)

	// Give the doomed canvas a second version and a child record: the
	// whole group and its dependents must go.
	extra, err := versionService.CreateVersion(ownerID, space.ID, first.ID, dto.CreateVersionRequest{})
	require.NoError(t, err)
	require.NoError(t, database.DB.Create(&models.ChatMessage{CanvasID: first.ID, Role: "user", Content: "hi"}).Error)

	require.NoError(t, canvasService.DeleteCanvasFromSpace(ownerID, space.ID, first.ID))

	var count int64
	require.NoError(t, database.DB.Model(&models.Canvas{}).
		Where("version_group_id = ?", first.VersionGroupID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, database.DB.Model(&models.ChatMessage{}).
		Where("canvas_id IN ?", []string{first.ID, extra.ID}).Count(&count).Error)
	assert.Zero(t, count)

	// Survivors compact to 1..2 preserving their relative order.
	list, err := canvasService.ListCanvases(ownerID, space.ID)
	require.NoError(t, err)
	require.Len(t, list.Canvases, 2)
	assert.Equal(t, second.ID, list.Canvases[0].ID)
	assert.Equal(t, third.ID, list.Canvases[1].ID)
	assertContiguousSort(t, space.ID)
}

func TestDeleteCanvasFromSpaceSharedGroupSurvives(t *testing.T) {
	spaceService, canvasService, _, _ := newTestServices(t)
	ownerID := uuid.NewString()

	space := createTestSpace(t, spaceService, ownerID, "Demo")
	shared := *space.DefaultCanvas
	_, err := canvasService.CreateCanvasInSpace(ownerID, space.ID, dto.CreateCanvasRequest{Name: "Second"})
	require.NoError(t, err)

	other := createTestSpace(t, spaceService, ownerID, "Other")
	shareCanvas(t, canvasService, other.ID, shared.ID)

	require.NoError(t, canvasService.DeleteCanvasFromSpace(ownerID, space.ID, shared.ID))

	// The group is still junctioned to the other space and survives.
	var count int64
	require.NoError(t, database.DB.Model(&models.Canvas{}).
		Where("version_group_id = ?", shared.VersionGroupID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NoError(t, database.DB.Model(&models.SpaceCanvas{}).
		Where("space_id = ? AND version_group_id = ?", other.ID, shared.VersionGroupID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	assertContiguousSort(t, space.ID)
	assertContiguousSort(t, other.ID)
}
