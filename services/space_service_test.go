package services

import (
	"strings"
	"testing"

	"github.com/canvaspace/dto"
	"github.com/canvaspace/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSpaceBootstrapsDefaultCanvas(t *testing.T) {
	spaceService, _, _, _ := newTestServices(t)
	ownerID := uuid.NewString()

	detail, err := spaceService.CreateSpace(ownerID, dto.CreateSpaceRequest{
		Name:        "Demo",
		Description: "demo space",
	})
	require.NoError(t, err)

	assert.Equal(t, "Demo", detail.Name)
	require.Len(t, detail.Canvases, 1)
	require.NotNil(t, detail.DefaultCanvas)

	canvas := *detail.DefaultCanvas
	assert.Equal(t, "Main Canvas", canvas.Name)
	assert.Equal(t, "v1", canvas.VersionLabel)
	assert.Equal(t, 1, canvas.VersionIndex)
	assert.True(t, canvas.IsActive)
	assert.Equal(t, 1, canvas.SortOrder)

	assertSingleActive(t, canvas.VersionGroupID)
	assertContiguousSort(t, detail.ID)
}

func TestCreateSpaceUsesSuppliedCanvasName(t *testing.T) {
	spaceService, _, _, _ := newTestServices(t)

	detail, err := spaceService.CreateSpace(uuid.NewString(), dto.CreateSpaceRequest{
		Name:              "Demo",
		DefaultCanvasName: "  AR Scene  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "AR Scene", detail.DefaultCanvas.Name)
}

func TestCreateSpaceValidation(t *testing.T) {
	spaceService, _, _, _ := newTestServices(t)
	ownerID := uuid.NewString()

	tests := []struct {
		name string
		req  dto.CreateSpaceRequest
	}{
		{"empty name", dto.CreateSpaceRequest{Name: "   "}},
		{"name too long", dto.CreateSpaceRequest{Name: strings.Repeat("x", 201)}},
		{"description too long", dto.CreateSpaceRequest{Name: "ok", Description: strings.Repeat("x", 2001)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := spaceService.CreateSpace(ownerID, tt.req)
			apiErr, ok := utils.AsAPIError(err)
			require.True(t, ok, "expected an API error, got %v", err)
			assert.Equal(t, "VALIDATION", apiErr.Code)
		})
	}
}

func TestListSpacesCounts(t *testing.T) {
	spaceService, canvasService, _, _ := newTestServices(t)
	ownerID := uuid.NewString()

	first := createTestSpace(t, spaceService, ownerID, "First")
	createTestSpace(t, spaceService, ownerID, "Second")

	_, err := canvasService.CreateCanvasInSpace(ownerID, first.ID, dto.CreateCanvasRequest{Name: "Extra"})
	require.NoError(t, err)

	// Another owner's spaces must not leak into the list.
	createTestSpace(t, spaceService, uuid.NewString(), "Other")

	response, err := spaceService.ListSpaces(ownerID)
	require.NoError(t, err)
	require.Len(t, response.Spaces, 2)

	counts := map[string]int64{}
	for _, space := range response.Spaces {
		counts[space.Name] = space.CanvasCount
	}
	assert.Equal(t, int64(2), counts["First"])
	assert.Equal(t, int64(1), counts["Second"])
}

func TestGetSpaceDetailOrdersCanvases(t *testing.T) {
	spaceService, canvasService, _, _ := newTestServices(t)
	ownerID := uuid.NewString()

	space := createTestSpace(t, spaceService, ownerID, "Demo")
	_, err := canvasService.CreateCanvasInSpace(ownerID, space.ID, dto.CreateCanvasRequest{Name: "Second"})
	require.NoError(t, err)

	detail, err := spaceService.GetSpaceDetail(ownerID, space.ID)
	require.NoError(t, err)
	require.Len(t, detail.Canvases, 2)
	assert.Equal(t, 1, detail.Canvases[0].SortOrder)
	assert.Equal(t, 2, detail.Canvases[1].SortOrder)
	assert.Equal(t, "Second", detail.Canvases[1].Name)
}

func TestUpdateSpace(t *testing.T) {
	spaceService, _, _, _ := newTestServices(t)
	ownerID := uuid.NewString()

	space := createTestSpace(t, spaceService, ownerID, "Demo")

	updated, err := spaceService.UpdateSpace(ownerID, space.ID, dto.UpdateSpaceRequest{
		Name:        "Renamed",
		Description: "new description",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "new description", updated.Description)
	require.Len(t, updated.Canvases, 1)
}

func TestSpaceScopedToOwner(t *testing.T) {
	spaceService, _, _, _ := newTestServices(t)

	space := createTestSpace(t, spaceService, uuid.NewString(), "Demo")

	_, err := spaceService.GetSpaceDetail(uuid.NewString(), space.ID)
	apiErr, ok := utils.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)

	_, err = spaceService.UpdateSpace(uuid.NewString(), space.ID, dto.UpdateSpaceRequest{Name: "x"})
	apiErr, ok = utils.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}
