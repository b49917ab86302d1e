package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canvaspace/database"
	"github.com/canvaspace/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestRouter builds the full v1 API over an in-memory database
// and returns a valid bearer token for an authenticated caller.
func setupTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models...))
	database.DB = db

	purgeService := services.NewPurgeService(nil, nil)
	controllers := NewControllers(
		services.NewAuthService(),
		services.NewSpaceService(purgeService),
		services.NewCanvasService(purgeService),
		services.NewVersionService(nil),
	)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	controllers.RegisterRoutes(router.Group("/api/v1"))

	token, _, err := services.GenerateToken(uuid.NewString(), "user@example.com", "user")
	require.NoError(t, err)
	return router, token
}

func doJSON(t *testing.T, router *gin.Engine, token, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var decoded map[string]interface{}
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder, decoded
}

func TestSpaceEndpointsRequireAuth(t *testing.T) {
	router, _ := setupTestRouter(t)

	recorder, body := doJSON(t, router, "", http.MethodGet, "/api/v1/owners/o1/spaces", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, false, body["success"])
}

func TestCreateAndFetchSpace(t *testing.T) {
	router, token := setupTestRouter(t)
	ownerID := uuid.NewString()
	base := "/api/v1/owners/" + ownerID + "/spaces"

	recorder, body := doJSON(t, router, token, http.MethodPost, base, map[string]interface{}{
		"name":        "Demo",
		"description": "demo space",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	spaceID := data["id"].(string)
	defaultCanvas := data["defaultCanvas"].(map[string]interface{})
	assert.Equal(t, "v1", defaultCanvas["versionLabel"])
	assert.Equal(t, true, defaultCanvas["isActive"])

	recorder, body = doJSON(t, router, token, http.MethodGet, base+"/"+spaceID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	detail := body["data"].(map[string]interface{})
	assert.Equal(t, "Demo", detail["name"])
	assert.Len(t, detail["canvases"], 1)

	recorder, body = doJSON(t, router, token, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	spaces := body["data"].(map[string]interface{})["spaces"].([]interface{})
	require.Len(t, spaces, 1)
	assert.Equal(t, float64(1), spaces[0].(map[string]interface{})["canvasCount"])
}

func TestCreateSpaceValidationError(t *testing.T) {
	router, token := setupTestRouter(t)
	base := "/api/v1/owners/" + uuid.NewString() + "/spaces"

	recorder, body := doJSON(t, router, token, http.MethodPost, base, map[string]interface{}{
		"name": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, false, body["success"])
}

func TestGetSpaceNotFound(t *testing.T) {
	router, token := setupTestRouter(t)

	path := fmt.Sprintf("/api/v1/owners/%s/spaces/%s", uuid.NewString(), uuid.NewString())
	recorder, body := doJSON(t, router, token, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, "NOT_FOUND", errBody["code"])
}

func TestDeleteSoleVersionConflict(t *testing.T) {
	router, token := setupTestRouter(t)
	ownerID := uuid.NewString()
	base := "/api/v1/owners/" + ownerID + "/spaces"

	recorder, body := doJSON(t, router, token, http.MethodPost, base, map[string]interface{}{"name": "Demo"})
	require.Equal(t, http.StatusCreated, recorder.Code)

	data := body["data"].(map[string]interface{})
	spaceID := data["id"].(string)
	canvasID := data["defaultCanvas"].(map[string]interface{})["id"].(string)

	path := fmt.Sprintf("%s/%s/canvases/%s/versions/%s", base, spaceID, canvasID, canvasID)
	recorder, body = doJSON(t, router, token, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusConflict, recorder.Code)
	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, "CONFLICT", errBody["code"])
}

func TestDeleteSpaceReturnsNoContent(t *testing.T) {
	router, token := setupTestRouter(t)
	ownerID := uuid.NewString()
	base := "/api/v1/owners/" + ownerID + "/spaces"

	recorder, body := doJSON(t, router, token, http.MethodPost, base, map[string]interface{}{"name": "Demo"})
	require.Equal(t, http.StatusCreated, recorder.Code)
	spaceID := body["data"].(map[string]interface{})["id"].(string)

	recorder, _ = doJSON(t, router, token, http.MethodDelete, base+"/"+spaceID, nil)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder, _ = doJSON(t, router, token, http.MethodGet, base+"/"+spaceID, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
