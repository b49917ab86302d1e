package v1

import (
	"net/http"

	"github.com/canvaspace/logutils"
	"github.com/canvaspace/utils"
	"github.com/gin-gonic/gin"
)

// respondData writes the success envelope.
func respondData(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondError maps a service error to its HTTP status. Business
// errors carry their own status; anything else is an infrastructure
// failure and surfaces as a 500 without leaking internals.
func respondError(ctx *gin.Context, err error) {
	if apiErr, ok := utils.AsAPIError(err); ok {
		ctx.JSON(apiErr.Status, gin.H{
			"success": false,
			"error":   apiErr,
		})
		return
	}

	logutils.Log.WithError(err).WithFields(logutils.Fields{
		"method": ctx.Request.Method,
		"path":   ctx.FullPath(),
	}).Error("request failed")

	ctx.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   gin.H{"code": "INTERNAL", "message": "internal server error"},
	})
}

// bindJSON parses the request body and reports failures as validation
// errors.
func bindJSON(ctx *gin.Context, target interface{}) bool {
	if err := ctx.ShouldBindJSON(target); err != nil {
		respondError(ctx, utils.NewValidation("invalid request body: "+err.Error()))
		return false
	}
	return true
}
