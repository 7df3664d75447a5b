package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/campus-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/middleware"
)

// writeError maps a use-case error to a response. Anything that is not a
// BusinessError is logged and reported as a 500.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	if httperr.Respond(c, err) {
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "not_found", "Resource not found.")
		return
	}

	_ = c.Error(err)
	logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("route", c.FullPath()),
		zap.Error(err),
	)
	httperr.Internal(c, "internal_error", "Something went wrong. Please try again.")
}

func callerOf(c *gin.Context) (identity.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httperr.Unauthorized(c, "missing_authorization_header", "Authentication required.")
	}
	return caller, ok
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid identifier.")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return false
	}
	return true
}
