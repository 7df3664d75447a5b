package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-scheduler/internal/audit"
	"github.com/BruksfildServices01/campus-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
	"github.com/BruksfildServices01/campus-scheduler/internal/timezone"
)

type AuditLister interface {
	List(ctx context.Context, q audit.Query) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs   AuditLister
	clock  timezone.Clock
	logger *zap.Logger
}

func NewAuditLogsHandler(logs AuditLister, clock timezone.Clock, logger *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, clock: clock, logger: logger}
}

// List pages through the caller's own audit entries:
// ?action=&entity=&from=&to=&page=&limit=.
func (h *AuditLogsHandler) List(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	loc := h.clock().Location()
	from, ok := queryDate(c, "from", loc)
	if !ok {
		return
	}
	to, ok := queryDate(c, "to", loc)
	if !ok {
		return
	}

	logs, total, err := h.logs.List(c.Request.Context(), audit.Query{
		UserID: caller.UserID,
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		From:   from,
		To:     to,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.Page(c, logs, total, page, limit)
}
