package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-scheduler/internal/dto"
	"github.com/BruksfildServices01/campus-scheduler/internal/httpresp"
	ucAuth "github.com/BruksfildServices01/campus-scheduler/internal/usecase/auth"
	ucSlot "github.com/BruksfildServices01/campus-scheduler/internal/usecase/slot"
)

// ======================================================
// HANDLER
// ======================================================

type SlotHandler struct {
	create        *ucSlot.CreateSlot
	listAvailable *ucSlot.ListAvailableSlots
	listOwn       *ucSlot.ListOwnSlots
	listAll       *ucSlot.ListAllSlots
	deleteSlot    *ucSlot.DeleteSlot
	logger        *zap.Logger
}

func NewSlotHandler(
	create *ucSlot.CreateSlot,
	listAvailable *ucSlot.ListAvailableSlots,
	listOwn *ucSlot.ListOwnSlots,
	listAll *ucSlot.ListAllSlots,
	deleteSlot *ucSlot.DeleteSlot,
	logger *zap.Logger,
) *SlotHandler {
	return &SlotHandler{
		create:        create,
		listAvailable: listAvailable,
		listOwn:       listOwn,
		listAll:       listAll,
		deleteSlot:    deleteSlot,
		logger:        logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSlotRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *SlotHandler) Create(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}

	var req CreateSlotRequest
	if !bindJSON(c, &req) {
		return
	}

	slot, err := h.create.Execute(c.Request.Context(), caller, ucSlot.CreateSlotInput{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.Created(c, dto.NewSlotDTO(slot))
}

// ======================================================
// LIST
// ======================================================

// ListAvailable is public: ?from=YYYY-MM-DD&specialist_id=.
func (h *SlotHandler) ListAvailable(c *gin.Context) {
	specialistID, ok := queryUint(c, "specialist_id")
	if !ok {
		return
	}

	slots, err := h.listAvailable.Execute(c.Request.Context(), c.Query("from"), specialistID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.List(c, dto.NewSlotDTOs(slots))
}

func (h *SlotHandler) ListOwn(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}

	slots, err := h.listOwn.Execute(c.Request.Context(), caller)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.List(c, dto.NewSlotDTOs(slots))
}

func (h *SlotHandler) ListAll(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}

	slots, err := h.listAll.Execute(c.Request.Context(), caller)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.List(c, dto.NewSlotDTOs(slots))
}

// ======================================================
// DELETE (admin)
// ======================================================

func (h *SlotHandler) Delete(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteSlot.Execute(c.Request.Context(), caller, id); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// SPECIALISTS
// ======================================================

type SpecialistHandler struct {
	list      *ucAuth.ListSpecialists
	avatarURL func(string) string
	logger    *zap.Logger
}

func NewSpecialistHandler(list *ucAuth.ListSpecialists, avatarURL func(string) string, logger *zap.Logger) *SpecialistHandler {
	return &SpecialistHandler{list: list, avatarURL: avatarURL, logger: logger}
}

func (h *SpecialistHandler) List(c *gin.Context) {
	users, err := h.list.Execute(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.List(c, dto.NewSpecialistDTOs(users, h.avatarURL))
}
