package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-scheduler/internal/dto"
	"github.com/BruksfildServices01/campus-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/campus-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/campus-scheduler/internal/usecase/appointment"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book       *ucAppointment.BookSlot
	transition *ucAppointment.TransitionAppointment
	list       *ucAppointment.ListAppointments
	get        *ucAppointment.GetAppointment
	export     *ucAppointment.ExportAppointments
	calendar   *ucAppointment.CalendarEvent
	clock      timezone.Clock
	logger     *zap.Logger
}

func NewAppointmentHandler(
	book *ucAppointment.BookSlot,
	transition *ucAppointment.TransitionAppointment,
	list *ucAppointment.ListAppointments,
	get *ucAppointment.GetAppointment,
	export *ucAppointment.ExportAppointments,
	calendar *ucAppointment.CalendarEvent,
	clock timezone.Clock,
	logger *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:       book,
		transition: transition,
		list:       list,
		get:        get,
		export:     export,
		calendar:   calendar,
		clock:      clock,
		logger:     logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookSlotRequest struct {
	SlotID uint   `json:"slot_id" binding:"required"`
	Reason string `json:"reason"`
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}

	var req BookSlotRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), caller, req.SlotID, req.Reason)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	// reload so the response carries slot and student details
	full, err := h.get.Execute(c.Request.Context(), caller, ap.ID)
	if err != nil {
		httpresp.Created(c, dto.NewAppointmentDTO(ap))
		return
	}
	httpresp.Created(c, dto.NewAppointmentDTO(full))
}

// ======================================================
// TRANSITION
// ======================================================

// Transition handles POST /appointments/:id/:event.
func (h *AppointmentHandler) Transition(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ap, err := h.transition.Execute(c.Request.Context(), caller, id, c.Param("event"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(ap))
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}
	filter, ok := listFilter(c, h.clock().Location())
	if !ok {
		return
	}

	apps, err := h.list.Execute(c.Request.Context(), caller, filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.List(c, dto.NewAppointmentDTOs(apps))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), caller, id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(ap))
}

// ======================================================
// EXPORTS
// ======================================================

func (h *AppointmentHandler) Export(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}
	filter, ok := listFilter(c, h.clock().Location())
	if !ok {
		return
	}

	buf, filename, err := h.export.Execute(c.Request.Context(), caller, filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *AppointmentHandler) Calendar(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	body, err := h.calendar.Execute(c.Request.Context(), caller, id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="appointment-`+strconv.FormatUint(uint64(id), 10)+`.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}
