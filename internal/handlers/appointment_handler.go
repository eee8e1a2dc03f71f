package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/propview/viewing-scheduler/internal/dto"
	"github.com/propview/viewing-scheduler/internal/httperr"
	"github.com/propview/viewing-scheduler/internal/httpresp"
	ucSchedule "github.com/propview/viewing-scheduler/internal/usecase/schedule"
)

type AppointmentHandler struct {
	book   *ucSchedule.BookAppointment
	cancel *ucSchedule.CancelAppointment
	list   *ucSchedule.ListAppointments
}

func NewAppointmentHandler(
	book *ucSchedule.BookAppointment,
	cancel *ucSchedule.CancelAppointment,
	list *ucSchedule.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{book: book, cancel: cancel, list: list}
}

type bookAppointmentRequest struct {
	UserID      string `json:"user_id"`
	HouseID     string `json:"house_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Book creates one 15-minute viewing appointment. An optional
// Idempotency-Key header makes retries safe: a replay answers 200 with the
// original appointment id instead of booking twice.
func (h *AppointmentHandler) Book(c *gin.Context) {
	var req bookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_fields", "Invalid request body.")
		return
	}
	if req.UserID == "" || req.HouseID == "" || req.Date == "" || req.StartTime == "" {
		httperr.BadRequest(c, "missing_fields",
			"Missing required fields: user_id, house_id, date, start_time.")
		return
	}

	userID, err := parseID(req.UserID, "invalid_user_id")
	if err != nil {
		respondErr(c, err)
		return
	}
	houseID, err := parseID(req.HouseID, "invalid_house_id")
	if err != nil {
		respondErr(c, err)
		return
	}
	date, err := parseWireDate(req.Date)
	if err != nil {
		respondErr(c, err)
		return
	}

	out, err := h.book.Execute(c.Request.Context(), ucSchedule.BookAppointmentInput{
		HouseID:        houseID,
		UserID:         userID,
		Date:           date,
		StartTime:      req.StartTime,
		Name:           req.Name,
		Description:    req.Description,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	body := gin.H{"appt_id": out.ApptID}
	if out.Replay {
		httpresp.OK(c, "Appointment already created for this key.", body)
		return
	}
	httpresp.Created(c, "Appointment created successfully!", body)
}

// Cancel deletes an appointment by id.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	apptID, err := parseID(c.Param("appt_id"), "invalid_appt_id")
	if err != nil {
		respondErr(c, err)
		return
	}

	if err := h.cancel.Execute(c.Request.Context(), apptID); err != nil {
		respondErr(c, err)
		return
	}

	httpresp.OK(c, "Appointment deleted successfully!", nil)
}

// List returns all appointments for a user or for a house; exactly one of
// the two query parameters must be supplied.
func (h *AppointmentHandler) List(c *gin.Context) {
	var in ucSchedule.ListAppointmentsInput

	if s := c.Query("user_id"); s != "" {
		id, err := parseID(s, "invalid_user_id")
		if err != nil {
			respondErr(c, err)
			return
		}
		in.UserID = id
	}
	if s := c.Query("house_id"); s != "" {
		id, err := parseID(s, "invalid_house_id")
		if err != nil {
			respondErr(c, err)
			return
		}
		in.HouseID = id
	}

	apps, err := h.list.Execute(c.Request.Context(), in)
	if err != nil {
		respondErr(c, err)
		return
	}

	httpresp.OK(c, "Successfully returned appointment data", dto.FromAppointments(apps))
}
