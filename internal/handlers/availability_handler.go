package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/propview/viewing-scheduler/internal/httperr"
	"github.com/propview/viewing-scheduler/internal/httpresp"
	ucSchedule "github.com/propview/viewing-scheduler/internal/usecase/schedule"
)

type AvailabilityHandler struct {
	getRange       *ucSchedule.GetRange
	upsert         *ucSchedule.UpsertAvailability
	deleteOverride *ucSchedule.DeleteOverride
}

func NewAvailabilityHandler(
	getRange *ucSchedule.GetRange,
	upsert *ucSchedule.UpsertAvailability,
	deleteOverride *ucSchedule.DeleteOverride,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		getRange:       getRange,
		upsert:         upsert,
		deleteOverride: deleteOverride,
	}
}

// GetRange returns the slot grid for the next `days` days starting at
// `date`, one ordered list of "HH:MM Free|Booked" labels per date.
func (h *AvailabilityHandler) GetRange(c *gin.Context) {
	dateStr := c.Query("date")
	daysStr := c.Query("days")
	if dateStr == "" || daysStr == "" {
		httperr.BadRequest(c, "missing_fields", "Missing required fields: date, days.")
		return
	}

	houseID, err := parseID(c.Param("house_id"), "invalid_house_id")
	if err != nil {
		respondErr(c, err)
		return
	}

	days, err := strconv.Atoi(daysStr)
	if err != nil {
		httperr.BadRequest(c, "non_positive_days", "days should be an integer.")
		return
	}

	startDate, err := parseWireDate(dateStr)
	if err != nil {
		respondErr(c, err)
		return
	}

	results, err := h.getRange.Execute(c.Request.Context(), ucSchedule.GetRangeInput{
		HouseID:   houseID,
		StartDate: startDate,
		NumDays:   days,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	httpresp.OK(c, "Successfully returned availability", results)
}

type upsertAvailabilityRequest struct {
	IsRecurring   *bool  `json:"is_recurring"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	DayOfTheWeek  *int   `json:"day_of_the_week"`
	AvailableDate string `json:"available_date"`
}

type upsertAvailabilityResponse struct {
	Created         bool     `json:"created"`
	CanceledUserIDs []string `json:"canceled_user_ids"`
}

// Upsert creates or updates one availability record for the house. A
// recurring record is keyed by day_of_the_week, an override by
// available_date; writing to an existing key replaces its times. The
// response carries the user ids of appointments the write cascade-canceled.
func (h *AvailabilityHandler) Upsert(c *gin.Context) {
	houseID, err := parseID(c.Param("house_id"), "invalid_house_id")
	if err != nil {
		respondErr(c, err)
		return
	}

	var req upsertAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_fields", "Invalid request body.")
		return
	}
	if req.IsRecurring == nil || req.StartTime == "" || req.EndTime == "" {
		httperr.BadRequest(c, "missing_fields",
			"Missing required fields: is_recurring, start_time, end_time.")
		return
	}
	if err := checkWireTime(req.StartTime, "invalid_start_time"); err != nil {
		respondErr(c, err)
		return
	}
	if err := checkWireTime(req.EndTime, "invalid_end_time"); err != nil {
		respondErr(c, err)
		return
	}

	in := ucSchedule.UpsertAvailabilityInput{
		HouseID:   houseID,
		Recurring: *req.IsRecurring,
		DayOfWeek: req.DayOfTheWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if !in.Recurring {
		if req.AvailableDate == "" {
			httperr.BadRequest(c, "missing_fields", "Missing required fields: available_date.")
			return
		}
		date, err := parseWireDate(req.AvailableDate)
		if err != nil {
			respondErr(c, err)
			return
		}
		in.Date = date
	}

	out, err := h.upsert.Execute(c.Request.Context(), in)
	if err != nil {
		respondErr(c, err)
		return
	}

	body := upsertAvailabilityResponse{
		Created:         out.Created,
		CanceledUserIDs: out.CanceledUserIDs,
	}
	if out.Created {
		httpresp.Created(c, "Availability added successfully.", body)
		return
	}
	httpresp.OK(c, "Availability updated successfully.", body)
}

// DeleteOverride removes the one-off availability for a date, reverting it
// to the recurring pattern and cascade-canceling appointments that no
// longer fit.
func (h *AvailabilityHandler) DeleteOverride(c *gin.Context) {
	houseID, err := parseID(c.Param("house_id"), "invalid_house_id")
	if err != nil {
		respondErr(c, err)
		return
	}

	date, err := parseWireDate(c.Query("date"))
	if err != nil {
		respondErr(c, err)
		return
	}

	out, err := h.deleteOverride.Execute(c.Request.Context(), ucSchedule.DeleteOverrideInput{
		HouseID: houseID,
		Date:    date,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	httpresp.OK(c, "Availability deleted successfully!", out.CanceledUserIDs)
}
