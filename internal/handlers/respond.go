package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/propview/viewing-scheduler/internal/httperr"
)

// respondErr is the single place business errors become HTTP responses.
func respondErr(c *gin.Context, err error) {
	kind := httperr.KindOf(err)

	code := "internal_error"
	var be httperr.BusinessError
	if errors.As(err, &be) {
		code = be.Code
	}

	if kind == httperr.KindInternal {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
	}

	httperr.Write(c, httperr.StatusOf(kind), code, messageFor(code))
}

var messages = map[string]string{
	"invalid_house_id":          "Invalid house_id format.",
	"invalid_user_id":           "Invalid user_id format.",
	"invalid_appt_id":           "Invalid appt_id format.",
	"invalid_date":              "Invalid date format. Use YYYY-MM-DD.",
	"invalid_start_time":        "Invalid start_time format. Use HH:MM:SS.",
	"invalid_end_time":          "Invalid end_time format. Use HH:MM:SS.",
	"invalid_day_of_the_week":   "day_of_the_week must be an integer in 0..6 (0 = Sunday).",
	"non_positive_days":         "Please specify a positive number of days.",
	"missing_fields":            "Missing required fields.",
	"missing_filter":            "Please specify a house_id or a user_id.",
	"ambiguous_filter":          "Specify either house_id or user_id, not both.",
	"name_too_long":             "Name too long.",
	"house_not_found":           "House not found.",
	"appointment_not_found":     "Appointment not found.",
	"no_availability_for_date":  "No availability found for that date.",
	"no_recurring_availability": "No recurring availability to revert to.",
	"appointment_overlap":       "Overlaps with existing appointment.",
	"store_timeout":             "Store unavailable, try again.",
}

func messageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Internal error."
}
