package dto

import (
	"github.com/propview/viewing-scheduler/internal/ident"
	"github.com/propview/viewing-scheduler/internal/models"
)

type AppointmentDTO struct {
	ApptID      string `json:"appt_id"`
	HouseID     string `json:"house_id"`
	UserID      string `json:"user_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func FromAppointment(ap models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ApptID:      ident.String(ap.ApptID),
		HouseID:     ident.String(ap.HouseID),
		UserID:      ident.String(ap.UserID),
		Date:        ap.Date,
		StartTime:   ap.StartTime,
		EndTime:     ap.EndTime,
		Name:        ap.Name,
		Description: ap.Description,
	}
}

func FromAppointments(apps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, FromAppointment(ap))
	}
	return out
}
