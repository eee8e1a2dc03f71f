package schedule

import (
	"context"

	domain "github.com/propview/viewing-scheduler/internal/domain/schedule"
	"github.com/propview/viewing-scheduler/internal/httperr"
	"github.com/propview/viewing-scheduler/internal/models"
)

type ListAppointmentsInput struct {
	// Exactly one of UserID / HouseID must be set.
	UserID  []byte
	HouseID []byte
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]models.Appointment, error) {

	switch {
	case in.UserID != nil && in.HouseID != nil:
		return nil, httperr.ErrBusiness(httperr.KindInvalidArgument, "ambiguous_filter")
	case in.UserID != nil:
		return uc.repo.ListAppointmentsByUser(ctx, in.UserID)
	case in.HouseID != nil:
		return uc.repo.ListAppointmentsByHouse(ctx, in.HouseID)
	default:
		return nil, httperr.ErrBusiness(httperr.KindInvalidArgument, "missing_filter")
	}
}
