package schedule

import (
	"context"

	"github.com/propview/viewing-scheduler/internal/models"
)

// Repository is the store contract the scheduling use cases depend on. It
// spans the house lookup, the availability store, and the appointment store.
//
// Single-record Get methods return (nil, nil) when no record matches; errors
// are reserved for store failures. Implementations must surface context
// deadline expiry as a timeout-kinded error.
type Repository interface {
	// -------- House lookup --------
	HouseExists(
		ctx context.Context,
		houseID []byte,
	) (bool, error)

	// -------- Availability patterns --------
	GetRecurring(
		ctx context.Context,
		houseID []byte,
		weekday int,
	) (*models.AvailabilityPattern, error)

	GetOverride(
		ctx context.Context,
		houseID []byte,
		date string,
	) (*models.AvailabilityPattern, error)

	CreatePattern(
		ctx context.Context,
		p *models.AvailabilityPattern,
	) error

	UpdatePatternTimes(
		ctx context.Context,
		patternID []byte,
		start string,
		end string,
	) error

	DeletePattern(
		ctx context.Context,
		patternID []byte,
	) error

	// -------- Appointments --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		apptID []byte,
	) (*models.Appointment, error)

	DeleteAppointment(
		ctx context.Context,
		apptID []byte,
	) error

	ListAppointmentsByUser(
		ctx context.Context,
		userID []byte,
	) ([]models.Appointment, error)

	ListAppointmentsByHouse(
		ctx context.Context,
		houseID []byte,
	) ([]models.Appointment, error)

	// ListAppointmentsForDates returns a house's appointments with
	// from <= date < to, ordered by date then start time.
	ListAppointmentsForDates(
		ctx context.Context,
		houseID []byte,
		from string,
		to string,
	) ([]models.Appointment, error)

	// ListAppointmentsOutside returns the house's appointments, on any
	// date, that no longer fit the window: start_time < w.Start OR
	// end_time > w.End. Ordered by date then start time.
	ListAppointmentsOutside(
		ctx context.Context,
		houseID []byte,
		w Window,
	) ([]models.Appointment, error)

	// CountOverlapping counts appointments, across every house and date,
	// whose time-of-day interval overlaps [start, end). The booking guard
	// is deliberately this wide; see the recorded contract decision.
	CountOverlapping(
		ctx context.Context,
		start string,
		end string,
	) (int64, error)

	// Atomic runs fn against a transactional view of the same store. All
	// writes inside fn commit together or not at all.
	Atomic(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
