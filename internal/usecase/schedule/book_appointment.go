package schedule

import (
	"context"
	"time"

	"github.com/propview/viewing-scheduler/internal/audit"
	"github.com/propview/viewing-scheduler/internal/cache"
	domain "github.com/propview/viewing-scheduler/internal/domain/schedule"
	"github.com/propview/viewing-scheduler/internal/httperr"
	"github.com/propview/viewing-scheduler/internal/ident"
	"github.com/propview/viewing-scheduler/internal/models"
)

type BookAppointmentInput struct {
	HouseID []byte
	UserID  []byte

	Date      time.Time
	StartTime string

	Name        string
	Description string

	// IdempotencyKey, when set, deduplicates client retries: the same key
	// replays the first booking's id instead of creating a duplicate.
	IdempotencyKey string
}

type BookAppointmentOutput struct {
	ApptID string
	Replay bool
}

type BookAppointment struct {
	repo  domain.Repository
	locks *Locks
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewBookAppointment(
	repo domain.Repository,
	locks *Locks,
	c *cache.Cache,
	audit *audit.Dispatcher,
) *BookAppointment {
	return &BookAppointment{repo: repo, locks: locks, cache: c, audit: audit}
}

// Execute books one 15-minute slot. The end time is always derived, the
// requested slot is NOT validated against the house's availability window
// (well-formed callers book from GetRange output), and the overlap guard
// compares times of day against every appointment in the system. That width
// is the documented booking contract.
func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*BookAppointmentOutput, error) {

	if len(in.Name) >= 255 {
		return nil, httperr.ErrBusiness(httperr.KindInvalidArgument, "name_too_long")
	}

	start, err := time.Parse(domain.TimeLayout, in.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.KindInvalidArgument, "invalid_start_time")
	}
	end := start.Add(domain.SlotMinutes * time.Minute).Format(domain.TimeLayout)

	if id, ok := uc.cache.IdemGet(ctx, in.IdempotencyKey); ok {
		return &BookAppointmentOutput{ApptID: id, Replay: true}, nil
	}

	unlockHouse := uc.locks.LockHouse(in.HouseID)
	defer unlockHouse()
	unlockBooking := uc.locks.LockBooking()
	defer unlockBooking()

	ap := &models.Appointment{
		ApptID:      ident.New(),
		HouseID:     in.HouseID,
		UserID:      in.UserID,
		Date:        in.Date.Format(domain.DateLayout),
		DayOfWeek:   domain.Weekday(in.Date),
		StartTime:   in.StartTime,
		EndTime:     end,
		Name:        in.Name,
		Description: in.Description,
	}

	err = uc.repo.Atomic(ctx, func(tx domain.Repository) error {
		count, err := tx.CountOverlapping(ctx, in.StartTime, end)
		if err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness(httperr.KindConflict, "appointment_overlap")
		}
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	apptID := ident.String(ap.ApptID)
	uc.cache.IdemSet(ctx, in.IdempotencyKey, apptID)
	uc.cache.BumpHouse(ctx, ident.String(in.HouseID))

	uc.audit.Dispatch(audit.Event{
		HouseID:  in.HouseID,
		ActorID:  in.UserID,
		Action:   audit.ActionAppointmentBooked,
		Entity:   "appointment",
		EntityID: ap.ApptID,
		Metadata: map[string]any{
			"date":       ap.Date,
			"start_time": ap.StartTime,
		},
	})

	return &BookAppointmentOutput{ApptID: apptID}, nil
}
