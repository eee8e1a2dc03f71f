package schedule

import (
	"context"

	"github.com/propview/viewing-scheduler/internal/audit"
	"github.com/propview/viewing-scheduler/internal/cache"
	domain "github.com/propview/viewing-scheduler/internal/domain/schedule"
	"github.com/propview/viewing-scheduler/internal/httperr"
	"github.com/propview/viewing-scheduler/internal/ident"
)

type CancelAppointment struct {
	repo  domain.Repository
	locks *Locks
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	locks *Locks,
	c *cache.Cache,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{repo: repo, locks: locks, cache: c, audit: audit}
}

// Execute deletes one appointment by id. Authorization is the caller's
// problem; the core only knows appointment ids.
func (uc *CancelAppointment) Execute(ctx context.Context, apptID []byte) error {
	// First lookup only resolves the house to lock; existence is decided by
	// the re-read under the lock, so a racing cancel of the same id answers
	// not_found instead of silently deleting zero rows.
	ap, err := uc.repo.GetAppointment(ctx, apptID)
	if err != nil {
		return err
	}
	if ap == nil {
		return httperr.ErrBusiness(httperr.KindNotFound, "appointment_not_found")
	}

	unlock := uc.locks.LockHouse(ap.HouseID)
	defer unlock()

	err = uc.repo.Atomic(ctx, func(tx domain.Repository) error {
		cur, err := tx.GetAppointment(ctx, apptID)
		if err != nil {
			return err
		}
		if cur == nil {
			return httperr.ErrBusiness(httperr.KindNotFound, "appointment_not_found")
		}
		return tx.DeleteAppointment(ctx, apptID)
	})
	if err != nil {
		return err
	}

	uc.cache.BumpHouse(ctx, ident.String(ap.HouseID))

	uc.audit.Dispatch(audit.Event{
		HouseID:  ap.HouseID,
		ActorID:  ap.UserID,
		Action:   audit.ActionAppointmentCanceled,
		Entity:   "appointment",
		EntityID: ap.ApptID,
	})

	return nil
}
