package schedule

import (
	"context"
	"time"

	"github.com/propview/viewing-scheduler/internal/audit"
	"github.com/propview/viewing-scheduler/internal/cache"
	domain "github.com/propview/viewing-scheduler/internal/domain/schedule"
	"github.com/propview/viewing-scheduler/internal/httperr"
	"github.com/propview/viewing-scheduler/internal/ident"
)

type DeleteOverrideInput struct {
	HouseID []byte
	Date    time.Time
}

type DeleteOverrideOutput struct {
	CanceledUserIDs []string
}

type DeleteOverride struct {
	repo  domain.Repository
	locks *Locks
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewDeleteOverride(
	repo domain.Repository,
	locks *Locks,
	c *cache.Cache,
	audit *audit.Dispatcher,
) *DeleteOverride {
	return &DeleteOverride{repo: repo, locks: locks, cache: c, audit: audit}
}

// Execute reverts one date to its recurring pattern: the override row is
// removed and appointments that do not fit the reverted recurring window
// are cascade-canceled. Reverting requires a recurring pattern for that
// weekday to exist; a date can only fall back onto something.
func (uc *DeleteOverride) Execute(
	ctx context.Context,
	in DeleteOverrideInput,
) (*DeleteOverrideOutput, error) {

	unlock := uc.locks.LockHouse(in.HouseID)
	defer unlock()

	out := &DeleteOverrideOutput{CanceledUserIDs: []string{}}
	var patternID []byte

	err := uc.repo.Atomic(ctx, func(tx domain.Repository) error {
		ov, err := tx.GetOverride(ctx, in.HouseID, in.Date.Format(domain.DateLayout))
		if err != nil {
			return err
		}
		if ov == nil {
			return httperr.ErrBusiness(httperr.KindNotFound, "no_availability_for_date")
		}

		rec, err := tx.GetRecurring(ctx, in.HouseID, domain.Weekday(in.Date))
		if err != nil {
			return err
		}
		if rec == nil {
			return httperr.ErrBusiness(httperr.KindNotFound, "no_recurring_availability")
		}

		patternID = ov.PatternID
		if err := tx.DeletePattern(ctx, ov.PatternID); err != nil {
			return err
		}

		users, err := cascadeCancel(ctx, tx, in.HouseID, domain.Window{
			Start: rec.StartTime,
			End:   rec.EndTime,
		})
		if err != nil {
			return err
		}
		out.CanceledUserIDs = users
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.BumpHouse(ctx, ident.String(in.HouseID))

	uc.audit.Dispatch(audit.Event{
		HouseID:  in.HouseID,
		Action:   audit.ActionOverrideDeleted,
		Entity:   "availability",
		EntityID: patternID,
		Metadata: map[string]any{
			"date":           in.Date.Format(domain.DateLayout),
			"canceled_count": len(out.CanceledUserIDs),
		},
	})
	if len(out.CanceledUserIDs) > 0 {
		uc.audit.Dispatch(audit.Event{
			HouseID:  in.HouseID,
			Action:   audit.ActionCascadeCanceled,
			Entity:   "appointment",
			Metadata: map[string]any{"user_ids": out.CanceledUserIDs},
		})
	}

	return out, nil
}
