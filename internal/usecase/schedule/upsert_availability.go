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

type UpsertAvailabilityInput struct {
	HouseID []byte

	Recurring bool
	DayOfWeek *int      // required when Recurring; 0 = Sunday
	Date      time.Time // required when not Recurring

	StartTime string
	EndTime   string
}

type UpsertAvailabilityOutput struct {
	Created         bool
	CanceledUserIDs []string
}

type UpsertAvailability struct {
	repo  domain.Repository
	locks *Locks
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewUpsertAvailability(
	repo domain.Repository,
	locks *Locks,
	c *cache.Cache,
	audit *audit.Dispatcher,
) *UpsertAvailability {
	return &UpsertAvailability{repo: repo, locks: locks, cache: c, audit: audit}
}

// Execute writes one availability record, updating in place when the key
// (house+weekday or house+date) already holds one.
//
// Cascade rules are asymmetric on purpose: updating a recurring pattern
// cascades against the new window, creating one does not (nothing could
// have been booked against a day that had no pattern yet), while an
// override cascades on create and update alike since it supersedes an
// existing recurring window for that date.
func (uc *UpsertAvailability) Execute(
	ctx context.Context,
	in UpsertAvailabilityInput,
) (*UpsertAvailabilityOutput, error) {

	if in.Recurring {
		if in.DayOfWeek == nil || *in.DayOfWeek < 0 || *in.DayOfWeek > 6 {
			return nil, httperr.ErrBusiness(httperr.KindInvalidArgument, "invalid_day_of_the_week")
		}
	}

	unlock := uc.locks.LockHouse(in.HouseID)
	defer unlock()

	out := &UpsertAvailabilityOutput{CanceledUserIDs: []string{}}
	window := domain.Window{Start: in.StartTime, End: in.EndTime}
	var patternID []byte

	err := uc.repo.Atomic(ctx, func(tx domain.Repository) error {
		var existing *models.AvailabilityPattern
		var err error

		if in.Recurring {
			existing, err = tx.GetRecurring(ctx, in.HouseID, *in.DayOfWeek)
		} else {
			existing, err = tx.GetOverride(ctx, in.HouseID, in.Date.Format(domain.DateLayout))
		}
		if err != nil {
			return err
		}

		if existing != nil {
			patternID = existing.PatternID
			if err := tx.UpdatePatternTimes(ctx, existing.PatternID, in.StartTime, in.EndTime); err != nil {
				return err
			}
			users, err := cascadeCancel(ctx, tx, in.HouseID, window)
			if err != nil {
				return err
			}
			out.CanceledUserIDs = users
			return nil
		}

		out.Created = true
		p := &models.AvailabilityPattern{
			PatternID: ident.New(),
			HouseID:   in.HouseID,
			Recurring: in.Recurring,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
		}
		if in.Recurring {
			dow := *in.DayOfWeek
			p.DayOfWeek = &dow
		} else {
			p.AvailableDate = in.Date.Format(domain.DateLayout)
		}
		patternID = p.PatternID
		if err := tx.CreatePattern(ctx, p); err != nil {
			return err
		}

		if !in.Recurring {
			users, err := cascadeCancel(ctx, tx, in.HouseID, window)
			if err != nil {
				return err
			}
			out.CanceledUserIDs = users
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.BumpHouse(ctx, ident.String(in.HouseID))

	action := audit.ActionAvailabilityUpdated
	if out.Created {
		action = audit.ActionAvailabilityCreated
	}
	uc.audit.Dispatch(audit.Event{
		HouseID:  in.HouseID,
		Action:   action,
		Entity:   "availability",
		EntityID: patternID,
		Metadata: map[string]any{
			"recurring":      in.Recurring,
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
