package schedule

import (
	"context"
	"time"

	"github.com/propview/viewing-scheduler/internal/cache"
	domain "github.com/propview/viewing-scheduler/internal/domain/schedule"
	"github.com/propview/viewing-scheduler/internal/httperr"
	"github.com/propview/viewing-scheduler/internal/ident"
)

type GetRangeInput struct {
	HouseID   []byte
	StartDate time.Time
	NumDays   int
}

type GetRange struct {
	repo  domain.Repository
	cache *cache.Cache
}

func NewGetRange(repo domain.Repository, c *cache.Cache) *GetRange {
	return &GetRange{repo: repo, cache: c}
}

// Execute projects the slot grid for every date in
// [StartDate, StartDate+NumDays). A date with neither an override nor a
// recurring pattern yields an empty slot list rather than failing the range.
func (uc *GetRange) Execute(
	ctx context.Context,
	in GetRangeInput,
) (map[string][]string, error) {

	if in.NumDays <= 0 {
		return nil, httperr.ErrBusiness(httperr.KindInvalidArgument, "non_positive_days")
	}

	exists, err := uc.repo.HouseExists(ctx, in.HouseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, httperr.ErrBusiness(httperr.KindNotFound, "house_not_found")
	}

	// The cache version is pinned before any store read so a concurrent
	// mutation's bump cannot publish this request's pre-bump grid under the
	// new version.
	houseKey := ident.String(in.HouseID)
	ver := uc.cache.HouseVersion(ctx, houseKey)

	from := in.StartDate.Format(domain.DateLayout)
	to := in.StartDate.AddDate(0, 0, in.NumDays).Format(domain.DateLayout)

	apps, err := uc.repo.ListAppointmentsForDates(ctx, in.HouseID, from, to)
	if err != nil {
		return nil, err
	}

	// booked start times grouped by date
	bookedByDate := make(map[string]map[string]bool)
	for _, ap := range apps {
		if bookedByDate[ap.Date] == nil {
			bookedByDate[ap.Date] = make(map[string]bool)
		}
		bookedByDate[ap.Date][ap.StartTime] = true
	}

	results := make(map[string][]string, in.NumDays)

	for i := 0; i < in.NumDays; i++ {
		day := in.StartDate.AddDate(0, 0, i)
		dateStr := day.Format(domain.DateLayout)

		if labels, ok := uc.cache.GetDaySlots(ctx, houseKey, ver, dateStr); ok {
			results[dateStr] = labels
			continue
		}

		w, found, err := domain.EffectiveWindow(ctx, uc.repo, in.HouseID, day)
		if err != nil {
			return nil, err
		}

		labels := []string{}
		if found {
			for _, slot := range domain.GenerateDay(w, bookedByDate[dateStr]) {
				labels = append(labels, slot.Label())
			}
		}

		uc.cache.SetDaySlots(ctx, houseKey, ver, dateStr, labels)
		results[dateStr] = labels
	}

	return results, nil
}
