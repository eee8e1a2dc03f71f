package schedule

import (
	"context"

	domain "github.com/propview/viewing-scheduler/internal/domain/schedule"
	"github.com/propview/viewing-scheduler/internal/ident"
)

// cascadeCancel removes every appointment of the house that no longer fits
// the window and returns the affected user ids. Comparison is time-of-day
// only, across all dates, matching the availability contract: any
// appointment even partially outside [w.Start, w.End) goes.
//
// The result is a sequence ordered by appointment date then start time;
// duplicates are kept so callers see one entry per canceled appointment,
// not per user. Runs inside the caller's transaction.
func cascadeCancel(
	ctx context.Context,
	repo domain.Repository,
	houseID []byte,
	w domain.Window,
) ([]string, error) {

	apps, err := repo.ListAppointmentsOutside(ctx, houseID, w)
	if err != nil {
		return nil, err
	}

	users := []string{}
	for _, ap := range apps {
		if err := repo.DeleteAppointment(ctx, ap.ApptID); err != nil {
			return nil, err
		}
		users = append(users, ident.String(ap.UserID))
	}

	return users, nil
}
