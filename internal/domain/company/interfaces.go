package company

import (
	"context"

	"github.com/rpggio/jobtracker/internal/domain/activity"
)

// Repository persists the company aggregate. Absence is reported with a
// false return, persistence faults with an error. Modify is the only write
// path: it applies fn to the current collection atomically with respect to
// other writers in the process.
type Repository interface {
	GetAll(ctx context.Context) []Company
	FindByID(ctx context.Context, companyID string) (Company, bool)
	ListWithApplications(ctx context.Context) []Company
	ListWithoutApplications(ctx context.Context) []Company
	Modify(ctx context.Context, fn func([]Company) ([]Company, error)) error
}

// ActivityLogger records tracker events.
type ActivityLogger interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}
