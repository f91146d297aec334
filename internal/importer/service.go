package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rpggio/jobtracker/internal/csvio"
	"github.com/rpggio/jobtracker/internal/domain/activity"
	"github.com/rpggio/jobtracker/internal/domain/company"
)

// Store applies a reconciliation to the persisted snapshot as one atomic
// read-modify-persist. A nil result from fn writes nothing.
type Store interface {
	Modify(ctx context.Context, fn func([]company.Company) ([]company.Company, error)) error
}

// ActivityLogger records import events.
type ActivityLogger interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}

// Service runs the parse, reconcile and persist steps of an import.
type Service struct {
	store      Store
	codec      *csvio.Codec
	activities ActivityLogger
	logger     *slog.Logger
	now        func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source for merge timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates an import service. codec, activities and logger may be nil.
func NewService(store Store, codec *csvio.Codec, activities ActivityLogger, logger *slog.Logger, opts ...Option) *Service {
	if codec == nil {
		codec = csvio.NewCodec()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Service{store: store, codec: codec, activities: activities, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ImportCompanies adds every parsed company whose name is not taken. A
// malformed file writes nothing.
func (s *Service) ImportCompanies(ctx context.Context, r io.Reader) (CompanyStats, error) {
	parsed, err := s.codec.ParseCompanies(r)
	if err != nil {
		return CompanyStats{}, err
	}

	var stats CompanyStats
	err = s.store.Modify(ctx, func(existing []company.Company) ([]company.Company, error) {
		var toInsert []company.Company
		toInsert, stats = ReconcileCompanies(existing, parsed)
		if len(toInsert) == 0 {
			return nil, nil
		}
		return append(existing, toInsert...), nil
	})
	if err != nil {
		return CompanyStats{}, fmt.Errorf("saving imported companies: %w", err)
	}

	s.logger.Info("imported companies", "total", stats.Total, "added", stats.Added, "skipped", stats.Skipped)
	s.record(ctx, activity.TypeCompaniesImported,
		fmt.Sprintf("imported %d of %d companies (%d skipped)", stats.Added, stats.Total, stats.Skipped), stats)
	return stats, nil
}

// ImportApplications merges parsed applications into their companies. Rows
// that cannot be applied are reported in the stats; the rest are saved
// together.
func (s *Service) ImportApplications(ctx context.Context, r io.Reader) (ApplicationStats, error) {
	parsed, err := s.codec.ParseApplications(r)
	if err != nil {
		return ApplicationStats{}, err
	}

	now := s.now()
	var stats ApplicationStats
	err = s.store.Modify(ctx, func(existing []company.Company) ([]company.Company, error) {
		var merged []company.Company
		merged, stats = ReconcileApplications(existing, parsed, now)
		if stats.Added+stats.Updated == 0 {
			return nil, nil
		}
		return merged, nil
	})
	if err != nil {
		return ApplicationStats{}, fmt.Errorf("saving imported applications: %w", err)
	}

	s.logger.Info("imported applications",
		"total", stats.Total, "added", stats.Added, "updated", stats.Updated, "errors", len(stats.Errors))
	s.record(ctx, activity.TypeApplicationsImported,
		fmt.Sprintf("imported %d applications: %d added, %d updated, %d failed",
			stats.Total, stats.Added, stats.Updated, len(stats.Errors)), stats)
	return stats, nil
}

func (s *Service) record(ctx context.Context, kind activity.ActivityType, summary string, details any) {
	if s.activities == nil {
		return
	}
	entry := &activity.ActivityEntry{
		ActivityType: kind,
		Summary:      summary,
		CreatedAt:    s.now().UTC(),
	}
	if data, err := json.Marshal(details); err == nil {
		entry.Details = string(data)
	}
	if err := s.activities.Log(ctx, entry); err != nil {
		s.logger.Warn("failed to record activity", "type", kind, "error", err)
	}
}
