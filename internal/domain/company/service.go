package company

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/jobtracker/internal/dates"
	"github.com/rpggio/jobtracker/internal/domain/activity"
)

// DefaultFollowUpDays is how far after the application date a follow-up is
// scheduled when none is given.
const DefaultFollowUpDays = 7

// Service handles company, application and interview note operations.
type Service struct {
	repo       Repository
	activities ActivityLogger
	logger     *slog.Logger

	now      func() time.Time
	newID    func() string
	newJobID func() string
}

// NewService creates a new company service. activities may be nil.
func NewService(repo Repository, activities ActivityLogger, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Service{repo: repo, activities: activities, logger: logger}
	defaultOptions(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CompanyInput carries the editable company fields.
type CompanyInput struct {
	Name    string
	Website string
	Notes   string
}

// ApplicationInput carries the editable application fields. Blank JobID,
// Status and FollowUpDate are defaulted.
type ApplicationInput struct {
	Title        string
	JobID        string
	Status       Status
	DateApplied  string
	FollowUpDate string
	Skills       string
	Salary       string
	Location     string
	Remote       bool
	Description  string
	Notes        string
}

// NoteInput carries the editable interview note fields.
type NoteInput struct {
	Title    string
	Date     string
	Content  string
	Category NoteCategory
}

// List returns every company.
func (s *Service) List(ctx context.Context) []Company {
	return s.repo.GetAll(ctx)
}

// ListWithApplications returns companies holding at least one application.
func (s *Service) ListWithApplications(ctx context.Context) []Company {
	return s.repo.ListWithApplications(ctx)
}

// ListWithoutApplications returns companies with no applications yet.
func (s *Service) ListWithoutApplications(ctx context.Context) []Company {
	return s.repo.ListWithoutApplications(ctx)
}

// Get fetches a company by ID.
func (s *Service) Get(ctx context.Context, id string) (*Company, error) {
	c, ok := s.repo.FindByID(ctx, id)
	if !ok {
		return nil, ErrCompanyNotFound
	}
	return &c, nil
}

// AddCompanies validates and adds a batch of companies in one write. Names
// must be non-empty and unique, case-insensitively, both within the batch and
// against existing companies. Nothing is written if any entry is rejected.
func (s *Service) AddCompanies(ctx context.Context, inputs []CompanyInput) ([]Company, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no companies given", ErrInvalidInput)
	}

	now := s.now().UTC()
	var added []Company
	err := s.repo.Modify(ctx, func(existing []Company) ([]Company, error) {
		seen := make(map[string]struct{}, len(existing)+len(inputs))
		for _, c := range existing {
			seen[strings.ToLower(strings.TrimSpace(c.Name))] = struct{}{}
		}

		batch := make([]Company, 0, len(inputs))
		for i, in := range inputs {
			c := Company{
				ID:        s.newID(),
				Name:      strings.TrimSpace(in.Name),
				Website:   strings.TrimSpace(in.Website),
				Notes:     strings.TrimSpace(in.Notes),
				CreatedAt: now,
			}
			if err := ValidateCompany(c); err != nil {
				return nil, fmt.Errorf("company %d: %w", i+1, err)
			}
			key := strings.ToLower(c.Name)
			if _, dup := seen[key]; dup {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateName, c.Name)
			}
			seen[key] = struct{}{}
			batch = append(batch, c)
		}
		added = batch
		return append(existing, batch...), nil
	})
	if err != nil {
		return nil, err
	}

	for _, c := range added {
		s.record(ctx, activity.TypeCompanyAdded, c.ID, "", fmt.Sprintf("added company %s", c.Name))
	}
	return added, nil
}

// UpdateCompany edits a company's name, website and notes. Its applications
// are left as stored.
func (s *Service) UpdateCompany(ctx context.Context, id string, in CompanyInput) (*Company, error) {
	name := strings.TrimSpace(in.Name)
	if err := ValidateCompany(Company{Name: name}); err != nil {
		return nil, err
	}

	var updated Company
	err := s.repo.Modify(ctx, func(companies []Company) ([]Company, error) {
		idx := indexOfCompany(companies, id)
		if idx < 0 {
			return nil, ErrCompanyNotFound
		}
		for _, other := range companies {
			if other.ID != id && SameName(other.Name, name) {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
			}
		}
		c := &companies[idx]
		c.Name = name
		c.Website = strings.TrimSpace(in.Website)
		c.Notes = strings.TrimSpace(in.Notes)
		updated = *c
		return companies, nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, activity.TypeCompanyUpdated, id, "", fmt.Sprintf("updated company %s", name))
	return &updated, nil
}

// DeleteCompany removes a company together with all of its applications.
func (s *Service) DeleteCompany(ctx context.Context, id string) error {
	var removed Company
	err := s.repo.Modify(ctx, func(companies []Company) ([]Company, error) {
		idx := indexOfCompany(companies, id)
		if idx < 0 {
			return nil, ErrCompanyNotFound
		}
		removed = companies[idx]
		return append(companies[:idx], companies[idx+1:]...), nil
	})
	if err != nil {
		return err
	}

	s.record(ctx, activity.TypeCompanyDeleted, id, "",
		fmt.Sprintf("deleted company %s and %d application(s)", removed.Name, len(removed.Applications)))
	return nil
}

// AddApplication creates an application under a company, applying defaults
// for the job label, status and follow-up date.
func (s *Service) AddApplication(ctx context.Context, companyID string, in ApplicationInput) (*Application, error) {
	now := s.now().UTC()
	app := Application{
		ID:          s.newID(),
		CreatedAt:   now,
		LastUpdated: now,
	}
	if err := s.applyInput(&app, in); err != nil {
		return nil, err
	}

	err := s.modifyCompany(ctx, companyID, func(c *Company) error {
		c.Applications = append(c.Applications, app)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, activity.TypeApplicationAdded, companyID, app.ID,
		fmt.Sprintf("added application %s (%s)", app.Title, app.JobID))
	return &app, nil
}

// UpdateApplication replaces the editable fields of an application. A blank
// JobID or Status keeps the existing value.
func (s *Service) UpdateApplication(ctx context.Context, companyID, applicationID string, in ApplicationInput) (*Application, error) {
	app, err := s.modifyApplication(ctx, companyID, applicationID, func(app *Application) error {
		if strings.TrimSpace(in.JobID) == "" {
			in.JobID = app.JobID
		}
		if strings.TrimSpace(string(in.Status)) == "" {
			in.Status = app.Status
		}
		return s.applyInput(app, in)
	})
	if err != nil {
		return nil, err
	}
	s.record(ctx, activity.TypeApplicationUpdated, companyID, app.ID,
		fmt.Sprintf("updated application %s", app.Title))
	return &app, nil
}

// SetStatus moves an application to a new pipeline stage.
func (s *Service) SetStatus(ctx context.Context, companyID, applicationID string, status Status) (*Application, error) {
	st, ok := ParseStatus(string(status))
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	var previous Status
	app, err := s.modifyApplication(ctx, companyID, applicationID, func(app *Application) error {
		previous = app.Status
		app.Status = st
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.record(ctx, activity.TypeApplicationUpdated, companyID, app.ID,
		fmt.Sprintf("status of %s changed from %s to %s", app.Title, previous, st))
	return &app, nil
}

// MarkFollowedUp sets whether the follow-up for an application was done.
func (s *Service) MarkFollowedUp(ctx context.Context, companyID, applicationID string, followedUp bool) (*Application, error) {
	app, err := s.modifyApplication(ctx, companyID, applicationID, func(app *Application) error {
		app.FollowedUp = followedUp
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.record(ctx, activity.TypeApplicationUpdated, companyID, app.ID,
		fmt.Sprintf("follow-up for %s marked %t", app.Title, followedUp))
	return &app, nil
}

// DeleteApplication removes an application and its interview notes.
func (s *Service) DeleteApplication(ctx context.Context, companyID, applicationID string) error {
	var title string
	err := s.modifyCompany(ctx, companyID, func(c *Company) error {
		idx := c.FindApplication(applicationID)
		if idx < 0 {
			return ErrApplicationNotFound
		}
		title = c.Applications[idx].Title
		c.Applications = append(c.Applications[:idx], c.Applications[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	s.record(ctx, activity.TypeApplicationDeleted, companyID, applicationID,
		fmt.Sprintf("deleted application %s", title))
	return nil
}

// AddNote attaches an interview note to an application.
func (s *Service) AddNote(ctx context.Context, companyID, applicationID string, in NoteInput) (*Note, error) {
	note := Note{
		ID:        s.newID(),
		CreatedAt: s.now().UTC(),
	}
	if err := s.applyNoteInput(&note, in); err != nil {
		return nil, err
	}

	app, err := s.modifyApplication(ctx, companyID, applicationID, func(app *Application) error {
		app.InterviewNotes = append(app.InterviewNotes, note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.record(ctx, activity.TypeNoteAdded, companyID, app.ID,
		fmt.Sprintf("added %s note %q to %s", note.Category, note.Title, app.Title))
	return &note, nil
}

// UpdateNote replaces the editable fields of an interview note.
func (s *Service) UpdateNote(ctx context.Context, companyID, applicationID, noteID string, in NoteInput) (*Note, error) {
	var note Note
	app, err := s.modifyApplication(ctx, companyID, applicationID, func(app *Application) error {
		idx := app.FindNote(noteID)
		if idx < 0 {
			return ErrNoteNotFound
		}
		note = app.InterviewNotes[idx]
		if err := s.applyNoteInput(&note, in); err != nil {
			return err
		}
		app.InterviewNotes[idx] = note
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.record(ctx, activity.TypeNoteUpdated, companyID, app.ID,
		fmt.Sprintf("updated note %q on %s", note.Title, app.Title))
	return &note, nil
}

// DeleteNote removes an interview note from an application.
func (s *Service) DeleteNote(ctx context.Context, companyID, applicationID, noteID string) error {
	var title string
	app, err := s.modifyApplication(ctx, companyID, applicationID, func(app *Application) error {
		idx := app.FindNote(noteID)
		if idx < 0 {
			return ErrNoteNotFound
		}
		title = app.InterviewNotes[idx].Title
		app.InterviewNotes = append(app.InterviewNotes[:idx], app.InterviewNotes[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	s.record(ctx, activity.TypeNoteDeleted, companyID, app.ID,
		fmt.Sprintf("deleted note %q from %s", title, app.Title))
	return nil
}

func (s *Service) applyInput(app *Application, in ApplicationInput) error {
	dateApplied := strings.TrimSpace(in.DateApplied)
	if dateApplied == "" {
		return fmt.Errorf("%w: dateApplied is required", ErrInvalidInput)
	}
	dateApplied, err := dates.Normalize(dateApplied)
	if err != nil {
		return fmt.Errorf("%w: dateApplied: %v", ErrInvalidInput, err)
	}

	followUp := strings.TrimSpace(in.FollowUpDate)
	if followUp == "" {
		followUp, _ = dates.AddDays(dateApplied, DefaultFollowUpDays)
	} else if followUp, err = dates.Normalize(followUp); err != nil {
		return fmt.Errorf("%w: followUpDate: %v", ErrInvalidInput, err)
	}

	status := StatusApplied
	if strings.TrimSpace(string(in.Status)) != "" {
		st, ok := ParseStatus(string(in.Status))
		if !ok {
			return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
		}
		status = st
	}

	jobID := strings.TrimSpace(in.JobID)
	if jobID == "" {
		jobID = s.newJobID()
	}

	candidate := *app
	candidate.Title = strings.TrimSpace(in.Title)
	candidate.JobID = jobID
	candidate.Status = status
	candidate.DateApplied = dateApplied
	candidate.FollowUpDate = followUp
	candidate.Skills = strings.TrimSpace(in.Skills)
	candidate.Salary = strings.TrimSpace(in.Salary)
	candidate.Location = strings.TrimSpace(in.Location)
	candidate.Remote = in.Remote
	candidate.Description = strings.TrimSpace(in.Description)
	candidate.Notes = strings.TrimSpace(in.Notes)

	if err := ValidateApplication(candidate); err != nil {
		return err
	}
	*app = candidate
	return nil
}

func (s *Service) applyNoteInput(note *Note, in NoteInput) error {
	candidate := *note
	candidate.Title = strings.TrimSpace(in.Title)
	candidate.Content = in.Content

	candidate.Category = in.Category
	if candidate.Category == "" {
		candidate.Category = CategoryPreparation
	}

	candidate.Date = strings.TrimSpace(in.Date)
	if candidate.Date == "" {
		candidate.Date = dates.Today(s.now())
	} else if norm, err := dates.Normalize(candidate.Date); err == nil {
		candidate.Date = norm
	}

	if err := ValidateNote(candidate); err != nil {
		return err
	}
	*note = candidate
	return nil
}

// modifyCompany applies fn to one stored company inside a single
// read-modify-persist.
func (s *Service) modifyCompany(ctx context.Context, companyID string, fn func(*Company) error) error {
	return s.repo.Modify(ctx, func(companies []Company) ([]Company, error) {
		idx := indexOfCompany(companies, companyID)
		if idx < 0 {
			return nil, ErrCompanyNotFound
		}
		if err := fn(&companies[idx]); err != nil {
			return nil, err
		}
		return companies, nil
	})
}

// modifyApplication applies fn to one stored application, bumps its
// lastUpdated and returns the saved copy.
func (s *Service) modifyApplication(ctx context.Context, companyID, applicationID string, fn func(*Application) error) (Application, error) {
	var saved Application
	err := s.modifyCompany(ctx, companyID, func(c *Company) error {
		idx := c.FindApplication(applicationID)
		if idx < 0 {
			return ErrApplicationNotFound
		}
		app := c.Applications[idx]
		if err := fn(&app); err != nil {
			return err
		}
		app.LastUpdated = s.now().UTC()
		c.Applications[idx] = app
		saved = app
		return nil
	})
	return saved, err
}

func indexOfCompany(companies []Company, id string) int {
	for i := range companies {
		if companies[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) record(ctx context.Context, kind activity.ActivityType, companyID, applicationID, summary string) {
	if s.activities == nil {
		return
	}
	entry := &activity.ActivityEntry{
		ActivityType: kind,
		Summary:      summary,
		CreatedAt:    s.now().UTC(),
	}
	if companyID != "" {
		entry.CompanyID = &companyID
	}
	if applicationID != "" {
		entry.ApplicationID = &applicationID
	}
	if err := s.activities.Log(ctx, entry); err != nil {
		s.logger.Warn("failed to record activity", "type", kind, "error", err)
	}
}
