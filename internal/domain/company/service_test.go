package company_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rpggio/jobtracker/internal/domain/activity"
	"github.com/rpggio/jobtracker/internal/domain/company"
	"github.com/rpggio/jobtracker/internal/repository/mocks"
	"github.com/rpggio/jobtracker/internal/store"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestService(t *testing.T, activities company.ActivityLogger) (*company.Service, *store.Store) {
	t.Helper()
	st := store.New(store.NewMemoryBackend())
	svc := company.NewService(st, activities, nil,
		company.WithClock(func() time.Time { return fixedNow }),
		company.WithIDGenerator(sequentialIDs()),
		company.WithJobIDGenerator(func() string { return "JOB-0042" }),
	)
	return svc, st
}

func TestCompanyService_AddCompanies(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t, nil)

	added, err := svc.AddCompanies(ctx, []company.CompanyInput{
		{Name: " Acme ", Website: "https://acme.example"},
		{Name: "Globex"},
	})
	require.NoError(t, err)
	require.Len(t, added, 2)
	require.Equal(t, "Acme", added[0].Name)
	require.Equal(t, "id-1", added[0].ID)
	require.Equal(t, fixedNow, added[0].CreatedAt)
	require.Len(t, st.GetAll(ctx), 2)
}

func TestCompanyService_AddCompanies_RejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t, nil)

	_, err := svc.AddCompanies(ctx, []company.CompanyInput{{Name: "Acme"}})
	require.NoError(t, err)

	_, err = svc.AddCompanies(ctx, []company.CompanyInput{{Name: "Initech"}, {Name: "acme"}})
	require.ErrorIs(t, err, company.ErrDuplicateName)

	_, err = svc.AddCompanies(ctx, []company.CompanyInput{{Name: "Hooli"}, {Name: "HOOLI"}})
	require.ErrorIs(t, err, company.ErrDuplicateName)

	_, err = svc.AddCompanies(ctx, []company.CompanyInput{{Name: "Hooli"}, {Name: "  "}})
	require.ErrorIs(t, err, company.ErrInvalidInput)

	_, err = svc.AddCompanies(ctx, nil)
	require.ErrorIs(t, err, company.ErrInvalidInput)

	// Rejected batches write nothing.
	require.Len(t, st.GetAll(ctx), 1)
}

func TestCompanyService_AddCompanies_SimilarNamesAllowed(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	_, err := svc.AddCompanies(ctx, []company.CompanyInput{{Name: "Acme"}, {Name: "acme Corp"}})
	require.NoError(t, err)
}

func TestCompanyService_UpdateCompany(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	added, err := svc.AddCompanies(ctx, []company.CompanyInput{{Name: "Acme"}, {Name: "Globex"}})
	require.NoError(t, err)

	updated, err := svc.UpdateCompany(ctx, added[0].ID, company.CompanyInput{Name: "ACME", Notes: "renamed"})
	require.NoError(t, err)
	require.Equal(t, "ACME", updated.Name)
	require.Equal(t, "renamed", updated.Notes)
	require.Equal(t, added[0].CreatedAt, updated.CreatedAt)

	_, err = svc.UpdateCompany(ctx, added[0].ID, company.CompanyInput{Name: "globex"})
	require.ErrorIs(t, err, company.ErrDuplicateName)

	_, err = svc.UpdateCompany(ctx, "missing", company.CompanyInput{Name: "Nope"})
	require.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestCompanyService_AddApplication_Defaults(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t, nil)
	added, err := svc.AddCompanies(ctx, []company.CompanyInput{{Name: "Acme"}})
	require.NoError(t, err)

	app, err := svc.AddApplication(ctx, added[0].ID, company.ApplicationInput{
		Title:       "Backend Engineer",
		DateApplied: "2025-03-07",
		Skills:      "Go, SQL",
	})
	require.NoError(t, err)
	require.Equal(t, "JOB-0042", app.JobID)
	require.Equal(t, company.StatusApplied, app.Status)
	require.Equal(t, "2025-03-14", app.FollowUpDate)
	require.False(t, app.FollowedUp)
	require.Equal(t, fixedNow, app.CreatedAt)
	require.Equal(t, fixedNow, app.LastUpdated)

	c, ok := st.FindByID(ctx, added[0].ID)
	require.True(t, ok)
	require.Len(t, c.Applications, 1)
	require.Equal(t, *app, c.Applications[0])
}

func TestCompanyService_AddApplication_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)
	added, err := svc.AddCompanies(ctx, []company.CompanyInput{{Name: "Acme"}})
	require.NoError(t, err)
	id := added[0].ID

	tests := []struct {
		name string
		in   company.ApplicationInput
		want error
	}{
		{"missing title", company.ApplicationInput{DateApplied: "2025-03-07"}, company.ErrInvalidInput},
		{"missing date", company.ApplicationInput{Title: "Dev"}, company.ErrInvalidInput},
		{"bad date", company.ApplicationInput{Title: "Dev", DateApplied: "07/03/2025"}, company.ErrInvalidInput},
		{"bad status", company.ApplicationInput{Title: "Dev", DateApplied: "2025-03-07", Status: "Ghosted"}, company.ErrInvalidInput},
		{"follow-up before applied", company.ApplicationInput{Title: "Dev", DateApplied: "2025-03-07", FollowUpDate: "2025-03-01"}, company.ErrFollowUpBeforeApplied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddApplication(ctx, id, tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}

	_, err = svc.AddApplication(ctx, "missing", company.ApplicationInput{Title: "Dev", DateApplied: "2025-03-07"})
	require.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestCompanyService_ApplicationLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t, nil)
	added, err := svc.AddCompanies(ctx, []company.CompanyInput{{Name: "Acme"}})
	require.NoError(t, err)
	cid := added[0].ID

	app, err := svc.AddApplication(ctx, cid, company.ApplicationInput{
		Title: "Engineer", JobID: "REQ-7", DateApplied: "2025-03-01", Status: "interview",
	})
	require.NoError(t, err)
	require.Equal(t, company.StatusInterview, app.Status)

	updated, err := svc.UpdateApplication(ctx, cid, app.ID, company.ApplicationInput{
		Title: "Senior Engineer", DateApplied: "2025-03-01", FollowUpDate: "2025-03-20", Remote: true,
	})
	require.NoError(t, err)
	require.Equal(t, "REQ-7", updated.JobID)
	require.Equal(t, "2025-03-20", updated.FollowUpDate)
	require.True(t, updated.Remote)

	updated, err = svc.SetStatus(ctx, cid, app.ID, company.StatusOffer)
	require.NoError(t, err)
	require.Equal(t, company.StatusOffer, updated.Status)

	_, err = svc.SetStatus(ctx, cid, app.ID, "Hired")
	require.ErrorIs(t, err, company.ErrInvalidInput)

	updated, err = svc.MarkFollowedUp(ctx, cid, app.ID, true)
	require.NoError(t, err)
	require.True(t, updated.FollowedUp)

	require.Len(t, svc.ListWithApplications(ctx), 1)
	require.Empty(t, svc.ListWithoutApplications(ctx))

	require.NoError(t, svc.DeleteApplication(ctx, cid, app.ID))
	require.ErrorIs(t, svc.DeleteApplication(ctx, cid, app.ID), company.ErrApplicationNotFound)

	c, _ := st.FindByID(ctx, cid)
	require.Empty(t, c.Applications)
}

func TestCompanyService_Notes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)
	added, err := svc.AddCompanies(ctx, []company.CompanyInput{{Name: "Acme"}})
	require.NoError(t, err)
	cid := added[0].ID
	app, err := svc.AddApplication(ctx, cid, company.ApplicationInput{Title: "Engineer", DateApplied: "2025-03-01"})
	require.NoError(t, err)

	note, err := svc.AddNote(ctx, cid, app.ID, company.NoteInput{Title: "System design", Content: "Review caching"})
	require.NoError(t, err)
	require.Equal(t, company.CategoryPreparation, note.Category)
	require.Equal(t, "2025-03-10", note.Date)

	_, err = svc.AddNote(ctx, cid, app.ID, company.NoteInput{Title: "x", Category: "gossip"})
	require.ErrorIs(t, err, company.ErrInvalidInput)

	_, err = svc.AddNote(ctx, cid, app.ID, company.NoteInput{Category: company.CategoryQuestion})
	require.ErrorIs(t, err, company.ErrInvalidInput)

	edited, err := svc.UpdateNote(ctx, cid, app.ID, note.ID, company.NoteInput{
		Title: "Questions to ask", Date: "2025-03-12", Category: company.CategoryQuestion,
	})
	require.NoError(t, err)
	require.Equal(t, note.ID, edited.ID)
	require.Equal(t, company.CategoryQuestion, edited.Category)

	got, err := svc.Get(ctx, cid)
	require.NoError(t, err)
	require.Len(t, got.Applications[0].InterviewNotes, 1)
	require.Equal(t, "Questions to ask", got.Applications[0].InterviewNotes[0].Title)

	_, err = svc.UpdateNote(ctx, cid, app.ID, "missing", company.NoteInput{Title: "x"})
	require.ErrorIs(t, err, company.ErrNoteNotFound)

	require.NoError(t, svc.DeleteNote(ctx, cid, app.ID, note.ID))
	require.ErrorIs(t, svc.DeleteNote(ctx, cid, app.ID, note.ID), company.ErrNoteNotFound)

	_, err = svc.AddNote(ctx, cid, "missing", company.NoteInput{Title: "x"})
	require.ErrorIs(t, err, company.ErrApplicationNotFound)
}

func TestCompanyService_DeleteCompany(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)
	added, err := svc.AddCompanies(ctx, []company.CompanyInput{{Name: "Acme"}})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCompany(ctx, added[0].ID))
	_, err = svc.Get(ctx, added[0].ID)
	require.ErrorIs(t, err, company.ErrCompanyNotFound)
	require.ErrorIs(t, svc.DeleteCompany(ctx, added[0].ID), company.ErrCompanyNotFound)
}

func TestCompanyService_RecordsActivity(t *testing.T) {
	ctx := context.Background()
	activities := &mocks.ActivityRepository{}
	activities.On("Log", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeCompanyAdded && *e.CompanyID == "id-1"
	})).Return(nil).Once()
	activities.On("Log", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeApplicationAdded
	})).Return(errors.New("activity log offline")).Once()

	svc, _ := newTestService(t, activities)
	added, err := svc.AddCompanies(ctx, []company.CompanyInput{{Name: "Acme"}})
	require.NoError(t, err)

	// A failing activity log does not fail the operation.
	_, err = svc.AddApplication(ctx, added[0].ID, company.ApplicationInput{Title: "Engineer", DateApplied: "2025-03-01"})
	require.NoError(t, err)
	activities.AssertExpectations(t)
}

func TestCompanyService_PersistenceFailure(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CompanyRepository{}
	repo.On("GetAll", ctx).Return([]company.Company{})
	repo.On("SaveAll", ctx, mock.Anything).Return(errors.New("quota exceeded"))

	svc := company.NewService(repo, nil, nil)
	_, err := svc.AddCompanies(ctx, []company.CompanyInput{{Name: "Acme"}})
	require.ErrorContains(t, err, "quota exceeded")
	repo.AssertExpectations(t)
}
