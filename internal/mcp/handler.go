package mcp

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rpggio/jobtracker/internal/csvio"
	"github.com/rpggio/jobtracker/internal/domain/activity"
	"github.com/rpggio/jobtracker/internal/domain/company"
	"github.com/rpggio/jobtracker/internal/importer"
	"github.com/rpggio/jobtracker/internal/stats"
)

const defaultActivityLimit = 20

// CompanyService defines company operations needed by the tool server.
type CompanyService interface {
	List(ctx context.Context) []company.Company
	ListWithApplications(ctx context.Context) []company.Company
	ListWithoutApplications(ctx context.Context) []company.Company
	Get(ctx context.Context, id string) (*company.Company, error)
	AddCompanies(ctx context.Context, inputs []company.CompanyInput) ([]company.Company, error)
	UpdateCompany(ctx context.Context, id string, in company.CompanyInput) (*company.Company, error)
	DeleteCompany(ctx context.Context, id string) error
	AddApplication(ctx context.Context, companyID string, in company.ApplicationInput) (*company.Application, error)
	UpdateApplication(ctx context.Context, companyID, applicationID string, in company.ApplicationInput) (*company.Application, error)
	SetStatus(ctx context.Context, companyID, applicationID string, status company.Status) (*company.Application, error)
	MarkFollowedUp(ctx context.Context, companyID, applicationID string, followedUp bool) (*company.Application, error)
	DeleteApplication(ctx context.Context, companyID, applicationID string) error
	AddNote(ctx context.Context, companyID, applicationID string, in company.NoteInput) (*company.Note, error)
	UpdateNote(ctx context.Context, companyID, applicationID, noteID string, in company.NoteInput) (*company.Note, error)
	DeleteNote(ctx context.Context, companyID, applicationID, noteID string) error
}

// ImportService defines CSV import operations needed by the tool server.
type ImportService interface {
	ImportCompanies(ctx context.Context, r io.Reader) (importer.CompanyStats, error)
	ImportApplications(ctx context.Context, r io.Reader) (importer.ApplicationStats, error)
}

// ActivityService defines activity operations needed by the tool server.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by the tool server.
type Services struct {
	Companies CompanyService
	Imports   ImportService
	Activity  ActivityService
}

// Handler implements the tracker tools on top of the domain services.
type Handler struct {
	companies CompanyService
	imports   ImportService
	activity  ActivityService
	now       func() time.Time
}

// NewHandler creates a new tool handler.
func NewHandler(services Services) *Handler {
	return &Handler{
		companies: services.Companies,
		imports:   services.Imports,
		activity:  services.Activity,
		now:       time.Now,
	}
}

func (h *Handler) ListCompanies(ctx context.Context, p ListCompaniesParams) ([]company.Company, error) {
	switch p.Filter {
	case "", FilterAll:
		return h.companies.List(ctx), nil
	case FilterWithApplications:
		return h.companies.ListWithApplications(ctx), nil
	case FilterWithoutApplications:
		return h.companies.ListWithoutApplications(ctx), nil
	default:
		return nil, &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf("unknown filter %q", p.Filter)}
	}
}

func (h *Handler) GetCompany(ctx context.Context, p GetCompanyParams) (*company.Company, error) {
	return h.companies.Get(ctx, p.ID)
}

func (h *Handler) AddCompanies(ctx context.Context, p AddCompaniesParams) ([]company.Company, error) {
	inputs := make([]company.CompanyInput, 0, len(p.Companies))
	for _, c := range p.Companies {
		inputs = append(inputs, company.CompanyInput{Name: c.Name, Website: c.Website, Notes: c.Notes})
	}
	return h.companies.AddCompanies(ctx, inputs)
}

func (h *Handler) UpdateCompany(ctx context.Context, p UpdateCompanyParams) (*company.Company, error) {
	return h.companies.UpdateCompany(ctx, p.ID, company.CompanyInput{Name: p.Name, Website: p.Website, Notes: p.Notes})
}

func (h *Handler) DeleteCompany(ctx context.Context, p DeleteCompanyParams) (DeleteResponse, error) {
	if err := h.companies.DeleteCompany(ctx, p.ID); err != nil {
		return DeleteResponse{}, err
	}
	return DeleteResponse{Deleted: true}, nil
}

func (h *Handler) AddApplication(ctx context.Context, p AddApplicationParams) (*company.Application, error) {
	return h.companies.AddApplication(ctx, p.CompanyID, p.Application.input())
}

func (h *Handler) UpdateApplication(ctx context.Context, p UpdateApplicationParams) (*company.Application, error) {
	return h.companies.UpdateApplication(ctx, p.CompanyID, p.ApplicationID, p.Application.input())
}

func (h *Handler) SetApplicationStatus(ctx context.Context, p SetStatusParams) (*company.Application, error) {
	return h.companies.SetStatus(ctx, p.CompanyID, p.ApplicationID, company.Status(p.Status))
}

func (h *Handler) MarkFollowedUp(ctx context.Context, p MarkFollowedUpParams) (*company.Application, error) {
	followedUp := true
	if p.FollowedUp != nil {
		followedUp = *p.FollowedUp
	}
	return h.companies.MarkFollowedUp(ctx, p.CompanyID, p.ApplicationID, followedUp)
}

func (h *Handler) DeleteApplication(ctx context.Context, p ApplicationRefParams) (DeleteResponse, error) {
	if err := h.companies.DeleteApplication(ctx, p.CompanyID, p.ApplicationID); err != nil {
		return DeleteResponse{}, err
	}
	return DeleteResponse{Deleted: true}, nil
}

func (h *Handler) AddNote(ctx context.Context, p AddNoteParams) (*company.Note, error) {
	return h.companies.AddNote(ctx, p.CompanyID, p.ApplicationID, p.Note.input())
}

func (h *Handler) UpdateNote(ctx context.Context, p UpdateNoteParams) (*company.Note, error) {
	return h.companies.UpdateNote(ctx, p.CompanyID, p.ApplicationID, p.NoteID, p.Note.input())
}

func (h *Handler) DeleteNote(ctx context.Context, p DeleteNoteParams) (DeleteResponse, error) {
	if err := h.companies.DeleteNote(ctx, p.CompanyID, p.ApplicationID, p.NoteID); err != nil {
		return DeleteResponse{}, err
	}
	return DeleteResponse{Deleted: true}, nil
}

func (h *Handler) ImportCompaniesCSV(ctx context.Context, p ImportCSVParams) (importer.CompanyStats, error) {
	return h.imports.ImportCompanies(ctx, strings.NewReader(p.CSV))
}

func (h *Handler) ImportApplicationsCSV(ctx context.Context, p ImportCSVParams) (importer.ApplicationStats, error) {
	return h.imports.ImportApplications(ctx, strings.NewReader(p.CSV))
}

func (h *Handler) ExportCompaniesCSV(ctx context.Context, _ ExportCSVParams) (ExportResponse, error) {
	companies := h.companies.List(ctx)
	var b strings.Builder
	if err := csvio.WriteCompanies(&b, companies); err != nil {
		return ExportResponse{}, err
	}
	return ExportResponse{
		FileName: csvio.ExportFileName(csvio.KindCompanies, h.now()),
		Rows:     len(companies),
		CSV:      b.String(),
	}, nil
}

func (h *Handler) ExportApplicationsCSV(ctx context.Context, _ ExportCSVParams) (ExportResponse, error) {
	companies := h.companies.List(ctx)
	var b strings.Builder
	if err := csvio.WriteApplications(&b, companies); err != nil {
		return ExportResponse{}, err
	}
	rows := 0
	for _, c := range companies {
		rows += len(c.Applications)
	}
	return ExportResponse{
		FileName: csvio.ExportFileName(csvio.KindApplications, h.now()),
		Rows:     rows,
		CSV:      b.String(),
	}, nil
}

func (h *Handler) GetDashboard(ctx context.Context, _ GetDashboardParams) (stats.Dashboard, error) {
	return stats.Compute(h.companies.List(ctx), h.now()), nil
}

func (h *Handler) GetRecentActivity(ctx context.Context, p GetRecentActivityParams) ([]activity.ActivityEntry, error) {
	if h.activity == nil {
		return []activity.ActivityEntry{}, nil
	}
	entries, err := h.activity.GetRecentActivity(ctx, p.options())
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []activity.ActivityEntry{}
	}
	return entries, nil
}
