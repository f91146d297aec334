package mcp

import (
	"github.com/rpggio/jobtracker/internal/domain/activity"
	"github.com/rpggio/jobtracker/internal/domain/company"
)

// Company list filters.
const (
	FilterAll                 = "all"
	FilterWithApplications    = "with_applications"
	FilterWithoutApplications = "without_applications"
)

type ListCompaniesParams struct {
	Filter string `json:"filter,omitempty" jsonschema:"all (default), with_applications or without_applications"`
}

type GetCompanyParams struct {
	ID string `json:"id" jsonschema:"company id"`
}

type CompanyFields struct {
	Name    string `json:"name" jsonschema:"company name, unique ignoring case"`
	Website string `json:"website,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

type AddCompaniesParams struct {
	Companies []CompanyFields `json:"companies" jsonschema:"companies to add in one batch"`
}

type UpdateCompanyParams struct {
	ID      string `json:"id" jsonschema:"company id"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

type DeleteCompanyParams struct {
	ID string `json:"id" jsonschema:"company id; its applications are deleted too"`
}

type ApplicationFields struct {
	Title        string `json:"title" jsonschema:"job title"`
	JobID        string `json:"job_id,omitempty" jsonschema:"display label; generated as JOB-nnnn when blank"`
	Status       string `json:"status,omitempty" jsonschema:"Applied (default), Interview, Offer or Rejected"`
	DateApplied  string `json:"date_applied" jsonschema:"YYYY-MM-DD"`
	FollowUpDate string `json:"follow_up_date,omitempty" jsonschema:"YYYY-MM-DD; defaults to seven days after date_applied"`
	Skills       string `json:"skills,omitempty" jsonschema:"comma-separated skills"`
	Salary       string `json:"salary,omitempty"`
	Location     string `json:"location,omitempty"`
	Remote       bool   `json:"remote,omitempty"`
	Description  string `json:"description,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

func (f ApplicationFields) input() company.ApplicationInput {
	return company.ApplicationInput{
		Title:        f.Title,
		JobID:        f.JobID,
		Status:       company.Status(f.Status),
		DateApplied:  f.DateApplied,
		FollowUpDate: f.FollowUpDate,
		Skills:       f.Skills,
		Salary:       f.Salary,
		Location:     f.Location,
		Remote:       f.Remote,
		Description:  f.Description,
		Notes:        f.Notes,
	}
}

type AddApplicationParams struct {
	CompanyID   string            `json:"company_id"`
	Application ApplicationFields `json:"application"`
}

type UpdateApplicationParams struct {
	CompanyID     string            `json:"company_id"`
	ApplicationID string            `json:"application_id"`
	Application   ApplicationFields `json:"application" jsonschema:"replacement fields; blank job_id and status keep their current values"`
}

type ApplicationRefParams struct {
	CompanyID     string `json:"company_id"`
	ApplicationID string `json:"application_id"`
}

type SetStatusParams struct {
	CompanyID     string `json:"company_id"`
	ApplicationID string `json:"application_id"`
	Status        string `json:"status" jsonschema:"Applied, Interview, Offer or Rejected"`
}

type MarkFollowedUpParams struct {
	CompanyID     string `json:"company_id"`
	ApplicationID string `json:"application_id"`
	FollowedUp    *bool  `json:"followed_up,omitempty" jsonschema:"defaults to true"`
}

type NoteFields struct {
	Title    string `json:"title"`
	Date     string `json:"date,omitempty" jsonschema:"YYYY-MM-DD; defaults to today"`
	Content  string `json:"content,omitempty"`
	Category string `json:"category,omitempty" jsonschema:"preparation (default), question or feedback"`
}

func (f NoteFields) input() company.NoteInput {
	return company.NoteInput{
		Title:    f.Title,
		Date:     f.Date,
		Content:  f.Content,
		Category: company.NoteCategory(f.Category),
	}
}

type AddNoteParams struct {
	CompanyID     string     `json:"company_id"`
	ApplicationID string     `json:"application_id"`
	Note          NoteFields `json:"note"`
}

type UpdateNoteParams struct {
	CompanyID     string     `json:"company_id"`
	ApplicationID string     `json:"application_id"`
	NoteID        string     `json:"note_id"`
	Note          NoteFields `json:"note"`
}

type DeleteNoteParams struct {
	CompanyID     string `json:"company_id"`
	ApplicationID string `json:"application_id"`
	NoteID        string `json:"note_id"`
}

type ImportCSVParams struct {
	CSV string `json:"csv" jsonschema:"CSV text including the header row"`
}

type ExportCSVParams struct{}

type GetDashboardParams struct{}

type GetRecentActivityParams struct {
	CompanyID     string `json:"company_id,omitempty"`
	ApplicationID string `json:"application_id,omitempty"`
	Type          string `json:"type,omitempty" jsonschema:"activity type, e.g. application_added"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum entries (default 20)"`
	Offset        int    `json:"offset,omitempty"`
}

func (p GetRecentActivityParams) options() activity.ListActivityOptions {
	opts := activity.ListActivityOptions{Limit: p.Limit, Offset: p.Offset}
	if opts.Limit <= 0 {
		opts.Limit = defaultActivityLimit
	}
	if p.CompanyID != "" {
		opts.CompanyID = &p.CompanyID
	}
	if p.ApplicationID != "" {
		opts.ApplicationID = &p.ApplicationID
	}
	if p.Type != "" {
		t := activity.ActivityType(p.Type)
		opts.ActivityType = &t
	}
	return opts
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

type ExportResponse struct {
	FileName string `json:"file_name"`
	Rows     int    `json:"rows"`
	CSV      string `json:"csv"`
}
