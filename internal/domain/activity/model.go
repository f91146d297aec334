package activity

import "time"

// ActivityType names a tracker event.
type ActivityType string

const (
	TypeCompanyAdded         ActivityType = "company_added"
	TypeCompanyUpdated       ActivityType = "company_updated"
	TypeCompanyDeleted       ActivityType = "company_deleted"
	TypeApplicationAdded     ActivityType = "application_added"
	TypeApplicationUpdated   ActivityType = "application_updated"
	TypeApplicationDeleted   ActivityType = "application_deleted"
	TypeNoteAdded            ActivityType = "note_added"
	TypeNoteUpdated          ActivityType = "note_updated"
	TypeNoteDeleted          ActivityType = "note_deleted"
	TypeCompaniesImported    ActivityType = "companies_imported"
	TypeApplicationsImported ActivityType = "applications_imported"
)

// ActivityEntry is one event in the activity log.
type ActivityEntry struct {
	ID            int64        `json:"id"`
	CompanyID     *string      `json:"companyId,omitempty"`
	ApplicationID *string      `json:"applicationId,omitempty"`
	ActivityType  ActivityType `json:"type"`
	Summary       string       `json:"summary"`
	Details       string       `json:"details,omitempty"` // JSON string
	CreatedAt     time.Time    `json:"createdAt"`
}
