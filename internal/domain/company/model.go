package company

import (
	"strings"
	"time"
)

// Status is the pipeline stage of an application.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// ParseStatus matches s against the known statuses case-insensitively.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return Status(s), false
}

// NoteCategory classifies an interview note.
type NoteCategory string

const (
	CategoryPreparation NoteCategory = "preparation"
	CategoryQuestion    NoteCategory = "question"
	CategoryFeedback    NoteCategory = "feedback"
)

// Company is a tracked employer. Applications are owned by containment.
type Company struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Website      string        `json:"website,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	Applications []Application `json:"applications,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// HasApplications reports whether the company holds at least one application.
func (c Company) HasApplications() bool {
	return len(c.Applications) > 0
}

// FindApplication returns the index of the application with id, or -1.
func (c Company) FindApplication(id string) int {
	for i := range c.Applications {
		if c.Applications[i].ID == id {
			return i
		}
	}
	return -1
}

// Application is a single job application. DateApplied and FollowUpDate are
// calendar dates (YYYY-MM-DD).
type Application struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	JobID          string    `json:"jobId"`
	Status         Status    `json:"status"`
	DateApplied    string    `json:"dateApplied"`
	FollowUpDate   string    `json:"followUpDate,omitempty"`
	FollowedUp     bool      `json:"followedUp"`
	Skills         string    `json:"skills,omitempty"`
	Salary         string    `json:"salary,omitempty"`
	Location       string    `json:"location,omitempty"`
	Remote         bool      `json:"remote"`
	Description    string    `json:"description,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	InterviewNotes []Note    `json:"interviewNotes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// SkillList splits the comma-separated skills field into trimmed, non-empty tokens.
func (a Application) SkillList() []string {
	var out []string
	for _, s := range strings.Split(a.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FindNote returns the index of the note with id, or -1.
func (a Application) FindNote(id string) int {
	for i := range a.InterviewNotes {
		if a.InterviewNotes[i].ID == id {
			return i
		}
	}
	return -1
}

// Note is a dated piece of interview preparation text.
type Note struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Date      string       `json:"date"`
	Content   string       `json:"content,omitempty"`
	Category  NoteCategory `json:"category"`
	CreatedAt time.Time    `json:"createdAt"`
}

// SameName compares company names the way uniqueness is enforced.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
