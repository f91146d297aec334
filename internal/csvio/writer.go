package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rpggio/jobtracker/internal/domain/company"
)

// Export kinds used in file names.
const (
	KindCompanies    = "companies"
	KindApplications = "applications"
)

// CompanyColumns is the company export header.
var CompanyColumns = []string{"id", "name", "applications", "createdAt"}

// ApplicationColumns is the application export header.
var ApplicationColumns = append([]string{ColCompanyName, ColCompanyID}, applicationColumns...)

// applicationColumns are the per-application fields, in export order.
var applicationColumns = []string{
	ColID, ColJobTitle, ColJobID, ColStatus, ColDateApplied, ColFollowUpDate,
	ColSkills, ColSalary, ColLocation, ColRemote, ColDescription,
	ColLastUpdated, ColFollowedUp, ColNotes, ColCreatedAt,
}

// ExportFileName names an export file after its kind and the current date.
func ExportFileName(kind string, now time.Time) string {
	return fmt.Sprintf("job-tracker-%s-%s.csv", kind, now.Format("2006-01-02"))
}

// WriteCompanies writes one row per company with its application count.
func WriteCompanies(w io.Writer, companies []company.Company) error {
	rows := make([][]string, 0, len(companies)+1)
	rows = append(rows, CompanyColumns)
	for _, c := range companies {
		rows = append(rows, []string{
			c.ID,
			c.Name,
			strconv.Itoa(len(c.Applications)),
			formatTimestamp(c.CreatedAt),
		})
	}
	return writeAll(w, rows)
}

// WriteApplications writes one row per application, flattened with its
// owning company. Interview notes are not exported.
func WriteApplications(w io.Writer, companies []company.Company) error {
	rows := [][]string{ApplicationColumns}
	for _, c := range companies {
		for _, app := range c.Applications {
			rows = append(rows, []string{
				c.Name,
				c.ID,
				app.ID,
				app.Title,
				app.JobID,
				string(app.Status),
				app.DateApplied,
				app.FollowUpDate,
				app.Skills,
				app.Salary,
				app.Location,
				strconv.FormatBool(app.Remote),
				app.Description,
				formatTimestamp(app.LastUpdated),
				strconv.FormatBool(app.FollowedUp),
				app.Notes,
				formatTimestamp(app.CreatedAt),
			})
		}
	}
	return writeAll(w, rows)
}

func writeAll(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
