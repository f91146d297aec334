// Package importer merges parsed CSV records into the tracker's companies.
package importer

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rpggio/jobtracker/internal/csvio"
	"github.com/rpggio/jobtracker/internal/domain/company"
)

// CompanyStats summarizes a company import.
type CompanyStats struct {
	Total   int `json:"total"`
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// ApplicationStats summarizes an application import. Errors holds one
// message per rejected record.
type ApplicationStats struct {
	Total   int      `json:"total"`
	Added   int      `json:"added"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

// ReconcileCompanies returns the parsed companies whose names do not match an
// existing company. Only the existing set is consulted, so duplicate names
// inside parsed are all kept.
func ReconcileCompanies(existing, parsed []company.Company) ([]company.Company, CompanyStats) {
	names := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		names[nameKey(c.Name)] = struct{}{}
	}

	stats := CompanyStats{Total: len(parsed)}
	toInsert := make([]company.Company, 0, len(parsed))
	for _, c := range parsed {
		if _, dup := names[nameKey(c.Name)]; dup {
			stats.Skipped++
			continue
		}
		toInsert = append(toInsert, c)
	}
	stats.Added = len(toInsert)
	return toInsert, stats
}

// ReconcileApplications binds each parsed row to an existing company by name
// and either merges it into the application with the same id or appends it.
// It returns the updated snapshot; existing is not modified.
func ReconcileApplications(existing []company.Company, parsed []csvio.ParsedApplication, now time.Time) ([]company.Company, ApplicationStats) {
	now = now.UTC()
	out := slices.Clone(existing)
	stats := ApplicationStats{Total: len(parsed), Errors: []string{}}

	byName := make(map[string]int, len(out))
	owner := make(map[string]int)
	for i := len(out) - 1; i >= 0; i-- {
		byName[nameKey(out[i].Name)] = i
	}
	for i, c := range out {
		for _, app := range c.Applications {
			owner[app.ID] = i
		}
	}
	cloned := make(map[int]bool)

	for _, p := range parsed {
		label := p.Application.Title
		if label == "" {
			label = p.Application.JobID
		}

		ci, ok := byName[nameKey(p.CompanyName)]
		if !ok {
			stats.Errors = append(stats.Errors,
				fmt.Sprintf("row %d: company %q not found for %q", p.Row, p.CompanyName, label))
			continue
		}
		if oi, taken := owner[p.Application.ID]; taken && oi != ci {
			stats.Errors = append(stats.Errors,
				fmt.Sprintf("row %d: application %s already belongs to company %q", p.Row, p.Application.ID, out[oi].Name))
			continue
		}

		if !cloned[ci] {
			out[ci].Applications = slices.Clone(out[ci].Applications)
			cloned[ci] = true
		}
		c := &out[ci]

		if idx := c.FindApplication(p.Application.ID); idx >= 0 {
			merged := merge(c.Applications[idx], p)
			merged.LastUpdated = now
			if err := company.ValidateApplication(merged); err != nil {
				stats.Errors = append(stats.Errors, fmt.Sprintf("row %d: %v", p.Row, err))
				continue
			}
			c.Applications[idx] = merged
			stats.Updated++
			continue
		}

		app := p.Application
		app.CreatedAt = now
		app.LastUpdated = now
		if err := company.ValidateApplication(app); err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("row %d: %v", p.Row, err))
			continue
		}
		c.Applications = append(c.Applications, app)
		owner[app.ID] = ci
		stats.Added++
	}
	return out, stats
}

// merge overwrites the fields of current that the row supplied.
func merge(current company.Application, p csvio.ParsedApplication) company.Application {
	in := p.Application
	if p.Has(csvio.ColJobTitle) {
		current.Title = in.Title
	}
	if p.Has(csvio.ColJobID) {
		current.JobID = in.JobID
	}
	if p.Has(csvio.ColStatus) {
		current.Status = in.Status
	}
	if p.Has(csvio.ColDateApplied) {
		current.DateApplied = in.DateApplied
	}
	if p.Has(csvio.ColFollowUpDate) {
		current.FollowUpDate = in.FollowUpDate
	}
	if p.Has(csvio.ColFollowedUp) {
		current.FollowedUp = in.FollowedUp
	}
	if p.Has(csvio.ColSkills) {
		current.Skills = in.Skills
	}
	if p.Has(csvio.ColSalary) {
		current.Salary = in.Salary
	}
	if p.Has(csvio.ColLocation) {
		current.Location = in.Location
	}
	if p.Has(csvio.ColRemote) {
		current.Remote = in.Remote
	}
	if p.Has(csvio.ColDescription) {
		current.Description = in.Description
	}
	if p.Has(csvio.ColNotes) {
		current.Notes = in.Notes
	}
	return current
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
