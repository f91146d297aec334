// Package csvio converts between tracker records and CSV text.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/jobtracker/internal/dates"
	"github.com/rpggio/jobtracker/internal/domain/company"
)

// ErrMalformedInput indicates CSV that cannot yield any records: missing
// required columns or a row with no company name.
var ErrMalformedInput = errors.New("malformed CSV input")

// Application import/export column names.
const (
	ColCompanyName  = "companyName"
	ColCompanyID    = "companyId"
	ColID           = "id"
	ColJobTitle     = "jobTitle"
	ColJobID        = "jobId"
	ColStatus       = "status"
	ColDateApplied  = "dateApplied"
	ColFollowUpDate = "followUpDate"
	ColSkills       = "skills"
	ColSalary       = "salary"
	ColLocation     = "location"
	ColRemote       = "remote"
	ColDescription  = "description"
	ColNotes        = "notes"
	ColCreatedAt    = "createdAt"
	ColLastUpdated  = "lastUpdated"
	ColFollowedUp   = "followedUp"
)

// companyNameColumns are tried in order when resolving a company name. A row
// with all of them blank falls back to its first cell.
var companyNameColumns = []string{"name", "companyName", "company"}

// Codec parses CSV into records, minting ids and defaults as it goes.
type Codec struct {
	now      func() time.Time
	newID    func() string
	newJobID func() string
}

// Option customizes a Codec.
type Option func(*Codec)

// WithClock overrides the time source for timestamps and default dates.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// WithIDGenerator overrides id minting.
func WithIDGenerator(newID func() string) Option {
	return func(c *Codec) { c.newID = newID }
}

// WithJobIDGenerator overrides the generator for blank job labels.
func WithJobIDGenerator(newJobID func() string) Option {
	return func(c *Codec) { c.newJobID = newJobID }
}

// NewCodec creates a Codec.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{
		now:      time.Now,
		newID:    uuid.NewString,
		newJobID: company.NewJobID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ParsedApplication is one application row, not yet bound to a company.
type ParsedApplication struct {
	Row         int
	CompanyName string
	Application company.Application
	// Provided holds the columns that carried a non-blank value.
	Provided map[string]bool
}

// Has reports whether the row supplied a value for column.
func (p ParsedApplication) Has(column string) bool {
	return p.Provided[column]
}

// ParseCompanies reads one company per row. Every row must resolve to a
// non-empty name or nothing is returned.
func (c *Codec) ParseCompanies(r io.Reader) ([]company.Company, error) {
	tbl, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if tbl == nil {
		return nil, nil
	}

	var nameCols []int
	for _, name := range companyNameColumns {
		if idx, ok := tbl.columns[strings.ToLower(name)]; ok {
			nameCols = append(nameCols, idx)
		}
	}
	nameCols = append(nameCols, 0)

	now := c.now().UTC()
	companies := make([]company.Company, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		var name string
		for _, idx := range nameCols {
			if name = row.cell(idx); name != "" {
				break
			}
		}
		if name == "" {
			return nil, fmt.Errorf("%w: row %d has no company name", ErrMalformedInput, row.line)
		}
		companies = append(companies, company.Company{
			ID:        c.newID(),
			Name:      name,
			CreatedAt: now,
		})
	}
	return companies, nil
}

// ParseApplications reads one application per row. The header must carry
// companyName and jobTitle.
func (c *Codec) ParseApplications(r io.Reader) ([]ParsedApplication, error) {
	tbl, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if tbl == nil {
		return nil, nil
	}

	var missing []string
	for _, col := range []string{ColCompanyName, ColJobTitle} {
		if _, ok := tbl.columns[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required column(s) %s", ErrMalformedInput, strings.Join(missing, ", "))
	}

	now := c.now().UTC()
	today := dates.Today(now)
	parsed := make([]ParsedApplication, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		get := func(col string) string {
			idx, ok := tbl.columns[strings.ToLower(col)]
			if !ok {
				return ""
			}
			return row.cell(idx)
		}

		p := ParsedApplication{
			Row:         row.line,
			CompanyName: get(ColCompanyName),
			Provided:    make(map[string]bool),
		}
		for _, col := range applicationColumns {
			if get(col) != "" {
				p.Provided[col] = true
			}
		}

		app := company.Application{
			ID:          get(ColID),
			Title:       get(ColJobTitle),
			JobID:       get(ColJobID),
			Skills:      get(ColSkills),
			Salary:      get(ColSalary),
			Location:    get(ColLocation),
			Remote:      truthy(get(ColRemote)),
			Description: get(ColDescription),
			Notes:       get(ColNotes),
			FollowedUp:  truthy(get(ColFollowedUp)),
			CreatedAt:   now,
			LastUpdated: now,
		}
		if app.ID == "" {
			app.ID = c.newID()
		}
		if app.JobID == "" {
			app.JobID = c.newJobID()
		}

		app.Status = company.StatusApplied
		if raw := get(ColStatus); raw != "" {
			app.Status, _ = company.ParseStatus(raw)
		}

		app.DateApplied = normalizeDate(get(ColDateApplied))
		if app.DateApplied == "" {
			app.DateApplied = today
		}
		app.FollowUpDate = normalizeDate(get(ColFollowUpDate))
		if app.FollowUpDate == "" {
			app.FollowUpDate, _ = dates.AddDays(app.DateApplied, company.DefaultFollowUpDays)
		}

		p.Application = app
		parsed = append(parsed, p)
	}
	return parsed, nil
}

// normalizeDate canonicalizes a valid date and keeps anything else verbatim
// so validation can report it.
func normalizeDate(s string) string {
	if norm, err := dates.Normalize(s); err == nil {
		return norm
	}
	return s
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes":
		return true
	}
	return false
}

type table struct {
	columns map[string]int
	rows    []tableRow
}

type tableRow struct {
	line   int
	fields []string
}

func (r tableRow) cell(idx int) string {
	if idx < 0 || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}

// readTable splits CSV text into a lower-cased header index and its
// non-blank rows. A file with no header yields nil.
func readTable(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var tbl *table
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		if blank(fields) {
			continue
		}
		line, _ := reader.FieldPos(0)

		if tbl == nil {
			tbl = &table{columns: make(map[string]int, len(fields))}
			fields[0] = strings.TrimPrefix(fields[0], "\ufeff")
			for i, col := range fields {
				key := strings.ToLower(strings.TrimSpace(col))
				if _, dup := tbl.columns[key]; !dup && key != "" {
					tbl.columns[key] = i
				}
			}
			continue
		}
		tbl.rows = append(tbl.rows, tableRow{line: line, fields: fields})
	}
	return tbl, nil
}

func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
