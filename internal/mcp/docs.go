package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `jobtracker keeps a personal job search as Companies → Applications → Interview notes.

Core concepts:
- Company: an employer. Names are unique ignoring case.
- Application: one job applied for at a company. Status is Applied, Interview, Offer or Rejected.
  date_applied and follow_up_date are YYYY-MM-DD; the follow-up defaults to seven days after applying.
- Interview note: a dated preparation, question or feedback note on an application.

Typical workflow:
1) Orient: get_dashboard for totals and upcoming follow-ups, list_companies for ids.
2) Record: add_companies, then add_application with the company id.
3) Progress: set_application_status, mark_followed_up, add_note.
4) Bulk: import_companies_csv / import_applications_csv; export_*_csv returns CSV text and a file name.
5) Review: get_recent_activity lists what changed, newest first.

Docs:
- jobtracker://docs/index
- jobtracker://docs/csv (import and export columns)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "jobtracker://docs/index",
		Name:        "docs_index",
		Title:       "jobtracker docs index",
		Description: "Entry point: what the tracker stores and which tools to use.",
		Content: `# jobtracker: Docs Index

## Quick start

1. ` + "`add_companies`" + ` with one or more names.
2. ` + "`add_application`" + ` with the company id, a title and ` + "`date_applied`" + `.
3. ` + "`get_dashboard`" + ` to see the pipeline.

## Errors

Failed tools return a JSON error with a ` + "`code`" + ` such as ` + "`COMPANY_NOT_FOUND`" + `,
` + "`DUPLICATE_COMPANY`" + `, ` + "`INVALID_INPUT`" + ` or ` + "`MALFORMED_CSV`" + ` and, when useful,
a ` + "`recovery_hint`" + `.

## Docs

- ` + "`jobtracker://docs/csv`" + ` describes the CSV columns.
`,
	},
	{
		URI:         "jobtracker://docs/csv",
		Name:        "docs_csv",
		Title:       "CSV import and export",
		Description: "Columns accepted by the CSV importers and written by the exporters.",
		Content: `# CSV import and export

Header names are matched ignoring case. Blank rows are skipped.

## Companies

Import: one company per row, named by the first non-empty ` + "`name`" + `, ` + "`companyName`" + ` or
` + "`company`" + ` column, or the first column when none of those exist. A row without a
name rejects the whole file. Names already tracked are skipped.

Export columns: ` + "`id, name, applications, createdAt`" + `.

## Applications

Import requires ` + "`companyName`" + ` and ` + "`jobTitle`" + `. Optional columns: ` + "`id, jobId, status,\ndateApplied, followUpDate, skills, salary, location, remote, description, notes,\nfollowedUp`" + `.

- Rows are bound to an existing company by name; unknown companies are reported per row.
- A row whose ` + "`id`" + ` matches an application of that company updates only the columns it fills in.
- ` + "`remote`" + ` and ` + "`followedUp`" + ` accept true/yes.

Export columns: ` + "`companyName, companyId, id, jobTitle, jobId, status, dateApplied,\nfollowUpDate, skills, salary, location, remote, description, lastUpdated, followedUp,\nnotes, createdAt`" + `. Interview notes are not exported.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
