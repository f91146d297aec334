package mcp

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools exposes every handler method as a tool.
func registerTools(server *sdkmcp.Server, h *Handler) {
	// Companies
	addTool(server, "list_companies", "List tracked companies with their applications and notes", h.ListCompanies)
	addTool(server, "get_company", "Get one company by id", h.GetCompany)
	addTool(server, "add_companies", "Add one or more companies in a single batch; names must be unique ignoring case", h.AddCompanies)
	addTool(server, "update_company", "Edit a company's name, website and notes", h.UpdateCompany)
	addTool(server, "delete_company", "Delete a company together with all of its applications", h.DeleteCompany)

	// Applications
	addTool(server, "add_application", "Record a job application under a company", h.AddApplication)
	addTool(server, "update_application", "Replace the editable fields of an application", h.UpdateApplication)
	addTool(server, "set_application_status", "Move an application to Applied, Interview, Offer or Rejected", h.SetApplicationStatus)
	addTool(server, "mark_followed_up", "Mark the follow-up for an application as done (or not done)", h.MarkFollowedUp)
	addTool(server, "delete_application", "Delete an application and its interview notes", h.DeleteApplication)

	// Interview notes
	addTool(server, "add_note", "Attach an interview note to an application", h.AddNote)
	addTool(server, "update_note", "Edit an interview note", h.UpdateNote)
	addTool(server, "delete_note", "Delete an interview note", h.DeleteNote)

	// CSV
	addTool(server, "import_companies_csv", "Import companies from CSV text; names already tracked are skipped", h.ImportCompaniesCSV)
	addTool(server, "import_applications_csv", "Import applications from CSV text, matching companies by name and applications by id", h.ImportApplicationsCSV)
	addTool(server, "export_companies_csv", "Export companies as CSV text", h.ExportCompaniesCSV)
	addTool(server, "export_applications_csv", "Export applications as CSV text", h.ExportApplicationsCSV)

	// Analytics
	addTool(server, "get_dashboard", "Get status breakdown, response rate, weekly counts, upcoming follow-ups, recent applications and top skills", h.GetDashboard)
	addTool(server, "get_recent_activity", "List tracker activity, newest first", h.GetRecentActivity)
}

func addTool[In, Out any](server *sdkmcp.Server, name, description string, fn func(context.Context, In) (Out, error)) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: name, Description: description},
		func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
			out, err := fn(ctx, in)
			if err != nil {
				return errorResult(MapError(err)), nil, nil
			}
			return jsonResult(out, false), nil, nil
		})
}

func errorResult(apiErr *APIError) *sdkmcp.CallToolResult {
	return jsonResult(apiErr, true)
}

func jsonResult(v any, isError bool) *sdkmcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		data, _ = json.Marshal(&APIError{Code: "INTERNAL", Message: err.Error()})
		isError = true
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
		IsError: isError,
	}
}
