package csvio_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/jobtracker/internal/csvio"
	"github.com/rpggio/jobtracker/internal/domain/company"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 2, 3, 18, 45, 0, 0, time.UTC)

func newTestCodec() *csvio.Codec {
	n := 0
	return csvio.NewCodec(
		csvio.WithClock(func() time.Time { return fixedNow }),
		csvio.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("gen-%d", n)
		}),
		csvio.WithJobIDGenerator(func() string { return "JOB-0007" }),
	)
}

func TestParseCompanies_NameColumns(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"name column", "id,name\n1,Acme\n2,Globex\n", []string{"Acme", "Globex"}},
		{"companyName column", "website,CompanyName\nx, Acme \n", []string{"Acme"}},
		{"company column", "company\nInitech\n", []string{"Initech"}},
		{"falls back across name columns", "name,company\n,Hooli\n", []string{"Hooli"}},
		{"first column when no name header", "Employer,Notes\nUmbrella,big\n", []string{"Umbrella"}},
		{"bom and blank rows", "\ufeffname\n\n , \nAcme\n", []string{"Acme"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestCodec().ParseCompanies(strings.NewReader(tt.input))
			require.NoError(t, err)
			var names []string
			for _, c := range got {
				names = append(names, c.Name)
			}
			require.Equal(t, tt.want, names)
		})
	}
}

func TestParseCompanies_MintsIdentity(t *testing.T) {
	got, err := newTestCodec().ParseCompanies(strings.NewReader("id,name\nold-id,Acme\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "gen-1", got[0].ID)
	require.Equal(t, fixedNow, got[0].CreatedAt)
	require.Empty(t, got[0].Applications)
}

func TestParseCompanies_BlankNameFallsBackToFirstCell(t *testing.T) {
	got, err := newTestCodec().ParseCompanies(strings.NewReader("id,name\nabc,\nxyz,Globex\n"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "abc", got[0].Name)
	require.Equal(t, "Globex", got[1].Name)
}

func TestParseCompanies_MissingNameIsMalformed(t *testing.T) {
	got, err := newTestCodec().ParseCompanies(strings.NewReader("name,website\nAcme,a.com\n,b.com\n"))
	require.ErrorIs(t, err, csvio.ErrMalformedInput)
	require.ErrorContains(t, err, "row 3")
	require.Nil(t, got)
}

func TestParse_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n", " , \n"} {
		companies, err := newTestCodec().ParseCompanies(strings.NewReader(input))
		require.NoError(t, err)
		require.Empty(t, companies)

		apps, err := newTestCodec().ParseApplications(strings.NewReader(input))
		require.NoError(t, err)
		require.Empty(t, apps)
	}

	companies, err := newTestCodec().ParseCompanies(strings.NewReader("name\n"))
	require.NoError(t, err)
	require.Empty(t, companies)
}

func TestParseApplications_RequiredColumns(t *testing.T) {
	_, err := newTestCodec().ParseApplications(strings.NewReader("companyName,title\nAcme,Engineer\n"))
	require.ErrorIs(t, err, csvio.ErrMalformedInput)
	require.ErrorContains(t, err, "jobTitle")

	_, err = newTestCodec().ParseApplications(strings.NewReader("jobTitle\n"))
	require.ErrorIs(t, err, csvio.ErrMalformedInput)
	require.ErrorContains(t, err, "companyName")
}

func TestParseApplications_Defaults(t *testing.T) {
	input := "COMPANYNAME , JobTitle,remote,status\nAcme,Engineer,Yes,\nGlobex,Analyst,no,offer\n"
	got, err := newTestCodec().ParseApplications(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	require.Equal(t, 2, first.Row)
	require.Equal(t, "Acme", first.CompanyName)
	require.Equal(t, "gen-1", first.Application.ID)
	require.Equal(t, "JOB-0007", first.Application.JobID)
	require.Equal(t, company.StatusApplied, first.Application.Status)
	require.Equal(t, "2025-02-03", first.Application.DateApplied)
	require.Equal(t, "2025-02-10", first.Application.FollowUpDate)
	require.True(t, first.Application.Remote)
	require.Equal(t, fixedNow, first.Application.CreatedAt)
	require.True(t, first.Has(csvio.ColJobTitle))
	require.True(t, first.Has(csvio.ColRemote))
	require.False(t, first.Has(csvio.ColStatus))
	require.False(t, first.Has(csvio.ColID))

	second := got[1]
	require.False(t, second.Application.Remote)
	require.Equal(t, company.StatusOffer, second.Application.Status)
}

func TestParseApplications_KeepsSuppliedValues(t *testing.T) {
	input := "companyName,jobTitle,id,jobId,status,dateApplied,followUpDate,followedUp,skills\n" +
		"Acme,Engineer,app-1,REQ-1,Ghosted,2025-01-05,not-a-date,TRUE,\"Go, SQL\"\n"
	got, err := newTestCodec().ParseApplications(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)

	app := got[0].Application
	require.Equal(t, "app-1", app.ID)
	require.Equal(t, "REQ-1", app.JobID)
	require.Equal(t, company.Status("Ghosted"), app.Status)
	require.Equal(t, "2025-01-05", app.DateApplied)
	require.Equal(t, "not-a-date", app.FollowUpDate)
	require.True(t, app.FollowedUp)
	require.Equal(t, "Go, SQL", app.Skills)
}

func TestCompaniesRoundTrip(t *testing.T) {
	companies := []company.Company{
		{ID: "c1", Name: "Acme, Inc.", CreatedAt: fixedNow, Applications: []company.Application{{ID: "a1"}, {ID: "a2"}}},
		{ID: "c2", Name: "Globex", CreatedAt: fixedNow},
	}

	var buf bytes.Buffer
	require.NoError(t, csvio.WriteCompanies(&buf, companies))
	require.Equal(t,
		"id,name,applications,createdAt\n"+
			"c1,\"Acme, Inc.\",2,2025-02-03T18:45:00Z\n"+
			"c2,Globex,0,2025-02-03T18:45:00Z\n",
		buf.String())

	parsed, err := newTestCodec().ParseCompanies(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, len(companies))
	for i := range companies {
		require.Equal(t, companies[i].Name, parsed[i].Name)
	}
}

func TestApplicationsRoundTrip(t *testing.T) {
	companies := []company.Company{{
		ID:   "c1",
		Name: "Acme",
		Applications: []company.Application{{
			ID:           "a1",
			Title:        "Engineer",
			JobID:        "REQ-9",
			Status:       company.StatusInterview,
			DateApplied:  "2025-01-02",
			FollowUpDate: "2025-01-09",
			FollowedUp:   true,
			Skills:       "Go,Kubernetes",
			Remote:       true,
			Description:  "Line one\nline two",
			Notes:        "referred",
			CreatedAt:    fixedNow,
			LastUpdated:  fixedNow,
		}},
	}}

	var buf bytes.Buffer
	require.NoError(t, csvio.WriteApplications(&buf, companies))
	require.True(t, strings.HasPrefix(buf.String(), strings.Join(csvio.ApplicationColumns, ",")+"\n"))

	parsed, err := newTestCodec().ParseApplications(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	require.Equal(t, "Acme", parsed[0].CompanyName)

	got := parsed[0].Application
	want := companies[0].Applications[0]
	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.Title, got.Title)
	require.Equal(t, want.JobID, got.JobID)
	require.Equal(t, want.Status, got.Status)
	require.Equal(t, want.DateApplied, got.DateApplied)
	require.Equal(t, want.FollowUpDate, got.FollowUpDate)
	require.Equal(t, want.FollowedUp, got.FollowedUp)
	require.Equal(t, want.Skills, got.Skills)
	require.Equal(t, want.Remote, got.Remote)
	require.Equal(t, want.Description, got.Description)
	require.Equal(t, want.Notes, got.Notes)
}

func TestExportFileName(t *testing.T) {
	require.Equal(t, "job-tracker-companies-2025-02-03.csv", csvio.ExportFileName(csvio.KindCompanies, fixedNow))
	require.Equal(t, "job-tracker-applications-2025-02-03.csv", csvio.ExportFileName(csvio.KindApplications, fixedNow))
}
