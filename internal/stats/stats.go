// Package stats derives dashboard metrics from a snapshot of companies.
package stats

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/rpggio/jobtracker/internal/dates"
	"github.com/rpggio/jobtracker/internal/domain/company"
)

// TopN caps the follow-up, recent application and skill lists.
const TopN = 5

// weekSpanDays is the largest gap from a bucket's first day that still
// folds into the same bucket.
const weekSpanDays = 6

// Dashboard is the full set of derived metrics.
type Dashboard struct {
	TotalCompanies     int              `json:"totalCompanies"`
	TotalApplications  int              `json:"totalApplications"`
	StatusCounts       []StatusCount    `json:"statusCounts"`
	ResponseRate       int              `json:"responseRate"`
	Weekly             []WeekBucket     `json:"weekly"`
	UpcomingFollowUps  []ApplicationRef `json:"upcomingFollowUps"`
	RecentApplications []ApplicationRef `json:"recentApplications"`
	TopSkills          []SkillCount     `json:"topSkills"`
}

// StatusCount is the number of applications in one status.
type StatusCount struct {
	Status company.Status `json:"status"`
	Count  int            `json:"count"`
}

// WeekBucket counts applications whose date falls within a bucket that
// starts on Start.
type WeekBucket struct {
	Start string `json:"start"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ApplicationRef is an application together with its owning company.
type ApplicationRef struct {
	CompanyID   string              `json:"companyId"`
	CompanyName string              `json:"companyName"`
	Application company.Application `json:"application"`
}

// SkillCount is how many applications list a skill.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// Compute derives the dashboard for companies as of now. Records with
// unparseable dates are left out of date-based metrics.
func Compute(companies []company.Company, now time.Time) Dashboard {
	refs := flatten(companies)
	counts := StatusBreakdown(refs)

	return Dashboard{
		TotalCompanies:     len(companies),
		TotalApplications:  len(refs),
		StatusCounts:       counts,
		ResponseRate:       ResponseRate(counts, len(refs)),
		Weekly:             WeeklyApplications(refs),
		UpcomingFollowUps:  UpcomingFollowUps(refs, dates.Today(now)),
		RecentApplications: RecentApplications(refs),
		TopSkills:          TopSkills(refs),
	}
}

func flatten(companies []company.Company) []ApplicationRef {
	var refs []ApplicationRef
	for _, c := range companies {
		for _, app := range c.Applications {
			refs = append(refs, ApplicationRef{CompanyID: c.ID, CompanyName: c.Name, Application: app})
		}
	}
	return refs
}

// StatusBreakdown counts applications per status, zero-filled, in the
// standard status order.
func StatusBreakdown(refs []ApplicationRef) []StatusCount {
	counts := make([]StatusCount, len(company.Statuses))
	for i, st := range company.Statuses {
		counts[i].Status = st
	}
	for _, r := range refs {
		if i := slices.Index(company.Statuses, r.Application.Status); i >= 0 {
			counts[i].Count++
		}
	}
	return counts
}

// ResponseRate is the rounded percentage of total applications that
// reached Interview, Offer or Rejected. Applications with an unrecognized
// status count toward total only. It is 0 when there are no applications.
func ResponseRate(counts []StatusCount, total int) int {
	var responded int
	for _, c := range counts {
		if c.Status != company.StatusApplied {
			responded += c.Count
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(responded) / float64(total)))
}

// WeeklyApplications groups application dates greedily: a bucket starts at
// the earliest unassigned date and absorbs every later date within six days
// of it. Empty weeks are not emitted.
func WeeklyApplications(refs []ApplicationRef) []WeekBucket {
	perDay := make(map[string]int)
	for _, r := range refs {
		day, err := dates.Normalize(r.Application.DateApplied)
		if err != nil {
			continue
		}
		perDay[day]++
	}

	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	slices.Sort(days)

	var buckets []WeekBucket
	for _, day := range days {
		if n := len(buckets); n > 0 {
			gap, _ := dates.DaysBetween(buckets[n-1].Start, day)
			if gap <= weekSpanDays {
				buckets[n-1].Count += perDay[day]
				continue
			}
		}
		buckets = append(buckets, WeekBucket{
			Start: day,
			Label: dates.FormatDisplay(day),
			Count: perDay[day],
		})
	}
	return buckets
}

// UpcomingFollowUps returns the nearest follow-ups due on or after today for
// applications still in Applied and not yet followed up.
func UpcomingFollowUps(refs []ApplicationRef, today string) []ApplicationRef {
	var due []ApplicationRef
	for _, r := range refs {
		app := r.Application
		if app.Status != company.StatusApplied || app.FollowedUp {
			continue
		}
		c, err := dates.Compare(app.FollowUpDate, today)
		if err != nil || c < 0 {
			continue
		}
		due = append(due, r)
	}
	slices.SortStableFunc(due, func(a, b ApplicationRef) int {
		return compareDates(a.Application.FollowUpDate, b.Application.FollowUpDate)
	})
	return truncate(due)
}

// RecentApplications returns the most recently applied-for applications.
func RecentApplications(refs []ApplicationRef) []ApplicationRef {
	var valid []ApplicationRef
	for _, r := range refs {
		if dates.IsValid(r.Application.DateApplied) {
			valid = append(valid, r)
		}
	}
	slices.SortStableFunc(valid, func(a, b ApplicationRef) int {
		return compareDates(b.Application.DateApplied, a.Application.DateApplied)
	})
	return truncate(valid)
}

// TopSkills tallies comma-separated skills across applications. Ties keep
// the order in which skills were first seen.
func TopSkills(refs []ApplicationRef) []SkillCount {
	index := make(map[string]int)
	var skills []SkillCount
	for _, r := range refs {
		for _, skill := range r.Application.SkillList() {
			if i, ok := index[skill]; ok {
				skills[i].Count++
				continue
			}
			index[skill] = len(skills)
			skills = append(skills, SkillCount{Skill: skill, Count: 1})
		}
	}
	slices.SortStableFunc(skills, func(a, b SkillCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(skills) > TopN {
		skills = skills[:TopN]
	}
	return skills
}

func compareDates(a, b string) int {
	c, err := dates.Compare(a, b)
	if err != nil {
		return 0
	}
	return c
}

func truncate(refs []ApplicationRef) []ApplicationRef {
	if len(refs) > TopN {
		return refs[:TopN]
	}
	return refs
}
