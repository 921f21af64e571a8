package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/width"

	"opphub/pkg/models"
)

const dayMillis = 86400000

// Fold normalizes text for matching: full-width characters fold to their
// half-width forms, then everything is lower-cased. "ＡＢＣ" == "abc".
func Fold(s string) string {
	return strings.ToLower(width.Fold.String(s))
}

// DaysRemaining is the ceiling of (deadline - now) in whole days. ok is
// false when the deadline is empty or unparseable.
func DaysRemaining(deadline string, now time.Time) (int, bool) {
	due, ok := models.ParseDate(deadline)
	if !ok {
		return 0, false
	}
	diff := due.Sub(now).Milliseconds()
	return int(math.Ceil(float64(diff) / float64(dayMillis))), true
}

// MatchesQuery reports whether the item's folded text representation
// contains the folded query. An empty query matches everything.
func MatchesQuery(it models.Item, query string) bool {
	q := Fold(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(Fold(searchText(it)), q)
}

// searchText flattens the fields a visitor would expect search to cover.
func searchText(it models.Item) string {
	parts := []string{it.Title, it.Subtitle, it.SourceName}
	parts = append(parts, it.Tags...)

	switch it.Category {
	case models.CategoryScholarship:
		// amount and GPA are filterable, not searchable
	case models.CategoryActivity:
		p := it.Activity()
		parts = append(parts, p.Type, p.Location)
	case models.CategoryJob:
		p := it.Job()
		parts = append(parts, p.Company, p.Role, p.EmploymentType, p.Location)
	case models.CategoryGrad:
		p := it.Grad()
		parts = append(parts, p.School, p.Program)
		parts = append(parts, p.Fields...)
	}
	return strings.Join(parts, " ")
}

// MatchesFilters applies the category's filter ruleset. Zero filter values
// are inactive and match everything.
func MatchesFilters(it models.Item, f models.Filters) bool {
	switch it.Category {
	case models.CategoryScholarship:
		p := it.Scholarship()
		// Exclude when the required GPA exceeds the visitor's threshold.
		if f.MinGPA > 0 && p.MinGPA > f.MinGPA {
			return false
		}
		if f.GradeYear > 0 && !containsInt(p.EligibleYears, f.GradeYear) {
			return false
		}
	case models.CategoryActivity:
		if f.ActivityType != "" && it.Activity().Type != f.ActivityType {
			return false
		}
	case models.CategoryJob:
		p := it.Job()
		if f.EmploymentType != "" && p.EmploymentType != f.EmploymentType {
			return false
		}
		if f.JobLocation != "" && !strings.Contains(Fold(p.Location), Fold(f.JobLocation)) {
			return false
		}
	case models.CategoryGrad:
		if f.GradField != "" {
			want := Fold(f.GradField)
			found := false
			for _, field := range it.Grad().Fields {
				if strings.Contains(Fold(field), want) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

// Search returns the working set: items matching both the free-text query
// and the category filters, in feed order.
func Search(items []models.Item, query string, f models.Filters) []models.Item {
	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		if MatchesQuery(it, query) && MatchesFilters(it, f) {
			out = append(out, it)
		}
	}
	return out
}

// DueSoon filters the working set to items due within windowDays and sorts
// ascending by deadline, capped. Items without a parseable deadline never
// appear. Ties keep feed order.
func DueSoon(items []models.Item, now time.Time, windowDays, max int) []models.Item {
	soon := make([]models.Item, 0, len(items))
	for _, it := range items {
		if days, ok := DaysRemaining(it.Deadline, now); ok && days <= windowDays {
			soon = append(soon, it)
		}
	}
	sort.SliceStable(soon, func(i, j int) bool {
		di, iok := models.ParseDate(soon[i].Deadline)
		dj, jok := models.ParseDate(soon[j].Deadline)
		if iok != jok {
			return iok // valid deadlines before invalid ones
		}
		return di.Before(dj)
	})
	if len(soon) > max {
		soon = soon[:max]
	}
	return soon
}

// RecentlyUpdated sorts the working set descending by last-verified date,
// capped. Items with an unparseable date sort last; ties keep feed order.
func RecentlyUpdated(items []models.Item, max int) []models.Item {
	recent := make([]models.Item, len(items))
	copy(recent, items)
	sort.SliceStable(recent, func(i, j int) bool {
		di, iok := models.ParseDate(recent[i].LastVerifiedAt)
		dj, jok := models.ParseDate(recent[j].LastVerifiedAt)
		if iok != jok {
			return iok
		}
		return di.After(dj)
	})
	if len(recent) > max {
		recent = recent[:max]
	}
	return recent
}

// BoardViews are the two derived slices of one working set.
type BoardViews struct {
	DueSoon []models.Item
	Recent  []models.Item
}

// DeriveViews runs the full pipeline for one tab: search + filter once,
// then slice the working set into both views.
func DeriveViews(items []models.Item, query string, f models.Filters, now time.Time, windowDays, soonCap, recentCap int) BoardViews {
	working := Search(items, query, f)
	return BoardViews{
		DueSoon: DueSoon(working, now, windowDays, soonCap),
		Recent:  RecentlyUpdated(working, recentCap),
	}
}

func containsInt(xs []int, want int) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
