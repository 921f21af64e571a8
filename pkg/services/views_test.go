package services

import (
	"encoding/json"
	"testing"
	"time"

	"opphub/pkg/models"
)

var testNow = time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

func dayOffset(days int) string {
	return testNow.AddDate(0, 0, days).Format(models.DateLayout)
}

func jobItem(id string, deadline, verified string, payload models.JobPayload) models.Item {
	raw, _ := json.Marshal(payload)
	return models.Item{
		ID:             id,
		Category:       models.CategoryJob,
		Title:          id,
		PostedAt:       dayOffset(-30),
		Deadline:       deadline,
		LastVerifiedAt: verified,
		SourceName:     "src",
		SourceURL:      "https://example.com/" + id,
		Payload:        raw,
	}
}

// ── DaysRemaining ──────────────────────────────────────────────────────────

func TestDaysRemaining(t *testing.T) {
	cases := []struct {
		name     string
		deadline string
		want     int
		wantOK   bool
	}{
		{"three days out", dayOffset(3), 3, true},
		{"today midnight is past noon", dayOffset(0), 0, true},
		{"overdue", dayOffset(-2), -2, true},
		{"empty string", "", 0, false},
		{"garbage", "soonish", 0, false},
		{"wrong layout", "08/23/2026", 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := DaysRemaining(c.deadline, testNow)
			if ok != c.wantOK {
				t.Fatalf("DaysRemaining(%q) ok = %v, want %v", c.deadline, ok, c.wantOK)
			}
			if ok && got != c.want {
				t.Errorf("DaysRemaining(%q) = %d, want %d", c.deadline, got, c.want)
			}
		})
	}
}

// ── text matching ──────────────────────────────────────────────────────────

func TestMatchesQuery_CaseAndWidthInsensitive(t *testing.T) {
	it := jobItem("j1", dayOffset(5), dayOffset(-1), models.JobPayload{Company: "ABC Robotics", Role: "Intern"})

	for _, q := range []string{"", "abc", "ABC", "ａｂｃ", "robotics"} {
		if !MatchesQuery(it, q) {
			t.Errorf("query %q should match %q", q, it.Job().Company)
		}
	}
	if MatchesQuery(it, "xyz") {
		t.Error("query \"xyz\" should not match")
	}
}

func TestMatchesQuery_CoversTagsAndPayload(t *testing.T) {
	it := jobItem("j1", "", dayOffset(0), models.JobPayload{Company: "Kappa", Location: "Ｔｏｋｙｏ"})
	it.Tags = []string{"Remote-OK"}

	if !MatchesQuery(it, "remote-ok") {
		t.Error("tag should be searchable")
	}
	if !MatchesQuery(it, "tokyo") {
		t.Error("full-width payload location should fold and match")
	}
}

// ── category filters ───────────────────────────────────────────────────────

func TestMatchesFilters_Scholarship(t *testing.T) {
	raw, _ := json.Marshal(models.ScholarshipPayload{MinGPA: 3.5, EligibleYears: []int{2, 3}})
	it := models.Item{ID: "s1", Category: models.CategoryScholarship, Payload: raw}

	cases := []struct {
		name string
		f    models.Filters
		want bool
	}{
		{"no filters", models.Filters{}, true},
		{"required gpa above threshold excluded", models.Filters{MinGPA: 3.0}, false},
		{"required gpa within threshold kept", models.Filters{MinGPA: 3.5}, true},
		{"eligible year kept", models.Filters{GradeYear: 2}, true},
		{"ineligible year excluded", models.Filters{GradeYear: 4}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MatchesFilters(it, c.f); got != c.want {
				t.Errorf("MatchesFilters = %v, want %v", got, c.want)
			}
		})
	}
}

func TestMatchesFilters_JobAndGrad(t *testing.T) {
	job := jobItem("j1", "", dayOffset(0), models.JobPayload{EmploymentType: "internship", Location: "Tokyo (hybrid)"})
	if !MatchesFilters(job, models.Filters{EmploymentType: "internship", JobLocation: "tokyo"}) {
		t.Error("exact type + folded location substring should match")
	}
	if MatchesFilters(job, models.Filters{EmploymentType: "part-time"}) {
		t.Error("employment type must match exactly")
	}

	gradRaw, _ := json.Marshal(models.GradPayload{Fields: []string{"Machine Learning", "Systems"}})
	grad := models.Item{ID: "g1", Category: models.CategoryGrad, Payload: gradRaw}
	if !MatchesFilters(grad, models.Filters{GradField: "machine"}) {
		t.Error("field substring should match any entry")
	}
	if MatchesFilters(grad, models.Filters{GradField: "biology"}) {
		t.Error("unmatched field should exclude")
	}
}

// ── due-soon view ──────────────────────────────────────────────────────────

func TestDueSoon_WindowAndOrder(t *testing.T) {
	items := []models.Item{
		jobItem("ten-days", dayOffset(10), dayOffset(0), models.JobPayload{}),
		jobItem("three-days", dayOffset(3), dayOffset(0), models.JobPayload{}),
		jobItem("one-day", dayOffset(1), dayOffset(0), models.JobPayload{}),
		jobItem("no-deadline", "", dayOffset(0), models.JobPayload{}),
	}

	got := DueSoon(items, testNow, 7, 12)
	if len(got) != 2 {
		t.Fatalf("DueSoon returned %d items, want 2", len(got))
	}
	if got[0].ID != "one-day" || got[1].ID != "three-days" {
		t.Errorf("DueSoon order = [%s %s], want [one-day three-days]", got[0].ID, got[1].ID)
	}
}

func TestDueSoon_TwoJobsScenario(t *testing.T) {
	items := []models.Item{
		jobItem("soon", dayOffset(3), dayOffset(0), models.JobPayload{}),
		jobItem("later", dayOffset(10), dayOffset(0), models.JobPayload{}),
	}
	got := DueSoon(items, testNow, 7, 12)
	if len(got) != 1 || got[0].ID != "soon" {
		t.Fatalf("due-soon should contain only the 3-day item, got %v", ids(got))
	}
}

func TestDueSoon_CapAndStableTies(t *testing.T) {
	var items []models.Item
	for i := 0; i < 15; i++ {
		items = append(items, jobItem(string(rune('a'+i)), dayOffset(2), dayOffset(0), models.JobPayload{}))
	}
	got := DueSoon(items, testNow, 7, 12)
	if len(got) != 12 {
		t.Fatalf("cap: got %d items, want 12", len(got))
	}
	for i := range got {
		if got[i].ID != items[i].ID {
			t.Fatalf("tie order not stable at %d: got %s want %s", i, got[i].ID, items[i].ID)
		}
	}
}

// ── recently-updated view ──────────────────────────────────────────────────

func TestRecentlyUpdated_OrderInvalidLastAndCap(t *testing.T) {
	items := []models.Item{
		jobItem("old", "", dayOffset(-20), models.JobPayload{}),
		jobItem("bad-date", "", "not-a-date", models.JobPayload{}),
		jobItem("fresh", "", dayOffset(-1), models.JobPayload{}),
		jobItem("mid", "", dayOffset(-7), models.JobPayload{}),
	}

	got := RecentlyUpdated(items, 20)
	want := []string{"fresh", "mid", "old", "bad-date"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("order = %v, want %v", ids(got), want)
		}
	}

	capped := RecentlyUpdated(items, 2)
	if len(capped) != 2 || capped[0].ID != "fresh" {
		t.Errorf("cap 2 should keep the freshest, got %v", ids(capped))
	}
}

// ── full derivation ────────────────────────────────────────────────────────

func TestDeriveViews_EmptyDeadlineStillRecent(t *testing.T) {
	items := []models.Item{
		jobItem("empty-deadline", "", dayOffset(-1), models.JobPayload{}),
	}
	views := DeriveViews(items, "", models.Filters{}, testNow, 7, 12, 20)
	if len(views.DueSoon) != 0 {
		t.Error("empty deadline must be excluded from due-soon")
	}
	if len(views.Recent) != 1 {
		t.Error("empty deadline with valid last-verified must stay in recently-updated")
	}
}

func TestDeriveViews_SharedWorkingSet(t *testing.T) {
	items := []models.Item{
		jobItem("match", dayOffset(2), dayOffset(0), models.JobPayload{Company: "Kappa"}),
		jobItem("no-match", dayOffset(2), dayOffset(0), models.JobPayload{Company: "Other"}),
	}
	views := DeriveViews(items, "kappa", models.Filters{}, testNow, 7, 12, 20)
	if len(views.DueSoon) != 1 || len(views.Recent) != 1 {
		t.Fatalf("both views must derive from the searched set, got soon=%v recent=%v",
			ids(views.DueSoon), ids(views.Recent))
	}
	if views.DueSoon[0].ID != "match" || views.Recent[0].ID != "match" {
		t.Error("search must apply before both derivations")
	}
}

func ids(items []models.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
