package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used everywhere in the feeds.
const DateLayout = "2006-01-02"

// Category is one of the fixed content types served by the hub.
type Category string

const (
	CategoryScholarship Category = "scholarship"
	CategoryActivity    Category = "activity"
	CategoryJob         Category = "job"
	CategoryGrad        Category = "grad"
)

// Categories lists every category in display (tab) order.
var Categories = []Category{
	CategoryScholarship,
	CategoryActivity,
	CategoryJob,
	CategoryGrad,
}

// FeedSlugs maps a category to its published feed file name.
var FeedSlugs = map[Category]string{
	CategoryScholarship: "scholarships",
	CategoryActivity:    "activities",
	CategoryJob:         "jobs",
	CategoryGrad:        "grad",
}

// ParseCategory validates a category string. An unknown value is a
// configuration error, not user input to be tolerated.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// Item is the common envelope shared by every post, regardless of category.
// Deadline is an empty string when the post has no deadline; it is never
// omitted from the feed files.
type Item struct {
	ID             string          `json:"id" validate:"required"`
	Category       Category        `json:"category" validate:"required,oneof=scholarship activity job grad"`
	Title          string          `json:"title" validate:"required"`
	Subtitle       string          `json:"subtitle"`
	Tags           []string        `json:"tags"`
	PostedAt       string          `json:"posted_at" validate:"required,datestr"`
	Deadline       string          `json:"deadline" validate:"omitempty,datestr"`
	LastVerifiedAt string          `json:"last_verified_at" validate:"required,datestr"`
	SourceName     string          `json:"source_name" validate:"required"`
	SourceURL      string          `json:"source_url" validate:"required,cleanurl"`
	HeroImage      string          `json:"hero_image,omitempty"`
	Payload        json.RawMessage `json:"payload"`
}

// ScholarshipPayload holds the scholarship-specific fields.
type ScholarshipPayload struct {
	AmountYen     int     `json:"amount_yen"`
	EligibleYears []int   `json:"eligible_years"`
	MinGPA        float64 `json:"min_gpa"`
	Renewable     bool    `json:"renewable"`
}

// ActivityPayload holds the activity-specific fields.
type ActivityPayload struct {
	Type       string `json:"type"`
	Location   string `json:"location"`
	Commitment string `json:"commitment"`
}

// JobPayload holds the job-specific fields.
type JobPayload struct {
	Company        string `json:"company"`
	Role           string `json:"role"`
	SalaryMin      int    `json:"salary_min"`
	SalaryMax      int    `json:"salary_max"`
	EmploymentType string `json:"employment_type"`
	Location       string `json:"location"`
}

// GradPayload holds the grad-program-specific fields.
type GradPayload struct {
	School  string   `json:"school"`
	Program string   `json:"program"`
	Fields  []string `json:"fields"`
	Funding string   `json:"funding"`
}

// ParseDate parses a calendar-day string from a feed. The boolean is false
// for empty or malformed values.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Scholarship decodes the payload as a scholarship. Missing or malformed
// payloads decode to the zero value so a bad record never aborts a render.
func (it Item) Scholarship() ScholarshipPayload {
	var p ScholarshipPayload
	_ = json.Unmarshal(it.Payload, &p)
	return p
}

// Activity decodes the payload as an activity.
func (it Item) Activity() ActivityPayload {
	var p ActivityPayload
	_ = json.Unmarshal(it.Payload, &p)
	return p
}

// Job decodes the payload as a job posting.
func (it Item) Job() JobPayload {
	var p JobPayload
	_ = json.Unmarshal(it.Payload, &p)
	return p
}

// Grad decodes the payload as a grad program.
func (it Item) Grad() GradPayload {
	var p GradPayload
	_ = json.Unmarshal(it.Payload, &p)
	return p
}
