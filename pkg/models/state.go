package models

// Filters carries the per-category filter values. Zero values mean
// "filter not active"; GradeYear uses 0 and MinGPA uses 0 for the same.
type Filters struct {
	// Scholarship
	MinGPA    float64 `json:"min_gpa,omitempty"`
	GradeYear int     `json:"grade_year,omitempty"`

	// Activity
	ActivityType string `json:"activity_type,omitempty"`

	// Job
	EmploymentType string `json:"employment_type,omitempty"`
	JobLocation    string `json:"job_location,omitempty"`

	// Grad
	GradField string `json:"grad_field,omitempty"`
}

// BoardState is the whole controller state: active tab, free-text query and
// one Filters per category. It is immutable in use; transitions go through
// the reducer and produce a fresh value.
type BoardState struct {
	Tab     Category             `json:"tab"`
	Query   string               `json:"query"`
	Filters map[Category]Filters `json:"filters"`
}

// NewBoardState returns the initial state: first tab, no query, no filters.
func NewBoardState() BoardState {
	return BoardState{
		Tab:     Categories[0],
		Filters: map[Category]Filters{},
	}
}

// ActiveFilters returns the filter values for the active tab.
func (s BoardState) ActiveFilters() Filters {
	return s.Filters[s.Tab]
}

// WithTab returns a copy of the state on a different tab.
func (s BoardState) WithTab(c Category) BoardState {
	next := s.clone()
	next.Tab = c
	return next
}

// WithQuery returns a copy of the state with a new free-text query.
func (s BoardState) WithQuery(q string) BoardState {
	next := s.clone()
	next.Query = q
	return next
}

// WithFilters returns a copy of the state with one category's filters
// replaced. Clearing every value removes the entry, keeping states that
// encode to the same URL deeply equal.
func (s BoardState) WithFilters(c Category, f Filters) BoardState {
	next := s.clone()
	if f == (Filters{}) {
		delete(next.Filters, c)
	} else {
		next.Filters[c] = f
	}
	return next
}

func (s BoardState) clone() BoardState {
	filters := make(map[Category]Filters, len(s.Filters))
	for k, v := range s.Filters {
		filters[k] = v
	}
	return BoardState{Tab: s.Tab, Query: s.Query, Filters: filters}
}
