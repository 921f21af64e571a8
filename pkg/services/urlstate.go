package services

import (
	"net/url"
	"strconv"

	"opphub/pkg/models"
)

// URL parameter names. Filter parameters are namespaced by category slug so
// one tab's filters never clobber another's.
const (
	paramTab   = "tab"
	paramQuery = "q"

	paramScholarshipGPA  = "scholarship.gpa"
	paramScholarshipYear = "scholarship.year"
	paramActivityType    = "activity.type"
	paramJobType         = "job.type"
	paramJobLocation     = "job.loc"
	paramGradField       = "grad.field"
)

// EncodeState serializes the board state into URL query parameters. Only
// active (non-zero) filter values are written, keeping share links short.
func EncodeState(s models.BoardState) url.Values {
	v := url.Values{}
	if s.Tab != "" && s.Tab != models.Categories[0] {
		v.Set(paramTab, string(s.Tab))
	}
	if s.Query != "" {
		v.Set(paramQuery, s.Query)
	}

	if f, ok := s.Filters[models.CategoryScholarship]; ok {
		if f.MinGPA > 0 {
			v.Set(paramScholarshipGPA, strconv.FormatFloat(f.MinGPA, 'f', -1, 64))
		}
		if f.GradeYear > 0 {
			v.Set(paramScholarshipYear, strconv.Itoa(f.GradeYear))
		}
	}
	if f, ok := s.Filters[models.CategoryActivity]; ok && f.ActivityType != "" {
		v.Set(paramActivityType, f.ActivityType)
	}
	if f, ok := s.Filters[models.CategoryJob]; ok {
		if f.EmploymentType != "" {
			v.Set(paramJobType, f.EmploymentType)
		}
		if f.JobLocation != "" {
			v.Set(paramJobLocation, f.JobLocation)
		}
	}
	if f, ok := s.Filters[models.CategoryGrad]; ok && f.GradField != "" {
		v.Set(paramGradField, f.GradField)
	}
	return v
}

// DecodeState rebuilds board state from URL query parameters. It is total:
// unknown parameters and malformed values are ignored, an unknown tab falls
// back to the first category.
func DecodeState(v url.Values) models.BoardState {
	s := models.NewBoardState()

	if tab, err := models.ParseCategory(v.Get(paramTab)); err == nil {
		s.Tab = tab
	}
	s.Query = v.Get(paramQuery)

	var scholarship models.Filters
	if gpa, err := strconv.ParseFloat(v.Get(paramScholarshipGPA), 64); err == nil && gpa > 0 {
		scholarship.MinGPA = gpa
	}
	if year, err := strconv.Atoi(v.Get(paramScholarshipYear)); err == nil && year > 0 {
		scholarship.GradeYear = year
	}
	if scholarship != (models.Filters{}) {
		s.Filters[models.CategoryScholarship] = scholarship
	}

	if t := v.Get(paramActivityType); t != "" {
		s.Filters[models.CategoryActivity] = models.Filters{ActivityType: t}
	}

	var job models.Filters
	job.EmploymentType = v.Get(paramJobType)
	job.JobLocation = v.Get(paramJobLocation)
	if job != (models.Filters{}) {
		s.Filters[models.CategoryJob] = job
	}

	if f := v.Get(paramGradField); f != "" {
		s.Filters[models.CategoryGrad] = models.Filters{GradField: f}
	}

	return s
}

// BuildShareURL produces the shareable link for the current state.
func BuildShareURL(base string, s models.BoardState) string {
	encoded := EncodeState(s).Encode()
	if encoded == "" {
		return base + "/"
	}
	return base + "/?" + encoded
}
