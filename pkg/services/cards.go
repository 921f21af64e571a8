package services

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"opphub/pkg/models"
)

const maxCardTags = 8

const cardTemplate = `<article class="card{{if .Urgent}} card--urgent{{end}}" data-id="{{.ID}}" data-category="{{.Category}}">
{{- if .HeroImage}}
  <img class="card__hero" src="/media?path={{.HeroImage}}" alt="">
{{- end}}
  <header class="card__header">
    <span class="card__badge{{if .Urgent}} card__badge--urgent{{end}}">{{.Badge}}</span>
    <h3 class="card__title">{{.Title}}</h3>
    <button class="card__bookmark{{if .Bookmarked}} card__bookmark--on{{end}}" type="button" data-id="{{.ID}}" aria-pressed="{{.Bookmarked}}">☆</button>
  </header>
{{- if .Subtitle}}
  <p class="card__subtitle">{{.Subtitle}}</p>
{{- end}}
{{- if .Details}}
  <ul class="card__details">
{{- range .Details}}
    <li>{{.}}</li>
{{- end}}
  </ul>
{{- end}}
{{- if .Tags}}
  <ul class="card__tags">
{{- range .Tags}}
    <li class="card__tag">{{.}}</li>
{{- end}}
  </ul>
{{- end}}
  <footer class="card__footer">
    <a href="{{.SourceURL}}" target="_blank" rel="{{.Rel}}">{{.SourceName}}</a>
  </footer>
</article>`

var cardTmpl = template.Must(template.New("card").Parse(cardTemplate))

// cardView is the escaped-by-template shape handed to cardTemplate.
type cardView struct {
	ID         string
	Category   models.Category
	Title      string
	Subtitle   string
	Badge      string
	Urgent     bool
	Details    []string
	Tags       []string
	SourceName string
	SourceURL  string
	HeroImage  string
	Rel        string
	Bookmarked bool
}

// BadgeLabel renders the deadline badge: D-3 for three days left, D+2 for
// two days overdue, D-? when no deadline is computable.
func BadgeLabel(days int, ok bool) string {
	if !ok {
		return "D-?"
	}
	if days >= 0 {
		return fmt.Sprintf("D-%d", days)
	}
	return fmt.Sprintf("D+%d", -days)
}

// EnsureRel adds the noopener and noreferrer tokens to a rel attribute
// value, keeping any tokens already present.
func EnsureRel(rel string) string {
	tokens := strings.Fields(rel)
	have := map[string]bool{}
	for _, t := range tokens {
		have[strings.ToLower(t)] = true
	}
	for _, required := range []string{"noopener", "noreferrer"} {
		if !have[required] {
			tokens = append(tokens, required)
		}
	}
	return strings.Join(tokens, " ")
}

// RenderCard produces one display fragment for an item. All item-controlled
// text goes through html/template escaping; the urgency flag follows the
// due-soon window.
func RenderCard(it models.Item, now time.Time, windowDays int, bookmarked bool) (template.HTML, error) {
	days, ok := DaysRemaining(it.Deadline, now)

	tags := it.Tags
	if len(tags) > maxCardTags {
		tags = tags[:maxCardTags]
	}

	view := cardView{
		ID:         it.ID,
		Category:   it.Category,
		Title:      it.Title,
		Subtitle:   it.Subtitle,
		Badge:      BadgeLabel(days, ok),
		Urgent:     ok && days <= windowDays,
		Details:    cardDetails(it),
		Tags:       tags,
		SourceName: it.SourceName,
		SourceURL:  it.SourceURL,
		HeroImage:  it.HeroImage,
		Rel:        EnsureRel(""),
		Bookmarked: bookmarked,
	}

	var b strings.Builder
	if err := cardTmpl.Execute(&b, view); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}

// RenderCards renders a whole view. A card that fails to render is skipped
// rather than failing the list.
func RenderCards(items []models.Item, now time.Time, windowDays int, bookmarks map[string]bool) []template.HTML {
	out := make([]template.HTML, 0, len(items))
	for _, it := range items {
		card, err := RenderCard(it, now, windowDays, bookmarks[it.ID])
		if err != nil {
			continue
		}
		out = append(out, card)
	}
	return out
}

// cardDetails builds the category-specific fact lines shown on the card.
func cardDetails(it models.Item) []string {
	var details []string
	switch it.Category {
	case models.CategoryScholarship:
		p := it.Scholarship()
		if p.AmountYen > 0 {
			details = append(details, "¥"+humanize.Comma(int64(p.AmountYen)))
		}
		if p.MinGPA > 0 {
			details = append(details, fmt.Sprintf("GPA %.1f+", p.MinGPA))
		}
		if len(p.EligibleYears) > 0 {
			details = append(details, "years "+joinInts(p.EligibleYears))
		}
	case models.CategoryActivity:
		p := it.Activity()
		if p.Type != "" {
			details = append(details, p.Type)
		}
		if p.Location != "" {
			details = append(details, p.Location)
		}
		if p.Commitment != "" {
			details = append(details, p.Commitment)
		}
	case models.CategoryJob:
		p := it.Job()
		if p.Company != "" {
			details = append(details, p.Company)
		}
		if p.Role != "" {
			details = append(details, p.Role)
		}
		if p.SalaryMin > 0 && p.SalaryMax > 0 {
			details = append(details, fmt.Sprintf("¥%s–%s", humanize.Comma(int64(p.SalaryMin)), humanize.Comma(int64(p.SalaryMax))))
		}
		if p.EmploymentType != "" {
			details = append(details, p.EmploymentType)
		}
		if p.Location != "" {
			details = append(details, p.Location)
		}
	case models.CategoryGrad:
		p := it.Grad()
		if p.School != "" {
			details = append(details, p.School)
		}
		if p.Program != "" {
			details = append(details, p.Program)
		}
		if p.Funding != "" {
			details = append(details, p.Funding)
		}
	}
	return details
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ", ")
}
