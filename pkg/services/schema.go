package services

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"opphub/pkg/models"
)

// postFileName is the authoring convention for individual post files.
var postFileName = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-[a-z0-9]+(-[a-z0-9]+)*\.json$`)

// Hosts that hide the real destination. Source links must point at the
// original resource.
var shortenerHosts = map[string]bool{
	"bit.ly":      true,
	"t.co":        true,
	"goo.gl":      true,
	"tinyurl.com": true,
	"ow.ly":       true,
}

// Query parameters that track rather than address.
var trackingParams = []string{"fbclid", "gclid", "msclkid", "mc_eid", "igshid"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterValidation("datestr", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseDate(fl.Field().String())
		return ok
	})

	v.RegisterValidation("cleanurl", func(fl validator.FieldLevel) bool {
		return CheckSourceURL(fl.Field().String()) == nil
	})

	return v
}

// CheckSourceURL enforces the source-link contract: https only, no link
// shorteners, no tracking parameters.
func CheckSourceURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("source_url: %w", err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("source_url: scheme must be https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("source_url: missing host")
	}
	if shortenerHosts[strings.ToLower(u.Host)] {
		return fmt.Errorf("source_url: %s is a link shortener", u.Host)
	}
	for key := range u.Query() {
		lower := strings.ToLower(key)
		if strings.HasPrefix(lower, "utm_") {
			return fmt.Errorf("source_url: tracking parameter %q", key)
		}
		for _, banned := range trackingParams {
			if lower == banned {
				return fmt.Errorf("source_url: tracking parameter %q", key)
			}
		}
	}
	return nil
}

// CheckPostFileName enforces the date-slug.json naming convention and that
// the embedded date is a real calendar day.
func CheckPostFileName(name string) error {
	if !postFileName.MatchString(name) {
		return fmt.Errorf("post file %q does not match YYYY-MM-DD-slug.json", name)
	}
	if _, ok := models.ParseDate(name[:10]); !ok {
		return fmt.Errorf("post file %q has an invalid date", name)
	}
	return nil
}

// ValidateItem checks one authored record against the content schema:
// envelope field constraints plus the category's payload shape.
func ValidateItem(it models.Item) error {
	if err := validate.Struct(it); err != nil {
		return err
	}
	return validatePayload(it)
}

func validatePayload(it models.Item) error {
	if len(it.Payload) == 0 {
		return fmt.Errorf("item %s: missing payload", it.ID)
	}

	dec := json.NewDecoder(strings.NewReader(string(it.Payload)))
	dec.DisallowUnknownFields()

	switch it.Category {
	case models.CategoryScholarship:
		var p models.ScholarshipPayload
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("item %s: scholarship payload: %w", it.ID, err)
		}
		if p.AmountYen <= 0 {
			return fmt.Errorf("item %s: scholarship payload: amount_yen must be positive", it.ID)
		}
	case models.CategoryActivity:
		var p models.ActivityPayload
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("item %s: activity payload: %w", it.ID, err)
		}
		if p.Type == "" {
			return fmt.Errorf("item %s: activity payload: type is required", it.ID)
		}
	case models.CategoryJob:
		var p models.JobPayload
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("item %s: job payload: %w", it.ID, err)
		}
		if p.Company == "" || p.Role == "" {
			return fmt.Errorf("item %s: job payload: company and role are required", it.ID)
		}
	case models.CategoryGrad:
		var p models.GradPayload
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("item %s: grad payload: %w", it.ID, err)
		}
		if p.School == "" || p.Program == "" {
			return fmt.Errorf("item %s: grad payload: school and program are required", it.ID)
		}
	default:
		return fmt.Errorf("item %s: unknown category %q", it.ID, it.Category)
	}
	return nil
}

// ValidateFeed checks a whole published array: every record valid, ids
// unique, every record in the expected category.
func ValidateFeed(raw []byte, cat models.Category) error {
	var items []models.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("feed is not a valid item array: %w", err)
	}

	seen := map[string]bool{}
	for _, it := range items {
		if it.Category != cat {
			return fmt.Errorf("item %s: category %q in %q feed", it.ID, it.Category, cat)
		}
		if seen[it.ID] {
			return fmt.Errorf("duplicate item id %q", it.ID)
		}
		seen[it.ID] = true
		if err := ValidateItem(it); err != nil {
			return err
		}
	}
	return nil
}
