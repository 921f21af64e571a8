package models

// HubConfig is the optional hub.yml / hub.toml file: page title plus the
// label and feed path shown for each category tab.
type HubConfig struct {
	Title      string        `yaml:"title" toml:"title"`
	Categories []HubCategory `yaml:"categories" toml:"categories"`
}

type HubCategory struct {
	Slug  string `yaml:"slug" toml:"slug"`
	Label string `yaml:"label" toml:"label"`
	Feed  string `yaml:"feed" toml:"feed"`
}

// DefaultHubConfig covers the common case of running without a config file.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		Title: "Opportunity Hub",
		Categories: []HubCategory{
			{Slug: string(CategoryScholarship), Label: "Scholarships", Feed: "scholarships.json"},
			{Slug: string(CategoryActivity), Label: "Activities", Feed: "activities.json"},
			{Slug: string(CategoryJob), Label: "Jobs", Feed: "jobs.json"},
			{Slug: string(CategoryGrad), Label: "Grad Programs", Feed: "grad.json"},
		},
	}
}
