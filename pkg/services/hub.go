package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"opphub/pkg/models"
)

// LoadHubConfig reads the hub config file, accepting YAML or TOML. A
// missing file falls back to the default category set.
func LoadHubConfig(path string) (models.HubConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultHubConfig(), nil
		}
		return models.HubConfig{}, err
	}

	var cfg models.HubConfig
	if strings.HasSuffix(path, ".toml") {
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return models.HubConfig{}, fmt.Errorf("parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return models.HubConfig{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if cfg.Title == "" {
		cfg.Title = models.DefaultHubConfig().Title
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = models.DefaultHubConfig().Categories
	}

	for _, hc := range cfg.Categories {
		if _, err := models.ParseCategory(hc.Slug); err != nil {
			return models.HubConfig{}, fmt.Errorf("hub config: %w", err)
		}
	}
	return cfg, nil
}
