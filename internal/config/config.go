// Package config holds the seminar source declarations and run settings.
//
// Defaults are compiled in; an optional YAML file can replace the source
// list, and a handful of environment variables (loaded from .env if
// present) override individual settings.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Seminar describes one tabular seminar source. Location and TimeInfo are
// fallbacks used when neither the table row nor a detail page provides a
// value.
type Seminar struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Page     string `yaml:"page"`
	Location string `yaml:"location"`
	TimeInfo string `yaml:"time_info"`
}

// Config is the full run configuration.
type Config struct {
	Seminars       []Seminar `yaml:"seminars"`
	IMFSURL        string    `yaml:"imfs_url"`
	Out            string    `yaml:"out"`
	TimeoutSeconds int       `yaml:"timeout_seconds"`
}

// Default returns the built-in source list: the wiwi department seminar
// tables in fixed order, plus the IMFS listing page.
func Default() *Config {
	return &Config{
		Seminars: []Seminar{
			{
				ID:       "finance_seminar",
				Name:     "Finance Seminar Series",
				Page:     "https://www.old.wiwi.uni-frankfurt.de/abteilungen/finance/seminar/finance-seminar-series/seminar-calendar.html",
				Location: "HoF E.01 / Deutsche Bank room",
				TimeInfo: "Tuesdays 12:00–13:15",
			},
			{
				ID:       "finance_brownbag",
				Name:     "Finance Brown Bag",
				Page:     "https://www.old.wiwi.uni-frankfurt.de/abteilungen/finance/seminar/brown-bag/finance-brown-bag.html",
				Location: "HoF E.20 / DZ Bank room",
				TimeInfo: "Wednesdays 14:00–15:00",
			},
			{
				ID:       "mm_amos",
				Name:     "AMOS Seminar (Management & Microeconomics)",
				Page:     "https://www.old.wiwi.uni-frankfurt.de/abteilungen/mm/forschung/forschungskolloquien/amos.html",
				Location: "RuW 4.201",
				TimeInfo: "Usually Wednesdays 14:15",
			},
			{
				ID:       "mm_brownbag",
				Name:     "Management & Microeconomics Brown Bag",
				Page:     "https://www.old.wiwi.uni-frankfurt.de/abteilungen/mm/forschung/forschungskolloquien/brown-bag-seminar.html",
				Location: "RuW 4.201",
				TimeInfo: "Thursdays 12:30–13:30",
			},
			{
				ID:       "qep",
				Name:     "Quantitative Economic Policy Seminar",
				Page:     "https://www.old.wiwi.uni-frankfurt.de/abteilungen/eq/seminars/quantitative-economic-policy-seminar.html",
				Location: "RuW 4.202",
			},
			{
				ID:       "macro_seminar",
				Name:     "Macro Seminar",
				Page:     "https://www.old.wiwi.uni-frankfurt.de/abteilungen/money-and-macroeconomics/macro-seminar.html",
				Location: "HoF E.01 / Deutsche Bank room",
				TimeInfo: "Tuesdays 14:15–15:30",
			},
			{
				ID:   "macro_brownbag",
				Name: "Money & Macro Brown Bag",
				Page: "https://www.old.wiwi.uni-frankfurt.de/abteilungen/money-and-macroeconomics/brown-bag-seminar.html",
			},
		},
		IMFSURL:        "https://www.imfs-frankfurt.de/veranstaltungen/alle-kommenden-veranstaltungen",
		Out:            "events.json",
		TimeoutSeconds: 30,
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then environment overrides. A .env file in the
// working directory is loaded first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if out := os.Getenv("SEMINAR_EVENTS_OUT"); out != "" {
		cfg.Out = out
	}
	if imfs := os.Getenv("SEMINAR_EVENTS_IMFS_URL"); imfs != "" {
		cfg.IMFSURL = imfs
	}
	if timeout := os.Getenv("SEMINAR_EVENTS_TIMEOUT"); timeout != "" {
		secs, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid SEMINAR_EVENTS_TIMEOUT: %w", err)
		}
		cfg.TimeoutSeconds = secs
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	seen := make(map[string]bool, len(c.Seminars))
	for _, sem := range c.Seminars {
		if sem.ID == "" || sem.Page == "" {
			return fmt.Errorf("seminar source needs id and page: %+v", sem)
		}
		if seen[sem.ID] {
			return fmt.Errorf("duplicate seminar id: %s", sem.ID)
		}
		seen[sem.ID] = true
	}
	return nil
}
