package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	TargetURL string `yaml:"target_url"`

	ArchiveURL string `yaml:"archive_url"`
	UserAgent  string `yaml:"user_agent"`

	BrowserProfilePath string `yaml:"browser_profile_path"`

	PageLoadTimeout       int `yaml:"page_load_timeout"`
	AttemptTimeoutSeconds int `yaml:"attempt_timeout_seconds"`
	PollIntervalMs        int `yaml:"poll_interval_ms"`
	ChallengeSettleMs     int `yaml:"challenge_settle_ms"`

	ProcessingMarkers []string `yaml:"processing_markers"`

	// SearchProcessingMarker identifies the search path's processing form,
	// the only place NoResultsMarker is checked for.
	SearchProcessingMarker string `yaml:"search_processing_marker"`
	NoResultsMarker        string `yaml:"no_results_marker"`

	ChallengeSelectors []string `yaml:"challenge_selectors"`
	ChallengeFragments []string `yaml:"challenge_fragments"`

	Headless        bool `yaml:"headless"`
	KeepBrowserOpen bool `yaml:"keep_browser_open"`
	CopyResult      bool `yaml:"copy_result"`

	DebugMode bool `yaml:"debug_mode"`

	Selectors SelectorConfig `yaml:"selectors"`
}

type SelectorConfig struct {
	PrimaryInput   string `yaml:"primary_input"`
	PrimarySubmit  string `yaml:"primary_submit"`
	FallbackInput  string `yaml:"fallback_input"`
	FallbackSubmit string `yaml:"fallback_submit"`
}

func DefaultConfig() *Config {
	userDataDir := getUserDataDir()

	return &Config{
		TargetURL:          "",
		ArchiveURL:         "https://archive.ph/",
		UserAgent:          "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
		BrowserProfilePath: filepath.Join(userDataDir, "browser-profile"),

		PageLoadTimeout:       30,
		AttemptTimeoutSeconds: 180,
		PollIntervalMs:        2000,
		ChallengeSettleMs:     3000,

		ProcessingMarkers:      []string{"/wip/", "submitid="},
		SearchProcessingMarker: "submitid=",
		NoResultsMarker:        "No results",

		ChallengeSelectors: []string{
			"iframe[src*='captcha']",
			"iframe[src*='hcaptcha']",
			"iframe[src*='recaptcha']",
			"div#cf-challenge-running",
		},
		ChallengeFragments: []string{
			"Verify you are human",
			"Checking your browser",
		},

		Headless:        false,
		KeepBrowserOpen: true,
		CopyResult:      true,
		DebugMode:       false,

		Selectors: SelectorConfig{
			PrimaryInput:   "form#submiturl input[name='url'], input#submiturl, input[name='url']",
			PrimarySubmit:  "form#submiturl input[type='submit'], form#submiturl button[type='submit']",
			FallbackInput:  "form#searchurl input[name='url'], input#searchurl, input[name='q']",
			FallbackSubmit: "form#searchurl input[type='submit'], form#searchurl button[type='submit']",
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := config.Save(path); err != nil {
			return nil, err
		}
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	if config.BrowserProfilePath != "" {
		if err := os.MkdirAll(config.BrowserProfilePath, 0755); err != nil {
			return nil, err
		}
	}

	return config, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// PrimaryEntry is the create-path entry surface: the submission box that
// requests a fresh archive of the target URL.
func (c *Config) PrimaryEntry() EntrySurface {
	return EntrySurface{
		Label:          "create",
		InputSelector:  c.Selectors.PrimaryInput,
		SubmitSelector: c.Selectors.PrimarySubmit,
	}
}

// FallbackEntry is the search-path entry surface: the lookup box that
// resolves an already-existing archive of the target URL.
func (c *Config) FallbackEntry() EntrySurface {
	return EntrySurface{
		Label:          "search",
		InputSelector:  c.Selectors.FallbackInput,
		SubmitSelector: c.Selectors.FallbackSubmit,
	}
}
