package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultMessages is the built-in English message table. A lang/<locale>.yaml
// file next to the executable overrides individual keys.
var defaultMessages = map[string]string{
	"target_url_from_clipboard": "📋 Using URL from clipboard: %s",
	"opening_archive":           "Opening %s ...",

	"browser_launching":           "🚀 Launching browser...",
	"browser_using_system_chrome": "✓ Using system Chrome",
	"browser_chrome_not_found":    "⚠️  System Chrome not found, downloading Chromium...",
	"browser_launched":            "✓ Browser launched",
	"browser_closed_by_user":      "Browser window was closed.",
	"shutting_down":               "Shutting down...",
	"cleaning_up":                 "🧹 Cleaning up...",
	"browser_destroyed":           "✓ Browser closed",
	"windows_leakless_disabled":   "⚠️  Leakless mode disabled on Windows",
	"error_chrome_already_running": "Chrome is already running with this profile. " +
		"Close all Chrome windows and try again.",
	"archive_loaded": "✓ Archive service loaded",

	"challenge_detected": "🤖 Challenge detected. Please complete it in the browser window.",
	"challenge_prompt":   "Press Enter after solving the challenge... ",
	"challenge_resolved": "✓ Challenge acknowledged, letting the page settle...",

	"attempt_submitting":    "📤 [%s] Submitting %s ...",
	"attempt_entry_missing": "⚠️  [%s] Entry surface not found on the page.",

	"race_same_tab":  "✓ Page navigated to %s",
	"race_new_tab":   "✓ Result opened in a new tab: %s",
	"race_no_signal": "⚠️  No navigation detected before the deadline.",

	"processing_wait":     "⏳ Archive is being generated, polling for completion...",
	"processing_still":    "   Still processing... (%v elapsed)",
	"processing_degraded": "⚠️  Deadline reached while still processing; reporting the current location anyway.",
	"no_results_found":    "❌ The service reported no results for this URL.",

	"primary_failed_fallback": "↩️  Primary submission did not yield a result (%s). Trying the search path...",
	"returning_home":          "🏠 Returning to %s ...",

	"result_ready":  "🎉 Archive ready: %s",
	"result_failed": "❌ Could not obtain an archive URL.",
	"result_detail": "   %s",
	"result_copied": "📋 Archive URL copied to clipboard.",

	"keeping_browser_open": "Keeping browser open for 30 seconds...",
}

type Locale struct {
	translations map[string]string
	locale       string
}

var globalLocale *Locale

// InitLocale initializes the global locale system. The embedded English table
// always applies; a matching lang/<locale>.yaml file overrides it.
func InitLocale() error {
	locale := DetectSystemLocale()

	l, err := LoadLocale(locale)
	if err != nil {
		globalLocale = &Locale{translations: defaultMessages, locale: "en_US"}
		if locale != "en_US" {
			return fmt.Errorf("failed to load locale '%s', using built-in English: %w", locale, err)
		}
		return nil
	}

	globalLocale = l
	return nil
}

// DetectSystemLocale detects the user's system locale from the environment.
func DetectSystemLocale() string {
	for _, name := range []string{"LANG", "LC_ALL", "LC_MESSAGES"} {
		if locale := os.Getenv(name); locale != "" {
			// Values are typically like "en_US.UTF-8" or "ru_RU.UTF-8"
			if code := strings.SplitN(locale, ".", 2)[0]; code != "" {
				return code
			}
		}
	}

	return "en_US"
}

// LoadLocale loads a locale override file from the lang/ directory next to
// the executable, layered over the embedded defaults.
func LoadLocale(locale string) (*Locale, error) {
	translations := make(map[string]string, len(defaultMessages))
	for key, value := range defaultMessages {
		translations[key] = value
	}

	exePath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	localeFile := filepath.Join(filepath.Dir(exePath), "lang", locale+".yaml")

	data, err := os.ReadFile(localeFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale file %s: %w", localeFile, err)
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse locale file %s: %w", localeFile, err)
	}

	for key, value := range overrides {
		translations[key] = value
	}

	return &Locale{
		translations: translations,
		locale:       locale,
	}, nil
}

// T translates a key with optional fmt parameters.
func T(key string, params ...interface{}) string {
	translation, ok := "", false
	if globalLocale != nil {
		translation, ok = globalLocale.translations[key]
	}
	if !ok {
		if translation, ok = defaultMessages[key]; !ok {
			return key
		}
	}

	if len(params) > 0 {
		return fmt.Sprintf(translation, params...)
	}

	return translation
}

// GetLocale returns the current locale code (e.g., "en_US", "ru_RU").
func GetLocale() string {
	if globalLocale == nil {
		return "en_US"
	}
	return globalLocale.locale
}
