package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	url := flag.String("url", "", "URL to archive (falls back to the first argument, then the clipboard)")
	timeout := flag.Int("timeout", 0, "Seconds to wait for a result per attempt (overrides config)")
	headless := flag.Bool("headless", false, "Run the browser headless (not recommended when challenges appear)")
	debug := flag.Bool("debug", false, "Enable detailed debug logging")
	keepOpen := flag.Bool("keep-open", false, "Keep the browser open after finishing")
	primaryInput := flag.String("primary-input", "", "Override the create-path input selector")
	primarySubmit := flag.String("primary-submit", "", "Override the create-path submit selector")
	fallbackInput := flag.String("fallback-input", "", "Override the search-path input selector")
	fallbackSubmit := flag.String("fallback-submit", "", "Override the search-path submit selector")
	flag.Parse()

	// Initialize localization
	if err := InitLocale(); err != nil {
		log.Printf("Warning: Locale initialization failed, using default English: %v", err)
	}

	// Check for user data directory permission issues (after locale is loaded)
	checkUserDataDirPermissions()

	config, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *timeout > 0 {
		config.AttemptTimeoutSeconds = *timeout
	}
	if *headless {
		config.Headless = true
	}
	if *debug {
		config.DebugMode = true
	}
	if *keepOpen {
		config.KeepBrowserOpen = true
	}
	if *primaryInput != "" {
		config.Selectors.PrimaryInput = *primaryInput
	}
	if *primarySubmit != "" {
		config.Selectors.PrimarySubmit = *primarySubmit
	}
	if *fallbackInput != "" {
		config.Selectors.FallbackInput = *fallbackInput
	}
	if *fallbackSubmit != "" {
		config.Selectors.FallbackSubmit = *fallbackSubmit
	}

	provided := *url
	if provided == "" {
		provided = flag.Arg(0)
	}

	targetURL, fromClipboard, err := resolveTargetURL(provided, config.TargetURL, clipboard.ReadAll)
	if err != nil {
		log.Fatalf("No URL to archive: %v", err)
	}
	if fromClipboard {
		fmt.Printf(T("target_url_from_clipboard")+"\n", targetURL)
	}
	targetURL = normalizeTargetURL(targetURL)

	fmt.Println("╔═══════════════════════════════════════════════════════════╗")
	fmt.Println("║                  Archive Submission Tool                  ║")
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Target URL: %s\n", targetURL)
	fmt.Printf("Archive service: %s\n", config.ArchiveURL)
	fmt.Printf("Browser Profile: %s\n", config.BrowserProfilePath)

	if config.DebugMode {
		fmt.Println("🔍 DEBUG MODE - Detailed logging enabled")
	}
	if config.Headless {
		fmt.Println("👻 HEADLESS MODE - Challenges cannot be solved by hand")
	}
	fmt.Println()

	automation := NewAutomation(config)
	defer automation.Close()

	// log.Fatalf exits without running defers; close explicitly so the
	// launcher's temp profile is not left behind on a failed launch.
	if err := automation.setupBrowser(); err != nil {
		automation.Close()
		log.Fatalf("Failed to setup browser: %v", err)
	}

	if err := automation.openArchive(); err != nil {
		automation.Close()
		log.Fatalf("Failed to open the archive service: %v", err)
	}

	session := automation.Session()
	gate := NewChallengeGate(config, newTerminalInput())
	gate.Check(session.ActivePage())

	sequencer := NewAttemptSequencer(config, gate)
	attemptTimeout := time.Duration(config.AttemptTimeoutSeconds) * time.Second

	outcome := sequencer.Resolve(context.Background(), session, targetURL, config.PrimaryEntry(), config.FallbackEntry(), attemptTimeout)

	fmt.Println()
	reportOutcome(outcome, config)

	if config.KeepBrowserOpen {
		fmt.Println(T("keeping_browser_open"))
		time.Sleep(30 * time.Second)
	}
}

// reportOutcome prints the terminal state, shows the archive in the browser,
// and copies the resolved URL to the clipboard. No outcome is silently
// dropped; failures are reported with their cause verbatim.
func reportOutcome(outcome AttemptOutcome, config *Config) {
	if !outcome.Succeeded {
		fmt.Println(T("result_failed"))
		fmt.Printf(T("result_detail")+"\n", outcome.Detail)
		return
	}

	fmt.Printf(T("result_ready")+"\n", outcome.ResultLocation)
	fmt.Printf(T("result_detail")+"\n", outcome.Detail)

	// Make sure the operator is looking at the archive itself.
	if outcome.Page != nil {
		if location, err := outcome.Page.Location(); err == nil && location != outcome.ResultLocation {
			_ = outcome.Page.Navigate(outcome.ResultLocation)
		}
	}

	if config.CopyResult {
		if err := clipboard.WriteAll(outcome.ResultLocation); err == nil {
			fmt.Println(T("result_copied"))
		}
	}
}

// resolveTargetURL picks the target URL from the argument, the config, or the
// clipboard, in that order. The second return reports a clipboard hit.
func resolveTargetURL(provided, configured string, paste func() (string, error)) (string, bool, error) {
	if provided != "" {
		return provided, false, nil
	}
	if configured != "" {
		return configured, false, nil
	}

	fromClipboard, err := paste()
	if err != nil {
		return "", false, fmt.Errorf("clipboard unavailable: %w", err)
	}

	fromClipboard = strings.TrimSpace(fromClipboard)
	if fromClipboard == "" {
		return "", false, fmt.Errorf("no URL provided and clipboard is empty")
	}

	return fromClipboard, true, nil
}

// normalizeTargetURL prefixes bare hostnames with https so the service
// accepts them.
func normalizeTargetURL(url string) string {
	url = strings.TrimSpace(url)
	if url != "" && !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}

// Store init error for later display (after locale is loaded)
var initUserDataDirError error

func init() {
	userDataDir := getUserDataDir()
	if err := os.MkdirAll(userDataDir, 0755); err != nil {
		initUserDataDirError = err
	}
}

func checkUserDataDirPermissions() {
	if initUserDataDirError != nil {
		userDataDir := getUserDataDir()
		if runtime.GOOS == "darwin" && strings.Contains(initUserDataDirError.Error(), "operation not permitted") {
			fmt.Printf("⚠️  macOS denied access to %s\n", userDataDir)
			fmt.Println("   Grant your terminal Full Disk Access in System Settings, or")
			fmt.Println("   move the browser profile path in config.yaml somewhere writable.")
			fmt.Println()
		}
		log.Printf("Warning: could not prepare user data directory: %v", initUserDataDirError)
	}
}

func getUserDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./archive-tool-data"
	}
	return filepath.Join(home, ".archive-tool")
}
