package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

type Automation struct {
	config   *Config
	browser  *rod.Browser
	page     *rod.Page
	launcher *launcher.Launcher
	stopChan chan bool
}

func NewAutomation(config *Config) *Automation {
	return &Automation{
		config:   config,
		stopChan: make(chan bool, 1),
	}
}

func (a *Automation) Close() {
	select {
	case a.stopChan <- true:
	default:
	}

	fmt.Println(T("cleaning_up"))

	if a.page != nil {
		a.page.Close()
	}

	if a.browser != nil {
		a.browser.Close()
	}

	if a.launcher != nil {
		a.launcher.Cleanup()
	}

	fmt.Println(T("browser_destroyed"))
}

func (a *Automation) isBrowserAlive() bool {
	if a.browser == nil {
		return false
	}

	_, err := a.browser.Version()
	if err != nil {
		a.debugLog("Browser version check failed: %v", err)
		return false
	}

	return true
}

func (a *Automation) checkBrowserOrExit() {
	if !a.isBrowserAlive() {
		fmt.Println(T("browser_closed_by_user"))
		fmt.Println(T("shutting_down"))
		os.Exit(0)
	}
}

// watchBrowser exits the process cleanly if the operator closes the browser
// window mid-run.
func (a *Automation) watchBrowser() {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopChan:
			return
		case <-ticker.C:
			a.checkBrowserOrExit()
		}
	}
}

func (a *Automation) debugLog(format string, args ...interface{}) {
	if a.config.DebugMode {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}

func (a *Automation) setupBrowser() error {
	fmt.Println(T("browser_launching"))

	// Disable leakless mode on Windows to prevent deadlock
	// See: https://github.com/go-rod/rod/issues/853
	useLeakless := runtime.GOOS != "windows"

	chromePath, chromeExists := launcher.LookPath()

	a.launcher = launcher.New().
		Leakless(useLeakless).
		Headless(a.config.Headless)

	// Custom user data dir avoids conflicts with a running Chrome profile.
	if a.config.BrowserProfilePath != "" {
		a.launcher = a.launcher.UserDataDir(a.config.BrowserProfilePath)
		a.debugLog("Browser profile path: %s", a.config.BrowserProfilePath)
	}

	if chromeExists {
		a.launcher = a.launcher.Bin(chromePath)
		fmt.Println(T("browser_using_system_chrome"))
		a.debugLog("Chrome path: %s", chromePath)
	} else {
		fmt.Println(T("browser_chrome_not_found"))
	}

	if runtime.GOOS == "windows" {
		fmt.Println(T("windows_leakless_disabled"))
	}

	url, err := a.launcher.Launch()
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "Opening in existing browser session") ||
			strings.Contains(errMsg, "ProcessSingleton") ||
			strings.Contains(errMsg, "SingletonLock") {
			return errors.New(T("error_chrome_already_running"))
		}
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	a.browser = rod.New().ControlURL(url).MustConnect()

	go a.watchBrowser()
	a.debugLog("Browser watcher started")

	fmt.Println(T("browser_launched"))
	return nil
}

// openArchive creates the stealth working page and loads the archive service.
// A failure here is fatal to the run: no entry surface can exist without a
// loaded page.
func (a *Automation) openArchive() error {
	fmt.Printf(T("opening_archive")+"\n", a.config.ArchiveURL)

	var err error
	a.page, err = stealth.Page(a.browser)
	if err != nil {
		return fmt.Errorf("failed to create stealth page: %w", err)
	}
	a.debugLog("Stealth mode enabled (anti-bot detection)")

	if a.config.UserAgent != "" {
		err = a.page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: a.config.UserAgent,
		})
		if err != nil {
			a.debugLog("Warning: Failed to set User-Agent: %v", err)
		}
	}

	if err := a.page.Navigate(a.config.ArchiveURL); err != nil {
		return fmt.Errorf("failed to open %s: %w", a.config.ArchiveURL, err)
	}

	if err := a.page.Timeout(time.Duration(a.config.PageLoadTimeout) * time.Second).WaitLoad(); err != nil {
		return fmt.Errorf("archive page failed to load: %w", err)
	}

	fmt.Println(T("archive_loaded"))
	return nil
}

// Session exposes the launched browser through the narrow collaborator
// interface the workflow consumes.
func (a *Automation) Session() Session {
	return newRodSession(a.browser, a.page)
}
