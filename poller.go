package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// errNoResult is the explicit negative signal from the service: the search
// path found nothing to resolve. Distinct from a timeout, which is lenient.
var errNoResult = errors.New("no results found")

// ProcessingPoller waits out the service's intermediate "processing" state,
// where the submission has been accepted but the archive is still being
// generated. This wait dominates the tool's wall-clock time (minutes in
// normal operation).
type ProcessingPoller struct {
	config *Config
}

// IsProcessing reports whether a location matches a known processing marker.
func (p *ProcessingPoller) IsProcessing(location string) bool {
	for _, marker := range p.config.ProcessingMarkers {
		if marker != "" && strings.Contains(location, marker) {
			return true
		}
	}
	return false
}

func (p *ProcessingPoller) isIdle(location string) bool {
	return strings.TrimRight(location, "/") == strings.TrimRight(p.config.ArchiveURL, "/")
}

// isSearchProcessing reports whether a location is the search path's
// processing form, the only surface where the service renders its "no
// results" text.
func (p *ProcessingPoller) isSearchProcessing(location string) bool {
	marker := p.config.SearchProcessingMarker
	return marker != "" && strings.Contains(location, marker)
}

// PollUntilSettled polls the page location until it leaves the processing
// pattern, then returns it. A "no results" marker in the content of the
// search path's processing form returns errNoResult. Reaching `until` is not
// a hard failure: the archive may have completed server-side even if the
// redirect lagged, so the current location is returned with the second return
// set and the caller decides how much to trust it.
func (p *ProcessingPoller) PollUntilSettled(ctx context.Context, page Page, until time.Time) (string, bool, error) {
	pollCtx, cancel := context.WithDeadline(ctx, until)
	defer cancel()

	interval := time.Duration(p.config.PollIntervalMs) * time.Millisecond
	started := time.Now()
	lastNotice := started
	lastKnown := ""

	for {
		location, err := page.Location()
		if err == nil {
			lastKnown = location

			if !p.IsProcessing(location) && !p.isIdle(location) {
				return location, false, nil
			}

			if p.isSearchProcessing(location) && p.config.NoResultsMarker != "" {
				if content, cerr := page.Content(); cerr == nil &&
					containsAnyFold(content, p.config.NoResultsMarker) {
					return "", false, errNoResult
				}
			}
		}

		if time.Since(lastNotice) >= 15*time.Second {
			fmt.Printf(T("processing_still")+"\n", time.Since(started).Round(time.Second))
			lastNotice = time.Now()
		}

		timer := time.NewTimer(interval)
		select {
		case <-pollCtx.Done():
			timer.Stop()
			fmt.Println(T("processing_degraded"))
			if current, err := page.Location(); err == nil {
				return current, true, nil
			}
			return lastKnown, true, nil
		case <-timer.C:
		}
	}
}
