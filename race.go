package main

import (
	"context"
	"fmt"
	"time"
)

// raceKind tags which completion signal won the result race.
type raceKind int

const (
	raceNone raceKind = iota
	raceSameTab
	raceNewTab
)

type raceResult struct {
	kind     raceKind
	location string
	page     Page
}

// ResultRace watches the two completion signals the archive service uses
// interchangeably: a navigation of the submitting tab, and a new tab opening
// with the result. Both are watched simultaneously because the service gives
// no hint which one a given submission will produce.
type ResultRace struct {
	config *Config
}

// Race returns the first resolved location and the page that carries it. A
// new tab wins as-is once it settles; a same-tab navigation reports the
// changed location on the original page. When neither signal arrives before
// `until`, it returns ("", page) and the original page stays active. The
// losing wait is cancelled and cannot resolve after the race has returned.
func (r *ResultRace) Race(ctx context.Context, session Session, page Page, start string, until time.Time) (string, Page) {
	raceCtx, cancel := context.WithDeadline(ctx, until)
	defer cancel()

	// Buffered so the losing goroutine can report and exit after the race
	// has already returned.
	results := make(chan raceResult, 2)

	go func() {
		loc, err := page.WaitLocationChange(raceCtx, start)
		if err != nil {
			results <- raceResult{kind: raceNone}
			return
		}
		results <- raceResult{kind: raceSameTab, location: loc}
	}()

	go func() {
		newPage, err := session.WaitNewPage(raceCtx)
		if err != nil {
			results <- raceResult{kind: raceNone}
			return
		}
		results <- raceResult{kind: raceNewTab, page: newPage}
	}()

	for i := 0; i < 2; i++ {
		result := <-results
		switch result.kind {
		case raceSameTab:
			cancel()
			fmt.Printf(T("race_same_tab")+"\n", result.location)
			return result.location, page

		case raceNewTab:
			cancel()
			location := r.settleNewTab(result.page)
			if location == "" {
				return "", result.page
			}
			fmt.Printf(T("race_new_tab")+"\n", location)
			return location, result.page
		}
	}

	fmt.Println(T("race_no_signal"))
	return "", page
}

// settleNewTab waits for the new tab to finish loading before trusting its
// location. A same-tab navigation needs no such wait: its URL changed as part
// of an observed navigation.
func (r *ResultRace) settleNewTab(page Page) string {
	_ = page.Settle(time.Duration(r.config.PageLoadTimeout) * time.Second)

	location, err := page.Location()
	if err != nil {
		return ""
	}
	return location
}
