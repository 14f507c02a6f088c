package main

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// EntrySurface describes where one attempt path submits the target URL: an
// input field and, separately, an optional submit control scoped to it.
type EntrySurface struct {
	Label          string
	InputSelector  string
	SubmitSelector string
}

// AttemptOutcome is the immutable result of one submission attempt.
// Succeeded implies a non-empty ResultLocation.
type AttemptOutcome struct {
	Succeeded      bool
	ResultLocation string
	Detail         string
	Page           Page
}

// SubmissionAttempt drives one full attempt: locate the entry surface, submit
// the target URL, and consume the race, gate, and poller in sequence to
// produce a definitive outcome. Failures never escape; they are captured in
// the outcome for the sequencer to inspect.
type SubmissionAttempt struct {
	config *Config
	gate   *ChallengeGate
	race   *ResultRace
	poller *ProcessingPoller
}

func (a *SubmissionAttempt) Run(ctx context.Context, session Session, page Page, targetURL string, surface EntrySurface, timeout time.Duration) AttemptOutcome {
	start, err := page.Location()
	if err != nil {
		return AttemptOutcome{Detail: fmt.Sprintf("could not read current location: %v", err), Page: page}
	}

	input, found := page.Query(surface.InputSelector)
	if !found {
		fmt.Printf(T("attempt_entry_missing")+"\n", surface.Label)
		return AttemptOutcome{Detail: "entry surface not found", Page: page}
	}

	fmt.Printf(T("attempt_submitting")+"\n", surface.Label, targetURL)

	// Focus first; some input fields ignore programmatic fills otherwise.
	_ = input.Click()

	if err := input.Fill(targetURL); err != nil {
		return AttemptOutcome{Detail: fmt.Sprintf("could not fill input: %v", err), Page: page}
	}

	if err := a.trigger(page, input, surface); err != nil {
		return AttemptOutcome{Detail: fmt.Sprintf("could not trigger submission: %v", err), Page: page}
	}

	// A challenge can appear the moment the submission lands. Time spent
	// blocked on the operator here does not count against the race deadline.
	a.gate.Check(page)

	until := time.Now().Add(timeout)

	resolved, resolvedPage := a.race.Race(ctx, session, page, start, until)
	if resolved == "" {
		return AttemptOutcome{Detail: "no navigation detected", Page: resolvedPage}
	}

	a.gate.Check(resolvedPage)

	if a.poller.IsProcessing(resolved) {
		fmt.Println(T("processing_wait"))

		final, degraded, err := a.poller.PollUntilSettled(ctx, resolvedPage, until)
		if errors.Is(err, errNoResult) {
			fmt.Println(T("no_results_found"))
			return AttemptOutcome{Detail: "service reported no results", Page: resolvedPage}
		}
		if final == "" {
			return AttemptOutcome{Detail: "could not read result location", Page: resolvedPage}
		}
		if degraded {
			// Back on the home page at the deadline means the submission
			// went nowhere; that is never a result.
			if a.poller.isIdle(final) {
				return AttemptOutcome{Detail: fmt.Sprintf("still on %s at deadline", final), Page: resolvedPage}
			}
			return AttemptOutcome{
				Succeeded:      true,
				ResultLocation: final,
				Detail:         "processing did not confirm before deadline; location is low-confidence",
				Page:           resolvedPage,
			}
		}
		return AttemptOutcome{
			Succeeded:      true,
			ResultLocation: final,
			Detail:         fmt.Sprintf("archive settled at %s", final),
			Page:           resolvedPage,
		}
	}

	return AttemptOutcome{
		Succeeded:      true,
		ResultLocation: resolved,
		Detail:         fmt.Sprintf("navigated to %s", resolved),
		Page:           resolvedPage,
	}
}

// trigger prefers an explicit submit control scoped to the entry surface and
// falls back to pressing Enter on the input itself.
func (a *SubmissionAttempt) trigger(page Page, input Element, surface EntrySurface) error {
	if surface.SubmitSelector != "" {
		if submit, found := page.Query(surface.SubmitSelector); found {
			return submit.Click()
		}
	}
	return input.PressEnter()
}
