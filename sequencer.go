package main

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// AttemptSequencer orders the two submission paths: the create path first,
// then the search path if the create path failed. There is no third path;
// whatever the fallback produces is the final outcome.
type AttemptSequencer struct {
	config  *Config
	gate    *ChallengeGate
	attempt *SubmissionAttempt
}

func NewAttemptSequencer(config *Config, gate *ChallengeGate) *AttemptSequencer {
	return &AttemptSequencer{
		config: config,
		gate:   gate,
		attempt: &SubmissionAttempt{
			config: config,
			gate:   gate,
			race:   &ResultRace{config: config},
			poller: &ProcessingPoller{config: config},
		},
	}
}

// Resolve runs the primary attempt and, only if it failed, resets the session
// to the service's home page and runs the fallback against a fresh deadline
// window.
func (s *AttemptSequencer) Resolve(ctx context.Context, session Session, targetURL string, primary, fallback EntrySurface, timeout time.Duration) AttemptOutcome {
	page := session.ActivePage()

	outcome := s.attempt.Run(ctx, session, page, targetURL, primary, timeout)
	if outcome.Succeeded {
		return outcome
	}

	fmt.Printf(T("primary_failed_fallback")+"\n", outcome.Detail)

	if err := s.resetToHome(page); err != nil {
		return AttemptOutcome{
			Detail: fmt.Sprintf("could not return to %s: %v", s.config.ArchiveURL, err),
			Page:   page,
		}
	}
	s.gate.Check(page)

	return s.attempt.Run(ctx, session, page, targetURL, fallback, timeout)
}

func (s *AttemptSequencer) resetToHome(page Page) error {
	location, err := page.Location()
	if err == nil && strings.TrimRight(location, "/") == strings.TrimRight(s.config.ArchiveURL, "/") {
		return nil
	}

	fmt.Printf(T("returning_home")+"\n", s.config.ArchiveURL)
	return page.Navigate(s.config.ArchiveURL)
}
