package main

import (
	"fmt"
	"strings"
	"time"
)

// ChallengeGate detects a bot-challenge overlay and pauses the workflow until
// the operator confirms it has been solved.
type ChallengeGate struct {
	config   *Config
	operator OperatorInput
}

func NewChallengeGate(config *Config, operator OperatorInput) *ChallengeGate {
	return &ChallengeGate{config: config, operator: operator}
}

// Check is best-effort and never fails. When no indicator matches it returns
// immediately, so repeated calls on a clean page cost nothing.
func (g *ChallengeGate) Check(page Page) {
	if !g.detect(page) {
		return
	}

	fmt.Println(T("challenge_detected"))

	if _, err := g.operator.ReadLine(T("challenge_prompt")); err != nil {
		// Input stream gone; nothing left to wait on.
		return
	}

	fmt.Println(T("challenge_resolved"))

	// Let the page finish reloading after the challenge clears.
	time.Sleep(time.Duration(g.config.ChallengeSettleMs) * time.Millisecond)
}

// detect probes each configured indicator independently. A probe that fails
// counts as "not detected": the page may not support the query in its current
// state, and that must not abort the workflow.
func (g *ChallengeGate) detect(page Page) bool {
	for _, selector := range g.config.ChallengeSelectors {
		if selector == "" {
			continue
		}
		if _, found := page.Query(selector); found {
			return true
		}
	}

	if len(g.config.ChallengeFragments) == 0 {
		return false
	}

	content, err := page.Content()
	if err != nil {
		return false
	}

	return containsAnyFold(content, g.config.ChallengeFragments...)
}

func containsAnyFold(s string, fragments ...string) bool {
	lower := strings.ToLower(s)
	for _, fragment := range fragments {
		if fragment != "" && strings.Contains(lower, strings.ToLower(fragment)) {
			return true
		}
	}
	return false
}
