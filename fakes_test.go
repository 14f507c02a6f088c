package main

import (
	"context"
	"time"
)

// Fake collaborators shared by the workflow tests. The real implementations
// need a live browser, which the tests never launch (same approach as
// skipping browser-dependent paths, but with the protocol still exercised).

type fakeElement struct {
	clicks   int
	filled   []string
	enters   int
	clickErr error
	fillErr  error
	enterErr error
}

func (e *fakeElement) Click() error {
	e.clicks++
	return e.clickErr
}

func (e *fakeElement) Fill(text string) error {
	e.filled = append(e.filled, text)
	return e.fillErr
}

func (e *fakeElement) PressEnter() error {
	e.enters++
	return e.enterErr
}

type fakePage struct {
	// locations are consumed one per Location call; the last value sticks.
	locations  []string
	locIndex   int
	locErr     error
	content    string
	contentErr error
	elements   map[string]*fakeElement
	queried    []string
	navigated  []string
	navErr     error
	settles    int
	settleErr  error

	// changeTo resolves WaitLocationChange after changeDelay; empty blocks
	// until the context ends.
	changeTo    string
	changeDelay time.Duration
}

func (p *fakePage) Location() (string, error) {
	if p.locErr != nil {
		return "", p.locErr
	}
	if len(p.locations) == 0 {
		return "", nil
	}
	loc := p.locations[p.locIndex]
	if p.locIndex < len(p.locations)-1 {
		p.locIndex++
	}
	return loc, nil
}

func (p *fakePage) Content() (string, error) {
	if p.contentErr != nil {
		return "", p.contentErr
	}
	return p.content, nil
}

func (p *fakePage) Query(selector string) (Element, bool) {
	p.queried = append(p.queried, selector)
	el, ok := p.elements[selector]
	if !ok {
		return nil, false
	}
	return el, true
}

func (p *fakePage) Navigate(url string) error {
	p.navigated = append(p.navigated, url)
	return p.navErr
}

func (p *fakePage) Settle(timeout time.Duration) error {
	p.settles++
	return p.settleErr
}

func (p *fakePage) WaitLocationChange(ctx context.Context, from string) (string, error) {
	if p.changeTo == "" {
		<-ctx.Done()
		return "", ctx.Err()
	}

	timer := time.NewTimer(p.changeDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
		return p.changeTo, nil
	}
}

type fakeSession struct {
	active Page

	// newPage arrives after newPageDelay; nil blocks until the context ends.
	newPage      Page
	newPageDelay time.Duration
}

func (s *fakeSession) ActivePage() Page {
	return s.active
}

func (s *fakeSession) WaitNewPage(ctx context.Context) (Page, error) {
	if s.newPage == nil {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	timer := time.NewTimer(s.newPageDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return s.newPage, nil
	}
}

func (s *fakeSession) Close() {}

type fakeOperator struct {
	prompts []string
	line    string
	err     error
}

func (o *fakeOperator) ReadLine(prompt string) (string, error) {
	o.prompts = append(o.prompts, prompt)
	return o.line, o.err
}

// testConfig returns defaults tuned so tests run in milliseconds.
func testConfig() *Config {
	config := DefaultConfig()
	config.ChallengeSettleMs = 0
	config.PollIntervalMs = 10
	config.PageLoadTimeout = 1
	return config
}
