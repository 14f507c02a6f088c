package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

// Element is one interactable DOM node on a page.
type Element interface {
	Click() error
	Fill(text string) error
	PressEnter() error
}

// Page is the narrow surface of a browser tab that the workflow needs.
type Page interface {
	Location() (string, error)
	Content() (string, error)
	Query(selector string) (Element, bool)
	Navigate(url string) error
	Settle(timeout time.Duration) error
	WaitLocationChange(ctx context.Context, from string) (string, error)
}

// Session owns the browsing context and all of its pages. The workflow only
// repoints its notion of the active page; it never closes pages itself.
type Session interface {
	ActivePage() Page
	WaitNewPage(ctx context.Context) (Page, error)
	Close()
}

const locationPollInterval = 250 * time.Millisecond

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Click() error {
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) Fill(text string) error {
	// Clear any pre-filled value before typing.
	if err := e.el.SelectAllText(); err != nil {
		return err
	}
	return e.el.Input(text)
}

func (e *rodElement) PressEnter() error {
	return e.el.Type(input.Enter)
}

type rodPage struct {
	page *rod.Page
}

func (p *rodPage) Location() (string, error) {
	info, err := p.page.Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

func (p *rodPage) Content() (string, error) {
	return p.page.HTML()
}

func (p *rodPage) Query(selector string) (Element, bool) {
	has, el, err := p.page.Has(selector)
	if err != nil || !has {
		return nil, false
	}
	return &rodElement{el: el}, true
}

func (p *rodPage) Navigate(url string) error {
	if err := p.page.Navigate(url); err != nil {
		return err
	}
	return p.page.WaitLoad()
}

func (p *rodPage) Settle(timeout time.Duration) error {
	return p.page.Timeout(timeout).WaitLoad()
}

// WaitLocationChange blocks until the page's location differs from `from` or
// the context ends. The page is checked on a short fixed interval; reads that
// fail mid-navigation are retried on the next tick.
func (p *rodPage) WaitLocationChange(ctx context.Context, from string) (string, error) {
	ticker := time.NewTicker(locationPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
			loc, err := p.Location()
			if err != nil {
				continue
			}
			if loc != "" && loc != from {
				return loc, nil
			}
		}
	}
}

type rodSession struct {
	browser *rod.Browser
	active  Page
}

func newRodSession(browser *rod.Browser, page *rod.Page) *rodSession {
	return &rodSession{
		browser: browser,
		active:  &rodPage{page: page},
	}
}

func (s *rodSession) ActivePage() Page {
	return s.active
}

// WaitNewPage blocks until a new page target is created within the browsing
// context, then attaches to it. Non-page targets (workers, iframes) are
// ignored.
func (s *rodSession) WaitNewPage(ctx context.Context) (Page, error) {
	var targetID proto.TargetTargetID
	wait := s.browser.Context(ctx).EachEvent(func(e *proto.TargetTargetCreated) bool {
		if e.TargetInfo.Type != "page" {
			return false
		}
		targetID = e.TargetInfo.TargetID
		return true
	})
	wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	page, err := s.browser.PageFromTarget(targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to attach to new tab: %w", err)
	}
	return &rodPage{page: page}, nil
}

func (s *rodSession) Close() {
	s.browser.Close()
}
