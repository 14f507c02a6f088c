package main

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRaceTimeoutReturnsOriginalPage(t *testing.T) {
	config := testConfig()
	page := &fakePage{locations: []string{"https://archive.ph/"}}
	session := &fakeSession{active: page}

	race := &ResultRace{config: config}
	location, resolved := race.Race(context.Background(), session, page, "https://archive.ph/", time.Now().Add(100*time.Millisecond))

	if location != "" {
		t.Errorf("Expected no resolved location on timeout, got %q", location)
	}
	if resolved != Page(page) {
		t.Error("Expected the original page to be retained on timeout")
	}
}

func TestRaceSameTabNavigation(t *testing.T) {
	config := testConfig()
	page := &fakePage{
		changeTo:    "https://archive.ph/abc12",
		changeDelay: 10 * time.Millisecond,
	}
	session := &fakeSession{active: page}

	race := &ResultRace{config: config}
	location, resolved := race.Race(context.Background(), session, page, "https://archive.ph/", time.Now().Add(2*time.Second))

	if location != "https://archive.ph/abc12" {
		t.Errorf("Expected the navigated location, got %q", location)
	}
	if resolved != Page(page) {
		t.Error("Expected the original page as the resolved page for a same-tab navigation")
	}
	if page.settles != 0 {
		t.Error("A same-tab navigation must not trigger an extra settle wait")
	}
}

func TestRaceNewTabWins(t *testing.T) {
	config := testConfig()
	newTab := &fakePage{locations: []string{"https://archive.ph/xyz99"}}
	page := &fakePage{
		// The same-tab wait would also resolve, but far later.
		changeTo:    "https://archive.ph/late",
		changeDelay: 2 * time.Second,
	}
	session := &fakeSession{
		active:       page,
		newPage:      newTab,
		newPageDelay: 10 * time.Millisecond,
	}

	race := &ResultRace{config: config}
	location, resolved := race.Race(context.Background(), session, page, "https://archive.ph/", time.Now().Add(5*time.Second))

	if location != "https://archive.ph/xyz99" {
		t.Errorf("Expected the new tab's settled location, got %q", location)
	}
	if resolved != Page(newTab) {
		t.Error("Expected the new tab to become the resolved page")
	}
	if newTab.settles != 1 {
		t.Errorf("Expected the new tab to be settled exactly once, got %d", newTab.settles)
	}
}

func TestRaceNewTabSettleFailureStillReportsLocation(t *testing.T) {
	config := testConfig()
	newTab := &fakePage{
		locations: []string{"https://archive.ph/slow1"},
		settleErr: errors.New("load timeout"),
	}
	page := &fakePage{}
	session := &fakeSession{active: page, newPage: newTab}

	race := &ResultRace{config: config}
	location, resolved := race.Race(context.Background(), session, page, "https://archive.ph/", time.Now().Add(2*time.Second))

	if location != "https://archive.ph/slow1" {
		t.Errorf("Expected the new tab location despite the settle failure, got %q", location)
	}
	if resolved != Page(newTab) {
		t.Error("Expected the new tab as the resolved page")
	}
}

func TestRaceNewTabUnreadableLocationFails(t *testing.T) {
	config := testConfig()
	newTab := &fakePage{locErr: errors.New("target detached")}
	page := &fakePage{}
	session := &fakeSession{active: page, newPage: newTab}

	race := &ResultRace{config: config}
	location, resolved := race.Race(context.Background(), session, page, "https://archive.ph/", time.Now().Add(2*time.Second))

	if location != "" {
		t.Errorf("Expected no location when the new tab cannot be read, got %q", location)
	}
	if resolved != Page(newTab) {
		t.Error("Expected the new tab as the resolved page even without a location")
	}
}

func TestRaceRespectsCallerCancellation(t *testing.T) {
	config := testConfig()
	page := &fakePage{}
	session := &fakeSession{active: page}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	race := &ResultRace{config: config}
	start := time.Now()
	location, _ := race.Race(ctx, session, page, "https://archive.ph/", time.Now().Add(10*time.Second))

	if location != "" {
		t.Errorf("Expected no location after cancellation, got %q", location)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Expected cancellation to end the race promptly, took %v", elapsed)
	}
}
