package main

import (
	"errors"
	"testing"
)

func TestChallengeGateNoIndicatorIsIdempotent(t *testing.T) {
	config := testConfig()
	operator := &fakeOperator{}
	page := &fakePage{content: "<html><body>regular page</body></html>"}

	gate := NewChallengeGate(config, operator)

	gate.Check(page)
	gate.Check(page)

	if len(operator.prompts) != 0 {
		t.Errorf("Expected no operator prompts on a clean page, got %d", len(operator.prompts))
	}
}

func TestChallengeGateIframeIndicator(t *testing.T) {
	config := testConfig()
	operator := &fakeOperator{}
	page := &fakePage{
		elements: map[string]*fakeElement{
			"iframe[src*='captcha']": {},
		},
	}

	gate := NewChallengeGate(config, operator)
	gate.Check(page)

	if len(operator.prompts) != 1 {
		t.Fatalf("Expected 1 operator prompt, got %d", len(operator.prompts))
	}
}

func TestChallengeGateContentIndicator(t *testing.T) {
	config := testConfig()
	operator := &fakeOperator{}
	page := &fakePage{content: "<p>Please VERIFY you are HUMAN to continue</p>"}

	gate := NewChallengeGate(config, operator)
	gate.Check(page)

	if len(operator.prompts) != 1 {
		t.Errorf("Expected content fragment to trigger the gate, got %d prompts", len(operator.prompts))
	}
}

func TestChallengeGateProbeErrorsSwallowed(t *testing.T) {
	config := testConfig()
	operator := &fakeOperator{}
	page := &fakePage{contentErr: errors.New("page is navigating")}

	gate := NewChallengeGate(config, operator)

	// A failing probe counts as "not detected", never as an abort.
	gate.Check(page)

	if len(operator.prompts) != 0 {
		t.Errorf("Expected no prompt when probes fail, got %d", len(operator.prompts))
	}
}

func TestChallengeGateOperatorErrorReturns(t *testing.T) {
	config := testConfig()
	operator := &fakeOperator{err: errors.New("stdin closed")}
	page := &fakePage{
		elements: map[string]*fakeElement{
			"div#cf-challenge-running": {},
		},
	}

	gate := NewChallengeGate(config, operator)

	// Must not panic or hang when the input stream is gone.
	gate.Check(page)

	if len(operator.prompts) != 1 {
		t.Errorf("Expected the gate to still have prompted once, got %d", len(operator.prompts))
	}
}

func TestContainsAnyFold(t *testing.T) {
	tests := []struct {
		s         string
		fragments []string
		expected  bool
	}{
		{"Hello World", []string{"world"}, true},
		{"Hello World", []string{"WORLD"}, true},
		{"Hello World", []string{"foo"}, false},
		{"Hello World", []string{"foo", "world"}, true},
		{"Hello World", []string{"foo", "bar"}, false},
		{"", []string{"test"}, false},
		{"test", []string{""}, false},
		{"Checking your browser before accessing", []string{"checking your browser"}, true},
	}

	for _, test := range tests {
		result := containsAnyFold(test.s, test.fragments...)
		if result != test.expected {
			t.Errorf("containsAnyFold(%q, %v) = %v, expected %v", test.s, test.fragments, result, test.expected)
		}
	}
}
