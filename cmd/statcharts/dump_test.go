package main

import (
	"bytes"
	"strings"
	"testing"

	"git.sr.ht/~whereswaldon/statcharts/backend"
	"git.sr.ht/~whereswaldon/statcharts/ui"
)

func TestDumpDemos(t *testing.T) {
	sources, err := demoSources()
	if err != nil {
		t.Fatalf("expected demo datasets, got: %v", err)
	}
	if len(sources) != 4 {
		t.Fatalf("expected 4 demo datasets, got %d", len(sources))
	}
	var buf bytes.Buffer
	if err := dumpAll(&buf, sources, ui.Options{}); err != nil {
		t.Fatalf("expected dump to succeed, got: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"== languages.csv (pie) Preferred Programming Languages",
		"== platforms.csv (bar) Platforms",
		"== quarters.csv (bar) Quarterly Results",
		"== crypto.csv (line) Crypto Portfolio",
		"Kotlin",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestDumpReportsBadSources(t *testing.T) {
	var buf bytes.Buffer
	err := dumpAll(&buf, []backend.Source{
		backend.BytesSource("bad.csv", []byte("pie\nA,-1\n")),
		backend.BytesSource("empty.csv", nil),
	}, ui.Options{})
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(err.Error(), "empty.csv") {
		t.Errorf("expected the empty source to be named, got %v", err)
	}
	if !strings.Contains(err.Error(), "bad.csv") {
		t.Errorf("expected pie layout of no segments to fail for bad.csv, got %v", err)
	}
}

func TestParseFlags(t *testing.T) {
	if m, err := parseCenterHit("quadrant"); err != nil || m.String() != "quadrant" {
		t.Errorf("expected quadrant, got %v (%v)", m, err)
	}
	if _, err := parseCenterHit("square"); err == nil {
		t.Errorf("expected unknown mode to fail")
	}
	if s, err := parseBarStyle("flat"); err != nil || s.String() != "flat" {
		t.Errorf("expected flat, got %v (%v)", s, err)
	}
}
