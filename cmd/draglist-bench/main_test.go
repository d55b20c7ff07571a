package main

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/draglist/pkg/protocol"
)

func TestParseConfig(t *testing.T) {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	cfg, err := parseConfig(fs, []string{"-profile", "fast", "-clients", "3", "-duration", "2s", "-mem-limit", "1GiB"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Profile != "fast" || cfg.Clients != 3 || cfg.Duration != 2*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ListSize != profiles["fast"].ListSize {
		t.Errorf("ListSize = %d", cfg.ListSize)
	}
	if cfg.MemLimitBytes != gib {
		t.Errorf("MemLimitBytes = %d, want %d", cfg.MemLimitBytes, gib)
	}
	if cfg.EventTimeout != 5*time.Second {
		t.Errorf("EventTimeout = %v, want 5s", cfg.EventTimeout)
	}
	if cfg.JSONOutput != "-" {
		t.Errorf("JSONOutput = %q", cfg.JSONOutput)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := [][]string{
		{"-profile", "huge"},
		{"-clients", "0"},
		{"-duration", "soon"},
		{"-rps", "0"},
		{"-list", "1"},
		{"-mem-limit", "lots"},
	}
	for _, args := range tests {
		fs := flag.NewFlagSet("bench", flag.ContinueOnError)
		if _, err := parseConfig(fs, args); err == nil {
			t.Errorf("parseConfig(%v) should fail", args)
		}
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"512", 512},
		{"2kb", 2000},
		{"1.5KiB", 1536},
		{"3MiB", 3 * 1024 * 1024},
		{"1GB", 1e9},
	}
	for _, tt := range tests {
		got, err := parseBytes(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("parseBytes(%q) = %d, %v, want %d", tt.in, got, err, tt.want)
		}
	}
	for _, bad := range []string{"", "GiB", "12parsecs"} {
		if _, err := parseBytes(bad); err == nil {
			t.Errorf("parseBytes(%q) should fail", bad)
		}
	}
}

func TestPercentile(t *testing.T) {
	sorted := []time.Duration{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	tests := []struct {
		p    float64
		want time.Duration
	}{
		{0, 1},
		{0.5, 5},
		{0.95, 10},
		{1, 10},
	}
	for _, tt := range tests {
		if got := percentile(sorted, tt.p); got != tt.want {
			t.Errorf("percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if percentile(nil, 0.5) != 0 {
		t.Error("percentile(nil) should be 0")
	}
}

func TestGestureHID(t *testing.T) {
	tests := []struct {
		et   protocol.EventType
		want string
	}{
		{protocol.EventDragStart, "h4"},
		{protocol.EventDragEnter, "h2"},
		{protocol.EventDrop, "h1"},
		{protocol.EventDragEnd, "h4"},
	}
	for _, tt := range tests {
		if got := gestureHID(tt.et, 2, 0); got != tt.want {
			t.Errorf("gestureHID(%v) = %q, want %q", tt.et, got, tt.want)
		}
	}
}

func TestRun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping benchmark run in short mode")
	}

	cfg := benchConfig{
		Profile:      "test",
		Clients:      3,
		Duration:     500 * time.Millisecond,
		RPS:          20,
		ListSize:     5,
		JSONOutput:   "-",
		EventTimeout: 2 * time.Second,
	}
	report, err := run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if report.Errors.TotalErrors != 0 {
		t.Fatalf("errors = %+v", report.Errors)
	}
	if report.Throughput.Gestures == 0 {
		t.Fatal("no gestures completed")
	}
	for _, et := range gestureEvents {
		if report.ByEvent[et.DOMName()].Count == 0 {
			t.Errorf("no %s samples", et.DOMName())
		}
	}
	// One replace per client mount plus one per drop.
	if report.Protocol.ReplaceFrames < report.Throughput.Gestures+uint64(cfg.Clients) {
		t.Errorf("ReplaceFrames = %d, gestures = %d", report.Protocol.ReplaceFrames, report.Throughput.Gestures)
	}

	var buf bytes.Buffer
	writeSummary(&buf, report)
	if !strings.Contains(buf.String(), "dragstart") {
		t.Errorf("summary missing per-event latency:\n%s", buf.String())
	}
}
