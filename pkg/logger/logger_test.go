package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestGetLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := getLogLevel(in); got != want {
			t.Fatalf("getLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLogReservationSubmittedJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info", true)

	l.LogReservationSubmitted(context.Background(), "r-1", "g-1", "u-1", 330)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "Reservation Submitted" || entry["reservation_id"] != "r-1" {
		t.Fatalf("entry = %v", entry)
	}
	if entry["total_price"].(float64) != 330 {
		t.Fatalf("total_price = %v", entry["total_price"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "error", false)

	l.LogDegraded(context.Background(), "reviews", errors.New("timeout"))
	if buf.Len() != 0 {
		t.Fatalf("warn written at error level: %s", buf.String())
	}

	l.LogCatalogUnavailable(context.Background(), "fetch_services", errors.New("db down"))
	if !strings.Contains(buf.String(), "Catalog Unavailable") {
		t.Fatalf("error entry missing: %s", buf.String())
	}
}
