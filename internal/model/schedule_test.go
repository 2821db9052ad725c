package model

import (
	"testing"
	"time"
)

func TestParseDailyTime(t *testing.T) {
	got, err := ParseDailyTime("20:00")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got.Hour != 20 || got.Minute != 0 || got.String() != "20:00" {
		t.Fatalf("unexpected daily time: %+v", got)
	}

	for _, bad := range []string{"", "8pm", "24:00", "12:60", "1:2:3"} {
		if _, err := ParseDailyTime(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestDailyTimeNextAfter(t *testing.T) {
	at := DailyTime{Hour: 20}
	loc := time.FixedZone("test", 2*60*60)

	cases := []struct {
		name string
		from time.Time
		want string
	}{
		{"before today", time.Date(2026, 2, 9, 9, 15, 0, 0, loc), "2026-02-09 20:00"},
		{"exactly at time", time.Date(2026, 2, 9, 20, 0, 0, 0, loc), "2026-02-10 20:00"},
		{"after time", time.Date(2026, 2, 9, 22, 30, 0, 0, loc), "2026-02-10 20:00"},
		{"month rollover", time.Date(2026, 2, 28, 21, 0, 0, 0, loc), "2026-03-01 20:00"},
	}
	for _, tc := range cases {
		got := at.NextAfter(tc.from)
		if got.Format("2006-01-02 15:04") != tc.want {
			t.Fatalf("%s: got %s, want %s", tc.name, got.Format(time.RFC3339), tc.want)
		}
		if got.Location() != loc {
			t.Fatalf("%s: expected location preserved", tc.name)
		}
	}
}

func TestDayKeyRoundTrip(t *testing.T) {
	day := time.Date(2026, 2, 9, 23, 59, 0, 0, time.UTC)
	key := DayKey(day)
	if key != "2026-02-09" {
		t.Fatalf("unexpected day key: %s", key)
	}
	parsed, err := ParseDay(key)
	if err != nil || parsed.Day() != 9 {
		t.Fatalf("unexpected parse result: %v %v", parsed, err)
	}
}
