package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayLayout, s)
}

// DailyTime is a wall-clock time of day in the caller's location.
type DailyTime struct {
	Hour   int
	Minute int
}

func ParseDailyTime(raw string) (DailyTime, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 {
		return DailyTime{}, fmt.Errorf("model: invalid time %q, expected HH:MM", raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return DailyTime{}, fmt.Errorf("model: invalid hour in %q", raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return DailyTime{}, fmt.Errorf("model: invalid minute in %q", raw)
	}
	return DailyTime{Hour: hour, Minute: minute}, nil
}

func (d DailyTime) String() string {
	return fmt.Sprintf("%02d:%02d", d.Hour, d.Minute)
}

// NextAfter returns today's occurrence in from's location, or tomorrow's when
// today's has already been reached.
func (d DailyTime) NextAfter(from time.Time) time.Time {
	y, m, day := from.Date()
	candidate := time.Date(y, m, day, d.Hour, d.Minute, 0, 0, from.Location())
	if !from.Before(candidate) {
		candidate = time.Date(y, m, day+1, d.Hour, d.Minute, 0, 0, from.Location())
	}
	return candidate
}
