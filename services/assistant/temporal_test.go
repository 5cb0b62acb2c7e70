package assistant

import (
	"testing"
	"time"

	"schedulit/models"
)

// Sunday March 1st, 2026, 10:00 in UTC.
var testRef = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestResolveDateRelative(t *testing.T) {
	cases := []struct {
		phrase string
		want   time.Time
	}{
		{"", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"today", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"Tomorrow", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		{"yesterday", time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"2026-03-15", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, err := ResolveDate(c.phrase, testRef, time.UTC)
		if err != nil {
			t.Fatalf("ResolveDate(%q) error: %v", c.phrase, err)
		}
		if !got.Equal(c.want) {
			t.Errorf("ResolveDate(%q) = %v, want %v", c.phrase, got, c.want)
		}
	}
}

func TestResolveDateWeekdays(t *testing.T) {
	// The reference day is a Sunday; every weekday name must resolve to the
	// next occurrence on or after it, so "sunday" is the reference day itself.
	for name, wd := range weekdays {
		got, err := ResolveDate(name, testRef, time.UTC)
		if err != nil {
			t.Fatalf("ResolveDate(%q) error: %v", name, err)
		}
		if got.Weekday() != wd {
			t.Errorf("ResolveDate(%q) landed on %v, want %v", name, got.Weekday(), wd)
		}
		days := int(got.Sub(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)).Hours() / 24)
		if days < 0 || days > 6 {
			t.Errorf("ResolveDate(%q) is %d days out, want within the coming week", name, days)
		}
	}

	got, err := ResolveDate("next friday", testRef, time.UTC)
	if err != nil {
		t.Fatalf("ResolveDate(next friday) error: %v", err)
	}
	if want := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ResolveDate(next friday) = %v, want %v", got, want)
	}
}

func TestResolveDateInvalid(t *testing.T) {
	for _, phrase := range []string{"someday", "03/15/2026", "the 5th"} {
		if _, err := ResolveDate(phrase, testRef, time.UTC); err == nil {
			t.Errorf("ResolveDate(%q) succeeded, want error", phrase)
		}
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		phrase       string
		hour, minute int
	}{
		{"3pm", 15, 0},
		{"3:30pm", 15, 30},
		{"3:30 PM", 15, 30},
		{"12pm", 12, 0},
		{"12am", 0, 0},
		{"12:30am", 0, 30},
		{"15:00", 15, 0},
		{"9", 9, 0},
		{"0:05", 0, 5},
	}
	for _, c := range cases {
		h, m, err := ParseClock(c.phrase)
		if err != nil {
			t.Fatalf("ParseClock(%q) error: %v", c.phrase, err)
		}
		if h != c.hour || m != c.minute {
			t.Errorf("ParseClock(%q) = %d:%02d, want %d:%02d", c.phrase, h, m, c.hour, c.minute)
		}
	}
}

func TestParseClockInvalid(t *testing.T) {
	for _, phrase := range []string{"25:00", "13pm", "0pm", "3:75", "noonish", ""} {
		if _, _, err := ParseClock(phrase); err == nil {
			t.Errorf("ParseClock(%q) succeeded, want error", phrase)
		}
	}
}

func TestResolveWindowDefaults(t *testing.T) {
	// No time defaults to noon; no end or duration defaults to an hour.
	w, err := ResolveWindow("tomorrow", "", "", 0, testRef, time.UTC, time.Hour)
	if err != nil {
		t.Fatalf("ResolveWindow error: %v", err)
	}
	wantStart := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) || !w.End.Equal(wantStart.Add(time.Hour)) {
		t.Errorf("window = [%v, %v], want noon plus an hour", w.Start, w.End)
	}
}

func TestResolveWindowExplicit(t *testing.T) {
	w, err := ResolveWindow("2026-03-01", "3pm", "", 0, testRef, time.UTC, time.Hour)
	if err != nil {
		t.Fatalf("ResolveWindow error: %v", err)
	}
	wantStart := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) || !w.End.Equal(wantStart.Add(time.Hour)) {
		t.Errorf("window = [%v, %v], want [15:00, 16:00)", w.Start, w.End)
	}

	w, err = ResolveWindow("2026-03-01", "3pm", "5pm", 0, testRef, time.UTC, time.Hour)
	if err != nil {
		t.Fatalf("ResolveWindow error: %v", err)
	}
	if !w.End.Equal(time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC)) {
		t.Errorf("explicit end = %v, want 17:00", w.End)
	}

	w, err = ResolveWindow("2026-03-01", "3pm", "", 90, testRef, time.UTC, time.Hour)
	if err != nil {
		t.Fatalf("ResolveWindow error: %v", err)
	}
	if !w.End.Equal(wantStart.Add(90 * time.Minute)) {
		t.Errorf("duration end = %v, want 16:30", w.End)
	}
}

func TestResolveWindowWrapsPastMidnight(t *testing.T) {
	w, err := ResolveWindow("2026-03-01", "11pm", "1am", 0, testRef, time.UTC, time.Hour)
	if err != nil {
		t.Fatalf("ResolveWindow error: %v", err)
	}
	if !w.End.Equal(time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC)) {
		t.Errorf("wrapped end = %v, want 1am next day", w.End)
	}
}

func TestDayWindow(t *testing.T) {
	w, err := DayWindow("tomorrow", testRef, time.UTC)
	if err != nil {
		t.Fatalf("DayWindow error: %v", err)
	}
	if !w.AllDay {
		t.Error("DayWindow should be flagged all-day")
	}
	if !w.Start.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) ||
		!w.End.Equal(time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("window = [%v, %v], want midnight to midnight", w.Start, w.End)
	}
}

func TestFormatDateOrdinals(t *testing.T) {
	cases := []struct {
		day  int
		want string
	}{
		{1, "March 1st, 2026"},
		{2, "March 2nd, 2026"},
		{3, "March 3rd, 2026"},
		{4, "March 4th, 2026"},
		{11, "March 11th, 2026"},
		{12, "March 12th, 2026"},
		{13, "March 13th, 2026"},
		{21, "March 21st, 2026"},
		{22, "March 22nd, 2026"},
		{23, "March 23rd, 2026"},
		{31, "March 31st, 2026"},
	}
	for _, c := range cases {
		got := FormatDate(time.Date(2026, 3, c.day, 0, 0, 0, 0, time.UTC))
		if got != c.want {
			t.Errorf("FormatDate(day %d) = %q, want %q", c.day, got, c.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		hour, minute int
		want         string
	}{
		{0, 0, "12:00 AM"},
		{0, 5, "12:05 AM"},
		{9, 30, "9:30 AM"},
		{12, 0, "12:00 PM"},
		{13, 30, "1:30 PM"},
		{23, 59, "11:59 PM"},
	}
	for _, c := range cases {
		got := FormatClock(time.Date(2026, 3, 1, c.hour, c.minute, 0, 0, time.UTC))
		if got != c.want {
			t.Errorf("FormatClock(%02d:%02d) = %q, want %q", c.hour, c.minute, got, c.want)
		}
	}
}

func TestFormatTimeRange(t *testing.T) {
	ev := models.CandidateEvent{
		Start: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC),
	}
	if got := FormatTimeRange(ev); got != "12:00 PM - 1:00 PM" {
		t.Errorf("FormatTimeRange = %q", got)
	}
	ev.AllDay = true
	if got := FormatTimeRange(ev); got != "All day" {
		t.Errorf("all-day FormatTimeRange = %q", got)
	}
}
