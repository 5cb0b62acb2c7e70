package assistant

import (
	"context"
	"testing"
	"time"

	"schedulit/models"
)

func day(hour, minute int) time.Time {
	return time.Date(2026, 3, 1, hour, minute, 0, 0, time.UTC)
}

func matcherGateway() *fakeGateway {
	return &fakeGateway{
		events: []models.CandidateEvent{
			{ID: "ev-3", Title: "Project Review", Start: day(16, 0), End: day(17, 0)},
			{ID: "ev-1", Title: "Daily Standup", Start: day(9, 30), End: day(9, 45)},
			{ID: "ev-2", Title: "Team Meeting", Start: day(14, 0), End: day(15, 0)},
			{ID: "ev-4", Title: "Conference", Start: day(0, 0), End: day(0, 0).AddDate(0, 0, 1), AllDay: true},
		},
	}
}

func TestFindMatchesByTitle(t *testing.T) {
	gw := matcherGateway()
	window := models.TimeWindow{Start: day(0, 0), End: day(0, 0).AddDate(0, 0, 1)}

	matches, err := FindMatches(context.Background(), gw, window, "standup", "")
	if err != nil {
		t.Fatalf("FindMatches error: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != "ev-1" {
		t.Fatalf("matches = %+v, want just the standup", matches)
	}

	// The hint can be wordier than the title too.
	matches, err = FindMatches(context.Background(), gw, window, "standup meeting", "")
	if err != nil {
		t.Fatalf("FindMatches error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches for %q, want 2 (standup and team meeting)", len(matches), "standup meeting")
	}
}

func TestFindMatchesNoHit(t *testing.T) {
	gw := matcherGateway()
	window := models.TimeWindow{Start: day(0, 0), End: day(0, 0).AddDate(0, 0, 1)}

	matches, err := FindMatches(context.Background(), gw, window, "zzz", "")
	if err != nil {
		t.Fatalf("FindMatches error: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("matches = %+v, want none", matches)
	}
}

func TestFindMatchesEmptyHintMatchesAll(t *testing.T) {
	gw := matcherGateway()
	window := models.TimeWindow{Start: day(0, 0), End: day(0, 0).AddDate(0, 0, 1)}

	matches, err := FindMatches(context.Background(), gw, window, "", "")
	if err != nil {
		t.Fatalf("FindMatches error: %v", err)
	}
	if len(matches) != 4 {
		t.Fatalf("got %d matches for the empty hint, want all 4", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Start.Before(matches[i-1].Start) {
			t.Fatalf("matches out of order at %d: %v before %v", i, matches[i].Start, matches[i-1].Start)
		}
	}
}

func TestFindMatchesExactTime(t *testing.T) {
	gw := matcherGateway()
	window := models.TimeWindow{Start: day(0, 0), End: day(0, 0).AddDate(0, 0, 1)}

	// An explicit time pins the start; the all-day event never matches a time.
	matches, err := FindMatches(context.Background(), gw, window, "", "2pm")
	if err != nil {
		t.Fatalf("FindMatches error: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != "ev-2" {
		t.Fatalf("matches = %+v, want just the 2pm meeting", matches)
	}

	matches, err = FindMatches(context.Background(), gw, window, "meeting", "6pm")
	if err != nil {
		t.Fatalf("FindMatches error: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("matches = %+v, want none at 6pm", matches)
	}
}

func TestFindMatchesBadTimeHint(t *testing.T) {
	gw := matcherGateway()
	window := models.TimeWindow{Start: day(0, 0), End: day(0, 0).AddDate(0, 0, 1)}

	if _, err := FindMatches(context.Background(), gw, window, "", "25:99"); err == nil {
		t.Fatal("FindMatches with a bad time hint succeeded, want error")
	}
}
