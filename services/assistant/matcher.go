package assistant

import (
	"context"
	"sort"
	"strings"

	"schedulit/models"
	"schedulit/services/calendar"
)

// FindMatches lists the window's events and narrows them to the ones a fuzzy
// title hint and optional exact start time describe. No match is an empty
// slice, never an error.
func FindMatches(ctx context.Context, gw calendar.Gateway, window models.TimeWindow, titleHint, timeHint string) ([]models.CandidateEvent, error) {
	events, err := gw.ListEvents(ctx, window)
	if err != nil {
		return nil, err
	}

	wantTime := false
	var wantHour, wantMinute int
	if strings.TrimSpace(timeHint) != "" {
		wantHour, wantMinute, err = ParseClock(timeHint)
		if err != nil {
			return nil, err
		}
		wantTime = true
	}

	matches := make([]models.CandidateEvent, 0, len(events))
	for _, ev := range events {
		if !titleMatches(titleHint, ev.Title) {
			continue
		}
		if wantTime {
			// An explicit time in the command pins the event's start exactly,
			// so "delete my meeting at 6pm" never touches the 3pm one.
			if ev.AllDay || ev.Start.Hour() != wantHour || ev.Start.Minute() != wantMinute {
				continue
			}
		}
		matches = append(matches, ev)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Start.Before(matches[j].Start)
	})
	return matches, nil
}

// titleMatches is case-insensitive, word-level containment in both
// directions: "standup" matches "Daily Standup" and "standup meeting"
// matches "Standup". An empty hint matches everything.
func titleMatches(hint, title string) bool {
	hint = strings.TrimSpace(strings.ToLower(hint))
	if hint == "" {
		return true
	}
	title = strings.ToLower(title)

	for _, hw := range strings.Fields(hint) {
		for _, tw := range strings.Fields(title) {
			if strings.Contains(tw, hw) || strings.Contains(hw, tw) {
				return true
			}
		}
	}
	return false
}
