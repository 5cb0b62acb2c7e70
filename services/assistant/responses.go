package assistant

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"schedulit/models"
	"schedulit/services/calendar"
)

// Conversational phrasing for every outcome of a command. Nothing technical
// leaks to the user; errors get an apology, not a stack trace.

func respCreated(title string, start time.Time) string {
	return fmt.Sprintf("✓ Done! '%s' scheduled for %s at %s", title, FormatDate(start), FormatClock(start))
}

func respDeleted(title string, day time.Time, hasDay bool) string {
	if hasDay {
		return fmt.Sprintf("✓ Done! '%s' on %s has been cancelled", title, FormatDate(day))
	}
	return fmt.Sprintf("✓ Done! '%s' has been cancelled", title)
}

func respMoved(title string, newStart time.Time) string {
	return fmt.Sprintf("✓ Done! '%s' moved to %s at %s", title, FormatDate(newStart), FormatClock(newStart))
}

func respChoices(matches []models.CandidateEvent) string {
	var sb strings.Builder
	sb.WriteString("I found multiple matches - which one did you mean?\n\n")
	for i, m := range matches {
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, m.Title, FormatTimeRange(m))
	}
	sb.WriteString("\nType 1, 2, 3... to select, or type a new command to cancel.")
	return sb.String()
}

func respList(events []models.CandidateEvent, dayLabel string) string {
	if len(events) == 0 {
		return fmt.Sprintf("You have nothing scheduled for %s", dayLabel)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Here's what you have on %s:\n\n", dayLabel)
	for _, ev := range events {
		fmt.Fprintf(&sb, "• %s - %s\n", FormatTimeRange(ev), ev.Title)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func respNotFound(title string, timeHint string, day time.Time, hasDay bool) string {
	where := ""
	if timeHint != "" {
		if h, m, err := ParseClock(timeHint); err == nil {
			where = " at " + FormatClock(time.Date(2000, 1, 1, h, m, 0, 0, time.UTC))
		}
	}
	if hasDay {
		where += " on " + FormatDate(day)
	}

	if title != "" {
		return fmt.Sprintf("Sorry, I couldn't find '%s'%s", title, where)
	}
	if where != "" {
		return "You have nothing scheduled" + where
	}
	return "Sorry, I couldn't find any matching events"
}

// conversationalError maps a pipeline failure to a user-readable sentence.
func conversationalError(err error) string {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case CodeInvalidDate:
			return "Sorry, I couldn't make sense of that date. Try something like \"tomorrow\" or \"2026-03-15\"."
		case CodeInvalidTime:
			return "Sorry, I couldn't make sense of that time. Try something like \"3pm\" or \"15:00\"."
		case CodeUnrecognized, CodeExtractionFailed:
			return "Sorry, I didn't understand that. Try something like \"schedule a meeting tomorrow at 3pm\"."
		case CodeEventNotFound:
			return "Sorry, I couldn't find that event."
		}
	}

	var gwErr *calendar.GatewayError
	if errors.As(err, &gwErr) {
		return "Sorry, I couldn't reach your calendar right now. Please try again in a moment."
	}
	return "Sorry, something went wrong. Please try again."
}

// capitalizeTitle title-cases an event name the way the calendar shows it.
func capitalizeTitle(title string) string {
	words := strings.Fields(title)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 && r[0] >= 'a' && r[0] <= 'z' {
			r[0] = r[0] - ('a' - 'A')
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
