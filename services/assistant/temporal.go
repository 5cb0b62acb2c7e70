package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"schedulit/models"
)

// Natural-language date and time resolution. Relative words resolve against
// the reference instant in the user's calendar timezone; absolute dates must
// be YYYY-MM-DD. Missing times default to noon, missing durations to the
// configured default (60 minutes out of the box).

const isoDateLayout = "2006-01-02"

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

var clockRe = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)

// ResolveDate turns a date phrase into midnight of the target day in loc.
// An empty phrase means today.
func ResolveDate(phrase string, ref time.Time, loc *time.Location) (time.Time, error) {
	ref = ref.In(loc)
	today := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)

	p := strings.ToLower(strings.TrimSpace(phrase))
	p = strings.TrimPrefix(p, "next ")

	switch p {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if wd, ok := weekdays[p]; ok {
		// Next occurrence on or after today; today counts when it matches.
		days := (int(wd) - int(today.Weekday()) + 7) % 7
		return today.AddDate(0, 0, days), nil
	}

	parsed, err := time.ParseInLocation(isoDateLayout, p, loc)
	if err != nil {
		return time.Time{}, newInvalidDateError(phrase)
	}
	return parsed, nil
}

// ParseClock parses "3pm", "3:30pm", "15:00" or "9" into an hour and minute.
func ParseClock(phrase string) (int, int, error) {
	p := strings.ToLower(strings.TrimSpace(phrase))
	m := clockRe.FindStringSubmatch(p)
	if m == nil {
		return 0, 0, newInvalidTimeError(phrase)
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if minute > 59 {
		return 0, 0, newInvalidTimeError(phrase)
	}

	switch m[3] {
	case "am":
		if hour < 1 || hour > 12 {
			return 0, 0, newInvalidTimeError(phrase)
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return 0, 0, newInvalidTimeError(phrase)
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour > 23 {
			return 0, 0, newInvalidTimeError(phrase)
		}
	}
	return hour, minute, nil
}

// ResolveWindow builds the concrete window a command operates on. The end is
// taken from endPhrase when given, then from durationMinutes, then from the
// default duration.
func ResolveWindow(datePhrase, timePhrase, endPhrase string, durationMinutes int, ref time.Time, loc *time.Location, defaultDur time.Duration) (models.TimeWindow, error) {
	day, err := ResolveDate(datePhrase, ref, loc)
	if err != nil {
		return models.TimeWindow{}, err
	}

	hour, minute := 12, 0
	if strings.TrimSpace(timePhrase) != "" {
		hour, minute, err = ParseClock(timePhrase)
		if err != nil {
			return models.TimeWindow{}, err
		}
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)

	var end time.Time
	switch {
	case strings.TrimSpace(endPhrase) != "":
		eh, em, err := ParseClock(endPhrase)
		if err != nil {
			return models.TimeWindow{}, err
		}
		end = time.Date(day.Year(), day.Month(), day.Day(), eh, em, 0, 0, loc)
		if !end.After(start) {
			// "11pm to 1am" wraps past midnight.
			end = end.AddDate(0, 0, 1)
		}
	case durationMinutes > 0:
		end = start.Add(time.Duration(durationMinutes) * time.Minute)
	default:
		end = start.Add(defaultDur)
	}

	return models.TimeWindow{Start: start, End: end}, nil
}

// DayWindow is the midnight-to-midnight window of the day the phrase names.
func DayWindow(datePhrase string, ref time.Time, loc *time.Location) (models.TimeWindow, error) {
	day, err := ResolveDate(datePhrase, ref, loc)
	if err != nil {
		return models.TimeWindow{}, err
	}
	return models.TimeWindow{Start: day, End: day.AddDate(0, 0, 1), AllDay: true}, nil
}

// RangeWindow spans from the reference instant forward by the given number of days.
func RangeWindow(ref time.Time, loc *time.Location, days int) models.TimeWindow {
	start := ref.In(loc)
	return models.TimeWindow{Start: start, End: start.AddDate(0, 0, days)}
}

// FormatDate renders an instant as "March 1st, 2026".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s %d%s, %d", t.Month().String(), t.Day(), ordinalSuffix(t.Day()), t.Year())
}

// FormatClock renders an instant's time of day as "3:00 PM".
func FormatClock(t time.Time) string {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := "AM"
	if t.Hour() >= 12 {
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), meridiem)
}

// FormatTimeRange renders an event's span as "12:00 PM - 1:00 PM", or
// "All day" for all-day events.
func FormatTimeRange(ev models.CandidateEvent) string {
	if ev.AllDay {
		return "All day"
	}
	return FormatClock(ev.Start) + " - " + FormatClock(ev.End)
}

// ordinalSuffix returns st/nd/rd/th; the teens are always "th".
func ordinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
