package calendar

import (
	"context"
	"time"

	"schedulit/models"
	"schedulit/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
)

const (
	primaryCalendar = "primary"
	tzCachePrefix   = "caltz:"
	tzCacheTTL      = 12 * time.Hour
	allDayLayout    = "2006-01-02"
)

// googleGateway implements Gateway on top of the Google Calendar v3 API.
type googleGateway struct {
	svc    *gcal.Service
	userID string
	cache  *redis.Client
}

// Timezone returns the user's calendar timezone, cached in Redis so repeated
// commands don't hit the settings endpoint every time.
func (g *googleGateway) Timezone(ctx context.Context) (string, error) {
	key := tzCachePrefix + g.userID
	if g.cache != nil {
		if tz, err := g.cache.Get(ctx, key).Result(); err == nil && tz != "" {
			return tz, nil
		}
	}

	setting, err := g.svc.Settings.Get("timezone").Context(ctx).Do()
	if err != nil {
		// Fail soft to a fixed zone rather than refusing the command.
		utils.GetLogger().Warn("failed to fetch calendar timezone, falling back",
			zap.String("userID", g.userID), zap.Error(err))
		return "America/Los_Angeles", nil
	}

	if g.cache != nil {
		if err := g.cache.Set(ctx, key, setting.Value, tzCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache calendar timezone", zap.Error(err))
		}
	}
	return setting.Value, nil
}

// ListEvents returns all events overlapping the window, recurring events
// expanded, ordered by start time.
func (g *googleGateway) ListEvents(ctx context.Context, window models.TimeWindow) ([]models.CandidateEvent, error) {
	call := g.svc.Events.List(primaryCalendar).
		TimeMin(window.Start.Format(time.RFC3339)).
		TimeMax(window.End.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)

	res, err := call.Do()
	if err != nil {
		return nil, gatewayErr("list", err)
	}

	loc := window.Start.Location()
	events := make([]models.CandidateEvent, 0, len(res.Items))
	for _, item := range res.Items {
		ev, ok := toCandidate(item, loc)
		if !ok {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// CreateEvent inserts a new event on the primary calendar and returns its ID.
func (g *googleGateway) CreateEvent(ctx context.Context, title string, window models.TimeWindow) (string, error) {
	tz, err := g.Timezone(ctx)
	if err != nil {
		return "", gatewayErr("create", err)
	}

	event := &gcal.Event{
		Summary: title,
		Start:   &gcal.EventDateTime{DateTime: window.Start.Format(time.RFC3339), TimeZone: tz},
		End:     &gcal.EventDateTime{DateTime: window.End.Format(time.RFC3339), TimeZone: tz},
	}
	created, err := g.svc.Events.Insert(primaryCalendar, event).Context(ctx).Do()
	if err != nil {
		return "", gatewayErr("create", err)
	}
	return created.Id, nil
}

// DeleteEvent removes an event by ID.
func (g *googleGateway) DeleteEvent(ctx context.Context, eventID string) error {
	if err := g.svc.Events.Delete(primaryCalendar, eventID).Context(ctx).Do(); err != nil {
		return gatewayErr("delete", err)
	}
	return nil
}

// PatchEvent rewrites an event's start and end.
func (g *googleGateway) PatchEvent(ctx context.Context, eventID string, window models.TimeWindow) error {
	tz, err := g.Timezone(ctx)
	if err != nil {
		return gatewayErr("patch", err)
	}

	patch := &gcal.Event{
		Start: &gcal.EventDateTime{DateTime: window.Start.Format(time.RFC3339), TimeZone: tz},
		End:   &gcal.EventDateTime{DateTime: window.End.Format(time.RFC3339), TimeZone: tz},
	}
	if _, err := g.svc.Events.Patch(primaryCalendar, eventID, patch).Context(ctx).Do(); err != nil {
		return gatewayErr("patch", err)
	}
	return nil
}

// toCandidate maps an API event to a CandidateEvent. All-day events carry a
// plain date instead of a dateTime; those are anchored to midnight in loc.
func toCandidate(item *gcal.Event, loc *time.Location) (models.CandidateEvent, bool) {
	ev := models.CandidateEvent{ID: item.Id, Title: item.Summary}
	if ev.Title == "" {
		ev.Title = "Untitled"
	}

	switch {
	case item.Start != nil && item.Start.DateTime != "":
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return ev, false
		}
		ev.Start = start.In(loc)
	case item.Start != nil && item.Start.Date != "":
		start, err := time.ParseInLocation(allDayLayout, item.Start.Date, loc)
		if err != nil {
			return ev, false
		}
		ev.Start = start
		ev.AllDay = true
	default:
		return ev, false
	}

	if item.End != nil {
		if item.End.DateTime != "" {
			if end, err := time.Parse(time.RFC3339, item.End.DateTime); err == nil {
				ev.End = end.In(loc)
			}
		} else if item.End.Date != "" {
			if end, err := time.ParseInLocation(allDayLayout, item.End.Date, loc); err == nil {
				ev.End = end
			}
		}
	}
	if ev.End.IsZero() {
		ev.End = ev.Start
	}
	return ev, true
}
