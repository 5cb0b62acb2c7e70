package assistant

import (
	"context"
	"strings"
	"time"

	"schedulit/models"
	"schedulit/services/calendar"
	"schedulit/utils"

	"go.uber.org/zap"
)

// DefaultAssistantService coordinates the whole resolution pipeline:
// intent extraction, temporal normalization, event matching, the one-round
// disambiguation flow and the final calendar mutation.
//
// Per user it is a two-state machine. With no pending disambiguation a
// message is a fresh command; with one, the message is first offered to the
// disambiguator and either consumes the pending choice or cancels it and
// falls through as a fresh command. Every failure path lands back in the
// no-pending state.
type DefaultAssistantService struct {
	Extractor *IntentExtractor
	Gateways  calendar.Provider
	Disambig  *Disambiguator
	Reminders ReminderScheduler

	// DefaultDuration is applied when a command names no end time or duration.
	DefaultDuration time.Duration

	// Now is the reference clock, overridable in tests.
	Now func() time.Time
}

const searchHorizonDays = 30
const listHorizonDays = 7

func (s *DefaultAssistantService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// HandleMessage processes one utterance for one user.
func (s *DefaultAssistantService) HandleMessage(ctx context.Context, userID, message string) (*models.CommandResult, error) {
	logger := utils.GetLogger()
	message = strings.TrimSpace(message)

	resolution, pending, selected, err := s.Disambig.Resume(ctx, userID, message)
	if err != nil {
		// Session store trouble: log and fall back to treating the message
		// as a fresh command rather than wedging the conversation.
		logger.Warn("pending lookup failed", zap.String("userID", userID), zap.Error(err))
		resolution = ResolutionNotPending
	}

	if resolution == ResolutionSelected {
		return s.applySelection(ctx, userID, pending, selected), nil
	}
	return s.handleCommand(ctx, userID, message), nil
}

// handleCommand runs a fresh utterance through the pipeline.
func (s *DefaultAssistantService) handleCommand(ctx context.Context, userID, message string) *models.CommandResult {
	logger := utils.GetLogger()

	intent, err := s.Extractor.Extract(ctx, message, s.now())
	if err != nil {
		logger.Info("intent extraction failed", zap.String("userID", userID), zap.Error(err))
		return fail(err)
	}
	logger.Debug("intent extracted",
		zap.String("userID", userID),
		zap.String("action", string(intent.Action)),
		zap.Float64("confidence", intent.Confidence))

	gw, err := s.Gateways.ForUser(ctx, userID)
	if err != nil {
		logger.Error("gateway unavailable", zap.String("userID", userID), zap.Error(err))
		return fail(err)
	}

	loc := s.userLocation(ctx, gw)

	switch intent.Action {
	case models.ActionCreate:
		return s.create(ctx, userID, gw, intent, loc)
	case models.ActionDelete, models.ActionMove:
		return s.deleteOrMove(ctx, userID, gw, intent, loc)
	case models.ActionList:
		return s.list(ctx, gw, intent, loc)
	}
	return fail(newUnrecognizedIntentError(string(intent.Action)))
}

func (s *DefaultAssistantService) create(ctx context.Context, userID string, gw calendar.Gateway, intent models.Intent, loc *time.Location) *models.CommandResult {
	window, err := ResolveWindow(intent.Date, intent.Time, intent.EndTime, intent.DurationMinutes, s.now(), loc, s.DefaultDuration)
	if err != nil {
		return fail(err)
	}

	title := capitalizeTitle(intent.Title)
	if title == "" {
		title = "Untitled Event"
	}

	id, err := gw.CreateEvent(ctx, title, window)
	if err != nil {
		return fail(err)
	}

	s.scheduleReminder(ctx, userID, models.CandidateEvent{ID: id, Title: title, Start: window.Start, End: window.End})
	return &models.CommandResult{Message: respCreated(title, window.Start)}
}

func (s *DefaultAssistantService) deleteOrMove(ctx context.Context, userID string, gw calendar.Gateway, intent models.Intent, loc *time.Location) *models.CommandResult {
	window, hasDay, err := s.searchWindow(intent.Date, loc, searchHorizonDays)
	if err != nil {
		return fail(err)
	}

	matches, err := FindMatches(ctx, gw, window, intent.Title, intent.Time)
	if err != nil {
		return fail(err)
	}

	switch len(matches) {
	case 0:
		return &models.CommandResult{Message: respNotFound(intent.Title, intent.Time, window.Start, hasDay)}
	case 1:
		return s.applyMutation(ctx, userID, gw, intent, matches[0], loc, hasDay)
	default:
		if err := s.Disambig.Begin(ctx, userID, intent, matches); err != nil {
			utils.GetLogger().Error("failed to store pending disambiguation", zap.Error(err))
			return fail(err)
		}
		return &models.CommandResult{
			Message:     respChoices(matches),
			NeedsChoice: true,
			Matches:     matches,
		}
	}
}

func (s *DefaultAssistantService) list(ctx context.Context, gw calendar.Gateway, intent models.Intent, loc *time.Location) *models.CommandResult {
	window, hasDay, err := s.searchWindow(intent.Date, loc, listHorizonDays)
	if err != nil {
		return fail(err)
	}

	// Listing never filters by title; the whole window is the answer.
	events, err := FindMatches(ctx, gw, window, "", intent.Time)
	if err != nil {
		return fail(err)
	}

	dayLabel := "the next 7 days"
	if hasDay {
		dayLabel = FormatDate(window.Start)
	}
	return &models.CommandResult{Message: respList(events, dayLabel), Events: events}
}

// applySelection finishes a delete/move whose target the user just picked
// from a numbered list. The stored intent is applied directly; matching is
// never re-entered.
func (s *DefaultAssistantService) applySelection(ctx context.Context, userID string, pending *models.PendingDisambiguation, selected *models.CandidateEvent) *models.CommandResult {
	gw, err := s.Gateways.ForUser(ctx, userID)
	if err != nil {
		return fail(err)
	}
	loc := s.userLocation(ctx, gw)
	return s.applyMutation(ctx, userID, gw, pending.Intent, *selected, loc, pending.Intent.Date != "")
}

// applyMutation performs the delete or move on one confirmed event.
func (s *DefaultAssistantService) applyMutation(ctx context.Context, userID string, gw calendar.Gateway, intent models.Intent, ev models.CandidateEvent, loc *time.Location, hasDay bool) *models.CommandResult {
	switch intent.Action {
	case models.ActionDelete:
		if err := gw.DeleteEvent(ctx, ev.ID); err != nil {
			return fail(err)
		}
		return &models.CommandResult{Message: respDeleted(ev.Title, ev.Start.In(loc), hasDay)}

	case models.ActionMove:
		window, err := s.moveWindow(intent, ev, loc)
		if err != nil {
			return fail(err)
		}
		if err := gw.PatchEvent(ctx, ev.ID, window); err != nil {
			return fail(err)
		}
		s.scheduleReminder(ctx, userID, models.CandidateEvent{ID: ev.ID, Title: ev.Title, Start: window.Start, End: window.End})
		return &models.CommandResult{Message: respMoved(ev.Title, window.Start)}
	}
	return fail(newUnrecognizedIntentError(string(intent.Action)))
}

// moveWindow resolves where a moved event lands. Without an explicit new end
// time the original duration is preserved; all-day or zero-length sources
// fall back to the default duration.
func (s *DefaultAssistantService) moveWindow(intent models.Intent, ev models.CandidateEvent, loc *time.Location) (models.TimeWindow, error) {
	datePhrase := intent.NewDate
	if datePhrase == "" {
		datePhrase = ev.Start.In(loc).Format(isoDateLayout)
	}

	if intent.NewEndTime != "" {
		return ResolveWindow(datePhrase, intent.NewTime, intent.NewEndTime, 0, s.now(), loc, s.DefaultDuration)
	}

	durationMinutes := 0
	if !ev.AllDay {
		if d := ev.End.Sub(ev.Start); d > 0 {
			durationMinutes = int(d.Minutes())
		}
	}
	return ResolveWindow(datePhrase, intent.NewTime, "", durationMinutes, s.now(), loc, s.DefaultDuration)
}

// searchWindow is the window delete/move/list look inside: the named day,
// or the coming horizon when the command named none.
func (s *DefaultAssistantService) searchWindow(datePhrase string, loc *time.Location, horizonDays int) (models.TimeWindow, bool, error) {
	if strings.TrimSpace(datePhrase) == "" {
		return RangeWindow(s.now(), loc, horizonDays), false, nil
	}
	window, err := DayWindow(datePhrase, s.now(), loc)
	if err != nil {
		return models.TimeWindow{}, false, err
	}
	return window, true, nil
}

// userLocation loads the user's calendar timezone, falling back to the
// server's zone if it cannot be resolved.
func (s *DefaultAssistantService) userLocation(ctx context.Context, gw calendar.Gateway) *time.Location {
	tz, err := gw.Timezone(ctx)
	if err != nil {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		utils.GetLogger().Warn("unknown calendar timezone", zap.String("tz", tz), zap.Error(err))
		return time.Local
	}
	return loc
}

func (s *DefaultAssistantService) scheduleReminder(ctx context.Context, userID string, ev models.CandidateEvent) {
	if s.Reminders == nil {
		return
	}
	if err := s.Reminders.ScheduleEventReminder(ctx, userID, ev); err != nil {
		utils.GetLogger().Warn("failed to schedule reminder",
			zap.String("userID", userID), zap.String("eventID", ev.ID), zap.Error(err))
	}
}

// fail folds any pipeline error into a conversational reply.
func fail(err error) *models.CommandResult {
	return &models.CommandResult{Message: conversationalError(err)}
}
