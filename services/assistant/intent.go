package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"schedulit/models"
)

// IntentExtractor turns one free-text utterance into a validated Intent by
// way of the language model. The model's output never flows past Extract
// unvalidated.
type IntentExtractor struct {
	LLM LLMClient
}

// rawIntent is the schema the model is asked to emit. Confidence is decoded
// leniently: a missing or malformed value becomes 0 instead of failing the call.
type rawIntent struct {
	Action     string          `json:"action"`
	Title      string          `json:"title"`
	Date       string          `json:"date"`
	Time       string          `json:"time"`
	EndTime    string          `json:"end_time"`
	NewDate    string          `json:"new_date"`
	NewTime    string          `json:"new_time"`
	NewEndTime string          `json:"new_end_time"`
	Confidence json.RawMessage `json:"confidence"`
}

// Extract sends the utterance to the model and validates the reply.
func (e *IntentExtractor) Extract(ctx context.Context, utterance string, ref time.Time) (models.Intent, error) {
	reply, err := e.LLM.Complete(ctx, buildPrompt(utterance, ref))
	if err != nil {
		return models.Intent{}, newExtractionError(fmt.Sprintf("provider call failed: %v", err))
	}

	var raw rawIntent
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &raw); err != nil {
		return models.Intent{}, newExtractionError(fmt.Sprintf("unparseable model reply: %v", err))
	}

	action := models.Action(strings.ToLower(strings.TrimSpace(raw.Action)))
	if !models.ValidAction(action) {
		return models.Intent{}, newUnrecognizedIntentError(raw.Action)
	}

	return models.Intent{
		Action:     action,
		Title:      strings.TrimSpace(raw.Title),
		Date:       normalizeField(raw.Date),
		Time:       normalizeField(raw.Time),
		EndTime:    normalizeField(raw.EndTime),
		NewDate:    normalizeField(raw.NewDate),
		NewTime:    normalizeField(raw.NewTime),
		NewEndTime: normalizeField(raw.NewEndTime),
		Confidence: parseConfidence(raw.Confidence),
	}, nil
}

// normalizeField collapses the model's "null"-ish strings to empty.
func normalizeField(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "null") || strings.EqualFold(v, "none") {
		return ""
	}
	return v
}

// parseConfidence accepts a number or a quoted number, clamped to [0,1].
// Anything else is confidence 0, never a failure of the whole extraction.
func parseConfidence(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		if _, err := fmt.Sscanf(s, "%f", &f); err != nil {
			return 0
		}
	}
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// stripCodeFence removes a ```json ... ``` wrapper if the model added one
// despite being told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// buildPrompt fixes the model's role and output schema, anchored on the
// reference date so relative phrases resolve against the right day.
func buildPrompt(utterance string, ref time.Time) string {
	today := ref.Format("2006-01-02")
	tomorrow := ref.AddDate(0, 0, 1).Format("2006-01-02")

	var sb strings.Builder
	fmt.Fprintf(&sb, `You are a calendar command parser. Today is %s, %s. The current year is %d.

Parse the user's natural language calendar command into JSON. Return ONLY a JSON object, no markdown and no explanations, with this structure:
{
  "action": "create|delete|move|list",
  "title": "event name or description",
  "date": "YYYY-MM-DD",
  "time": "HH:MM in 24-hour format, or null if not specified",
  "end_time": "HH:MM, or null if not specified",
  "new_date": "YYYY-MM-DD for move actions, or null",
  "new_time": "HH:MM for move actions, or null",
  "new_end_time": "HH:MM for move actions, or null",
  "confidence": 0.0 to 1.0
}

Rules:
1. Convert relative dates (tomorrow, next Friday) to YYYY-MM-DD based on today's date (%s).
2. When no year is given, use the current year (%d).
3. Convert 12-hour times to 24-hour format (3pm becomes 15:00).
4. If no time is mentioned, set time to null.
5. Durations become end_time: "2 hour meeting at 3pm" means time 15:00, end_time 17:00. No duration means end_time null.
6. For move actions fill both the original date/time and the new ones.
7. Lower the confidence when the command is ambiguous.

Examples:
Input: "schedule a meeting with John tomorrow at 3pm"
Output: {"action": "create", "title": "meeting with John", "date": "%s", "time": "15:00", "end_time": null, "new_date": null, "new_time": null, "new_end_time": null, "confidence": 0.95}

Input: "cancel my dentist appointment tomorrow"
Output: {"action": "delete", "title": "dentist appointment", "date": "%s", "time": null, "end_time": null, "new_date": null, "new_time": null, "new_end_time": null, "confidence": 0.85}

Input: "what do I have tomorrow?"
Output: {"action": "list", "title": "", "date": "%s", "time": null, "end_time": null, "new_date": null, "new_time": null, "new_end_time": null, "confidence": 0.95}

User command: %q`,
		ref.Weekday(), today, ref.Year(), today, ref.Year(), tomorrow, tomorrow, tomorrow, utterance)
	return sb.String()
}
