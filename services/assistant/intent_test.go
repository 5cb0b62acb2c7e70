package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"schedulit/models"
)

func TestExtractValidReply(t *testing.T) {
	llm := &fakeLLM{reply: `{"action": "create", "title": "meeting with John", "date": "2026-03-02", "time": "15:00", "end_time": null, "new_date": null, "new_time": null, "new_end_time": null, "confidence": 0.95}`}
	ex := &IntentExtractor{LLM: llm}

	intent, err := ex.Extract(context.Background(), "schedule a meeting with John tomorrow at 3pm", testRef)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if intent.Action != models.ActionCreate {
		t.Errorf("action = %q, want create", intent.Action)
	}
	if intent.Title != "meeting with John" || intent.Date != "2026-03-02" || intent.Time != "15:00" {
		t.Errorf("intent = %+v", intent)
	}
	if intent.EndTime != "" {
		t.Errorf("null end_time decoded as %q, want empty", intent.EndTime)
	}
	if intent.Confidence != 0.95 {
		t.Errorf("confidence = %v, want 0.95", intent.Confidence)
	}

	if !strings.Contains(llm.prompt, "2026-03-01") {
		t.Error("prompt should anchor on the reference date")
	}
	if !strings.Contains(llm.prompt, "schedule a meeting with John tomorrow at 3pm") {
		t.Error("prompt should carry the utterance")
	}
}

func TestExtractStripsCodeFence(t *testing.T) {
	llm := &fakeLLM{reply: "```json\n{\"action\": \"list\", \"title\": \"\", \"date\": \"2026-03-06\", \"confidence\": 0.9}\n```"}
	ex := &IntentExtractor{LLM: llm}

	intent, err := ex.Extract(context.Background(), "what's on friday?", testRef)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if intent.Action != models.ActionList || intent.Date != "2026-03-06" {
		t.Errorf("intent = %+v", intent)
	}
}

func TestExtractNullishFields(t *testing.T) {
	llm := &fakeLLM{reply: `{"action": "delete", "title": "dentist", "date": "null", "time": "None", "confidence": 0.8}`}
	ex := &IntentExtractor{LLM: llm}

	intent, err := ex.Extract(context.Background(), "cancel my dentist appointment", testRef)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if intent.Date != "" || intent.Time != "" {
		t.Errorf("nullish fields survived: %+v", intent)
	}
}

func TestExtractUnsupportedAction(t *testing.T) {
	llm := &fakeLLM{reply: `{"action": "remind", "title": "water the plants", "confidence": 0.7}`}
	ex := &IntentExtractor{LLM: llm}

	_, err := ex.Extract(context.Background(), "remind me to water the plants", testRef)
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != CodeUnrecognized {
		t.Fatalf("err = %v, want %s", err, CodeUnrecognized)
	}
}

func TestExtractGarbageReply(t *testing.T) {
	llm := &fakeLLM{reply: "I'm sorry, I can't help with that."}
	ex := &IntentExtractor{LLM: llm}

	_, err := ex.Extract(context.Background(), "do something", testRef)
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != CodeExtractionFailed {
		t.Fatalf("err = %v, want %s", err, CodeExtractionFailed)
	}
}

func TestExtractProviderFailure(t *testing.T) {
	llm := &fakeLLM{err: errors.New("deadline exceeded")}
	ex := &IntentExtractor{LLM: llm}

	_, err := ex.Extract(context.Background(), "schedule lunch", testRef)
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != CodeExtractionFailed {
		t.Fatalf("err = %v, want %s", err, CodeExtractionFailed)
	}
}

func TestExtractConfidenceLenient(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{`0.5`, 0.5},
		{`"0.5"`, 0.5},
		{`1.7`, 1},
		{`-2`, 0},
		{`"high"`, 0},
	}
	for _, c := range cases {
		llm := &fakeLLM{reply: `{"action": "list", "confidence": ` + c.raw + `}`}
		ex := &IntentExtractor{LLM: llm}
		intent, err := ex.Extract(context.Background(), "list my day", testRef)
		if err != nil {
			t.Fatalf("Extract with confidence %s error: %v", c.raw, err)
		}
		if intent.Confidence != c.want {
			t.Errorf("confidence %s decoded as %v, want %v", c.raw, intent.Confidence, c.want)
		}
	}
}
