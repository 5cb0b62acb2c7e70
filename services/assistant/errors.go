package assistant

import "fmt"

// CommandError is a typed failure inside the command resolution pipeline.
// Every code maps to a conversational message at the orchestrator boundary.
type CommandError struct {
	Code    string
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeInvalidDate      = "invalidDateFormat"
	CodeInvalidTime      = "invalidTimeFormat"
	CodeUnrecognized     = "unrecognizedIntent"
	CodeExtractionFailed = "intentExtractionFailed"
	CodeEventNotFound    = "eventNotFound"
)

func newInvalidDateError(phrase string) error {
	return &CommandError{Code: CodeInvalidDate, Message: fmt.Sprintf("unparseable date phrase %q", phrase)}
}

func newInvalidTimeError(phrase string) error {
	return &CommandError{Code: CodeInvalidTime, Message: fmt.Sprintf("unparseable time phrase %q", phrase)}
}

func newUnrecognizedIntentError(action string) error {
	return &CommandError{Code: CodeUnrecognized, Message: fmt.Sprintf("model returned unsupported action %q", action)}
}

func newExtractionError(reason string) error {
	return &CommandError{Code: CodeExtractionFailed, Message: reason}
}
