package core

// errors.go defines the tagged construction errors and the mapping from
// internal errors to user-friendly messages with support codes.
//
// Error codes are grouped by category:
//
//	RUL001 - Rule definition could not be parsed
//	CSV001 - CSV header row could not be read
//	CSV002 - CSV data row could not be read (bad quoting, column mismatch)
//	SES001 - Validation session not found or expired
//	SES002 - Too many active validation sessions
//	PUB001 - Publishing is not configured (no database)
//	PUB002 - Publish request missing a target table
//	PUB003 - Publishing to the database failed
//	GEN001 - Anything not matched above
//	GEN002 - Request rate limit exceeded
//
// The PUB codes are produced by the web layer; they are listed here to
// keep the taxonomy in one place.

import (
	"errors"
	"fmt"
)

// RuleDefinitionError indicates the rule JSON could not be parsed into a
// rule set. Fatal to construction; no processor is built.
type RuleDefinitionError struct {
	Err error
}

func (e *RuleDefinitionError) Error() string {
	return fmt.Sprintf("Invalid Rules JSON: %v", e.Err)
}

func (e *RuleDefinitionError) Unwrap() error { return e.Err }

// HeaderError indicates the CSV header row could not be read.
type HeaderError struct {
	Err error
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("Header Error: %v", e.Err)
}

func (e *HeaderError) Unwrap() error { return e.Err }

// RecordError indicates a CSV data row could not be read. This includes
// rows whose field count does not match the header; no partial table
// survives such a failure.
type RecordError struct {
	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("CSV Parse Error: %v", e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Sentinel errors shared with the session registry.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many active sessions")
)

// UserMessage is a user-friendly error with a support code and a
// suggested action.
type UserMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

// MapError converts an internal error to a user-friendly message.
// Technical details stay in server logs; clients get the mapped form.
func MapError(err error) UserMessage {
	var ruleErr *RuleDefinitionError
	if errors.As(err, &ruleErr) {
		return UserMessage{
			Code:    "RUL001",
			Message: "The rule definition could not be parsed",
			Action:  "Check the rules JSON for syntax errors and unknown rule types",
		}
	}

	var headerErr *HeaderError
	if errors.As(err, &headerErr) {
		return UserMessage{
			Code:    "CSV001",
			Message: "The CSV header row could not be read",
			Action:  "Ensure the file starts with a comma-separated header row",
		}
	}

	var recordErr *RecordError
	if errors.As(err, &recordErr) {
		return UserMessage{
			Code:    "CSV002",
			Message: "A CSV data row could not be read",
			Action:  "Check for unbalanced quotes and rows with a different column count than the header",
		}
	}

	if errors.Is(err, ErrSessionNotFound) {
		return UserMessage{
			Code:    "SES001",
			Message: "Validation session not found",
			Action:  "The session may have expired. Upload the file again to start a new one",
		}
	}

	if errors.Is(err, ErrTooManySessions) {
		return UserMessage{
			Code:    "SES002",
			Message: "Too many active validation sessions",
			Action:  "Wait for existing sessions to expire or delete ones you no longer need",
		}
	}

	return UserMessage{
		Code:    "GEN001",
		Message: "An unexpected error occurred",
		Action:  "Please try again; quote this code if the problem persists",
	}
}
