package domain

import (
	"context"
	"errors"
	"fmt"
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// ContactField names one of the four contact form inputs.
type ContactField string

const (
	FieldName    ContactField = "name"
	FieldEmail   ContactField = "email"
	FieldSubject ContactField = "subject"
	FieldMessage ContactField = "message"
)

// ContactFields lists the form inputs in display order.
var ContactFields = []ContactField{FieldName, FieldEmail, FieldSubject, FieldMessage}

// ErrorKind classifies a field validation failure.
type ErrorKind string

const (
	ErrorRequired      ErrorKind = "required"
	ErrorInvalidFormat ErrorKind = "invalid_format"
)

// FieldErrors holds one human-readable message per field. Empty string means no error.
type FieldErrors struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message,omitempty"`
}

// Get returns the message stored for field.
func (e FieldErrors) Get(field ContactField) string {
	switch field {
	case FieldName:
		return e.Name
	case FieldEmail:
		return e.Email
	case FieldSubject:
		return e.Subject
	case FieldMessage:
		return e.Message
	}
	return ""
}

// Set stores msg for field; unknown fields are ignored.
func (e *FieldErrors) Set(field ContactField, msg string) {
	switch field {
	case FieldName:
		e.Name = msg
	case FieldEmail:
		e.Email = msg
	case FieldSubject:
		e.Subject = msg
	case FieldMessage:
		e.Message = msg
	}
}

// Empty reports whether no field carries an error.
func (e FieldErrors) Empty() bool {
	return e == FieldErrors{}
}

// SubmissionStatus tracks the lifecycle of one contact submission attempt.
type SubmissionStatus string

const (
	StatusIdle       SubmissionStatus = "idle"
	StatusSubmitting SubmissionStatus = "submitting"
	StatusSuccess    SubmissionStatus = "success"
	StatusError      SubmissionStatus = "error"
)

// ContactMessage is the payload handed to a relay.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Relay delivers a contact message as an email on the site owner's behalf.
// A nil error means the relay accepted the message.
type Relay interface {
	Send(ctx context.Context, msg ContactMessage) error
}

// RelayError is a rejected relay outcome.
type RelayError struct {
	Provider   string
	StatusCode int
	Reason     string
}

func (e *RelayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s relay rejected message (status %d): %s", e.Provider, e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("%s relay rejected message: %s", e.Provider, e.Reason)
}

var (
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrValidation         = errors.New("contact form has invalid fields")
	ErrUnknownField       = errors.New("unknown contact field")
	ErrRelayNotConfigured = errors.New("contact relay is not configured")
)

// ValidationError carries the per-field errors of a rejected submit.
type ValidationError struct {
	Fields FieldErrors
	Kinds  map[ContactField]ErrorKind
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ContactSnapshot is a read-only copy of a form's state.
type ContactSnapshot struct {
	Values ContactRequest   `json:"values"`
	Errors FieldErrors      `json:"errors"`
	Status SubmissionStatus `json:"status"`
}

// ContactUsecase defines the contact form operations for one visitor's form
type ContactUsecase interface {
	// UpdateField sets one field of the visitor's form and clears its error
	UpdateField(ctx context.Context, visitorID string, field ContactField, value string) error
	// Submit validates the visitor's form and relays it
	Submit(ctx context.Context, visitorID string) (ContactSnapshot, error)
	// SubmitRequest replaces all four fields with req, then submits
	SubmitRequest(ctx context.Context, visitorID string, req *ContactRequest) (ContactSnapshot, error)
	// Snapshot returns the visitor's current form state
	Snapshot(ctx context.Context, visitorID string) ContactSnapshot
}
