package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"portfolio-site/internal/domain"
	"portfolio-site/pkg/logger"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultStatusResetDelay is how long success/error stays visible before returning to idle.
	DefaultStatusResetDelay = 3 * time.Second
	// DefaultRelayTimeout bounds a single relay call.
	DefaultRelayTimeout = 10 * time.Second
)

// contactRules carries the submit-time rules for the four fields.
type contactRules struct {
	Name    string `validate:"not_blank"`
	Email   string `validate:"not_blank,loose_email"`
	Subject string `validate:"not_blank"`
	Message string `validate:"not_blank"`
}

// ContactValidation is the outcome of validating a form.
type ContactValidation struct {
	Errors domain.FieldErrors
	Kinds  map[domain.ContactField]domain.ErrorKind
}

// Valid reports whether every field passed.
func (v ContactValidation) Valid() bool {
	return len(v.Kinds) == 0
}

// ValidateContact checks all four fields. Email is only format-checked once it is non-blank.
func ValidateContact(validate *validator.Validate, req domain.ContactRequest) ContactValidation {
	result := ContactValidation{Kinds: map[domain.ContactField]domain.ErrorKind{}}

	err := validate.Struct(contactRules{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err == nil {
		return result
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only happens on a misconfigured validator; treat every field as failed.
		for _, f := range domain.ContactFields {
			result.Kinds[f] = domain.ErrorRequired
			result.Errors.Set(f, contactMessage(f, domain.ErrorRequired))
		}
		return result
	}

	for _, fe := range verrs {
		field := domain.ContactField(strings.ToLower(fe.Field()))
		kind := domain.ErrorRequired
		if fe.Tag() == "loose_email" {
			kind = domain.ErrorInvalidFormat
		}
		result.Kinds[field] = kind
		result.Errors.Set(field, contactMessage(field, kind))
	}
	return result
}

func contactMessage(field domain.ContactField, kind domain.ErrorKind) string {
	if kind == domain.ErrorInvalidFormat {
		return "Invalid " + string(field) + " format"
	}
	return strings.ToUpper(string(field[:1])) + string(field[1:]) + " is required"
}

// ContactFormOptions tunes a ContactForm.
type ContactFormOptions struct {
	ResetDelay   time.Duration
	RelayTimeout time.Duration
}

// ContactForm is one visitor's contact form: four fields, their errors and the
// submission status. At most one relay call is in flight per form.
type ContactForm struct {
	mu       sync.Mutex
	values   domain.ContactRequest
	errors   domain.FieldErrors
	status   domain.SubmissionStatus
	relay    domain.Relay
	validate *validator.Validate
	opts     ContactFormOptions

	resetTimer *time.Timer
	generation uint64
	touched    time.Time
}

// NewContactForm creates an empty idle form bound to relay.
func NewContactForm(relay domain.Relay, validate *validator.Validate, opts ContactFormOptions) *ContactForm {
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = DefaultStatusResetDelay
	}
	if opts.RelayTimeout <= 0 {
		opts.RelayTimeout = DefaultRelayTimeout
	}
	return &ContactForm{
		status:   domain.StatusIdle,
		relay:    relay,
		validate: validate,
		opts:     opts,
		touched:  time.Now(),
	}
}

// UpdateField sets one field and clears its error.
func (f *ContactForm) UpdateField(field domain.ContactField, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case domain.FieldName:
		f.values.Name = value
	case domain.FieldEmail:
		f.values.Email = value
	case domain.FieldSubject:
		f.values.Subject = value
	case domain.FieldMessage:
		f.values.Message = value
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
	}
	f.errors.Set(field, "")
	f.touched = time.Now()
	return nil
}

// Status returns the current submission status.
func (f *ContactForm) Status() domain.SubmissionStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Snapshot returns a copy of the form state.
func (f *ContactForm) Snapshot() domain.ContactSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *ContactForm) snapshotLocked() domain.ContactSnapshot {
	return domain.ContactSnapshot{Values: f.values, Errors: f.errors, Status: f.status}
}

// Submit validates the current fields and relays them.
func (f *ContactForm) Submit(ctx context.Context) (domain.ContactSnapshot, error) {
	return f.submit(ctx, nil)
}

// SubmitValues replaces all four fields with req and submits, atomically with
// respect to the in-flight check.
func (f *ContactForm) SubmitValues(ctx context.Context, req domain.ContactRequest) (domain.ContactSnapshot, error) {
	return f.submit(ctx, &req)
}

func (f *ContactForm) submit(ctx context.Context, values *domain.ContactRequest) (domain.ContactSnapshot, error) {
	f.mu.Lock()
	if f.status == domain.StatusSubmitting {
		snap := f.snapshotLocked()
		f.mu.Unlock()
		return snap, domain.ErrSubmissionInFlight
	}
	if values != nil {
		f.values = *values
	}
	f.touched = time.Now()

	result := ValidateContact(f.validate, f.values)
	f.errors = result.Errors
	if !result.Valid() {
		snap := f.snapshotLocked()
		f.mu.Unlock()
		return snap, &domain.ValidationError{Fields: result.Errors, Kinds: result.Kinds}
	}

	f.stopResetLocked()
	f.status = domain.StatusSubmitting
	msg := domain.ContactMessage{
		Name:    strings.TrimSpace(f.values.Name),
		Email:   strings.TrimSpace(f.values.Email),
		Subject: strings.TrimSpace(f.values.Subject),
		Message: strings.TrimSpace(f.values.Message),
	}
	f.mu.Unlock()

	sendErr := f.send(ctx, msg)

	f.mu.Lock()
	defer f.mu.Unlock()
	if sendErr != nil {
		f.status = domain.StatusError
	} else {
		f.status = domain.StatusSuccess
		f.values = domain.ContactRequest{}
		f.errors = domain.FieldErrors{}
	}
	f.touched = time.Now()
	f.scheduleResetLocked()

	snap := f.snapshotLocked()
	if sendErr != nil {
		return snap, fmt.Errorf("send contact message: %w", sendErr)
	}
	return snap, nil
}

// send calls the relay. The visitor going away does not cancel it; only the
// relay timeout does.
func (f *ContactForm) send(ctx context.Context, msg domain.ContactMessage) error {
	if f.relay == nil {
		return domain.ErrRelayNotConfigured
	}
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.opts.RelayTimeout)
	defer cancel()

	if err := f.relay.Send(sendCtx, msg); err != nil {
		logger.Log.Warn("contact relay failed", "error", err)
		return err
	}
	return nil
}

func (f *ContactForm) scheduleResetLocked() {
	f.generation++
	gen := f.generation
	f.resetTimer = time.AfterFunc(f.opts.ResetDelay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.generation != gen {
			return
		}
		if f.status == domain.StatusSuccess || f.status == domain.StatusError {
			f.status = domain.StatusIdle
		}
		f.resetTimer = nil
	})
}

func (f *ContactForm) stopResetLocked() {
	f.generation++
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
}

// Close stops a pending status reset.
func (f *ContactForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopResetLocked()
}

// idleSince reports when the form was last used, or zero while a submission is in flight.
func (f *ContactForm) idleSince() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == domain.StatusSubmitting {
		return time.Time{}
	}
	return f.touched
}
