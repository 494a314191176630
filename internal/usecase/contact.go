package usecase

import (
	"context"
	"sync"
	"time"

	"portfolio-site/internal/domain"

	"github.com/go-playground/validator/v10"
)

// DefaultContactFormTTL is how long an untouched visitor form is kept.
const DefaultContactFormTTL = 30 * time.Minute

// ContactOptions configures the per-visitor contact forms.
type ContactOptions struct {
	Form    ContactFormOptions
	FormTTL time.Duration
}

type contactUsecase struct {
	relay    domain.Relay
	validate *validator.Validate
	opts     ContactOptions

	mu        sync.Mutex
	forms     map[string]*ContactForm
	lastSweep time.Time
}

// NewContactUsecase creates a new contact usecase keeping one form per visitor
func NewContactUsecase(relay domain.Relay, validate *validator.Validate, opts ContactOptions) domain.ContactUsecase {
	if opts.FormTTL <= 0 {
		opts.FormTTL = DefaultContactFormTTL
	}
	return &contactUsecase{
		relay:     relay,
		validate:  validate,
		opts:      opts,
		forms:     make(map[string]*ContactForm),
		lastSweep: time.Now(),
	}
}

// UpdateField sets one field of the visitor's form
func (uc *contactUsecase) UpdateField(ctx context.Context, visitorID string, field domain.ContactField, value string) error {
	return uc.form(visitorID).UpdateField(field, value)
}

// Submit validates and relays the visitor's current form
func (uc *contactUsecase) Submit(ctx context.Context, visitorID string) (domain.ContactSnapshot, error) {
	return uc.form(visitorID).Submit(ctx)
}

// SubmitRequest replaces the visitor's fields with req and submits
func (uc *contactUsecase) SubmitRequest(ctx context.Context, visitorID string, req *domain.ContactRequest) (domain.ContactSnapshot, error) {
	if req == nil {
		req = &domain.ContactRequest{}
	}
	return uc.form(visitorID).SubmitValues(ctx, *req)
}

// Snapshot returns the visitor's form state without creating one
func (uc *contactUsecase) Snapshot(ctx context.Context, visitorID string) domain.ContactSnapshot {
	uc.mu.Lock()
	f, ok := uc.forms[visitorID]
	uc.mu.Unlock()
	if !ok {
		return domain.ContactSnapshot{Status: domain.StatusIdle}
	}
	return f.Snapshot()
}

func (uc *contactUsecase) form(visitorID string) *ContactForm {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := time.Now()
	if now.Sub(uc.lastSweep) >= uc.opts.FormTTL/2 {
		uc.sweepLocked(now)
	}

	f, ok := uc.forms[visitorID]
	if !ok {
		f = NewContactForm(uc.relay, uc.validate, uc.opts.Form)
		uc.forms[visitorID] = f
	}
	return f
}

// sweepLocked drops forms untouched for longer than the TTL. Forms with a
// submission in flight are kept.
func (uc *contactUsecase) sweepLocked(now time.Time) {
	uc.lastSweep = now
	for id, f := range uc.forms {
		since := f.idleSince()
		if since.IsZero() || now.Sub(since) < uc.opts.FormTTL {
			continue
		}
		f.Close()
		delete(uc.forms, id)
	}
}
