package view

import (
	"encoding/json"
	"html/template"
	"time"

	"portfolio-site/internal/domain"
)

// Section ids in page order. They double as the navigation anchors.
var Sections = []string{"home", "about", "skills", "projects", "experience", "contact"}

// Page is everything the page template needs for one render.
type Page struct {
	Theme     domain.ThemePreference
	Content   *domain.Portfolio
	Contact   ContactView
	Ads       map[AdPosition]AdSlot
	Motion    map[string]*Reveal
	Static    bool
	CSRFToken string
	SiteURL   string
	Year      int
}

// PageOptions carries the per-request inputs of NewPage.
type PageOptions struct {
	Theme     domain.ThemePreference
	Content   *domain.Portfolio
	Contact   domain.ContactSnapshot
	Ads       AdConfig
	Static    bool
	CSRFToken string
	SiteURL   string
	Now       time.Time
}

// NewPage assembles a Page. Static pages get an always-visible source so
// every section renders revealed; otherwise sections start hidden and the
// client script reveals them.
func NewPage(opts PageOptions) *Page {
	var source Visibility = &Deferred{}
	if opts.Static {
		source = Immediate{}
	}
	motion := make(map[string]*Reveal, len(Sections))
	for _, id := range Sections {
		motion[id] = NewReveal(source)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	return &Page{
		Theme:     opts.Theme,
		Content:   opts.Content,
		Contact:   NewContactView(opts.Contact),
		Ads:       opts.Ads.Build(),
		Motion:    motion,
		Static:    opts.Static,
		CSRFToken: opts.CSRFToken,
		SiteURL:   opts.SiteURL,
		Year:      now.Year(),
	}
}

// HTMLClass is the class list of the <html> element.
func (p *Page) HTMLClass() string {
	if p.Theme.IsDark() {
		return "dark"
	}
	return ""
}

// AdAt returns the slot for pos, or nil when none is configured there.
func (p *Page) AdAt(pos string) *AdSlot {
	slot, ok := p.Ads[AdPosition(pos)]
	if !ok {
		return nil
	}
	return &slot
}

// AdClient is the publisher id the ad script loads with, or empty when the
// page carries no ads.
func (p *Page) AdClient() string {
	for _, slot := range p.Ads {
		return slot.Client
	}
	return ""
}

// RevealClass is the motion class of the section with the given id.
func (p *Page) RevealClass(id string) string {
	if r, ok := p.Motion[id]; ok {
		return r.Class()
	}
	return ""
}

// StructuredData is the schema.org Person description of the site owner.
func (p *Page) StructuredData() template.JS {
	if p.Content == nil {
		return ""
	}
	person := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     p.Content.Hero.Name,
	}
	if p.SiteURL != "" {
		person["url"] = p.SiteURL
	}
	if p.Content.Contact.Email != "" {
		person["email"] = "mailto:" + p.Content.Contact.Email
	}
	if len(p.Content.Hero.Roles) > 0 {
		person["jobTitle"] = p.Content.Hero.Roles[0]
	}
	sameAs := make([]string, 0, len(p.Content.Contact.Social))
	for _, s := range p.Content.Contact.Social {
		sameAs = append(sameAs, s.URL)
	}
	if len(sameAs) > 0 {
		person["sameAs"] = sameAs
	}
	payload, err := json.Marshal(person)
	if err != nil {
		return ""
	}
	return template.JS(payload)
}

// ContactView is the contact form as the template sees it.
type ContactView struct {
	domain.ContactSnapshot
}

func NewContactView(s domain.ContactSnapshot) ContactView {
	return ContactView{ContactSnapshot: s}
}

// Submitting reports whether the submit button must be disabled.
func (v ContactView) Submitting() bool {
	return v.Status == domain.StatusSubmitting
}

// ButtonLabel is the submit button text for the current status.
func (v ContactView) ButtonLabel() string {
	switch v.Status {
	case domain.StatusSubmitting:
		return "Sending..."
	case domain.StatusSuccess:
		return "Message Sent!"
	case domain.StatusError:
		return "Failed to Send"
	}
	return "Send Message"
}

// Flash is the status banner text; empty while idle or submitting.
func (v ContactView) Flash() string {
	switch v.Status {
	case domain.StatusSuccess:
		return "Thank you! Your message has been sent. I'll get back to you soon."
	case domain.StatusError:
		return "Something went wrong while sending your message. Please try again."
	}
	return ""
}

// FieldError is the error text for the named input.
func (v ContactView) FieldError(field string) string {
	return v.Errors.Get(domain.ContactField(field))
}

// FieldValue is the current value of the named input.
func (v ContactView) FieldValue(field string) string {
	switch domain.ContactField(field) {
	case domain.FieldName:
		return v.Values.Name
	case domain.FieldEmail:
		return v.Values.Email
	case domain.FieldSubject:
		return v.Values.Subject
	case domain.FieldMessage:
		return v.Values.Message
	}
	return ""
}
