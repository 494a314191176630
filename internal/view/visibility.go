// Package view holds the presentation state the page templates render from.
// Nothing here touches HTTP; handlers assemble a Page and pass it to a template.
package view

import "sync"

// Visibility reports when a rendered element has entered the viewport.
// Callbacks registered after the element became visible run immediately.
type Visibility interface {
	OnBecomeVisible(fn func())
}

// Immediate is a Visibility that is always visible. It is used when the page
// is rendered for clients that will not run the reveal script.
type Immediate struct{}

func (Immediate) OnBecomeVisible(fn func()) { fn() }

// Deferred is a Visibility that fires once, when Fire is called.
type Deferred struct {
	mu      sync.Mutex
	fired   bool
	pending []func()
}

func (d *Deferred) OnBecomeVisible(fn func()) {
	d.mu.Lock()
	if d.fired {
		d.mu.Unlock()
		fn()
		return
	}
	d.pending = append(d.pending, fn)
	d.mu.Unlock()
}

// Fire marks the element visible and runs the waiting callbacks in order.
// Calls after the first do nothing. Page rendering never fires it: sections
// leave the server hidden and the bundled script reveals them on intersection.
func (d *Deferred) Fire() {
	d.mu.Lock()
	if d.fired {
		d.mu.Unlock()
		return
	}
	d.fired = true
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// Reveal is the cosmetic motion state of one section: hidden until its
// Visibility fires, then visible for good.
type Reveal struct {
	mu      sync.Mutex
	visible bool
}

// NewReveal starts hidden and flips to visible when v fires.
func NewReveal(v Visibility) *Reveal {
	r := &Reveal{}
	v.OnBecomeVisible(r.show)
	return r
}

func (r *Reveal) show() {
	r.mu.Lock()
	r.visible = true
	r.mu.Unlock()
}

// Visible reports whether the section has been revealed.
func (r *Reveal) Visible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}

// Class is the CSS class list for the section wrapper. The client script
// adds is-visible itself for sections rendered hidden.
func (r *Reveal) Class() string {
	if r.Visible() {
		return "reveal is-visible"
	}
	return "reveal"
}
