package view

import "strings"

// AdPosition names where on the page an ad unit sits.
type AdPosition string

const (
	AdAfterHero     AdPosition = "hero"
	AdAfterProjects AdPosition = "projects"
	AdBeforeFooter  AdPosition = "footer"
)

// AdSlot is an inert ad unit. The page only emits the placeholder element;
// the ad network's script fills it.
type AdSlot struct {
	Client     string
	Slot       string
	Format     string
	Responsive bool
}

// NewAdSlot returns a responsive auto-format slot.
func NewAdSlot(client, slot string) AdSlot {
	return AdSlot{
		Client:     strings.TrimSpace(client),
		Slot:       strings.TrimSpace(slot),
		Format:     "auto",
		Responsive: true,
	}
}

// Enabled reports whether the slot has enough to render.
func (a AdSlot) Enabled() bool {
	return a.Client != "" && a.Slot != ""
}

// AdConfig is the publisher id and one slot token per position.
type AdConfig struct {
	Client string
	Slots  map[AdPosition]string
}

// Build returns the enabled slots keyed by position. With no client
// configured no ads are rendered at all.
func (c AdConfig) Build() map[AdPosition]AdSlot {
	out := make(map[AdPosition]AdSlot, len(c.Slots))
	if strings.TrimSpace(c.Client) == "" {
		return out
	}
	for pos, token := range c.Slots {
		slot := NewAdSlot(c.Client, token)
		if slot.Enabled() {
			out[pos] = slot
		}
	}
	return out
}
