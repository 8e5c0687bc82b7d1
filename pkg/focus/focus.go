// Package focus tracks which dashboard panel, if any, is maximized.
package focus

import "github.com/vanderheijden86/sentidash/pkg/model"

// Controller holds at most one maximized panel. The zero value has none.
type Controller struct {
	maximized model.PanelID
}

// Toggle maximizes id, or restores the layout when id is already maximized.
// Toggling a different panel switches directly to it.
func (c *Controller) Toggle(id model.PanelID) {
	if c.maximized == id {
		c.maximized = ""
		return
	}
	c.maximized = id
}

// Maximized returns the maximized panel.
func (c Controller) Maximized() (model.PanelID, bool) {
	return c.maximized, c.maximized != ""
}

// IsMaximized reports whether id is the maximized panel.
func (c Controller) IsMaximized(id model.PanelID) bool {
	return id != "" && c.maximized == id
}

// Clear restores the grid layout.
func (c *Controller) Clear() { c.maximized = "" }

// Ring cycles keyboard focus through panels in a fixed order.
type Ring struct {
	order []model.PanelID
	pos   int
}

// NewRing returns a ring over order, focused on its first element.
func NewRing(order []model.PanelID) Ring {
	return Ring{order: order}
}

// Current returns the focused panel, or "" for an empty ring.
func (r Ring) Current() model.PanelID {
	if len(r.order) == 0 {
		return ""
	}
	return r.order[r.pos]
}

// Next moves focus forward, wrapping.
func (r *Ring) Next() {
	if n := len(r.order); n > 0 {
		r.pos = (r.pos + 1) % n
	}
}

// Prev moves focus backward, wrapping.
func (r *Ring) Prev() {
	if n := len(r.order); n > 0 {
		r.pos = (r.pos - 1 + n) % n
	}
}

// Set focuses id if the ring contains it.
func (r *Ring) Set(id model.PanelID) bool {
	for i, p := range r.order {
		if p == id {
			r.pos = i
			return true
		}
	}
	return false
}
