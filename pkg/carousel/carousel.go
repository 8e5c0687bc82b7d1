// Package carousel holds the question carousel: a filtered, circularly
// navigable view over analyst questions with one focused item.
//
// Carousel is a value type. Copying it is cheap and the copies never share
// mutable state, since the underlying slices are only ever replaced.
package carousel

import (
	"github.com/vanderheijden86/sentidash/pkg/filter"
	"github.com/vanderheijden86/sentidash/pkg/model"
)

// Carousel is the question filter plus focus index. The zero value is an
// empty carousel.
type Carousel struct {
	items []model.AnalystQuestion
	query string
	view  []model.AnalystQuestion
	focus int
}

// New returns a carousel over items with an empty query.
func New(items []model.AnalystQuestion) Carousel {
	return Carousel{items: items, view: items}
}

// SetQuery refilters the view and moves focus back to the first item. The
// reset happens even when q equals the current query.
func (c *Carousel) SetQuery(q string) {
	c.query = q
	c.view = filter.Questions(c.items, q)
	c.focus = 0
}

// SetItems swaps the underlying questions, keeping the query.
func (c *Carousel) SetItems(items []model.AnalystQuestion) {
	c.items = items
	c.SetQuery(c.query)
}

// Next advances focus, wrapping from the last item to the first.
func (c *Carousel) Next() {
	if n := len(c.view); n > 0 {
		c.focus = (c.focus + 1) % n
	}
}

// Prev moves focus back, wrapping from the first item to the last.
func (c *Carousel) Prev() {
	if n := len(c.view); n > 0 {
		c.focus = (c.focus - 1 + n) % n
	}
}

// JumpTo focuses index i. Out-of-range indices are ignored.
func (c *Carousel) JumpTo(i int) {
	if i >= 0 && i < len(c.view) {
		c.focus = i
	}
}

// Items returns the unfiltered questions.
func (c Carousel) Items() []model.AnalystQuestion { return c.items }

// View returns the filtered questions.
func (c Carousel) View() []model.AnalystQuestion { return c.view }

// Query returns the current search text.
func (c Carousel) Query() string { return c.query }

// Focus returns the focused index. It is 0 when the view is empty.
func (c Carousel) Focus() int { return c.focus }

// Len returns the number of visible questions.
func (c Carousel) Len() int { return len(c.view) }

// Empty reports whether no question matches.
func (c Carousel) Empty() bool { return len(c.view) == 0 }

// Current returns the focused question.
func (c Carousel) Current() (model.AnalystQuestion, bool) {
	if c.focus < 0 || c.focus >= len(c.view) {
		return model.AnalystQuestion{}, false
	}
	return c.view[c.focus], true
}

// Dots returns one pagination dot per visible question, true at the focus.
func (c Carousel) Dots() []bool {
	dots := make([]bool, len(c.view))
	if c.focus < len(dots) {
		dots[c.focus] = true
	}
	return dots
}
