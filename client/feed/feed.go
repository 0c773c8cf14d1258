// Package feed maintains the filtered and displayed views over a list of
// content items. The displayed view simulates an endless scroll from a
// finite backing list: it starts as three concatenated copies of the
// filtered list, grows by one more copy whenever the consumer scrolls
// past 80%, and signals a jump back to the top past 95%.
package feed

import "strings"

// Item is anything the feed can filter and display.
type Item interface {
	ItemTitle() string
	ItemDescription() string
	ItemTags() []string
	ItemCategory() string
}

const (
	initialCopies   = 3
	appendThreshold = 0.8
	loopThreshold   = 0.95
)

// Matches reports whether an item satisfies the search term and category.
// An empty term matches everything; the term is checked case-insensitively
// against title, description and every tag. An empty category matches
// everything; otherwise the item's category must equal it.
func Matches(it Item, term, category string) bool {
	if category != "" && it.ItemCategory() != category {
		return false
	}
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	if strings.Contains(strings.ToLower(it.ItemTitle()), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(it.ItemDescription()), needle) {
		return true
	}
	for _, tag := range it.ItemTags() {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Filter returns the members of items matching the term and category.
// It never fails: empty inputs yield an empty (non-nil) result.
func Filter[T Item](items []T, term, category string) []T {
	filtered := make([]T, 0, len(items))
	for _, it := range items {
		if Matches(it, term, category) {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

// ScrollEffect describes what a scroll event did to the feed.
type ScrollEffect struct {
	Appended    bool // one more copy of the filtered list was appended
	ScrollToTop bool // the consumer should scroll back to the top after its delay
}

// Feed holds one filtered epoch and its displayed expansion. Growth is
// append-only within an epoch and unbounded; only a new Update resets it.
type Feed[T Item] struct {
	filtered  []T
	displayed []T
}

func New[T Item]() *Feed[T] {
	return &Feed[T]{}
}

// Update recomputes the filtered list from the authoritative items and
// resets the displayed list to exactly three copies of it (or empty),
// discarding any growth from the previous epoch.
func (f *Feed[T]) Update(items []T, term, category string) {
	f.filtered = Filter(items, term, category)
	if len(f.filtered) == 0 {
		f.displayed = nil
		return
	}
	f.displayed = make([]T, 0, initialCopies*len(f.filtered))
	for i := 0; i < initialCopies; i++ {
		f.displayed = append(f.displayed, f.filtered...)
	}
}

// Filtered returns the current filtered list.
func (f *Feed[T]) Filtered() []T {
	return f.filtered
}

// Displayed returns the current displayed list.
func (f *Feed[T]) Displayed() []T {
	return f.displayed
}

// HandleScroll applies one scroll event. Past 80% of the scrollable
// height it appends one more copy of the filtered list, regardless of how
// many appends happened before in this epoch; past 95% it additionally
// asks the consumer to scroll back to the top.
func (f *Feed[T]) HandleScroll(scrollTop, scrollHeight, clientHeight float64) ScrollEffect {
	var effect ScrollEffect

	scrollable := scrollHeight - clientHeight
	if scrollable <= 0 {
		return effect
	}
	percentage := scrollTop / scrollable

	if percentage > appendThreshold && len(f.filtered) > 0 {
		f.displayed = append(f.displayed, f.filtered...)
		effect.Appended = true
	}
	if percentage > loopThreshold {
		effect.ScrollToTop = true
	}
	return effect
}
