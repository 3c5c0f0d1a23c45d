package browse

import "github.com/jask/artbrowse/internal/artic"

// Selection is an ordered set of artworks keyed by ID. The zero value is empty.
// Values are never mutated in place; every operation returns a new Selection.
type Selection struct {
	items []artic.Artwork
	index map[int]struct{}
}

// NewSelection builds a selection from items, keeping the first occurrence of each ID.
func NewSelection(items []artic.Artwork) Selection {
	s := Selection{
		items: make([]artic.Artwork, 0, len(items)),
		index: make(map[int]struct{}, len(items)),
	}
	for _, a := range items {
		if _, dup := s.index[a.ID]; dup {
			continue
		}
		s.index[a.ID] = struct{}{}
		s.items = append(s.items, a)
	}
	return s
}

// Len returns the number of selected artworks.
func (s Selection) Len() int { return len(s.items) }

// Contains reports whether id is selected.
func (s Selection) Contains(id int) bool {
	_, ok := s.index[id]
	return ok
}

// Items returns a copy of the selected artworks in selection order.
func (s Selection) Items() []artic.Artwork {
	out := make([]artic.Artwork, len(s.items))
	copy(out, s.items)
	return out
}

// IDs returns the selected ids in selection order.
func (s Selection) IDs() []int {
	out := make([]int, len(s.items))
	for i, a := range s.items {
		out[i] = a.ID
	}
	return out
}

// Replace discards the current contents in favour of items.
func (s Selection) Replace(items []artic.Artwork) Selection {
	return NewSelection(items)
}

// Clear returns an empty selection.
func (s Selection) Clear() Selection {
	return Selection{}
}

// Toggle adds a when absent and removes it when present.
func (s Selection) Toggle(a artic.Artwork) Selection {
	if !s.Contains(a.ID) {
		return NewSelection(append(s.Items(), a))
	}
	next := make([]artic.Artwork, 0, len(s.items)-1)
	for _, it := range s.items {
		if it.ID != a.ID {
			next = append(next, it)
		}
	}
	return NewSelection(next)
}

// ContainsAll reports whether every artwork in page is selected.
// An empty page is never fully selected.
func (s Selection) ContainsAll(page []artic.Artwork) bool {
	if len(page) == 0 {
		return false
	}
	for _, a := range page {
		if !s.Contains(a.ID) {
			return false
		}
	}
	return true
}

// TogglePage selects every artwork in page, or deselects them all when they
// are already selected. Rows outside page are kept.
func (s Selection) TogglePage(page []artic.Artwork) Selection {
	if s.ContainsAll(page) {
		drop := make(map[int]struct{}, len(page))
		for _, a := range page {
			drop[a.ID] = struct{}{}
		}
		next := make([]artic.Artwork, 0, len(s.items))
		for _, it := range s.items {
			if _, ok := drop[it.ID]; !ok {
				next = append(next, it)
			}
		}
		return NewSelection(next)
	}
	return NewSelection(append(s.Items(), page...))
}
