// Package browse holds the paging and selection logic behind the artwork
// table: an immutable view state with a reducer, the page loader, and the
// select-first-N accumulator.
package browse

import (
	"github.com/jask/artbrowse/internal/artic"
)

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 12

// State is one snapshot of the view. Reduce never modifies its input.
type State struct {
	// Page is the zero-based page index.
	Page int
	// Rows is the page size.
	Rows int
	// First is the offset of the first displayed row, Page*Rows.
	First int
	// TotalRecords is the total from the last accepted response.
	TotalRecords int
	// Artworks is the displayed page in server order.
	Artworks []artic.Artwork
	// Loading is true while the latest page load is in flight.
	Loading bool
	// LoadToken identifies the latest page load issued.
	LoadToken uint64

	Selection Selection

	// RowClick switches between row-click and checkbox selection.
	RowClick bool
	// SearchValue is the raw text of the select-first-N field.
	SearchValue string

	// Accumulating is true while the latest select-first-N run is in flight.
	Accumulating bool
	// AccumulateToken identifies the latest select-first-N run.
	AccumulateToken uint64

	// Err is the last error worth showing, cleared by the next success.
	Err error
}

// NewState returns the initial state for the given page size.
func NewState(rows int) State {
	if rows < 1 {
		rows = DefaultPageSize
	}
	return State{Rows: rows}
}

// PageCount returns the number of pages implied by TotalRecords.
func (s State) PageCount() int {
	if s.Rows < 1 || s.TotalRecords <= 0 {
		return 0
	}
	return (s.TotalRecords + s.Rows - 1) / s.Rows
}

// LoadRequest tells the caller to fetch a page. Page is 1-based.
type LoadRequest struct {
	Token uint64
	Page  int
	Limit int
}

// Event is any input to Reduce.
type Event interface {
	isEvent()
}

// Started issues the initial page load.
type Started struct{}

// PageChanged is a pagination event from the table.
type PageChanged struct {
	Page int
	Rows int
}

// PageLoaded carries a successful response for load Token.
type PageLoaded struct {
	Token uint64
	Page  artic.Page
}

// PageFailed carries a failed response for load Token.
type PageFailed struct {
	Token uint64
	Err   error
}

// SelectionChanged replaces the selection with Items.
type SelectionChanged struct {
	Items []artic.Artwork
}

// SelectionCleared empties the selection.
type SelectionCleared struct{}

// SelectionToggled toggles one artwork.
type SelectionToggled struct {
	Artwork artic.Artwork
}

// PageSelectionToggled toggles every artwork on the displayed page.
type PageSelectionToggled struct{}

// SearchEdited updates the select-first-N text.
type SearchEdited struct {
	Text string
}

// RowClickToggled flips the selection mode.
type RowClickToggled struct{}

// AccumulateStarted begins a select-first-N run.
type AccumulateStarted struct{}

// AccumulateDone carries the records gathered by run Token.
type AccumulateDone struct {
	Token uint64
	Items []artic.Artwork
	Pages int
}

// AccumulateFailed carries the error that stopped run Token.
type AccumulateFailed struct {
	Token uint64
	Err   error
}

func (Started) isEvent()              {}
func (PageChanged) isEvent()          {}
func (PageLoaded) isEvent()           {}
func (PageFailed) isEvent()           {}
func (SelectionChanged) isEvent()     {}
func (SelectionCleared) isEvent()     {}
func (SelectionToggled) isEvent()     {}
func (PageSelectionToggled) isEvent() {}
func (SearchEdited) isEvent()         {}
func (RowClickToggled) isEvent()      {}
func (AccumulateStarted) isEvent()    {}
func (AccumulateDone) isEvent()       {}
func (AccumulateFailed) isEvent()     {}

// Reduce applies ev to s and returns the next state. A non-nil LoadRequest
// means a page fetch must be started for the new state.
func Reduce(s State, ev Event) (State, *LoadRequest) {
	switch e := ev.(type) {
	case Started:
		return s.issueLoad()

	case PageChanged:
		if e.Rows < 1 {
			e.Rows = s.Rows
		}
		if e.Page < 0 {
			e.Page = 0
		}
		changed := e.Page != s.Page || e.Rows != s.Rows
		s.Page, s.Rows = e.Page, e.Rows
		s.First = s.Page * s.Rows
		if !changed {
			return s, nil
		}
		return s.issueLoad()

	case PageLoaded:
		if e.Token != s.LoadToken {
			staleResponsesTotal.WithLabelValues("page").Inc()
			return s, nil
		}
		s.Artworks = append([]artic.Artwork(nil), e.Page.Data...)
		s.TotalRecords = e.Page.Pagination.Total
		s.Loading = false
		s.Err = nil
		return s, nil

	case PageFailed:
		if e.Token != s.LoadToken {
			staleResponsesTotal.WithLabelValues("page").Inc()
			return s, nil
		}
		s.Loading = false
		s.Err = e.Err
		return s, nil

	case SelectionChanged:
		s.Selection = s.Selection.Replace(e.Items)
		return s, nil

	case SelectionCleared:
		s.Selection = s.Selection.Clear()
		return s, nil

	case SelectionToggled:
		s.Selection = s.Selection.Toggle(e.Artwork)
		return s, nil

	case PageSelectionToggled:
		s.Selection = s.Selection.TogglePage(s.Artworks)
		return s, nil

	case SearchEdited:
		s.SearchValue = e.Text
		return s, nil

	case RowClickToggled:
		s.RowClick = !s.RowClick
		return s, nil

	case AccumulateStarted:
		s.AccumulateToken++
		s.Accumulating = true
		return s, nil

	case AccumulateDone:
		if e.Token != s.AccumulateToken {
			staleResponsesTotal.WithLabelValues("accumulate").Inc()
			return s, nil
		}
		s.Accumulating = false
		s.Selection = s.Selection.Replace(e.Items)
		s.Err = nil
		return s, nil

	case AccumulateFailed:
		if e.Token != s.AccumulateToken {
			staleResponsesTotal.WithLabelValues("accumulate").Inc()
			return s, nil
		}
		s.Accumulating = false
		s.Err = e.Err
		return s, nil
	}
	return s, nil
}

func (s State) issueLoad() (State, *LoadRequest) {
	s.LoadToken++
	s.Loading = true
	s.First = s.Page * s.Rows
	return s, &LoadRequest{Token: s.LoadToken, Page: s.Page + 1, Limit: s.Rows}
}
