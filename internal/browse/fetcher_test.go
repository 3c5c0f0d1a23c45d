package browse

import (
	"context"
	"fmt"
	"sync"

	"github.com/jask/artbrowse/internal/artic"
)

// fakeFetcher serves total synthetic artworks and records every call.
type fakeFetcher struct {
	mu     sync.Mutex
	total  int
	failOn map[int]error
	calls  []LoadRequest
}

func newFakeFetcher(total int) *fakeFetcher {
	return &fakeFetcher{total: total, failOn: map[int]error{}}
}

func (f *fakeFetcher) FetchPage(ctx context.Context, page, limit int) (artic.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, LoadRequest{Page: page, Limit: limit})
	err := f.failOn[page]
	total := f.total
	f.mu.Unlock()

	if err != nil {
		return artic.Page{}, err
	}
	if err := ctx.Err(); err != nil {
		return artic.Page{}, err
	}
	var data []artic.Artwork
	for id := (page-1)*limit + 1; id <= total && id <= page*limit; id++ {
		data = append(data, artwork(id))
	}
	if data == nil {
		data = []artic.Artwork{}
	}
	return artic.Page{Data: data, Pagination: artic.Pagination{Total: total, Limit: limit, CurrentPage: page}}, nil
}

func (f *fakeFetcher) pages() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Page
	}
	return out
}

func artwork(id int) artic.Artwork {
	return artic.Artwork{ID: id, Title: fmt.Sprintf("Artwork %d", id)}
}

func artworks(ids ...int) []artic.Artwork {
	out := make([]artic.Artwork, len(ids))
	for i, id := range ids {
		out[i] = artwork(id)
	}
	return out
}

func ids(items []artic.Artwork) []int {
	out := make([]int, len(items))
	for i, a := range items {
		out[i] = a.ID
	}
	return out
}
