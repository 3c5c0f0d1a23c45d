package browse

import (
	"context"
	"fmt"

	"github.com/jask/artbrowse/internal/artic"
)

// AccumulateResult is the outcome of a select-first-N run.
type AccumulateResult struct {
	Items []artic.Artwork
	Pages int
}

// Accumulate gathers the first n artworks by fetching pages 1, 2, ... of
// pageSize in order. It stops once n records are buffered, once more than
// ceil(n/pageSize) pages would be needed, or when a page comes back empty.
// Records already buffered are skipped, so a listing that shifts between
// requests cannot yield duplicates. The buffer is truncated to n. A fetch
// error stops the run and is returned with no partial result.
func Accumulate(ctx context.Context, fetcher PageFetcher, n, pageSize int) (AccumulateResult, error) {
	if n <= 0 {
		return AccumulateResult{}, nil
	}
	if pageSize < 1 {
		return AccumulateResult{}, fmt.Errorf("accumulate: page size must be >= 1 (got %d)", pageSize)
	}

	// n is user supplied; size buffers from what is fetched, not from n.
	maxPages := n / pageSize
	if n%pageSize != 0 {
		maxPages++
	}
	buf := make([]artic.Artwork, 0, min(n, pageSize))
	seen := make(map[int]struct{}, min(n, pageSize))
	pages := 0
	for page := 1; len(buf) < n && page <= maxPages; page++ {
		res, err := fetcher.FetchPage(ctx, page, pageSize)
		if err != nil {
			accumulationsTotal.WithLabelValues("error").Inc()
			return AccumulateResult{Pages: pages}, fmt.Errorf("accumulate page %d: %w", page, err)
		}
		pages++
		if len(res.Data) == 0 {
			break
		}
		for _, a := range res.Data {
			if _, dup := seen[a.ID]; dup {
				continue
			}
			seen[a.ID] = struct{}{}
			buf = append(buf, a)
		}
	}
	if len(buf) > n {
		buf = buf[:n]
	}

	outcome := "complete"
	if len(buf) < n {
		outcome = "short"
	}
	accumulationsTotal.WithLabelValues(outcome).Inc()
	return AccumulateResult{Items: buf, Pages: pages}, nil
}
