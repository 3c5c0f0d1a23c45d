package browse

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/artbrowse/internal/artic"
	mock "github.com/jask/artbrowse/internal/testutil"
)

func TestAccumulateScenarioTwentyFiveOfTwelve(t *testing.T) {
	f := newFakeFetcher(133)

	res, err := Accumulate(context.Background(), f, 25, 12)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, f.pages())
	require.Equal(t, 3, res.Pages)
	require.Len(t, res.Items, 25)
	for i, a := range res.Items {
		require.Equal(t, i+1, a.ID)
	}
}

func TestAccumulateExactMultipleStopsEarly(t *testing.T) {
	f := newFakeFetcher(133)
	res, err := Accumulate(context.Background(), f, 24, 12)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, f.pages())
	require.Len(t, res.Items, 24)
}

func TestAccumulateBeyondTotalIsBounded(t *testing.T) {
	f := newFakeFetcher(20)

	res, err := Accumulate(context.Background(), f, 50, 12)
	require.NoError(t, err)
	require.Len(t, res.Items, 20)
	require.LessOrEqual(t, len(f.pages()), 5)
	require.Equal(t, []int{1, 2, 3}, f.pages())
}

func TestAccumulateHugeTargetStopsAtEndOfData(t *testing.T) {
	f := newFakeFetcher(20)

	res, err := Accumulate(context.Background(), f, 999999999999, 12)
	require.NoError(t, err)
	require.Equal(t, ids(artworksRange(1, 20)), ids(res.Items))
	require.Equal(t, []int{1, 2, 3}, f.pages())
	require.Equal(t, 3, res.Pages)
}

func TestAccumulateMaxIntTargetDoesNotOverflow(t *testing.T) {
	f := newFakeFetcher(5)

	res, err := Accumulate(context.Background(), f, math.MaxInt, 12)
	require.NoError(t, err)
	require.Len(t, res.Items, 5)
	require.Equal(t, []int{1, 2}, f.pages())
}

func TestAccumulateNonPositiveIsNoop(t *testing.T) {
	f := newFakeFetcher(20)
	res, err := Accumulate(context.Background(), f, 0, 12)
	require.NoError(t, err)
	require.Empty(t, res.Items)
	require.Empty(t, f.pages())
}

func TestAccumulateRejectsBadPageSize(t *testing.T) {
	_, err := Accumulate(context.Background(), newFakeFetcher(20), 5, 0)
	require.Error(t, err)
}

func TestAccumulateFailureReturnsNoItems(t *testing.T) {
	f := newFakeFetcher(133)
	boom := errors.New("boom")
	f.failOn[2] = boom

	res, err := Accumulate(context.Background(), f, 30, 12)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "page 2")
	require.Empty(t, res.Items)
	require.Equal(t, 1, res.Pages)
}

// shiftingFetcher returns overlapping pages, as a listing does when records
// are inserted between requests.
type shiftingFetcher struct{}

func (shiftingFetcher) FetchPage(_ context.Context, page, limit int) (artic.Page, error) {
	start := (page-1)*limit + 1 - (page - 1)
	var data []artic.Artwork
	for id := start; id < start+limit; id++ {
		data = append(data, artwork(id))
	}
	return artic.Page{Data: data, Pagination: artic.Pagination{Total: 1000}}, nil
}

func TestAccumulateSkipsDuplicates(t *testing.T) {
	res, err := Accumulate(context.Background(), shiftingFetcher{}, 10, 5)
	require.NoError(t, err)
	seen := map[int]bool{}
	for _, a := range res.Items {
		require.False(t, seen[a.ID], "duplicate id %d", a.ID)
		seen[a.ID] = true
	}
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, ids(res.Items))
}

func TestAccumulateAgainstAPI(t *testing.T) {
	srv := mock.NewMockArtic(133)
	defer srv.Close()

	cfg := artic.DefaultConfig()
	cfg.BaseURL = srv.URL()
	cfg.Timeout = 2 * time.Second
	client, err := artic.New(cfg)
	require.NoError(t, err)

	res, err := Accumulate(context.Background(), client, 25, 12)
	require.NoError(t, err)
	require.Len(t, res.Items, 25)
	require.Equal(t, []int{1, 2, 3}, srv.RequestedPages())
	for _, r := range srv.Requests() {
		require.Equal(t, 12, r.Limit)
	}

	srv.Reset()
	srv.FailPage(2, http.StatusInternalServerError)
	_, err = Accumulate(context.Background(), client, 25, 12)
	require.Equal(t, artic.ErrorClassServer, artic.ClassOf(err))
	require.Equal(t, []int{1, 2}, srv.RequestedPages())
}

func artworksRange(from, to int) []artic.Artwork {
	out := make([]artic.Artwork, 0, to-from+1)
	for id := from; id <= to; id++ {
		out = append(out, artwork(id))
	}
	return out
}
