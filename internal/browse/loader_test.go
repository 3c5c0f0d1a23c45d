package browse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/artbrowse/internal/artic"
	mock "github.com/jask/artbrowse/internal/testutil"
)

func newMockClient(t *testing.T, srv *mock.MockArtic) *artic.Client {
	t.Helper()
	cfg := artic.DefaultConfig()
	cfg.BaseURL = srv.URL()
	cfg.Timeout = 2 * time.Second
	c, err := artic.New(cfg)
	require.NoError(t, err)
	return c
}

func TestLoaderScenario(t *testing.T) {
	srv := mock.NewMockArtic(133)
	defer srv.Close()
	l := NewLoader(newMockClient(t, srv), zerolog.Nop())

	s, req := Reduce(NewState(12), Started{})
	ev := l.Load(context.Background(), *req)
	s, _ = Reduce(s, ev)

	require.Len(t, s.Artworks, 12)
	require.Equal(t, 133, s.TotalRecords)
	require.False(t, s.Loading)
	require.Equal(t, []int{1}, srv.RequestedPages())
}

func TestLoaderOneRequestPerPageChange(t *testing.T) {
	srv := mock.NewMockArtic(133)
	defer srv.Close()
	l := NewLoader(newMockClient(t, srv), zerolog.Nop())

	s := NewState(12)
	changes := []PageChanged{{Page: 1, Rows: 12}, {Page: 1, Rows: 12}, {Page: 1, Rows: 24}, {Page: 0, Rows: 24}}
	for _, pc := range changes {
		var req *LoadRequest
		s, req = Reduce(s, pc)
		if req == nil {
			continue
		}
		require.True(t, s.Loading)
		s, _ = Reduce(s, l.Load(context.Background(), *req))
		require.False(t, s.Loading)
	}

	reqs := srv.Requests()
	require.Len(t, reqs, 3)
	require.Equal(t, []int{2, 2, 1}, srv.RequestedPages())
	require.Equal(t, 12, reqs[0].Limit)
	require.Equal(t, 24, reqs[1].Limit)
	require.Equal(t, 24, reqs[2].Limit)
}

func TestLoaderFailureLeavesState(t *testing.T) {
	srv := mock.NewMockArtic(133)
	defer srv.Close()
	srv.FailPage(2, 500)
	l := NewLoader(newMockClient(t, srv), zerolog.Nop())

	s, req := Reduce(NewState(12), Started{})
	s, _ = Reduce(s, l.Load(context.Background(), *req))
	before := ids(s.Artworks)

	s, req = Reduce(s, PageChanged{Page: 1, Rows: 12})
	ev := l.Load(context.Background(), *req)
	failed, ok := ev.(PageFailed)
	require.True(t, ok, "got %T", ev)
	require.Equal(t, req.Token, failed.Token)

	s, _ = Reduce(s, ev)
	require.Equal(t, before, ids(s.Artworks))
	require.Equal(t, 133, s.TotalRecords)
	require.False(t, s.Loading)
	require.Equal(t, artic.ErrorClassServer, artic.ClassOf(s.Err))
}

func TestLoaderSupersedingLoadCancelsPrevious(t *testing.T) {
	srv := mock.NewMockArtic(133)
	defer srv.Close()
	release := srv.HoldPage(2)
	defer release()
	l := NewLoader(newMockClient(t, srv), zerolog.Nop())

	s := NewState(12)
	s, first := Reduce(s, PageChanged{Page: 1, Rows: 12})
	firstDone := make(chan Event, 1)
	go func() { firstDone <- l.Load(context.Background(), *first) }()
	require.Eventually(t, func() bool { return srv.RequestCount() == 1 }, time.Second, 5*time.Millisecond)

	s, second := Reduce(s, PageChanged{Page: 2, Rows: 12})
	secondEv := l.Load(context.Background(), *second)

	var firstEv Event
	select {
	case firstEv = <-firstDone:
	case <-time.After(2 * time.Second):
		t.Fatal("superseded load was not cancelled")
	}
	failed, ok := firstEv.(PageFailed)
	require.True(t, ok, "got %T", firstEv)
	require.True(t, errors.Is(failed.Err, context.Canceled))

	s, _ = Reduce(s, secondEv)
	s, _ = Reduce(s, firstEv)
	require.Equal(t, 25, s.Artworks[0].ID)
	require.NoError(t, s.Err)
	require.False(t, s.Loading)
}

func TestLoaderClose(t *testing.T) {
	srv := mock.NewMockArtic(133)
	defer srv.Close()
	release := srv.HoldPage(1)
	defer release()
	l := NewLoader(newMockClient(t, srv), zerolog.Nop())

	done := make(chan Event, 1)
	go func() { done <- l.Load(context.Background(), LoadRequest{Token: 1, Page: 1, Limit: 12}) }()
	require.Eventually(t, func() bool { return srv.RequestCount() == 1 }, time.Second, 5*time.Millisecond)
	l.Close()

	select {
	case ev := <-done:
		_, ok := ev.(PageFailed)
		require.True(t, ok, "got %T", ev)
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not cancel the load")
	}
}
