package browse

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jask/artbrowse/internal/artic"
)

// PageFetcher fetches one 1-based page of artworks.
type PageFetcher interface {
	FetchPage(ctx context.Context, page, limit int) (artic.Page, error)
}

// Loader runs page loads. Starting a load cancels the one before it, so at
// most one page request is in flight per loader.
type Loader struct {
	fetcher PageFetcher
	logger  zerolog.Logger

	mu     sync.Mutex
	token  uint64
	cancel context.CancelFunc
}

// NewLoader returns a loader over fetcher.
func NewLoader(fetcher PageFetcher, logger zerolog.Logger) *Loader {
	return &Loader{fetcher: fetcher, logger: logger}
}

// Load performs req and returns PageLoaded or PageFailed for req.Token.
// Failures are logged; the caller's state is left to Reduce.
func (l *Loader) Load(ctx context.Context, req LoadRequest) Event {
	ctx, cancel := context.WithCancel(ctx)
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.token, l.cancel = req.Token, cancel
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		if l.token == req.Token {
			l.cancel = nil
		}
		l.mu.Unlock()
		cancel()
	}()

	page, err := l.fetcher.FetchPage(ctx, req.Page, req.Limit)
	if err != nil {
		ev := l.logger.Error()
		if errors.Is(err, context.Canceled) {
			ev = l.logger.Debug()
		}
		ev.Err(err).
			Uint64("token", req.Token).
			Int("page", req.Page).
			Int("limit", req.Limit).
			Str("error_class", string(artic.ClassOf(err))).
			Msg("Page load failed")
		return PageFailed{Token: req.Token, Err: err}
	}

	l.logger.Info().
		Uint64("token", req.Token).
		Int("page", req.Page).
		Int("limit", req.Limit).
		Int("records", len(page.Data)).
		Int("total", page.Pagination.Total).
		Msg("Page loaded")
	return PageLoaded{Token: req.Token, Page: page}
}

// Close cancels the in-flight load, if any.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
