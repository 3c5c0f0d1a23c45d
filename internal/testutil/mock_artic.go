// Package testutil provides testing utilities for the artworks API.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
)

// PageRequest records one listing request seen by the mock.
type PageRequest struct {
	Page   int
	Limit  int
	Fields string
	Header http.Header
}

// MockArtic is a configurable mock of the artworks listing endpoint.
// It serves Total synthetic records with ids 1..Total.
type MockArtic struct {
	server *httptest.Server

	mu       sync.Mutex
	total    int
	failPage map[int]int
	gate     map[int]chan struct{}
	releases []func()
	requests []PageRequest
}

// NewMockArtic starts a mock server holding total records.
func NewMockArtic(total int) *MockArtic {
	mock := &MockArtic{
		total:    total,
		failPage: make(map[int]int),
		gate:     make(map[int]chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/artworks", mock.handleArtworks)
	mock.server = httptest.NewServer(mux)
	return mock
}

// URL returns the API base URL (the equivalent of https://api.artic.edu/api/v1).
func (m *MockArtic) URL() string {
	return m.server.URL + "/api/v1"
}

// Close shuts down the mock server.
func (m *MockArtic) Close() {
	m.mu.Lock()
	releases := m.releases
	m.mu.Unlock()
	for _, release := range releases {
		release()
	}
	m.server.Close()
}

// FailPage makes requests for page respond with status.
func (m *MockArtic) FailPage(page, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPage[page] = status
}

// HoldPage blocks responses for page until the returned release func runs.
func (m *MockArtic) HoldPage(page int) (release func()) {
	ch := make(chan struct{})
	var once sync.Once
	release = func() { once.Do(func() { close(ch) }) }
	m.mu.Lock()
	m.gate[page] = ch
	m.releases = append(m.releases, release)
	m.mu.Unlock()
	return release
}

// Requests returns a copy of the requests seen so far.
func (m *MockArtic) Requests() []PageRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PageRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// RequestedPages returns the page parameter of every request, in order.
func (m *MockArtic) RequestedPages() []int {
	reqs := m.Requests()
	out := make([]int, len(reqs))
	for i, r := range reqs {
		out[i] = r.Page
	}
	return out
}

// RequestCount returns the number of requests seen.
func (m *MockArtic) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Reset clears the request log.
func (m *MockArtic) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
}

func (m *MockArtic) handleArtworks(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	m.mu.Lock()
	m.requests = append(m.requests, PageRequest{
		Page:   page,
		Limit:  limit,
		Fields: r.URL.Query().Get("fields"),
		Header: r.Header.Clone(),
	})
	total := m.total
	status, failing := m.failPage[page]
	gate := m.gate[page]
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}
	if failing {
		w.WriteHeader(status)
		_, _ = fmt.Fprintf(w, `{"status":%d,"error":"mock failure"}`, status)
		return
	}
	if page < 1 || limit < 1 {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":400,"error":"invalid page or limit"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(PageBody(page, limit, total))
}

// Artwork returns the synthetic record with the given id.
func Artwork(id int) map[string]any {
	start := 1800 + id
	return map[string]any{
		"id":              id,
		"title":           fmt.Sprintf("Artwork %d", id),
		"place_of_origin": "Chicago",
		"artist_display":  fmt.Sprintf("Artist %d", id),
		"inscriptions":    nil,
		"date_start":      start,
		"date_end":        start + 1,
	}
}

// PageBody builds the listing response for page over total records.
func PageBody(page, limit, total int) map[string]any {
	offset := (page - 1) * limit
	data := make([]map[string]any, 0, limit)
	for id := offset + 1; id <= total && id <= offset+limit; id++ {
		data = append(data, Artwork(id))
	}
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return map[string]any{
		"pagination": map[string]any{
			"total":        total,
			"limit":        limit,
			"offset":       offset,
			"total_pages":  totalPages,
			"current_page": page,
		},
		"data": data,
	}
}
