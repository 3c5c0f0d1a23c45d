package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/artbrowse/internal/artic"
	"github.com/jask/artbrowse/internal/database/repository"
	mock "github.com/jask/artbrowse/internal/testutil"
)

type harness struct {
	srv  *mock.MockArtic
	dir  string
	base []string
}

func newHarness(t *testing.T, total int) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("ARTBROWSE_CONFIG", filepath.Join(dir, "config.toml"))

	srv := mock.NewMockArtic(total)
	t.Cleanup(srv.Close)
	return &harness{
		srv: srv,
		dir: dir,
		base: []string{
			"--base-url", srv.URL(),
			"--store", filepath.Join(dir, "snapshots.db"),
			"--timeout", "2s",
		},
	}
}

func (h *harness) execute(args ...string) (stdout, stderr string, err error) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, h.base...))
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestPageCommand(t *testing.T) {
	h := newHarness(t, 133)

	out, _, err := h.execute("page", "--page", "2", "--limit", "12")
	require.NoError(t, err)
	require.Contains(t, out, "Artwork 13")
	require.Contains(t, out, "Artwork 24")
	require.NotContains(t, out, "Artwork 25")
	require.Contains(t, out, "page 2/12, 133 records")

	reqs := h.srv.Requests()
	require.Len(t, reqs, 1)
	require.Equal(t, 2, reqs[0].Page)
	require.Equal(t, 12, reqs[0].Limit)
}

func TestPageCommandJSON(t *testing.T) {
	h := newHarness(t, 133)

	out, _, err := h.execute("page", "--json")
	require.NoError(t, err)

	var page artic.Page
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Data, 12)
	require.Equal(t, 1, page.Data[0].ID)
	require.Equal(t, 133, page.Pagination.Total)
}

func TestPageCommandUsesConfiguredPageSize(t *testing.T) {
	h := newHarness(t, 133)
	t.Setenv("ARTBROWSE_UI_PAGE_SIZE", "30")

	_, _, err := h.execute("page")
	require.NoError(t, err)
	require.Equal(t, 30, h.srv.Requests()[0].Limit)
}

func TestPageCommandFailure(t *testing.T) {
	h := newHarness(t, 133)
	h.srv.FailPage(1, 500)

	_, _, err := h.execute("page")
	require.Error(t, err)
	require.Equal(t, artic.ErrorClassServer, artic.ClassOf(err))
}

func TestSelectCommand(t *testing.T) {
	h := newHarness(t, 133)

	out, _, err := h.execute("select", "25", "--limit", "12", "--json")
	require.NoError(t, err)

	var items []artic.Artwork
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 25)
	for i, a := range items {
		require.Equal(t, i+1, a.ID)
	}
	require.Equal(t, []int{1, 2, 3}, h.srv.RequestedPages())
}

func TestSelectCommandBeyondTotal(t *testing.T) {
	h := newHarness(t, 20)

	out, _, err := h.execute("select", "100", "--limit", "10")
	require.NoError(t, err)
	require.Contains(t, out, "selected 20 of first 100")
}

func TestSelectCommandRejectsInvalidCount(t *testing.T) {
	h := newHarness(t, 133)

	for _, arg := range []string{"abc", "0"} {
		_, _, err := h.execute("select", arg)
		require.Error(t, err, arg)
	}
	require.Zero(t, h.srv.RequestCount())
}

var savedRe = regexp.MustCompile(`saved snapshot (\S+) \(picks\)`)

func TestSnapshotLifecycle(t *testing.T) {
	h := newHarness(t, 133)

	_, stderr, err := h.execute("select", "5", "--save", "picks")
	require.NoError(t, err)
	m := savedRe.FindStringSubmatch(stderr)
	require.Len(t, m, 2, stderr)
	id := m[1]

	out, _, err := h.execute("snapshots", "list")
	require.NoError(t, err)
	require.Contains(t, out, "picks")
	require.Contains(t, out, id)

	out, _, err = h.execute("snapshots", "show", id, "--json")
	require.NoError(t, err)
	var items []artic.Artwork
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 5)
	require.Equal(t, 5, items[4].ID)

	out, _, err = h.execute("snapshots", "delete", id)
	require.NoError(t, err)
	require.Contains(t, out, "deleted "+id)

	_, _, err = h.execute("snapshots", "delete", id)
	require.ErrorIs(t, err, repository.ErrNotFound)

	out, _, err = h.execute("snapshots", "list")
	require.NoError(t, err)
	require.Contains(t, out, "no snapshots")
}

func TestSnapshotsPurge(t *testing.T) {
	h := newHarness(t, 133)

	_, _, err := h.execute("select", "3", "--save", "a")
	require.NoError(t, err)
	_, _, err = h.execute("select", "4", "--save", "b")
	require.NoError(t, err)

	_, _, err = h.execute("snapshots", "purge")
	require.Error(t, err)

	out, _, err := h.execute("snapshots", "purge", "--yes")
	require.NoError(t, err)
	require.Contains(t, out, "deleted 2 snapshots")
}

func TestConfigInit(t *testing.T) {
	h := newHarness(t, 1)
	path := filepath.Join(h.dir, "config.toml")

	out, _, err := h.execute("config", "init")
	require.NoError(t, err)
	require.Contains(t, out, path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, _, err = h.execute("config", "init")
	require.Error(t, err)

	_, _, err = h.execute("config", "init", "--force")
	require.NoError(t, err)
}
