package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/artbrowse/internal/artic"
	"github.com/jask/artbrowse/internal/database"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func year(v int) *int { return &v }

func TestSnapshotRepoCreateAndRead(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := NewSnapshotRepo(openTestDB(t))

	items := []artic.Artwork{
		{ID: 27992, Title: "A Sunday on La Grande Jatte", ArtistDisplay: "Georges Seurat", DateStart: year(1884), DateEnd: year(1886)},
		{ID: 28560, Title: "The Bedroom", PlaceOfOrigin: "France"},
	}
	snap := Snapshot{ID: "snap-1", Name: "favourites", PageSize: 12, CreatedAt: database.Now()}
	require.NoError(t, repo.Create(ctx, snap, items))

	got, err := repo.Get(ctx, "snap-1")
	require.NoError(t, err)
	require.Equal(t, "favourites", got.Name)
	require.Equal(t, 12, got.PageSize)
	require.Equal(t, 2, got.Count)
	require.True(t, got.CreatedAt.Equal(snap.CreatedAt))

	arts, err := repo.Artworks(ctx, "snap-1")
	require.NoError(t, err)
	require.Equal(t, items, arts)
}

func TestSnapshotRepoListNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSnapshotRepo(openTestDB(t))

	now := database.Now()
	require.NoError(t, repo.Create(ctx, Snapshot{ID: "old", Name: "old", PageSize: 12, CreatedAt: now.Add(-time.Hour)}, nil))
	require.NoError(t, repo.Create(ctx, Snapshot{ID: "new", Name: "new", PageSize: 24, CreatedAt: now}, []artic.Artwork{{ID: 1}}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "new", list[0].ID)
	require.Equal(t, 1, list[0].Count)
	require.Equal(t, "old", list[1].ID)
	require.Equal(t, 0, list[1].Count)
}

func TestSnapshotRepoCreateIsAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSnapshotRepo(openTestDB(t))

	dup := []artic.Artwork{{ID: 1}, {ID: 1}}
	err := repo.Create(ctx, Snapshot{ID: "dup", Name: "dup", PageSize: 12, CreatedAt: database.Now()}, dup)
	require.Error(t, err)

	_, err = repo.Get(ctx, "dup")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotRepoDeleteCascades(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openTestDB(t)
	repo := NewSnapshotRepo(db)

	require.NoError(t, repo.Create(ctx, Snapshot{ID: "s", Name: "s", PageSize: 12, CreatedAt: database.Now()}, []artic.Artwork{{ID: 1}, {ID: 2}}))
	require.NoError(t, repo.Delete(ctx, "s"))
	require.ErrorIs(t, repo.Delete(ctx, "s"), ErrNotFound)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshot_artworks").Scan(&n))
	require.Zero(t, n)
}
