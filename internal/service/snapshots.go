package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jask/artbrowse/internal/artic"
	"github.com/jask/artbrowse/internal/database"
	"github.com/jask/artbrowse/internal/database/repository"
)

// ErrEmptySelection is returned when saving a snapshot with nothing selected.
var ErrEmptySelection = errors.New("service: selection is empty")

// SnapshotService exports selections to the local store.
type SnapshotService struct {
	Snapshots *repository.SnapshotRepo
}

// SnapshotDetail is a snapshot with its artworks in saved order.
type SnapshotDetail struct {
	Snapshot repository.Snapshot
	Artworks []artic.Artwork
}

// Save persists items under name. An empty name becomes "selection <timestamp>".
func (s *SnapshotService) Save(ctx context.Context, name string, pageSize int, items []artic.Artwork) (repository.Snapshot, error) {
	if s.Snapshots == nil {
		return repository.Snapshot{}, fmt.Errorf("snapshots: store not configured")
	}
	if len(items) == 0 {
		return repository.Snapshot{}, ErrEmptySelection
	}

	now := database.Now()
	name = strings.TrimSpace(name)
	if name == "" {
		name = "selection " + now.Format("2006-01-02 15:04:05")
	}
	snap := repository.Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		PageSize:  pageSize,
		Count:     len(items),
		CreatedAt: now,
	}
	if err := s.Snapshots.Create(ctx, snap, items); err != nil {
		return repository.Snapshot{}, fmt.Errorf("save snapshot: %w", err)
	}

	log.Info().
		Str("component", "snapshots").
		Str("snapshot_id", snap.ID).
		Int("count", snap.Count).
		Msg("Snapshot saved")
	return snap, nil
}

// List returns saved snapshots, newest first.
func (s *SnapshotService) List(ctx context.Context) ([]repository.Snapshot, error) {
	return s.Snapshots.List(ctx)
}

// Show loads one snapshot and its artworks.
func (s *SnapshotService) Show(ctx context.Context, id string) (SnapshotDetail, error) {
	snap, err := s.Snapshots.Get(ctx, id)
	if err != nil {
		return SnapshotDetail{}, fmt.Errorf("snapshot %s: %w", id, err)
	}
	items, err := s.Snapshots.Artworks(ctx, id)
	if err != nil {
		return SnapshotDetail{}, fmt.Errorf("snapshot %s artworks: %w", id, err)
	}
	return SnapshotDetail{Snapshot: snap, Artworks: items}, nil
}

func (s *SnapshotService) Delete(ctx context.Context, id string) error {
	if err := s.Snapshots.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", id, err)
	}
	return nil
}
