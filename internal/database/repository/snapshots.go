package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jask/artbrowse/internal/artic"
	"github.com/jask/artbrowse/internal/database"
)

// SnapshotRepo handles saved selections.
type SnapshotRepo struct {
	db *sql.DB
}

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo { return &SnapshotRepo{db: db} }

// Create stores s and its artworks, in order, in one transaction.
func (r *SnapshotRepo) Create(ctx context.Context, s Snapshot, items []artic.Artwork) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots(id, name, page_size, created_at) VALUES (?, ?, ?, ?)
		`, s.ID, s.Name, s.PageSize, s.CreatedAt); err != nil {
			return fmt.Errorf("insert snapshot: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_artworks(snapshot_id, position, artwork_id, title, place_of_origin, artist_display, inscriptions, date_start, date_end)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, a := range items {
			if _, err := stmt.ExecContext(ctx, s.ID, i, a.ID, a.Title, a.PlaceOfOrigin, a.ArtistDisplay, a.Inscriptions, nullInt(a.DateStart), nullInt(a.DateEnd)); err != nil {
				return fmt.Errorf("insert artwork %d: %w", a.ID, err)
			}
		}
		return nil
	})
}

const snapshotColumns = `s.id, s.name, s.page_size, s.created_at,
	(SELECT COUNT(*) FROM snapshot_artworks sa WHERE sa.snapshot_id = s.id)`

func scanSnapshot(row interface{ Scan(...any) error }) (Snapshot, error) {
	var s Snapshot
	err := row.Scan(&s.ID, &s.Name, &s.PageSize, &s.CreatedAt, &s.Count)
	return s, err
}

// List returns every snapshot, newest first.
func (r *SnapshotRepo) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+snapshotColumns+` FROM snapshots s ORDER BY s.created_at DESC, s.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get returns one snapshot or ErrNotFound.
func (r *SnapshotRepo) Get(ctx context.Context, id string) (Snapshot, error) {
	s, err := scanSnapshot(r.db.QueryRowContext(ctx, `SELECT `+snapshotColumns+` FROM snapshots s WHERE s.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	return s, err
}

// Artworks returns the artworks of snapshot id in saved order.
func (r *SnapshotRepo) Artworks(ctx context.Context, id string) ([]artic.Artwork, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT artwork_id, title, place_of_origin, artist_display, inscriptions, date_start, date_end
	FROM snapshot_artworks WHERE snapshot_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []artic.Artwork
	for rows.Next() {
		var a artic.Artwork
		var start, end sql.NullInt64
		if err := rows.Scan(&a.ID, &a.Title, &a.PlaceOfOrigin, &a.ArtistDisplay, &a.Inscriptions, &start, &end); err != nil {
			return nil, err
		}
		a.DateStart, a.DateEnd = intPtr(start), intPtr(end)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes snapshot id and its artworks.
func (r *SnapshotRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
