package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/artbrowse/internal/database"
)

// MaintenanceService houses destructive store actions surfaced through the CLI.
type MaintenanceService struct {
	DB *sql.DB
}

// Purge removes every saved snapshot and returns how many were deleted. The
// schema is kept so the store stays usable.
func (s *MaintenanceService) Purge(ctx context.Context) (int, error) {
	if s.DB == nil {
		return 0, fmt.Errorf("maintenance: db not configured")
	}
	var removed int64
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM snapshot_artworks"); err != nil {
			return fmt.Errorf("purge table snapshot_artworks: %w", err)
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM snapshots")
		if err != nil {
			return fmt.Errorf("purge table snapshots: %w", err)
		}
		removed, _ = res.RowsAffected()
		return nil
	}); err != nil {
		return 0, err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return int(removed), nil
}
