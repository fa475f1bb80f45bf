package storage

import (
	"context"
	"database/sql"
	"time"

	"WorkshopMapDashboard/internal/models"
)

// LogExport records a CSV download.
func (s *Store) LogExport(ctx context.Context, e models.ExportEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	var viewID sql.NullString
	if e.ViewID != "" {
		viewID = sql.NullString{String: e.ViewID, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		s.rebind("INSERT INTO exports(view_id, row_count, client_ip, created_at) VALUES(?, ?, ?, ?)"),
		viewID, e.Rows, e.ClientIP, e.CreatedAt.Unix())
	return err
}

// ListExports returns the most recent downloads first.
func (s *Store) ListExports(ctx context.Context, limit int) ([]models.ExportEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		s.rebind("SELECT id, view_id, row_count, client_ip, created_at FROM exports ORDER BY created_at DESC, id DESC LIMIT ?"),
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.ExportEntry{}
	for rows.Next() {
		var e models.ExportEntry
		var viewID sql.NullString
		var created int64
		if err := rows.Scan(&e.ID, &viewID, &e.Rows, &e.ClientIP, &created); err != nil {
			return nil, err
		}
		e.ViewID = viewID.String
		e.CreatedAt = time.Unix(created, 0).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// PruneExports deletes log entries older than before and reports how many
// were removed.
func (s *Store) PruneExports(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM exports WHERE created_at < ?"), before.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
