package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"WorkshopMapDashboard/internal/models"

	"github.com/google/uuid"
)

// viewSpec is the JSON document stored in views.spec.
type viewSpec struct {
	Map         models.FilterSpec `json:"map"`
	Heatmap     models.FilterSpec `json:"heatmap"`
	CountFields []string          `json:"count_fields"`
}

// CreateView assigns an id and creation time to v and stores it.
func (s *Store) CreateView(ctx context.Context, v models.SavedView) (models.SavedView, error) {
	v.ID = uuid.New().String()
	v.CreatedAt = time.Now().UTC().Truncate(time.Second)

	spec, err := json.Marshal(viewSpec{Map: v.Map, Heatmap: v.Heatmap, CountFields: v.CountFields})
	if err != nil {
		return v, fmt.Errorf("encode view spec: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		s.rebind("INSERT INTO views(id, name, spec, created_by, created_at) VALUES(?, ?, ?, ?, ?)"),
		v.ID, v.Name, string(spec), v.CreatedBy, v.CreatedAt.Unix())
	if err != nil {
		return v, err
	}
	return v, nil
}

// GetView returns ErrNotFound when id is unknown.
func (s *Store) GetView(ctx context.Context, id string) (models.SavedView, error) {
	row := s.db.QueryRowContext(ctx,
		s.rebind("SELECT id, name, spec, created_by, created_at FROM views WHERE id = ?"), id)
	v, err := scanView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return v, ErrNotFound
	}
	return v, err
}

// ListViews returns saved views, newest first.
func (s *Store) ListViews(ctx context.Context) ([]models.SavedView, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, spec, created_by, created_at FROM views ORDER BY created_at DESC, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []models.SavedView{}
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// DeleteView returns ErrNotFound when nothing was deleted.
func (s *Store) DeleteView(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM views WHERE id = ?"), id)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanView(row rowScanner) (models.SavedView, error) {
	var v models.SavedView
	var spec string
	var created int64
	if err := row.Scan(&v.ID, &v.Name, &spec, &v.CreatedBy, &created); err != nil {
		return v, err
	}
	var vs viewSpec
	if err := json.Unmarshal([]byte(spec), &vs); err != nil {
		return v, fmt.Errorf("decode view %s: %w", v.ID, err)
	}
	v.Map, v.Heatmap, v.CountFields = vs.Map, vs.Heatmap, vs.CountFields
	v.CreatedAt = time.Unix(created, 0).UTC()
	return v, nil
}
