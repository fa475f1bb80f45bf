package models

import "time"

// SavedView is a named, shareable dashboard state.
type SavedView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Map         FilterSpec `json:"map"`
	Heatmap     FilterSpec `json:"heatmap"`
	CountFields []string   `json:"count_fields"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ExportEntry records one CSV download.
type ExportEntry struct {
	ID        int64     `json:"id"`
	ViewID    string    `json:"view_id,omitempty"`
	Rows      int       `json:"rows"`
	ClientIP  string    `json:"client_ip"`
	CreatedAt time.Time `json:"created_at"`
}
