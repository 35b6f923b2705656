package sqlite

import (
	"database/sql"
	"time"
)

// Store implements repository.RecordRepository over SQLite.
type Store struct {
	db *DB
}

// NewStore creates a new Store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

func strPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
