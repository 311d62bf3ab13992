package listview

import (
	"github.com/google/uuid"

	"github.com/mtl-hr/timesheet-hub/internal/timesheets"
)

// Store owns the in-memory submission list for one viewer session. It is the
// single writer of the collection; counts are always recomputed from the
// records so they cannot drift.
type Store struct {
	records []timesheets.Timesheet
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Load replaces the whole collection.
func (s *Store) Load(records []timesheets.Timesheet) {
	s.records = append(s.records[:0:0], records...)
}

// Add appends a record to the collection.
func (s *Store) Add(ts timesheets.Timesheet) {
	s.records = append(s.records, ts)
}

// Remove drops the record with the given id. Unknown ids are a no-op.
func (s *Store) Remove(id uuid.UUID) {
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return
		}
	}
}

// Replace swaps the record with the same id in place, preserving position.
func (s *Store) Replace(ts timesheets.Timesheet) {
	for i, r := range s.records {
		if r.ID == ts.ID {
			s.records[i] = ts
			return
		}
	}
}

// Get returns the record with the given id, if present.
func (s *Store) Get(id uuid.UUID) (timesheets.Timesheet, bool) {
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return timesheets.Timesheet{}, false
}

// Records returns a copy of the collection in store order.
func (s *Store) Records() []timesheets.Timesheet {
	return append([]timesheets.Timesheet(nil), s.records...)
}

// Len returns the collection size.
func (s *Store) Len() int {
	return len(s.records)
}

// Counts folds the current records into per-status totals.
func (s *Store) Counts() timesheets.Counts {
	return timesheets.CountByStatus(s.records)
}
