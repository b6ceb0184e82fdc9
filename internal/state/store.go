package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/pantry/grocy"
)

// Overview is one refresh worth of household data.
type Overview struct {
	Stock     []*grocy.Product
	Due       []*grocy.Product
	Overdue   []*grocy.Product
	Expired   []*grocy.Product
	Missing   []*grocy.Product
	Chores    []*grocy.Chore
	Tasks     []*grocy.Task
	Batteries []*grocy.Battery
	Shopping  []*grocy.ShoppingListProduct
	// DBChanged is Grocy's last database change time.
	DBChanged time.Time
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Overview            Overview
	HasData             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when Grocy has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored overview. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(overview *Overview, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if overview != nil {
		s.snapshot.Overview = overview.clone()
		s.snapshot.HasData = true
	} else {
		s.snapshot.Overview = Overview{}
		s.snapshot.HasData = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot. Slices are copied; the
// models they point to are shared and must be treated as read-only.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Overview = s.snapshot.Overview.clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func (o Overview) clone() Overview {
	return Overview{
		Stock:     cloneSlice(o.Stock),
		Due:       cloneSlice(o.Due),
		Overdue:   cloneSlice(o.Overdue),
		Expired:   cloneSlice(o.Expired),
		Missing:   cloneSlice(o.Missing),
		Chores:    cloneSlice(o.Chores),
		Tasks:     cloneSlice(o.Tasks),
		Batteries: cloneSlice(o.Batteries),
		Shopping:  cloneSlice(o.Shopping),
		DBChanged: o.DBChanged,
	}
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
