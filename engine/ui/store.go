package ui

import "fmt"

// Retained state store: the only structure whose lifetime spans frames.
// Records are created lazily, stamped on every touch, and swept by GC when
// they go untouched past the grace window. Single-threaded by design.

type record struct {
	value       any
	lastTouched uint64
}

// Store maps widget identity to a per-widget state record.
type Store struct {
	records map[ID]*record
	frame   uint64 // current frame number, advanced by the frame controller

	// Grace is how many frames a record may go untouched before GC evicts
	// it. Zero means a record not touched in the just-completed frame is
	// gone; widgets animating out want a small positive value.
	Grace uint64
}

func NewStore() *Store {
	return &Store{records: make(map[ID]*record, 256)}
}

// Len reports the number of live records.
func (s *Store) Len() int { return len(s.records) }

// Frame reports the store's current frame stamp.
func (s *Store) Frame() uint64 { return s.frame }

// GetOrCreate returns the state of type T for id, inserting init on first
// access, and stamps the record as touched this frame. Requesting a different
// type than the one stored is a contract violation (identity collision or
// misuse) and panics.
func GetOrCreate[T any](s *Store, id ID, init T) *T {
	if rec, ok := s.records[id]; ok {
		rec.lastTouched = s.frame
		v, ok := rec.value.(*T)
		if !ok {
			panic(fmt.Sprintf("ui: state type mismatch for id %#x: stored %T, requested *%T", uint64(id), rec.value, init))
		}
		return v
	}
	v := new(T)
	*v = init
	s.records[id] = &record{value: v, lastTouched: s.frame}
	return v
}

// Peek reads the state of type T for id without stamping it, so a lookup from
// a different widget (a parent reading a child's cached measurement before the
// child is declared this frame) does not keep the record alive by itself.
func Peek[T any](s *Store, id ID) (*T, bool) {
	rec, ok := s.records[id]
	if !ok {
		return nil, false
	}
	v, ok := rec.value.(*T)
	if !ok {
		panic(fmt.Sprintf("ui: state type mismatch for id %#x: stored %T", uint64(id), rec.value))
	}
	return v, true
}

// GC removes every record whose last touch is older than the grace window.
// Called once per frame by the frame controller after the frame completes.
// Returns the number of evicted records.
func (s *Store) GC(frame uint64) int {
	evicted := 0
	for id, rec := range s.records {
		if rec.lastTouched+s.Grace < frame {
			delete(s.records, id)
			evicted++
		}
	}
	return evicted
}
