package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateInsertsOnceAndReturnsSamePointer(t *testing.T) {
	s := NewStore()
	id := DeriveID(RootID, "w", 0)

	first := GetOrCreate(s, id, 42)
	assert.Equal(t, 42, *first)

	*first = 7
	second := GetOrCreate(s, id, 42)
	assert.Same(t, first, second)
	assert.Equal(t, 7, *second, "init value must not overwrite existing state")
	assert.Equal(t, 1, s.Len())
}

func TestGCEvictsRecordsUntouchedLastFrame(t *testing.T) {
	s := NewStore()
	id := DeriveID(RootID, "w", 0)

	s.frame = 1
	GetOrCreate(s, id, 0)
	assert.Equal(t, 0, s.GC(1), "touched this frame, must survive")

	s.frame = 2
	assert.Equal(t, 1, s.GC(2), "untouched in frame 2, must be evicted")
	assert.Equal(t, 0, s.Len())
}

func TestGraceWindowDelaysEviction(t *testing.T) {
	s := NewStore()
	s.Grace = 2
	id := DeriveID(RootID, "w", 0)

	s.frame = 1
	GetOrCreate(s, id, 0)

	for f := uint64(2); f <= 3; f++ {
		s.frame = f
		assert.Equalf(t, 0, s.GC(f), "inside the grace window at frame %d", f)
	}
	s.frame = 4
	assert.Equal(t, 1, s.GC(4), "grace exhausted")
}

func TestTouchingResetsTheGraceClock(t *testing.T) {
	s := NewStore()
	id := DeriveID(RootID, "w", 0)

	for f := uint64(1); f <= 50; f++ {
		s.frame = f
		GetOrCreate(s, id, 0)
		require.Equal(t, 0, s.GC(f))
	}
	assert.Equal(t, 1, s.Len())
}

func TestPeekDoesNotKeepRecordsAlive(t *testing.T) {
	s := NewStore()
	id := DeriveID(RootID, "w", 0)

	s.frame = 1
	GetOrCreate(s, id, 5)

	s.frame = 2
	v, ok := Peek[int](s, id)
	require.True(t, ok)
	assert.Equal(t, 5, *v)
	assert.Equal(t, 1, s.GC(2), "a peek must not refresh the touch stamp")

	_, ok = Peek[int](s, id)
	assert.False(t, ok)
}

func TestTypeMismatchPanics(t *testing.T) {
	s := NewStore()
	id := DeriveID(RootID, "w", 0)
	GetOrCreate(s, id, 1)

	assert.Panics(t, func() { GetOrCreate(s, id, "oops") })
	assert.Panics(t, func() { Peek[string](s, id) })
}

func TestRecordsAreIndependentPerIdentity(t *testing.T) {
	s := NewStore()
	a := GetOrCreate(s, DeriveID(RootID, "a", 0), 1)
	b := GetOrCreate(s, DeriveID(RootID, "b", 0), 2)
	*a = 10
	assert.Equal(t, 2, *b)
	assert.Equal(t, 2, s.Len())
}
