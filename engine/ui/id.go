package ui

// Widget identity. A widget declared at the same relative position across
// frames (same parent chain + key + occurrence) hashes to the same ID, which
// is what ties its retained state together. Different positions must hash to
// different IDs; a duplicate within one frame trips an assertion in declare().

// ID identifies a widget's retained state across frames.
type ID uint64

// FNV-1a 64-bit. IDs never cross process boundaries, so the only requirements
// are stability and distribution.
const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

// RootID is the parent of all top-level widgets in a session.
const RootID = ID(fnvOffset)

// DeriveID computes the identity of a widget from its parent identity, a
// caller-supplied key, and the occurrence index distinguishing siblings that
// share a key (loop bodies). Pure function, no allocation.
func DeriveID(parent ID, key string, occurrence int) ID {
	h := uint64(fnvOffset)
	p := uint64(parent)
	for i := 0; i < 8; i++ {
		h = (h ^ (p & 0xff)) * fnvPrime
		p >>= 8
	}
	for i := 0; i < len(key); i++ {
		h = (h ^ uint64(key[i])) * fnvPrime
	}
	// Separator byte keeps ("a", 1) distinct from ("a1", 0).
	h = (h ^ 0x1f) * fnvPrime
	o := uint64(occurrence)
	for i := 0; i < 8; i++ {
		h = (h ^ (o & 0xff)) * fnvPrime
		o >>= 8
	}
	return ID(h)
}
