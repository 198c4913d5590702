package pbxproj

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Reference is the opaque identifier of an object within a project
// document. It is both an object's own identity and the way one object
// points at another; it does not dereference on its own.
type Reference string

// IsZero reports whether r is empty.
func (r Reference) IsZero() bool {
	return r == ""
}

// Hash returns a stable 64-bit hash of the raw identifier.
func (r Reference) Hash() uint64 {
	return xxhash.Sum64String(string(r))
}

// ReferenceSet is an immutable set of references. The zero value is the
// empty set. With and Without return new sets and never modify the
// receiver, so a set may be shared freely between values.
type ReferenceSet struct {
	m map[Reference]struct{}
}

// NewReferenceSet builds a set from refs; duplicates collapse.
func NewReferenceSet(refs ...Reference) ReferenceSet {
	m := make(map[Reference]struct{}, len(refs))
	for _, r := range refs {
		m[r] = struct{}{}
	}
	return ReferenceSet{m: m}
}

// Len returns the number of members.
func (s ReferenceSet) Len() int {
	return len(s.m)
}

// Has reports whether r is a member.
func (s ReferenceSet) Has(r Reference) bool {
	_, ok := s.m[r]
	return ok
}

// With returns a copy of s that contains r.
func (s ReferenceSet) With(r Reference) ReferenceSet {
	out := s.clone(len(s.m) + 1)
	out.m[r] = struct{}{}
	return out
}

// Without returns a copy of s that does not contain r.
func (s ReferenceSet) Without(r Reference) ReferenceSet {
	out := s.clone(len(s.m))
	delete(out.m, r)
	return out
}

// Sorted returns the members in byte order. This is the order sets are
// serialized in.
func (s ReferenceSet) Sorted() []Reference {
	out := make([]Reference, 0, len(s.m))
	for r := range s.m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal reports whether s and other have the same members.
func (s ReferenceSet) Equal(other ReferenceSet) bool {
	if len(s.m) != len(other.m) {
		return false
	}
	for r := range s.m {
		if _, ok := other.m[r]; !ok {
			return false
		}
	}
	return true
}

func (s ReferenceSet) clone(capacity int) ReferenceSet {
	m := make(map[Reference]struct{}, capacity)
	for r := range s.m {
		m[r] = struct{}{}
	}
	return ReferenceSet{m: m}
}
