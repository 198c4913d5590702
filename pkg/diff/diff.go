// Package diff compares two sets of project document objects by reference.
package diff

import (
	"sort"

	"github.com/odvcencio/xcproj/pkg/pbxproj"
)

// ChangeType classifies what happened to an object between two revisions
// of a document.
type ChangeType int

const (
	Added    ChangeType = iota // Object exists only in the after revision.
	Removed                    // Object exists only in the before revision.
	Modified                   // Same reference in both revisions, different fields.
)

func (c ChangeType) String() string {
	switch c {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

// ObjectChange records one object-level change.
type ObjectChange struct {
	Type      ChangeType
	Reference pbxproj.Reference
	Before    pbxproj.Object // nil for Added.
	After     pbxproj.Object // nil for Removed.
}

// Diff holds the changes between two revisions, ordered by reference.
type Diff struct {
	Changes []ObjectChange
}

// Empty reports whether the revisions hold equal objects.
func (d *Diff) Empty() bool {
	return d == nil || len(d.Changes) == 0
}

// DiffObjects matches objects by reference. Objects present on both sides
// are Modified when Equal reports a difference; later duplicates of a
// reference on either side are ignored.
func DiffObjects(before, after []pbxproj.Object) *Diff {
	beforeMap := index(before)
	afterMap := index(after)

	d := &Diff{}
	for ref, b := range beforeMap {
		a, ok := afterMap[ref]
		switch {
		case !ok:
			d.Changes = append(d.Changes, ObjectChange{Type: Removed, Reference: ref, Before: b})
		case !b.Equal(a):
			d.Changes = append(d.Changes, ObjectChange{Type: Modified, Reference: ref, Before: b, After: a})
		}
	}
	for ref, a := range afterMap {
		if _, ok := beforeMap[ref]; !ok {
			d.Changes = append(d.Changes, ObjectChange{Type: Added, Reference: ref, After: a})
		}
	}

	sort.Slice(d.Changes, func(i, j int) bool {
		return d.Changes[i].Reference < d.Changes[j].Reference
	})
	return d
}

func index(objs []pbxproj.Object) map[pbxproj.Reference]pbxproj.Object {
	m := make(map[pbxproj.Reference]pbxproj.Object, len(objs))
	for _, o := range objs {
		if _, seen := m[o.Reference()]; !seen {
			m[o.Reference()] = o
		}
	}
	return m
}
