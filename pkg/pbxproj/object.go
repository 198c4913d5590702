package pbxproj

import (
	"fmt"
	"sort"
	"sync"

	"github.com/odvcencio/xcproj/pkg/plist"
)

// Object is the contract every object kind of a project document satisfies.
//
// Equal compares every value field, while Hash depends on the reference
// alone: two objects with the same reference always hash alike even when
// their fields differ. Containers that deduplicate by hash rely on this.
type Object interface {
	// Reference returns the object's own identity.
	Reference() Reference
	// ISA returns the kind name written as the object's isa attribute.
	ISA() string
	Hash() uint64
	Equal(other Object) bool
	// PlistKeyAndValue encodes the object as its document key and value,
	// asking names for the display names used in comments.
	PlistKeyAndValue(names NameResolver) (plist.CommentedString, plist.Value)
}

// NameResolver resolves a reference to the human-readable name used in
// comments. Implementations must be safe for concurrent use: a document-wide
// encode queries them from many goroutines.
type NameResolver interface {
	ResolveName(ref Reference) (string, bool)
}

// NameResolverFunc adapts a function to NameResolver.
type NameResolverFunc func(ref Reference) (string, bool)

// ResolveName calls f(ref).
func (f NameResolverFunc) ResolveName(ref Reference) (string, bool) {
	return f(ref)
}

// NameTable is a NameResolver backed by an in-memory map.
type NameTable struct {
	mu    sync.RWMutex
	names map[Reference]string
}

// NewNameTable returns a table seeded with names.
func NewNameTable(names map[Reference]string) *NameTable {
	t := &NameTable{names: make(map[Reference]string, len(names))}
	for ref, name := range names {
		t.names[ref] = name
	}
	return t
}

// Set records the display name of ref.
func (t *NameTable) Set(ref Reference, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.names == nil {
		t.names = make(map[Reference]string)
	}
	t.names[ref] = name
}

// Delete forgets ref.
func (t *NameTable) Delete(ref Reference) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.names, ref)
}

// ResolveName implements NameResolver. Empty names count as unresolved.
func (t *NameTable) ResolveName(ref Reference) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	name, ok := t.names[ref]
	return name, ok && name != ""
}

// Len returns the number of recorded names.
func (t *NameTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.names)
}

// DecodeFunc builds an object of one kind from its reference and attributes.
type DecodeFunc func(ref Reference, attrs Attributes) (Object, error)

var (
	decodersMu sync.RWMutex
	decoders   = make(map[string]DecodeFunc)
)

// RegisterDecoder installs the decoder used for objects whose isa attribute
// equals isa. Registering the same isa twice panics.
func RegisterDecoder(isa string, fn DecodeFunc) {
	decodersMu.Lock()
	defer decodersMu.Unlock()
	if fn == nil {
		panic("pbxproj: RegisterDecoder with nil func for " + isa)
	}
	if _, dup := decoders[isa]; dup {
		panic("pbxproj: RegisterDecoder called twice for " + isa)
	}
	decoders[isa] = fn
}

// RegisteredISAs returns the kinds Decode understands, sorted.
func RegisteredISAs() []string {
	decodersMu.RLock()
	defer decodersMu.RUnlock()
	out := make([]string, 0, len(decoders))
	for isa := range decoders {
		out = append(out, isa)
	}
	sort.Strings(out)
	return out
}

// Decode builds the object described by attrs, dispatching on its isa
// attribute. ref must not be empty.
func Decode(ref Reference, attrs Attributes) (Object, error) {
	d := newDecoder("", ref, attrs)
	if err := d.requireReference(); err != nil {
		return nil, err
	}
	isa, err := d.stringValue("isa")
	if err != nil {
		return nil, err
	}
	decodersMu.RLock()
	fn, ok := decoders[isa]
	decodersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("decode %s: %w %q", ref, ErrUnknownISA, isa)
	}
	return fn(ref, attrs)
}
