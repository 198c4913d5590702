package pbxproj

import (
	"fmt"
	"math"
	"strconv"
)

// Attributes is the untyped key/value mapping of one object as parsed from
// a project document.
type Attributes map[string]any

// Shape names used in type mismatch errors.
const (
	shapeString      = "string"
	shapeInteger     = "integer"
	shapeUnsigned    = "unsigned integer"
	shapeArray       = "array"
	shapeStringArray = "array of strings"
	shapeDictionary  = "dictionary"
	shapeNull        = "null"
)

// decoder reads typed fields out of Attributes. Every failure is a
// *DecodeError naming the isa and reference being decoded.
type decoder struct {
	isa   string
	ref   Reference
	attrs Attributes
}

func newDecoder(isa string, ref Reference, attrs Attributes) decoder {
	return decoder{isa: isa, ref: ref, attrs: attrs}
}

func (d decoder) missing(key string) error {
	return &DecodeError{ISA: d.isa, Reference: d.ref, Key: key, Err: ErrMissingKey}
}

func (d decoder) mismatch(key, expected string, v any) error {
	return &DecodeError{
		ISA:       d.isa,
		Reference: d.ref,
		Key:       key,
		Expected:  expected,
		Actual:    shapeOf(v),
		Err:       ErrTypeMismatch,
	}
}

// requireReference fails for an empty reference, the one thing a reference
// is checked for.
func (d decoder) requireReference() error {
	if d.ref.IsZero() {
		return &DecodeError{ISA: d.isa, Err: ErrEmptyReference}
	}
	return nil
}

func (d decoder) lookup(key string) (any, error) {
	v, ok := d.attrs[key]
	if !ok {
		return nil, d.missing(key)
	}
	return v, nil
}

func (d decoder) stringValue(key string) (string, error) {
	v, err := d.lookup(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", d.mismatch(key, shapeString, v)
	}
	return s, nil
}

func (d decoder) intValue(key string) (int, error) {
	v, err := d.lookup(key)
	if err != nil {
		return 0, err
	}
	n, ok := toInt64(v)
	if !ok || n < math.MinInt || n > math.MaxInt {
		return 0, d.mismatch(key, shapeInteger, v)
	}
	return int(n), nil
}


func (d decoder) uintValue(key string) (uint, error) {
	v, err := d.lookup(key)
	if err != nil {
		return 0, err
	}
	n, ok := toUint64(v)
	if !ok || n > math.MaxUint {
		return 0, d.mismatch(key, shapeUnsigned, v)
	}
	return uint(n), nil
}

// referenceSet reads a sequence of strings. Duplicates collapse.
func (d decoder) referenceSet(key string) (ReferenceSet, error) {
	v, err := d.lookup(key)
	if err != nil {
		return ReferenceSet{}, err
	}
	switch items := v.(type) {
	case []string:
		refs := make([]Reference, len(items))
		for i, s := range items {
			refs[i] = Reference(s)
		}
		return NewReferenceSet(refs...), nil
	case []any:
		refs := make([]Reference, len(items))
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return ReferenceSet{}, d.mismatch(key, shapeStringArray, v)
			}
			refs[i] = Reference(s)
		}
		return NewReferenceSet(refs...), nil
	default:
		return ReferenceSet{}, d.mismatch(key, shapeStringArray, v)
	}
}

// toInt64 accepts Go integer kinds and decimal text, the only integer form
// the textual format has.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), uint64(n) <= math.MaxInt64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

func toUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case string:
		u, err := strconv.ParseUint(n, 10, 64)
		return u, err == nil
	default:
		i, ok := toInt64(v)
		return uint64(i), ok && i >= 0
	}
}

func shapeOf(v any) string {
	switch v.(type) {
	case nil:
		return shapeNull
	case string:
		return shapeString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return shapeInteger
	case []any, []string:
		return shapeArray
	case map[string]any, Attributes:
		return shapeDictionary
	default:
		return fmt.Sprintf("%T", v)
	}
}
