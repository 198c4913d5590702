package plist

// Attributes strips every comment from v and returns the untyped shape a
// parser of the textual format produces: string, []any or map[string]any.
// A nil Value maps to nil.
func Attributes(v Value) any {
	switch v := v.(type) {
	case String:
		return v.String
	case Array:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Attributes(item)
		}
		return out
	case *Dictionary:
		if v == nil {
			return nil
		}
		out := make(map[string]any, len(v.entries))
		for _, e := range v.entries {
			out[e.Key.String] = Attributes(e.Value)
		}
		return out
	default:
		return nil
	}
}

// Equal reports whether a and b carry the same semantic content. Comments
// are ignored; dictionary entry order is significant because it is part of
// the serialized form.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case String:
		b, ok := b.(String)
		return ok && a.String == b.String
	case Array:
		b, ok := b.(Array)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	case *Dictionary:
		b, ok := b.(*Dictionary)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for i, e := range a.Entries() {
			other := b.entries[i]
			if !e.Key.Equal(other.Key) || !Equal(e.Value, other.Value) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}
