package plist

// CommentedString is a serialized primitive paired with an optional
// human-readable annotation. The comment is presentation only: Equal ignores
// it.
type CommentedString struct {
	String  string
	Comment string
}

// NewCommentedString returns an uncommented string.
func NewCommentedString(s string) CommentedString {
	return CommentedString{String: s}
}

// WithComment returns s annotated with comment.
func WithComment(s, comment string) CommentedString {
	return CommentedString{String: s, Comment: comment}
}

// HasComment reports whether an annotation is attached.
func (c CommentedString) HasComment() bool {
	return c.Comment != ""
}

// Equal compares values only.
func (c CommentedString) Equal(other CommentedString) bool {
	return c.String == other.String
}

// Value is one node of a plist document: a String, an Array or a
// *Dictionary.
type Value interface {
	isValue()
}

// String is a scalar plist value. The textual format has no number literal,
// so integers are carried here in decimal form.
type String CommentedString

// Array is an ordered plist sequence.
type Array []Value

func (String) isValue()      {}
func (Array) isValue()       {}
func (*Dictionary) isValue() {}

// Str is shorthand for an uncommented String value.
func Str(s string) String {
	return String{String: s}
}

// CommentedStr is shorthand for a commented String value.
func CommentedStr(s, comment string) String {
	return String{String: s, Comment: comment}
}

// Entry is one key/value pair of a Dictionary.
type Entry struct {
	Key   CommentedString
	Value Value
}

// Dictionary is a plist mapping that keeps insertion order, which is the
// order entries are written in.
type Dictionary struct {
	entries []Entry
	index   map[string]int
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{index: make(map[string]int)}
}

// Set stores value under key. A key already present keeps its position and
// takes the new comment and value.
func (d *Dictionary) Set(key CommentedString, value Value) {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[key.String]; ok {
		d.entries[i] = Entry{Key: key, Value: value}
		return
	}
	d.index[key.String] = len(d.entries)
	d.entries = append(d.entries, Entry{Key: key, Value: value})
}

// SetString is Set with an uncommented key.
func (d *Dictionary) SetString(key string, value Value) {
	d.Set(NewCommentedString(key), value)
}

// Get returns the value stored under key.
func (d *Dictionary) Get(key string) (Value, bool) {
	if d == nil {
		return nil, false
	}
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return d.entries[i].Value, true
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Entries returns a copy of the entries in insertion order.
func (d *Dictionary) Entries() []Entry {
	if d == nil {
		return nil
	}
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Keys returns the entry keys in insertion order.
func (d *Dictionary) Keys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.Key.String
	}
	return out
}
