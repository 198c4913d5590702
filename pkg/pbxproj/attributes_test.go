package pbxproj

import (
	"errors"
	"math"
	"testing"
)

func TestDecoderIntAcceptsDecimalTextAndIntegers(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"decimal text", "2147483647", 2147483647},
		{"negative text", "-4", -4},
		{"int", 12, 12},
		{"int64", int64(7), 7},
		{"uint8", uint8(3), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDecoder("T", "R", Attributes{"k": tt.in})
			got, err := d.intValue("k")
			if err != nil {
				t.Fatalf("intValue: %v", err)
			}
			if got != tt.want {
				t.Errorf("intValue = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDecoderShapeMismatches(t *testing.T) {
	tests := []struct {
		name     string
		read     func(d decoder) error
		in       any
		expected string
		actual   string
	}{
		{"int from float", func(d decoder) error { _, err := d.intValue("k"); return err }, 1.5, "integer", "float64"},
		{"int from words", func(d decoder) error { _, err := d.intValue("k"); return err }, "many", "integer", "string"},
		{"int from padded text", func(d decoder) error { _, err := d.intValue("k"); return err }, " 1", "integer", "string"},
		{"int overflow", func(d decoder) error { _, err := d.intValue("k"); return err }, uint64(math.MaxUint64), "integer", "integer"},
		{"uint from negative", func(d decoder) error { _, err := d.uintValue("k"); return err }, -1, "unsigned integer", "integer"},
		{"uint from negative text", func(d decoder) error { _, err := d.uintValue("k"); return err }, "-1", "unsigned integer", "string"},
		{"uint from bool", func(d decoder) error { _, err := d.uintValue("k"); return err }, true, "unsigned integer", "bool"},
		{"set from string", func(d decoder) error { _, err := d.referenceSet("k"); return err }, "F1", "array of strings", "string"},
		{"set with number", func(d decoder) error { _, err := d.referenceSet("k"); return err }, []any{"F1", 2}, "array of strings", "array"},
		{"set from null", func(d decoder) error { _, err := d.referenceSet("k"); return err }, nil, "array of strings", "null"},
		{"string from dict", func(d decoder) error { _, err := d.stringValue("k"); return err }, map[string]any{}, "string", "dictionary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(newDecoder("T", "R", Attributes{"k": tt.in}))
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("err = %v, want *DecodeError", err)
			}
			if !errors.Is(err, ErrTypeMismatch) {
				t.Fatalf("err = %v, want ErrTypeMismatch", err)
			}
			if de.Key != "k" || de.ISA != "T" || de.Reference != "R" {
				t.Errorf("context = (%q, %q, %q), want (k, T, R)", de.Key, de.ISA, de.Reference)
			}
			if de.Expected != tt.expected || de.Actual != tt.actual {
				t.Errorf("shape = (%q, %q), want (%q, %q)", de.Expected, de.Actual, tt.expected, tt.actual)
			}
		})
	}
}

func TestDecoderMissingKey(t *testing.T) {
	d := newDecoder("T", "R", Attributes{})
	_, err := d.uintValue("absent")
	if !errors.Is(err, ErrMissingKey) {
		t.Fatalf("err = %v, want ErrMissingKey", err)
	}
	want := `decode T R: key "absent": missing key`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestDecoderReferenceSetAcceptsStringSlices(t *testing.T) {
	d := newDecoder("T", "R", Attributes{
		"any":   []any{"B", "A", "B"},
		"typed": []string{"A", "B"},
		"empty": []any{},
	})
	for _, key := range []string{"any", "typed"} {
		s, err := d.referenceSet(key)
		if err != nil {
			t.Fatalf("referenceSet(%s): %v", key, err)
		}
		if !s.Equal(NewReferenceSet("A", "B")) {
			t.Errorf("referenceSet(%s) = %v", key, s.Sorted())
		}
	}
	s, err := d.referenceSet("empty")
	if err != nil || s.Len() != 0 {
		t.Errorf("referenceSet(empty) = %v, %v", s.Sorted(), err)
	}
}
