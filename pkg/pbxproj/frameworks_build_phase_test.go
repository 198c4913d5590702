package pbxproj

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/odvcencio/xcproj/pkg/plist"
)

func names(m map[Reference]string) NameResolver {
	return NewNameTable(m)
}

func TestNewFrameworksBuildPhaseDefaultsMask(t *testing.T) {
	p := NewFrameworksBuildPhase("B", NewReferenceSet(), 0)
	if p.BuildActionMask() != 2147483647 {
		t.Errorf("BuildActionMask = %d, want 2147483647", p.BuildActionMask())
	}
	p = NewFrameworksBuildPhase("B", NewReferenceSet(), 0, WithBuildActionMask(8))
	if p.BuildActionMask() != 8 {
		t.Errorf("BuildActionMask = %d, want 8", p.BuildActionMask())
	}
}

func TestFrameworksBuildPhaseEncode(t *testing.T) {
	p := NewFrameworksBuildPhase("B", NewReferenceSet("F2", "F1"), 1, WithBuildActionMask(8))
	key, value := p.PlistKeyAndValue(names(map[Reference]string{"B": "MyApp"}))

	if diff := cmp.Diff(plist.WithComment("B", "Frameworks"), key); diff != "" {
		t.Errorf("key mismatch (-want +got):\n%s", diff)
	}
	dict, ok := value.(*plist.Dictionary)
	if !ok {
		t.Fatalf("value is %T, want *plist.Dictionary", value)
	}
	want := []plist.Entry{
		{Key: plist.NewCommentedString("isa"), Value: plist.Str("PBXFrameworksBuildPhase")},
		{Key: plist.NewCommentedString("buildActionMask"), Value: plist.Str("8")},
		{Key: plist.NewCommentedString("files"), Value: plist.Array{
			plist.CommentedStr("F1", "MyApp in Frameworks"),
			plist.CommentedStr("F2", "MyApp in Frameworks"),
		}},
		{Key: plist.NewCommentedString("runOnlyForDeploymentPostprocessing"), Value: plist.Str("1")},
	}
	if diff := cmp.Diff(want, dict.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestFrameworksBuildPhaseCommentUsesPhaseName(t *testing.T) {
	p := NewFrameworksBuildPhase("B", NewReferenceSet("F"), 0)
	table := names(map[Reference]string{"F": "Foo.framework"})

	_, value := p.PlistKeyAndValue(table)
	files, _ := value.(*plist.Dictionary).Get("files")
	entry := files.(plist.Array)[0].(plist.String)
	if entry.Comment != "" {
		t.Errorf("file comment = %q, want none when the phase has no name", entry.Comment)
	}

	_, value = p.PlistKeyAndValue(nil)
	files, _ = value.(*plist.Dictionary).Get("files")
	if c := files.(plist.Array)[0].(plist.String).Comment; c != "" {
		t.Errorf("file comment with nil resolver = %q, want none", c)
	}

	blank := NameResolverFunc(func(Reference) (string, bool) { return "", true })
	_, value = p.PlistKeyAndValue(blank)
	files, _ = value.(*plist.Dictionary).Get("files")
	if c := files.(plist.Array)[0].(plist.String).Comment; c != "" {
		t.Errorf("file comment with empty name = %q, want none", c)
	}
}

func TestFrameworksBuildPhaseEncodeIsDeterministic(t *testing.T) {
	refs := []Reference{"E", "C", "A", "D", "B"}
	p := NewFrameworksBuildPhase("B", NewReferenceSet(refs...), 0)
	table := names(nil)
	_, first := p.PlistKeyAndValue(table)
	for i := 0; i < 20; i++ {
		_, again := p.PlistKeyAndValue(table)
		if !plist.Equal(first, again) {
			t.Fatalf("encode %d differs from first encode", i)
		}
	}
}

func TestFrameworksBuildPhaseRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		phase FrameworksBuildPhase
	}{
		{"empty", NewFrameworksBuildPhase("B0", NewReferenceSet(), 0)},
		{"files", NewFrameworksBuildPhase("B1", NewReferenceSet("F1", "F2", "F3"), 0)},
		{"flags", NewFrameworksBuildPhase("B2", NewReferenceSet("F1"), 1, WithBuildActionMask(12))},
		{"negative mask", NewFrameworksBuildPhase("B3", NewReferenceSet("F9"), 0, WithBuildActionMask(-1))},
	}
	resolvers := map[string]NameResolver{
		"named":   names(map[Reference]string{"B0": "A", "B1": "B", "B2": "C", "B3": "D"}),
		"unnamed": names(nil),
	}
	for _, tt := range tests {
		for rname, r := range resolvers {
			t.Run(tt.name+"/"+rname, func(t *testing.T) {
				_, value := tt.phase.PlistKeyAndValue(r)
				attrs, ok := plist.Attributes(value).(map[string]any)
				if !ok {
					t.Fatalf("Attributes returned %T", plist.Attributes(value))
				}
				got, err := DecodeFrameworksBuildPhase(tt.phase.Reference(), attrs)
				if err != nil {
					t.Fatalf("DecodeFrameworksBuildPhase: %v", err)
				}
				if !got.Equal(tt.phase) {
					t.Errorf("round trip: got %+v, want %+v", got, tt.phase)
				}
			})
		}
	}
}

func TestFrameworksBuildPhaseHashUsesReferenceOnly(t *testing.T) {
	a := NewFrameworksBuildPhase("B", NewReferenceSet("F1"), 0)
	b := NewFrameworksBuildPhase("B", NewReferenceSet("F2", "F3"), 1, WithBuildActionMask(4))
	if a.Hash() != b.Hash() {
		t.Errorf("same reference, different hashes: %d vs %d", a.Hash(), b.Hash())
	}
	if a.Hash() != Reference("B").Hash() {
		t.Error("phase hash differs from its reference hash")
	}
	if a.Equal(b) {
		t.Error("phases with different fields compared equal")
	}
}

func TestFrameworksBuildPhaseEqual(t *testing.T) {
	base := NewFrameworksBuildPhase("B", NewReferenceSet("F1"), 0)
	tests := []struct {
		name  string
		other Object
		want  bool
	}{
		{"same value", NewFrameworksBuildPhase("B", NewReferenceSet("F1"), 0), true},
		{"pointer", &base, true},
		{"nil pointer", (*FrameworksBuildPhase)(nil), false},
		{"reference", NewFrameworksBuildPhase("C", NewReferenceSet("F1"), 0), false},
		{"files", NewFrameworksBuildPhase("B", NewReferenceSet(), 0), false},
		{"run only", NewFrameworksBuildPhase("B", NewReferenceSet("F1"), 1), false},
		{"mask", NewFrameworksBuildPhase("B", NewReferenceSet("F1"), 0, WithBuildActionMask(1)), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFrameworksBuildPhaseAddingRemoving(t *testing.T) {
	e := NewFrameworksBuildPhase("B", NewReferenceSet("F1"), 1, WithBuildActionMask(8))

	added := e.Adding("F2")
	if !added.Files().Has("F2") || !added.Files().Has("F1") {
		t.Fatalf("Adding: files = %v", added.Files().Sorted())
	}
	if e.Files().Has("F2") {
		t.Fatal("Adding modified the receiver")
	}
	if added.Reference() != "B" || added.RunOnlyForDeploymentPostprocessing() != 1 || added.BuildActionMask() != 8 {
		t.Errorf("Adding did not preserve fields: %+v", added)
	}
	if !added.Adding("F2").Equal(added) {
		t.Error("adding twice differs from adding once")
	}
	if !e.Adding("F2").Removing("F2").Equal(e) {
		t.Error("adding then removing a new file does not restore the phase")
	}

	removed := e.Removing("F1")
	if removed.Files().Len() != 0 {
		t.Fatalf("Removing: files = %v", removed.Files().Sorted())
	}
	if !removed.Removing("F1").Equal(removed) {
		t.Error("removing twice differs from removing once")
	}
	if !e.Removing("absent").Equal(e) {
		t.Error("removing an absent file changed the phase")
	}
	if removed.Hash() != e.Hash() {
		t.Error("Removing changed the hash")
	}
}

func TestDecodeFrameworksBuildPhase(t *testing.T) {
	got, err := DecodeFrameworksBuildPhase("B", Attributes{
		"isa":                                "PBXFrameworksBuildPhase",
		"buildActionMask":                    "2147483647",
		"files":                              []any{"F1", "F2", "F1"},
		"runOnlyForDeploymentPostprocessing": "0",
	})
	if err != nil {
		t.Fatalf("DecodeFrameworksBuildPhase: %v", err)
	}
	want := NewFrameworksBuildPhase("B", NewReferenceSet("F1", "F2"), 0)
	if !got.Equal(want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDecodeFrameworksBuildPhaseErrors(t *testing.T) {
	tests := []struct {
		name    string
		attrs   Attributes
		key     string
		wantErr error
	}{
		{
			name:    "missing run only",
			attrs:   Attributes{"files": []any{}, "buildActionMask": "8"},
			key:     "runOnlyForDeploymentPostprocessing",
			wantErr: ErrMissingKey,
		},
		{
			name:    "missing files",
			attrs:   Attributes{"runOnlyForDeploymentPostprocessing": "0", "buildActionMask": "8"},
			key:     "files",
			wantErr: ErrMissingKey,
		},
		{
			name:    "files is a string",
			attrs:   Attributes{"files": "F1", "runOnlyForDeploymentPostprocessing": "0", "buildActionMask": "8"},
			key:     "files",
			wantErr: ErrTypeMismatch,
		},
		{
			name:    "missing mask",
			attrs:   Attributes{"files": []any{}, "runOnlyForDeploymentPostprocessing": "0"},
			key:     "buildActionMask",
			wantErr: ErrMissingKey,
		},
		{
			name:    "bad mask",
			attrs:   Attributes{"files": []any{}, "runOnlyForDeploymentPostprocessing": "0", "buildActionMask": "all"},
			key:     "buildActionMask",
			wantErr: ErrTypeMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFrameworksBuildPhase("B", tt.attrs)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("err = %T, want *DecodeError", err)
			}
			if de.Key != tt.key {
				t.Errorf("Key = %q, want %q", de.Key, tt.key)
			}
			if de.ISA != FrameworksBuildPhaseISA || de.Reference != "B" {
				t.Errorf("context = (%q, %q), want (%q, B)", de.ISA, de.Reference, FrameworksBuildPhaseISA)
			}
		})
	}
}

func TestDecodeFrameworksBuildPhaseRejectsEmptyReference(t *testing.T) {
	_, err := DecodeFrameworksBuildPhase("", Attributes{
		"buildActionMask":                    "8",
		"files":                              []any{},
		"runOnlyForDeploymentPostprocessing": "0",
	})
	if !errors.Is(err, ErrEmptyReference) {
		t.Fatalf("err = %v, want ErrEmptyReference", err)
	}
	var de *DecodeError
	if !errors.As(err, &de) || de.ISA != FrameworksBuildPhaseISA {
		t.Fatalf("err = %#v, want *DecodeError for %s", err, FrameworksBuildPhaseISA)
	}
	if want := "decode PBXFrameworksBuildPhase: empty reference"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
