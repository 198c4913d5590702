package pbxproj

import (
	"strconv"

	"github.com/odvcencio/xcproj/pkg/plist"
)

// FrameworksBuildPhaseISA is the isa of the frameworks link build phase.
const FrameworksBuildPhaseISA = "PBXFrameworksBuildPhase"

// DefaultBuildActionMask is the build action mask used when none is given:
// every bit of a signed 32-bit integer set.
const DefaultBuildActionMask = 2147483647

const frameworksComment = "Frameworks"

// FrameworksBuildPhase is the build phase that links binary dependencies.
// It is an immutable value; Adding and Removing return modified copies.
type FrameworksBuildPhase struct {
	reference                          Reference
	files                              ReferenceSet
	buildActionMask                    int
	runOnlyForDeploymentPostprocessing uint
}

var _ Object = FrameworksBuildPhase{}

func init() {
	RegisterDecoder(FrameworksBuildPhaseISA, func(ref Reference, attrs Attributes) (Object, error) {
		return DecodeFrameworksBuildPhase(ref, attrs)
	})
}

// PhaseOption customizes a FrameworksBuildPhase at construction.
type PhaseOption func(*FrameworksBuildPhase)

// WithBuildActionMask overrides DefaultBuildActionMask.
func WithBuildActionMask(mask int) PhaseOption {
	return func(p *FrameworksBuildPhase) {
		p.buildActionMask = mask
	}
}

// NewFrameworksBuildPhase returns a phase linking files.
func NewFrameworksBuildPhase(ref Reference, files ReferenceSet, runOnlyForDeploymentPostprocessing uint, opts ...PhaseOption) FrameworksBuildPhase {
	p := FrameworksBuildPhase{
		reference:                          ref,
		files:                              files,
		buildActionMask:                    DefaultBuildActionMask,
		runOnlyForDeploymentPostprocessing: runOnlyForDeploymentPostprocessing,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// DecodeFrameworksBuildPhase builds a phase from its document attributes.
// files, runOnlyForDeploymentPostprocessing and buildActionMask are all
// required; DefaultBuildActionMask only applies to NewFrameworksBuildPhase.
// The isa attribute is not checked here; Decode dispatches on it.
func DecodeFrameworksBuildPhase(ref Reference, attrs Attributes) (FrameworksBuildPhase, error) {
	d := newDecoder(FrameworksBuildPhaseISA, ref, attrs)
	if err := d.requireReference(); err != nil {
		return FrameworksBuildPhase{}, err
	}
	files, err := d.referenceSet("files")
	if err != nil {
		return FrameworksBuildPhase{}, err
	}
	runOnly, err := d.uintValue("runOnlyForDeploymentPostprocessing")
	if err != nil {
		return FrameworksBuildPhase{}, err
	}
	mask, err := d.intValue("buildActionMask")
	if err != nil {
		return FrameworksBuildPhase{}, err
	}
	return NewFrameworksBuildPhase(ref, files, runOnly, WithBuildActionMask(mask)), nil
}

// Reference implements Object.
func (p FrameworksBuildPhase) Reference() Reference { return p.reference }

// ISA implements Object.
func (p FrameworksBuildPhase) ISA() string { return FrameworksBuildPhaseISA }

// Files returns the linked file references.
func (p FrameworksBuildPhase) Files() ReferenceSet { return p.files }

// BuildActionMask returns the opaque build action bit mask.
func (p FrameworksBuildPhase) BuildActionMask() int { return p.buildActionMask }

// RunOnlyForDeploymentPostprocessing returns the boolean-as-integer flag.
func (p FrameworksBuildPhase) RunOnlyForDeploymentPostprocessing() uint {
	return p.runOnlyForDeploymentPostprocessing
}

// Adding returns a copy of p that also links file.
func (p FrameworksBuildPhase) Adding(file Reference) FrameworksBuildPhase {
	p.files = p.files.With(file)
	return p
}

// Removing returns a copy of p that no longer links file.
func (p FrameworksBuildPhase) Removing(file Reference) FrameworksBuildPhase {
	p.files = p.files.Without(file)
	return p
}

// Hash implements Object. Only the reference contributes.
func (p FrameworksBuildPhase) Hash() uint64 {
	return p.reference.Hash()
}

// Equal implements Object.
func (p FrameworksBuildPhase) Equal(other Object) bool {
	o, ok := other.(FrameworksBuildPhase)
	if !ok {
		if ptr, isPtr := other.(*FrameworksBuildPhase); isPtr && ptr != nil {
			o, ok = *ptr, true
		}
	}
	return ok &&
		p.reference == o.reference &&
		p.files.Equal(o.files) &&
		p.buildActionMask == o.buildActionMask &&
		p.runOnlyForDeploymentPostprocessing == o.runOnlyForDeploymentPostprocessing
}

// PlistKeyAndValue implements Object. Files are written in sorted order and
// annotated "<name> in Frameworks", where name is what names resolves for
// this phase's own reference; without a name, or with an empty one, they
// carry no comment.
func (p FrameworksBuildPhase) PlistKeyAndValue(names NameResolver) (plist.CommentedString, plist.Value) {
	var fileComment string
	if names != nil {
		if name, ok := names.ResolveName(p.reference); ok && name != "" {
			fileComment = name + " in " + frameworksComment
		}
	}

	sorted := p.files.Sorted()
	files := make(plist.Array, len(sorted))
	for i, f := range sorted {
		files[i] = plist.CommentedStr(string(f), fileComment)
	}

	dict := plist.NewDictionary()
	dict.SetString("isa", plist.Str(FrameworksBuildPhaseISA))
	dict.SetString("buildActionMask", plist.Str(strconv.Itoa(p.buildActionMask)))
	dict.SetString("files", files)
	dict.SetString("runOnlyForDeploymentPostprocessing", plist.Str(strconv.FormatUint(uint64(p.runOnlyForDeploymentPostprocessing), 10)))
	return plist.WithComment(string(p.reference), frameworksComment), dict
}
