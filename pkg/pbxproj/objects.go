package pbxproj

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"

	"github.com/odvcencio/xcproj/internal/ctxlog"
	"github.com/odvcencio/xcproj/pkg/plist"
	"golang.org/x/sync/errgroup"
)

// EncodeObjects encodes objs concurrently and returns them as one
// dictionary keyed by commented reference, in reference order. The result
// is identical for identical inputs regardless of scheduling.
func EncodeObjects(ctx context.Context, names NameResolver, objs []Object) (*plist.Dictionary, error) {
	sorted := make([]Object, len(objs))
	copy(sorted, objs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Reference() < sorted[j].Reference()
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Reference() == sorted[i-1].Reference() {
			return nil, fmt.Errorf("encode objects: %w %s", ErrDuplicateReference, sorted[i].Reference())
		}
	}

	keys := make([]plist.CommentedString, len(sorted))
	values := make([]plist.Value, len(sorted))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, obj := range sorted {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			keys[i], values[i] = obj.PlistKeyAndValue(names)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("encode objects: %w", err)
	}

	out := plist.NewDictionary()
	for i := range sorted {
		out.Set(keys[i], values[i])
	}
	ctxlog.FromContext(ctx).Debug("encoded objects", "count", len(sorted))
	return out, nil
}

// DecodeObjects decodes every entry of a document's objects mapping. Each
// entry fails independently: the objects that decoded are returned in
// reference order together with the joined errors of those that did not,
// and the caller decides whether any failure aborts the document.
func DecodeObjects(ctx context.Context, objects map[string]any) ([]Object, error) {
	refs := make([]string, 0, len(objects))
	for ref := range objects {
		refs = append(refs, ref)
	}
	sort.Strings(refs)

	decoded := make([]Object, len(refs))
	errs := make([]error, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, ref := range refs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			attrs, ok := asAttributes(objects[ref])
			if !ok {
				errs[i] = newDecoder("", Reference(ref), nil).mismatch(ref, shapeDictionary, objects[ref])
				return nil
			}
			decoded[i], errs[i] = Decode(Reference(ref), attrs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("decode objects: %w", err)
	}

	logger := ctxlog.FromContext(ctx)
	out := make([]Object, 0, len(refs))
	var failed []error
	for i := range refs {
		if errs[i] != nil {
			logger.Debug("object failed to decode", "reference", refs[i], "err", errs[i])
			failed = append(failed, errs[i])
			continue
		}
		out = append(out, decoded[i])
	}
	logger.Debug("decoded objects", "count", len(out), "failed", len(failed))
	return out, errors.Join(failed...)
}

func asAttributes(v any) (Attributes, bool) {
	switch m := v.(type) {
	case Attributes:
		return m, true
	case map[string]any:
		return Attributes(m), true
	default:
		return nil, false
	}
}
