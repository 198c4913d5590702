package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/odvcencio/xcproj/pkg/pbxproj"
	"github.com/odvcencio/xcproj/pkg/plist"
	"gopkg.in/yaml.v3"
)

// document is the YAML form the CLI reads: the objects section of a project
// document keyed by reference, plus optional display names.
//
//	names:
//	  B1: MyApp
//	objects:
//	  B1:
//	    isa: PBXFrameworksBuildPhase
//	    buildActionMask: 2147483647
//	    files: [F1, F2]
//	    runOnlyForDeploymentPostprocessing: 0
type document struct {
	Names   map[string]string `yaml:"names,omitempty"`
	Objects objectsSection    `yaml:"objects"`
}

// objectsSection holds every scalar of the objects section as text, the
// only scalar form a project document has, so an unquoted reference such
// as 1234 or 1E3 is not resolved to a number.
type objectsSection map[string]any

func (s *objectsSection) UnmarshalYAML(node *yaml.Node) error {
	v, err := textValue(node)
	if err != nil {
		return err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("line %d: objects must be a mapping", node.Line)
	}
	*s = m
	return nil
}

func textValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return textValue(n.Alias)
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return nil, nil
		}
		return n.Value, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := textValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key is not a scalar", key.Line)
			}
			if _, dup := out[key.Value]; dup {
				return nil, fmt.Errorf("line %d: duplicate key %q", key.Line, key.Value)
			}
			v, err := textValue(value)
			if err != nil {
				return nil, err
			}
			out[key.Value] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("line %d: unexpected yaml node", n.Line)
	}
}

func readDocument(path string) (*document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}
	if doc.Objects == nil {
		return nil, fmt.Errorf("read document %s: no objects section", path)
	}
	return &doc, nil
}

// decodeDocument decodes every object of doc and fails if any of them does.
func decodeDocument(ctx context.Context, path string, doc *document) ([]pbxproj.Object, error) {
	objs, err := pbxproj.DecodeObjects(ctx, doc.Objects)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return objs, nil
}

// nameTable merges the config names with those of docs, later documents
// winning.
func nameTable(cfg *Config, docs ...*document) *pbxproj.NameTable {
	table := pbxproj.NewNameTable(nil)
	if cfg != nil {
		for ref, name := range cfg.Names {
			table.Set(pbxproj.Reference(ref), name)
		}
	}
	for _, doc := range docs {
		for ref, name := range doc.Names {
			table.Set(pbxproj.Reference(ref), name)
		}
	}
	return table
}

// writeObjects renders a document as YAML: the names section, when there
// is one, then the encoded objects. Plist comments become line comments and
// dictionary order is kept, so the output reads like the project document
// and decodes back to the same objects.
func writeObjects(w io.Writer, names map[string]string, objects *plist.Dictionary) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	if len(names) > 0 {
		refs := make([]string, 0, len(names))
		for ref := range names {
			refs = append(refs, ref)
		}
		sort.Strings(refs)
		section := &yaml.Node{Kind: yaml.MappingNode}
		for _, ref := range refs {
			section.Content = append(section.Content,
				scalarNode(plist.NewCommentedString(ref)), scalarNode(plist.NewCommentedString(names[ref])))
		}
		root.Content = append(root.Content, scalarNode(plist.NewCommentedString("names")), section)
	}
	root.Content = append(root.Content, scalarNode(plist.NewCommentedString("objects")), valueNode(objects))
	if err := encodeYAML(w, root); err != nil {
		return fmt.Errorf("write objects: %w", err)
	}
	return nil
}

// renderObject returns a function rendering a single object the way
// writeObjects renders each entry.
func renderObject(names pbxproj.NameResolver) func(pbxproj.Object) string {
	return func(obj pbxproj.Object) string {
		key, value := obj.PlistKeyAndValue(names)
		root := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{scalarNode(key), valueNode(value)}}
		var buf bytes.Buffer
		if err := encodeYAML(&buf, root); err != nil {
			return fmt.Sprintf("# render %s: %v\n", obj.Reference(), err)
		}
		return buf.String()
	}
}

func encodeYAML(w io.Writer, root *yaml.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return err
	}
	return enc.Close()
}

func scalarNode(s plist.CommentedString) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s.String, LineComment: s.Comment}
}

func valueNode(v plist.Value) *yaml.Node {
	switch v := v.(type) {
	case plist.String:
		return scalarNode(plist.CommentedString(v))
	case plist.Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Content: make([]*yaml.Node, 0, len(v))}
		for _, item := range v {
			n.Content = append(n.Content, valueNode(item))
		}
		return n
	case *plist.Dictionary:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, e := range v.Entries() {
			n.Content = append(n.Content, scalarNode(e.Key), valueNode(e.Value))
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
