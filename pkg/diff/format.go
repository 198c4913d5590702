package diff

import (
	"fmt"
	"strings"

	"github.com/odvcencio/xcproj/pkg/pbxproj"
)

// FormatSummary produces one line per change:
//
//	+ B1 PBXFrameworksBuildPhase (added)
//	~ B2 PBXFrameworksBuildPhase (modified)
//	- B3 PBXFrameworksBuildPhase (removed)
func FormatSummary(d *Diff) string {
	if d.Empty() {
		return ""
	}
	var b strings.Builder
	for _, c := range d.Changes {
		fmt.Fprintf(&b, "%s %s %s (%s)\n", marker(c.Type), c.Reference, isa(c), c.Type)
	}
	return b.String()
}

// FormatLineDiff shows each change as a unified-style listing of the lines
// render produces for the object. Modified objects are diffed line by line;
// added and removed objects are shown in full.
func FormatLineDiff(d *Diff, render func(pbxproj.Object) string) string {
	if d.Empty() {
		return ""
	}
	var b strings.Builder
	for _, c := range d.Changes {
		switch c.Type {
		case Modified:
			fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", c.Reference, c.Reference)
			for _, l := range LineDiff(lines(render(c.Before)), lines(render(c.After))) {
				switch l.Type {
				case Delete:
					fmt.Fprintf(&b, "-%s\n", l.Content)
				case Insert:
					fmt.Fprintf(&b, "+%s\n", l.Content)
				default:
					fmt.Fprintf(&b, " %s\n", l.Content)
				}
			}
		case Added:
			fmt.Fprintf(&b, "+++ b/%s\n", c.Reference)
			for _, l := range lines(render(c.After)) {
				fmt.Fprintf(&b, "+%s\n", l)
			}
		case Removed:
			fmt.Fprintf(&b, "--- a/%s\n", c.Reference)
			for _, l := range lines(render(c.Before)) {
				fmt.Fprintf(&b, "-%s\n", l)
			}
		}
	}
	return b.String()
}

func marker(t ChangeType) string {
	switch t {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return "~"
	}
}

func isa(c ObjectChange) string {
	if c.After != nil {
		return c.After.ISA()
	}
	return c.Before.ISA()
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
