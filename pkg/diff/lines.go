package diff

import "github.com/pmezard/go-difflib/difflib"

// LineType classifies a line of an edit script.
type LineType int

const (
	Equal  LineType = iota // Line is in both a and b.
	Insert                 // Line is only in b.
	Delete                 // Line is only in a.
)

// Line is one step of an edit script.
type Line struct {
	Type    LineType
	Content string
}

// LineDiff returns an edit script turning a into b. Replaced runs are
// listed as their deletions followed by their insertions.
func LineDiff(a, b []string) []Line {
	var out []Line
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'e':
			out = appendLines(out, Equal, a[op.I1:op.I2])
		case 'd':
			out = appendLines(out, Delete, a[op.I1:op.I2])
		case 'i':
			out = appendLines(out, Insert, b[op.J1:op.J2])
		case 'r':
			out = appendLines(out, Delete, a[op.I1:op.I2])
			out = appendLines(out, Insert, b[op.J1:op.J2])
		}
	}
	return out
}

func appendLines(out []Line, t LineType, lines []string) []Line {
	for _, l := range lines {
		out = append(out, Line{Type: t, Content: l})
	}
	return out
}
