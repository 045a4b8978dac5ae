package gmi

import "strings"

// Line is one classified gemtext line.
type Line struct {
	Number int      `json:"number" yaml:"number"` // caller-supplied sequence number
	Type   LineType `json:"type" yaml:"type"`
	Text   string   `json:"text" yaml:"text"` // original content, no line terminator
}

// Level returns the heading depth (1-3) of a heading line, or 0.
func (l Line) Level() int {
	switch l.Type {
	case Heading1:
		return 1
	case Heading2:
		return 2
	case Heading3:
		return 3
	default:
		return 0
	}
}

// Link splits a link line into its target and optional label.
// Both are empty for lines that are not links.
//
//	"=> gemini://example.org/ An example" -> "gemini://example.org/", "An example"
func (l Line) Link() (target, label string) {
	if !l.Type.IsLink() {
		return "", ""
	}
	target = linkTarget(l.Text)
	rest := strings.TrimLeft(strings.TrimPrefix(l.Text, linkMarker), " \t")
	label = strings.TrimSpace(strings.TrimPrefix(rest, target))
	return target, label
}

// AltText returns the text following the opening fence of a preformatted block.
func (l Line) AltText() string {
	if l.Type != PreformatToggleBegin {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(l.Text, fenceMarker))
}

// Content returns the line text without its type marker, trimmed.
// Preformatted text is returned verbatim and toggle lines yield "".
// For links the whole remainder (target and label) is returned; use Link to split it.
func (l Line) Content() string {
	switch l.Type {
	case PreformatText:
		return l.Text
	case PreformatToggleBegin, PreformatToggleEnd:
		return ""
	case Link, LinkImage:
		return strings.TrimSpace(strings.TrimPrefix(l.Text, linkMarker))
	case Heading1, Heading2, Heading3:
		return strings.TrimSpace(l.Text[headingDepth(l.Text):])
	case List:
		return strings.TrimSpace(strings.TrimPrefix(l.Text, string(listByte)))
	case Quote:
		return strings.TrimSpace(strings.TrimPrefix(l.Text, string(quoteByte)))
	default:
		return strings.TrimSpace(l.Text)
	}
}
