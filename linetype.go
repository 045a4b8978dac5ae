package gmi

import "fmt"

// LineType identifies the kind of a classified gemtext line.
// The set is closed: only the constants declared below are valid.
type LineType uint8

// Line types, in declaration order. The zero value is Text.
const (
	Text LineType = iota
	Link
	LinkImage
	PreformatToggleBegin
	PreformatToggleEnd
	PreformatText
	Heading1
	Heading2
	Heading3
	List
	Quote

	lineTypeCount = iota
)

// lineTypeNames holds the stable text form of each line type.
// Used by String, MarshalText and UnmarshalText.
var lineTypeNames = [lineTypeCount]string{
	Text:                 "text",
	Link:                 "link",
	LinkImage:            "link-image",
	PreformatToggleBegin: "preformat-begin",
	PreformatToggleEnd:   "preformat-end",
	PreformatText:        "preformat-text",
	Heading1:             "heading-1",
	Heading2:             "heading-2",
	Heading3:             "heading-3",
	List:                 "list",
	Quote:                "quote",
}

// LineTypes returns every line type in declaration order.
func LineTypes() []LineType {
	types := make([]LineType, lineTypeCount)
	for i := range types {
		types[i] = LineType(i)
	}
	return types
}

// Valid reports whether t is one of the declared line types.
func (t LineType) Valid() bool {
	return int(t) < lineTypeCount
}

// String returns the text form of t, e.g. "heading-2".
func (t LineType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("LineType(%d)", uint8(t))
	}
	return lineTypeNames[t]
}

// IsHeading reports whether t is Heading1, Heading2 or Heading3.
func (t LineType) IsHeading() bool {
	return t == Heading1 || t == Heading2 || t == Heading3
}

// IsLink reports whether t is Link or LinkImage.
func (t LineType) IsLink() bool {
	return t == Link || t == LinkImage
}

// IsPreformat reports whether t belongs to a preformatted block,
// including both toggle lines.
func (t LineType) IsPreformat() bool {
	return t == PreformatToggleBegin || t == PreformatToggleEnd || t == PreformatText
}

// MarshalText implements encoding.TextMarshaler.
func (t LineType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLineType, uint8(t))
	}
	return []byte(lineTypeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *LineType) UnmarshalText(data []byte) error {
	parsed, err := ParseLineType(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseLineType returns the line type whose text form is name.
func ParseLineType(name string) (LineType, error) {
	for i, n := range lineTypeNames {
		if n == name {
			return LineType(i), nil
		}
	}
	return Text, fmt.Errorf("%w: %q", ErrUnknownLineType, name)
}
