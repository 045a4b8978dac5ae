package gmi

import (
	"fmt"
	"strings"
)

// Gemtext line markers.
const (
	linkMarker   = "=>"
	fenceMarker  = "```"
	headingByte  = '#'
	listByte     = '*'
	quoteByte    = '>'
	maxHeadDepth = 3
)

// Classifier maps one gemtext line, plus the carried preformat mode, to a LineType.
// A Classifier is immutable after construction and safe for concurrent use.
type Classifier struct {
	imageExts []string
	foldCase  bool
	search    ExtensionSearch
}

var defaultClassifier = &Classifier{
	imageExts: append([]string(nil), DefaultImageExtensions...),
}

// NewClassifier creates a Classifier with the default image extensions,
// case-sensitive matching and last-dot extension search, then applies opts.
func NewClassifier(opts ...Option) (*Classifier, error) {
	c := &Classifier{
		imageExts: append([]string(nil), DefaultImageExtensions...),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.search != ExtensionSearchLast && c.search != ExtensionSearchFirst {
		return nil, fmt.Errorf("%w: %s", ErrInvalidExtensionSearch, c.search)
	}
	for _, ext := range c.imageExts {
		if err := validateImageExtension(ext); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Classify classifies text with the default Classifier.
func Classify(preformat bool, text string) (LineType, bool) {
	return defaultClassifier.Classify(preformat, text)
}

// Classify returns the type of text and the preformat mode to carry into the
// next line. Inside a preformatted block only a closing fence is recognised;
// everything else is PreformatText.
//
// Empty text is returned as Text with the mode unchanged. Callers accumulating
// a document drop empty lines before classifying them (see Document.Append).
func (c *Classifier) Classify(preformat bool, text string) (LineType, bool) {
	if text == "" {
		return Text, preformat
	}

	if preformat {
		if strings.HasPrefix(text, fenceMarker) {
			return PreformatToggleEnd, false
		}
		return PreformatText, true
	}

	switch text[0] {
	case '=':
		if strings.HasPrefix(text, linkMarker) {
			if c.isImageTarget(linkTarget(text)) {
				return LinkImage, false
			}
			return Link, false
		}
	case '`':
		if strings.HasPrefix(text, fenceMarker) {
			return PreformatToggleBegin, true
		}
	case headingByte:
		return headingType(headingDepth(text)), false
	case listByte:
		return List, false
	case quoteByte:
		return Quote, false
	}

	return Text, false
}

// headingDepth counts consecutive leading '#' bytes.
func headingDepth(text string) int {
	n := 0
	for n < len(text) && text[n] == headingByte {
		n++
	}
	return n
}

// headingType maps a heading depth to its LineType, capping at Heading3.
func headingType(depth int) LineType {
	switch {
	case depth >= maxHeadDepth:
		return Heading3
	case depth == 2:
		return Heading2
	default:
		return Heading1
	}
}

// linkTarget returns the first whitespace-delimited token after the link marker.
func linkTarget(text string) string {
	rest := strings.TrimLeft(strings.TrimPrefix(text, linkMarker), " \t")
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		return rest[:i]
	}
	return rest
}

// extension returns the text after the selected dot of target.
// ok is false when target contains no dot.
func (c *Classifier) extension(target string) (ext string, ok bool) {
	var i int
	if c.search == ExtensionSearchFirst {
		i = strings.IndexByte(target, '.')
	} else {
		i = strings.LastIndexByte(target, '.')
	}
	if i < 0 {
		return "", false
	}
	return target[i+1:], true
}

// isImageTarget reports whether target's extension is in the image set.
func (c *Classifier) isImageTarget(target string) bool {
	ext, ok := c.extension(target)
	if !ok {
		return false
	}
	for _, img := range c.imageExts {
		if ext == img || (c.foldCase && strings.EqualFold(ext, img)) {
			return true
		}
	}
	return false
}
