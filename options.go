package gmi

import (
	"fmt"
	"strings"
)

// ExtensionSearch selects which dot of a link target starts its extension.
type ExtensionSearch uint8

const (
	// ExtensionSearchLast takes the text after the last dot ("a.b/c.png" -> "png").
	ExtensionSearchLast ExtensionSearch = iota
	// ExtensionSearchFirst takes the text after the first dot
	// ("a.b/c.png" -> "b/c.png"). Kept for compatibility with first-dot parsers.
	ExtensionSearchFirst
)

// String returns "last" or "first".
func (s ExtensionSearch) String() string {
	switch s {
	case ExtensionSearchLast:
		return "last"
	case ExtensionSearchFirst:
		return "first"
	default:
		return fmt.Sprintf("ExtensionSearch(%d)", uint8(s))
	}
}

// ParseExtensionSearch converts "last" or "first" (case-insensitive) to an ExtensionSearch.
// An empty string selects ExtensionSearchLast.
func ParseExtensionSearch(s string) (ExtensionSearch, error) {
	switch strings.ToLower(s) {
	case "", "last":
		return ExtensionSearchLast, nil
	case "first":
		return ExtensionSearchFirst, nil
	default:
		return ExtensionSearchLast, fmt.Errorf("%w: %q (must be last or first)", ErrInvalidExtensionSearch, s)
	}
}

// DefaultImageExtensions lists the link target extensions that mark an image link.
var DefaultImageExtensions = []string{"gif", "jpeg", "jpg", "png"}

// Option configures a Classifier (and the Document that owns one).
type Option func(*Classifier)

// WithImageExtensions replaces the image extension set.
// Extensions are given without the leading dot. Invalid entries are
// reported by NewClassifier.
func WithImageExtensions(exts ...string) Option {
	return func(c *Classifier) {
		c.imageExts = append([]string(nil), exts...)
	}
}

// WithCaseInsensitiveImages matches image extensions with ASCII case folding,
// so "=> photo.PNG" becomes LinkImage.
func WithCaseInsensitiveImages() Option {
	return func(c *Classifier) {
		c.foldCase = true
	}
}

// WithExtensionSearch selects the dot used to find a link target's extension.
func WithExtensionSearch(s ExtensionSearch) Option {
	return func(c *Classifier) {
		c.search = s
	}
}

// validateImageExtension rejects extensions that could never match a target suffix.
func validateImageExtension(ext string) error {
	if ext == "" {
		return fmt.Errorf("%w: empty", ErrInvalidImageExtension)
	}
	if strings.ContainsAny(ext, ". \t/") {
		return fmt.Errorf("%w: %q (no dots, slashes or whitespace)", ErrInvalidImageExtension, ext)
	}
	return nil
}
