package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alnah/go-gmi"
	"github.com/alnah/go-gmi/internal/config"
	"github.com/alnah/go-gmi/internal/yamlutil"
)

// listing is the serialized form of one classified input.
type listing struct {
	File   string         `json:"file" yaml:"file"`
	Lines  []listingLine  `json:"lines,omitempty" yaml:"lines,omitempty"`
	Counts map[string]int `json:"counts,omitempty" yaml:"counts,omitempty"`
}

// listingLine is a gmi.Line with its type spelled as a name.
type listingLine struct {
	Number int    `json:"number" yaml:"number"`
	Type   string `json:"type" yaml:"type"`
	Text   string `json:"text" yaml:"text"`
}

// buildListing converts a document into a listing.
// With summary set only per-type counts are kept.
func buildListing(name string, doc *gmi.Document, summary bool) listing {
	l := listing{File: name}

	if summary {
		l.Counts = make(map[string]int)
		for t, n := range doc.Counts() {
			l.Counts[t.String()] = n
		}
		return l
	}

	l.Lines = make([]listingLine, 0, doc.Len())
	for line := range doc.All() {
		l.Lines = append(l.Lines, listingLine{
			Number: line.Number,
			Type:   line.Type.String(),
			Text:   line.Text,
		})
	}
	return l
}

// writeListing encodes l to w in the given format.
func writeListing(w io.Writer, format string, l listing) error {
	switch format {
	case config.FormatYAML:
		return yamlutil.Encode(w, l)
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(l)
	default:
		return writeTextListing(w, l)
	}
}

// writeTextListing writes one "number: type: text" row per line,
// or one "type: count" row per present type in summary mode.
func writeTextListing(w io.Writer, l listing) error {
	if l.Counts != nil {
		total := 0
		for _, t := range gmi.LineTypes() {
			n := l.Counts[t.String()]
			if n == 0 {
				continue
			}
			total += n
			if _, err := fmt.Fprintf(w, "%s: %d\n", t, n); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "total: %d\n", total)
		return err
	}

	for _, line := range l.Lines {
		if _, err := fmt.Fprintf(w, "%d: %s: %s\n", line.Number, line.Type, line.Text); err != nil {
			return err
		}
	}
	return nil
}

// writeSeparator writes what precedes the i-th listing when several share stdout.
func writeSeparator(w io.Writer, format string, i int, name string) {
	switch format {
	case config.FormatYAML:
		fmt.Fprintln(w, "---")
	case config.FormatJSON:
	default:
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "==> %s <==\n", name)
	}
}
