package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-gmi"
	"github.com/alnah/go-gmi/internal/config"
)

func parseForListing(t *testing.T, src string) *gmi.Document {
	t.Helper()
	doc, err := gmi.ParseString(context.Background(), src)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	t.Cleanup(doc.Release)
	return doc
}

// ---------------------------------------------------------------------------
// TestBuildListing - Lines and summary modes
// ---------------------------------------------------------------------------

func TestBuildListing(t *testing.T) {
	t.Parallel()

	doc := parseForListing(t, "## Sub\n\n```go\nx := 1\n```\n")

	t.Run("lines", func(t *testing.T) {
		t.Parallel()

		got := buildListing("a.gmi", doc, false)
		want := listing{
			File: "a.gmi",
			Lines: []listingLine{
				{Number: 0, Type: "heading-2", Text: "## Sub"},
				{Number: 2, Type: "preformat-begin", Text: "```go"},
				{Number: 3, Type: "preformat-text", Text: "x := 1"},
				{Number: 4, Type: "preformat-end", Text: "```"},
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("listing mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("summary", func(t *testing.T) {
		t.Parallel()

		got := buildListing("a.gmi", doc, true)
		want := listing{
			File: "a.gmi",
			Counts: map[string]int{
				"heading-2":       1,
				"preformat-begin": 1,
				"preformat-text":  1,
				"preformat-end":   1,
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("listing mismatch (-want +got):\n%s", diff)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWriteListing - Encodings of a listing
// ---------------------------------------------------------------------------

func TestWriteListing(t *testing.T) {
	t.Parallel()

	l := listing{File: "a.gmi", Lines: []listingLine{{Number: 7, Type: "quote", Text: "> hi"}}}

	tests := []struct {
		format string
		want   []string
	}{
		{config.FormatText, []string{"7: quote: > hi\n"}},
		{config.FormatJSON, []string{`"file": "a.gmi"`, `"number": 7`, `"type": "quote"`}},
		{config.FormatYAML, []string{"file: a.gmi", "number: 7", "type: quote"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := writeListing(&buf, tt.format, l); err != nil {
				t.Fatalf("writeListing: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s output should contain %q, got:\n%s", tt.format, want, buf.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteSeparator - Per-format separators between listings
// ---------------------------------------------------------------------------

func TestWriteSeparator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		index  int
		want   string
	}{
		{config.FormatText, 0, "==> a.gmi <==\n"},
		{config.FormatText, 1, "\n==> a.gmi <==\n"},
		{config.FormatYAML, 0, "---\n"},
		{config.FormatJSON, 1, ""},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		writeSeparator(&buf, tt.format, tt.index, "a.gmi")
		if buf.String() != tt.want {
			t.Errorf("writeSeparator(%s, %d) = %q, want %q", tt.format, tt.index, buf.String(), tt.want)
		}
	}
}
