package gmi

import (
	"fmt"
	"iter"
)

// Document accumulates classified lines in insertion order and carries the
// preformat mode from one line to the next.
//
// A Document has a single writer. Use one Document per parse; concurrent
// parses need separate Documents (they may share a Classifier).
type Document struct {
	classifier *Classifier
	lines      []Line
	preformat  bool
	released   bool
}

// NewDocument creates an empty Document using the default Classifier.
func NewDocument() *Document {
	return defaultClassifier.NewDocument()
}

// NewDocument creates an empty Document classified by c.
func (c *Classifier) NewDocument() *Document {
	return &Document{classifier: c}
}

// Append classifies text and appends it as a Line numbered number.
//
// Empty text is dropped: nothing is appended and the preformat mode is kept.
// On error the Document is left unchanged.
func (d *Document) Append(number int, text string) error {
	if d.released {
		return ErrDocumentReleased
	}
	if text == "" {
		return nil
	}
	if number < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeLineNumber, number)
	}
	if n := len(d.lines); n > 0 && number <= d.lines[n-1].Number {
		return fmt.Errorf("%w: %d after %d", ErrLineNumberOrder, number, d.lines[n-1].Number)
	}

	lineType, preformat := d.classifier.Classify(d.preformat, text)
	d.preformat = preformat
	d.lines = append(d.lines, Line{Number: number, Type: lineType, Text: text})
	return nil
}

// All returns an iterator over the lines in insertion order.
// The iterator can be ranged over any number of times.
func (d *Document) All() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for _, l := range d.lines {
			if !yield(l) {
				return
			}
		}
	}
}

// Lines returns a copy of the lines in insertion order.
func (d *Document) Lines() []Line {
	return append([]Line(nil), d.lines...)
}

// Len returns the number of lines held.
func (d *Document) Len() int {
	return len(d.lines)
}

// PreformatMode reports whether the next line will be read inside a
// preformatted block.
func (d *Document) PreformatMode() bool {
	return d.preformat
}

// Counts tallies the lines of each type. Types with no lines are absent.
func (d *Document) Counts() map[LineType]int {
	counts := make(map[LineType]int)
	for _, l := range d.lines {
		counts[l.Type]++
	}
	return counts
}

// Release drops every line and invalidates the Document.
// Later calls to Append return ErrDocumentReleased. Release is idempotent.
func (d *Document) Release() {
	clear(d.lines)
	d.lines = nil
	d.preformat = false
	d.released = true
}
