package gmi

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MaxLineLength bounds a single line read by Parse (1 MiB).
const MaxLineLength = 1 << 20

// initialBufferSize is the scanner buffer allocated up front; it grows to MaxLineLength.
const initialBufferSize = 64 * 1024

// Parse reads gemtext from r and classifies it with a Classifier built from opts.
//
// Lines are split on "\n" with one trailing "\r" removed. Line numbers start at 0
// and count every input line, so a dropped empty line still consumes a number.
// Cancelling ctx stops the read between lines and returns ctx.Err().
func Parse(ctx context.Context, r io.Reader, opts ...Option) (*Document, error) {
	c, err := NewClassifier(opts...)
	if err != nil {
		return nil, err
	}
	return c.Parse(ctx, r)
}

// ParseString is Parse over an in-memory document.
func ParseString(ctx context.Context, s string, opts ...Option) (*Document, error) {
	return Parse(ctx, strings.NewReader(s), opts...)
}

// Parse reads gemtext from r and classifies it with c. See the package-level Parse.
func (c *Classifier) Parse(ctx context.Context, r io.Reader) (*Document, error) {
	doc := c.NewDocument()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialBufferSize), MaxLineLength)

	number := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			doc.Release()
			return nil, err
		}
		if err := doc.Append(number, scanner.Text()); err != nil {
			doc.Release()
			return nil, err
		}
		number++
	}

	if err := scanner.Err(); err != nil {
		doc.Release()
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: line %d (max %d bytes)", ErrLineTooLong, number, MaxLineLength)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	return doc, nil
}
