// Package gmi classifies gemtext documents line by line.
//
// # Quick Start
//
// Feed lines to a Document and range over the result:
//
//	doc := gmi.NewDocument()
//	defer doc.Release()
//
//	for i, text := range strings.Split(src, "\n") {
//	    if err := doc.Append(i, text); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//	for line := range doc.All() {
//	    fmt.Println(line.Number, line.Type, line.Text)
//	}
//
// Or let Parse split an io.Reader:
//
//	doc, err := gmi.Parse(ctx, file)
//
// # Classification
//
// Each line gets exactly one LineType. Outside a preformatted block the first
// byte decides:
//
//   - "=>" starts a Link, or a LinkImage when the target ends in an image extension
//   - "```" opens a preformatted block (PreformatToggleBegin)
//   - "#", "##", "###" (or more) give Heading1, Heading2, Heading3
//   - "*" starts a List item, ">" a Quote
//   - anything else is Text
//
// Inside a preformatted block every line is PreformatText until a line
// starting with "```" closes it (PreformatToggleEnd). The Document carries
// this mode between calls; Classify takes and returns it explicitly.
//
// Empty lines are dropped by Document.Append and never become Lines.
//
// # Configuration
//
// Image detection can be tuned with functional options:
//
//	c, err := gmi.NewClassifier(
//	    gmi.WithImageExtensions("png", "webp"),
//	    gmi.WithCaseInsensitiveImages(),
//	    gmi.WithExtensionSearch(gmi.ExtensionSearchFirst),
//	)
//	doc := c.NewDocument()
//
// # Concurrency
//
// Classifier is immutable and safe for concurrent use. Document is a
// single-writer accumulator: give each goroutine its own.
package gmi
