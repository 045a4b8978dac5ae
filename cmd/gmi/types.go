package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/alnah/go-gmi"
)

// typeDescriptions explains each line type for the types command.
var typeDescriptions = map[gmi.LineType]string{
	gmi.Text:                 "plain paragraph text",
	gmi.Link:                 "=> link to a non-image target",
	gmi.LinkImage:            "=> link whose target has an image extension",
	gmi.PreformatToggleBegin: "``` opening a preformatted block",
	gmi.PreformatToggleEnd:   "``` closing a preformatted block",
	gmi.PreformatText:        "line inside a preformatted block",
	gmi.Heading1:             "# heading",
	gmi.Heading2:             "## heading",
	gmi.Heading3:             "### heading (and deeper)",
	gmi.List:                 "* list item",
	gmi.Quote:                "> quotation",
}

// runTypes lists every line type in declaration order.
func runTypes(args []string, env *Environment) error {
	if len(args) > 0 {
		if args[0] == "-h" || args[0] == "--help" {
			printTypesUsage(env.Stdout)
			return nil
		}
		return fmt.Errorf("%w: types takes no arguments, got %q", ErrInvalidFlags, args[0])
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	for _, t := range gmi.LineTypes() {
		fmt.Fprintf(tw, "%s\t%s\n", t, typeDescriptions[t])
	}
	return tw.Flush()
}
