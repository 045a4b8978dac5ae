package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: gmi <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  lines       Classify gemtext and print the line listing")
	fmt.Fprintln(w, "  types       List the gemtext line types")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'gmi help <command>' for details on a specific command.")
}

// printLinesUsage prints usage for the lines command.
func printLinesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: gmi lines [flags] <file|dir|->...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Classify every line of one or more gemtext documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Gemtext file, directory, or - for stdin")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -f, --format <s>          Listing format: text, yaml, json")
	fmt.Fprintln(w, "  -o, --output <dir>        Write <name>.lines.<ext> files instead of stdout")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --summary             Print per-type counts instead of lines")
	fmt.Fprintln(w, "      --watch               Re-classify when files change")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Classification:")
	fmt.Fprintln(w, "      --image-ext <ext>     Image extension, repeatable (default gif,jpeg,jpg,png)")
	fmt.Fprintln(w, "      --case-insensitive-images")
	fmt.Fprintln(w, "                            Match image extensions ignoring case")
	fmt.Fprintln(w, "      --ext-search <s>      Extension starts at the last or first dot")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug diagnostics")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  GMI_CONFIG, GMI_FORMAT, GMI_WORKERS, GMI_LOG_LEVEL,")
	fmt.Fprintln(w, "  GMI_INPUT_DIR, GMI_OUTPUT_DIR  override config; flags override both")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  gmi lines index.gmi")
	fmt.Fprintln(w, "  gmi lines -f json --summary capsule/")
	fmt.Fprintln(w, "  cat page.gmi | gmi lines -")
}

// printTypesUsage prints usage for the types command.
func printTypesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: gmi types")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the gemtext line types with the name used in listings.")
}

// runHelp prints help for the command named in args, or the main usage.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "lines":
		printLinesUsage(env.Stdout)
	case "types":
		printTypesUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: gmi version")
	case "help":
		printUsage(env.Stdout)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
