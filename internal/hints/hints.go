// Package hints provides actionable error hints for common CLI failures.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import "strings"

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-gmi") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForNoInput returns a hint when no input file or directory was given.
func ForNoInput() string {
	return format("pass a .gmi file, a directory, or - for stdin; or set input.defaultDir in config")
}

// ForNoFiles returns a hint when a directory contains no gemtext files.
func ForNoFiles(extensions []string) string {
	if len(extensions) == 0 {
		return ""
	}
	return format("looked for " + strings.Join(extensions, ", ") + "; set input.extensions in config to change")
}

// ForUnknownCommand points at the command list.
func ForUnknownCommand() string {
	return format("run 'gmi help' for usage")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUnsupportedFormat lists the accepted listing formats.
func ForUnsupportedFormat(formats []string) string {
	return formatHints([]string{"supported formats: " + strings.Join(formats, ", ")})
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
