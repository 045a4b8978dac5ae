package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-gmi/internal/config"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long   string   // --format
	Short  string   // -f (empty if none)
	IsBool bool     // takes no value
	Desc   string   // help text
	Values []string // enum values
	Glob   string   // file glob, e.g. "*.yaml"
	IsDir  bool     // directory value
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
}

// completionMeta holds completion hints that a FlagSet cannot express.
type completionMeta struct {
	Values []string
	Glob   string
	IsDir  bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"format":     {Values: config.Formats},
	"ext-search": {Values: []string{"last", "first"}},
	"config":     {Glob: "*.yaml"},
	"output":     {IsDir: true},
}

// extractFlagsFromFlagSet builds flag definitions from a FlagSet.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:   f.Name,
			Short:  f.Shorthand,
			IsBool: f.Value.Type() == "bool",
			Desc:   f.Usage,
		}
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			fd.Values = meta.Values
			fd.Glob = meta.Glob
			fd.IsDir = meta.IsDir
		}
		flags = append(flags, fd)
	})
	return flags
}

// getCommands returns the command registry for completion.
// lines flags come from the same FlagSet used for parsing.
func getCommands() []commandDef {
	return []commandDef{
		{Name: "lines", Desc: "Classify gemtext and print the line listing", Flags: extractFlagsFromFlagSet(newLinesFlagSet(&linesFlags{}))},
		{Name: "types", Desc: "List the gemtext line types"},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes a shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: gmi completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:  eval \"$(gmi completion bash)\"            # ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:   eval \"$(gmi completion zsh)\"             # ~/.zshrc, before compinit")
	fmt.Fprintln(w, "  Fish:  gmi completion fish > ~/.config/fish/completions/gmi.fish")
}

// commandNames returns the names of cmds separated by spaces.
func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# bash completion for gmi\n")
	b.WriteString("_gmi_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", commandNames(cmds))
	b.WriteString("        return\n    fi\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		switch c.Name {
		case "completion":
			b.WriteString("    completion)\n")
			b.WriteString("        COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"${cur}\"))\n        ;;\n")
			continue
		case "help":
			b.WriteString("    help)\n")
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n        ;;\n", commandNames(cmds))
			continue
		}
		if len(c.Flags) == 0 {
			continue
		}

		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        case \"${prev}\" in\n")
		var words []string
		for _, f := range c.Flags {
			names := "--" + f.Long
			words = append(words, "--"+f.Long)
			if f.Short != "" {
				names = "-" + f.Short + "|" + names
				words = append(words, "-"+f.Short)
			}
			switch {
			case len(f.Values) > 0:
				fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n            return\n            ;;\n",
					names, strings.Join(f.Values, " "))
			case f.IsDir:
				fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -d -- \"${cur}\"))\n            return\n            ;;\n", names)
			case f.Glob != "":
				fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -f -- \"${cur}\"))\n            return\n            ;;\n", names)
			}
		}
		b.WriteString("        esac\n")
		b.WriteString("        if [[ \"${cur}\" == -* ]]; then\n")
		fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", strings.Join(words, " "))
		b.WriteString("        else\n")
		b.WriteString("            COMPREPLY=($(compgen -f -- \"${cur}\"))\n")
		b.WriteString("        fi\n        ;;\n")
	}

	b.WriteString("    esac\n}\n\n")
	b.WriteString("complete -F _gmi_completions gmi\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("#compdef gmi\n\n")
	b.WriteString("_gmi() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")

	for _, c := range cmds {
		switch {
		case c.Name == "completion":
			b.WriteString("    completion)\n        _values 'shell' bash zsh fish\n        ;;\n")
		case len(c.Flags) > 0:
			fmt.Fprintf(&b, "    %s)\n        _arguments \\\n", c.Name)
			for _, f := range c.Flags {
				fmt.Fprintf(&b, "            %s \\\n", zshFlagSpec(f))
			}
			b.WriteString("            '*:file:_files'\n        ;;\n")
		}
	}

	b.WriteString("    esac\n}\n\n")
	b.WriteString("compdef _gmi gmi\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshFlagSpec renders one _arguments spec for f.
func zshFlagSpec(f flagDef) string {
	desc := zshEscape(f.Desc)
	action := ""
	switch {
	case f.IsBool:
	case len(f.Values) > 0:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case f.IsDir:
		action = ":" + f.Long + ":_directories"
	case f.Glob != "":
		action = fmt.Sprintf(":%s:_files -g '%s'", f.Long, f.Glob)
	default:
		action = ":" + f.Long + ":"
	}

	if f.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
	}
	return fmt.Sprintf("'--%s[%s]%s'", f.Long, desc, action)
}

// zshEscape makes s safe inside a single-quoted zsh spec.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", "", "[", "(", "]", ")", ":", " -")
	return r.Replace(s)
}

func generateFish(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# fish completion for gmi\n")
	b.WriteString("function __fish_gmi_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_gmi_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c gmi -f\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c gmi -n __fish_gmi_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("complete -c gmi -n '__fish_gmi_using_command completion' -a 'bash zsh fish'\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "complete -c gmi -n '__fish_gmi_using_command %s' -F\n", c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c gmi -n '__fish_gmi_using_command %s' -l %s", c.Name, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch {
			case f.IsBool:
			case len(f.Values) > 0:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case f.IsDir:
				line += " -x -a '(__fish_complete_directories)'"
			default:
				line += " -r"
			}
			line += fmt.Sprintf(" -d '%s'", fishEscape(f.Desc))
			b.WriteString(line + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// fishEscape makes s safe inside a single-quoted fish string.
func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
