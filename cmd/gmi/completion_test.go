package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGenerateCompletion - Shell script generation
// ---------------------------------------------------------------------------

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell        Shell
		wantContains []string
	}{
		{
			shell: ShellBash,
			wantContains: []string{
				"_gmi_completions",
				"complete -F _gmi_completions gmi",
				"lines types completion version help",
				"--format",
				"text yaml json",
				"last first",
			},
		},
		{
			shell: ShellZsh,
			wantContains: []string{
				"#compdef gmi",
				"_arguments",
				"_describe 'command' commands",
				"{-f,--format}",
				":format:(text yaml json)",
				"--watch[",
			},
		},
		{
			shell: ShellFish,
			wantContains: []string{
				"complete -c gmi",
				"__fish_gmi_needs_command",
				"__fish_gmi_using_command lines",
				"-l format -s f -x -a 'text yaml json'",
				"-l image-ext -r",
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.shell), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion(%s): %v", tt.shell, err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script should contain %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := GenerateCompletion(&buf, Shell("powershell"))
	if !errors.Is(err, ErrUnsupportedShell) {
		t.Errorf("error = %v, want ErrUnsupportedShell", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written, got %q", buf.String())
	}
}

// ---------------------------------------------------------------------------
// TestGetCommands - Registry mirrors the lines FlagSet
// ---------------------------------------------------------------------------

func TestGetCommands(t *testing.T) {
	t.Parallel()

	cmds := getCommands()
	if got := commandNames(cmds); got != "lines types completion version help" {
		t.Errorf("commands = %q", got)
	}

	flags := make(map[string]flagDef)
	for _, f := range cmds[0].Flags {
		flags[f.Long] = f
	}
	for _, name := range []string{"config", "format", "output", "workers", "summary", "watch", "image-ext", "case-insensitive-images", "ext-search", "quiet", "verbose"} {
		if _, ok := flags[name]; !ok {
			t.Errorf("lines flag %q missing from completion registry", name)
		}
	}
	if !flags["watch"].IsBool {
		t.Error("watch should be a bool flag")
	}
	if !flags["output"].IsDir {
		t.Error("output should complete directories")
	}
	if flags["format"].Short != "f" {
		t.Errorf("format shorthand = %q, want f", flags["format"].Short)
	}
}

func TestRunCompletion_NoArgs(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(nil)
	if err := runCompletion(nil, env); err != nil {
		t.Fatalf("runCompletion: %v", err)
	}
	if !strings.Contains(stdout.String(), "Usage: gmi completion <shell>") {
		t.Errorf("usage not printed, got %q", stdout.String())
	}
}
