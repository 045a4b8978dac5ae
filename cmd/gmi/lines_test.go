package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-gmi/internal/config"
)

const capsuleIndex = "# Capsule\n* one\n> quoted\n=> photo.JPG Photo\n"

// ---------------------------------------------------------------------------
// TestRunLines_Directory - Discovery order and multi-file text output
// ---------------------------------------------------------------------------

func TestRunLines_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.gmi":         "# A\n",
		"sub/b.gemini":  "=> b.png\n",
		"notes.txt":     "# ignored\n",
		".hidden/c.gmi": "# hidden\n",
		".draft.gmi":    "# hidden file\n",
	})

	env, stdout, stderr := testEnv(nil)
	err := runLines(context.Background(), []string{dir}, &linesFlags{}, env)
	if err != nil {
		t.Fatalf("runLines: %v (stderr: %s)", err, stderr)
	}

	want := "==> " + filepath.Join(dir, "a.gmi") + " <==\n" +
		"0: heading-1: # A\n" +
		"\n" +
		"==> " + filepath.Join(dir, "sub", "b.gemini") + " <==\n" +
		"0: link-image: => b.png\n"
	if diff := cmp.Diff(want, stdout.String()); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(stderr.String(), "batch complete") {
		t.Errorf("stderr should log the batch summary, got %q", stderr)
	}
}

// ---------------------------------------------------------------------------
// TestRunLines_Formats - JSON, YAML and summary listings
// ---------------------------------------------------------------------------

func TestRunLines_Formats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"index.gmi": capsuleIndex})
	input := filepath.Join(dir, "index.gmi")

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(nil)
		if err := runLines(context.Background(), []string{input}, &linesFlags{format: "json"}, env); err != nil {
			t.Fatalf("runLines: %v", err)
		}

		var got listing
		if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON %q: %v", stdout, err)
		}
		want := listing{
			File: input,
			Lines: []listingLine{
				{Number: 0, Type: "heading-1", Text: "# Capsule"},
				{Number: 1, Type: "list", Text: "* one"},
				{Number: 2, Type: "quote", Text: "> quoted"},
				{Number: 3, Type: "link", Text: "=> photo.JPG Photo"},
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("listing mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(nil)
		if err := runLines(context.Background(), []string{input}, &linesFlags{format: "YAML"}, env); err != nil {
			t.Fatalf("runLines: %v", err)
		}
		for _, want := range []string{"file: " + input, "type: heading-1", "* one"} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("YAML should contain %q, got:\n%s", want, stdout)
			}
		}
	})

	t.Run("case-insensitive images", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(nil)
		flags := &linesFlags{classify: classifyFlags{caseInsensitive: true}}
		if err := runLines(context.Background(), []string{input}, flags, env); err != nil {
			t.Fatalf("runLines: %v", err)
		}
		if !strings.Contains(stdout.String(), "3: link-image: => photo.JPG Photo") {
			t.Errorf("JPG should be an image, got:\n%s", stdout)
		}
	})

	t.Run("text summary", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(nil)
		if err := runLines(context.Background(), []string{input}, &linesFlags{summary: true}, env); err != nil {
			t.Fatalf("runLines: %v", err)
		}
		want := "link: 1\nheading-1: 1\nlist: 1\nquote: 1\ntotal: 4\n"
		if diff := cmp.Diff(want, stdout.String()); diff != "" {
			t.Errorf("summary mismatch (-want +got):\n%s", diff)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunLines_OutputDir - Listings written next to a mirrored tree
// ---------------------------------------------------------------------------

func TestRunLines_OutputDir(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "listings")
	writeFiles(t, in, map[string]string{
		"index.gmi":     "# Home\n",
		"posts/one.gmi": "* item\n",
	})

	env, stdout, stderr := testEnv(nil)
	flags := &linesFlags{output: out, format: "json"}
	if err := runLines(context.Background(), []string{in}, flags, env); err != nil {
		t.Fatalf("runLines: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty with --output, got %q", stdout)
	}
	if !strings.Contains(stderr.String(), "wrote listing") {
		t.Errorf("stderr should log written listings, got %q", stderr)
	}

	for _, rel := range []string{"index.lines.json", filepath.Join("posts", "one.lines.json")} {
		data, err := os.ReadFile(filepath.Join(out, rel))
		if err != nil {
			t.Fatalf("reading %s: %v", rel, err)
		}
		var l listing
		if err := json.Unmarshal(data, &l); err != nil {
			t.Errorf("%s: invalid JSON: %v", rel, err)
		}
		if len(l.Lines) != 1 {
			t.Errorf("%s: %d lines, want 1", rel, len(l.Lines))
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunLines_Precedence - Flags over env vars over config file
// ---------------------------------------------------------------------------

func TestRunLines_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"page.gmi": "=> cover.webp\n",
		"gmi.yaml": "output:\n  format: json\nclassify:\n  imageExtensions: [webp]\n",
	})
	input := filepath.Join(dir, "page.gmi")
	cfgPath := filepath.Join(dir, "gmi.yaml")

	tests := []struct {
		name    string
		vars    map[string]string
		flags   linesFlags
		wantOut string
	}{
		{
			name:    "config file via env",
			vars:    map[string]string{"GMI_CONFIG": cfgPath},
			wantOut: `"type": "link-image"`,
		},
		{
			name:    "env format overrides config",
			vars:    map[string]string{"GMI_CONFIG": cfgPath, "GMI_FORMAT": "text"},
			wantOut: "0: link-image: => cover.webp",
		},
		{
			name:    "flag format overrides env",
			vars:    map[string]string{"GMI_CONFIG": cfgPath, "GMI_FORMAT": "json"},
			flags:   linesFlags{format: "text"},
			wantOut: "0: link-image: => cover.webp",
		},
		{
			name:    "flag image extensions override config",
			vars:    map[string]string{"GMI_CONFIG": cfgPath},
			flags:   linesFlags{format: "text", classify: classifyFlags{imageExts: []string{"png"}}},
			wantOut: "0: link: => cover.webp",
		},
		{
			name:    "defaults without config",
			flags:   linesFlags{},
			wantOut: "0: link: => cover.webp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(tt.vars)
			flags := tt.flags
			if err := runLines(context.Background(), []string{input}, &flags, env); err != nil {
				t.Fatalf("runLines: %v (stderr: %s)", err, stderr)
			}
			if !strings.Contains(stdout.String(), tt.wantOut) {
				t.Errorf("stdout should contain %q, got:\n%s", tt.wantOut, stdout)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunLines_Errors - Sentinel errors surfaced to exit codes
// ---------------------------------------------------------------------------

func TestRunLines_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"page.md":      "# markdown\n",
		"ok.gmi":       "# ok\n",
		"again/ok.gmi": "# ok again\n",
		"empty/x.txt":  "nothing\n",
	})

	tests := []struct {
		name     string
		args     []string
		flags    linesFlags
		vars     map[string]string
		wantErr  error
		wantCode int
	}{
		{
			name:     "explicit file with wrong extension",
			args:     []string{filepath.Join(dir, "page.md")},
			wantErr:  ErrInvalidExtension,
			wantCode: ExitUsage,
		},
		{
			name:     "directory without gemtext",
			args:     []string{filepath.Join(dir, "empty")},
			wantErr:  ErrNoFiles,
			wantCode: ExitIO,
		},
		{
			name:     "watch stdin",
			args:     []string{"-"},
			flags:    linesFlags{watch: true},
			wantErr:  ErrWatchStdin,
			wantCode: ExitUsage,
		},
		{
			name:     "stdin twice",
			args:     []string{"-", "-"},
			flags:    linesFlags{workers: 2, summary: true},
			wantErr:  ErrRepeatedStdin,
			wantCode: ExitUsage,
		},
		{
			name:     "two inputs share a listing path",
			args:     []string{filepath.Join(dir, "ok.gmi"), filepath.Join(dir, "again", "ok.gmi")},
			flags:    linesFlags{output: filepath.Join(dir, "out")},
			wantErr:  ErrOutputCollision,
			wantCode: ExitUsage,
		},
		{
			name:     "config name not found",
			args:     []string{filepath.Join(dir, "ok.gmi")},
			flags:    linesFlags{common: commonFlags{config: "no-such-gmi-config"}},
			wantErr:  config.ErrConfigNotFound,
			wantCode: ExitUsage,
		},
		{
			name:     "too many workers",
			args:     []string{filepath.Join(dir, "ok.gmi")},
			flags:    linesFlags{workers: config.MaxWorkers + 1},
			wantErr:  config.ErrInvalidValue,
			wantCode: ExitUsage,
		},
		{
			name:     "bad extension search",
			args:     []string{filepath.Join(dir, "ok.gmi")},
			flags:    linesFlags{classify: classifyFlags{extSearch: "middle"}},
			wantErr:  config.ErrInvalidValue,
			wantCode: ExitUsage,
		},
		{
			name:     "default dir from env",
			vars:     map[string]string{"GMI_INPUT_DIR": filepath.Join(dir, "missing")},
			wantErr:  os.ErrNotExist,
			wantCode: ExitIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, _ := testEnv(tt.vars)
			flags := tt.flags
			err := runLines(context.Background(), tt.args, &flags, env)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("runLines() error = %v, want %v", err, tt.wantErr)
			}
			if got := exitCodeFor(err); got != tt.wantCode {
				t.Errorf("exitCodeFor(%v) = %d, want %d", err, got, tt.wantCode)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunLines_PartialFailure - One unreadable input fails the batch
// ---------------------------------------------------------------------------

func TestRunLines_PartialFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"good.gmi": "# fine\n",
		"long.gmi": strings.Repeat("x", 2<<20) + "\n",
	})

	env, stdout, stderr := testEnv(nil)
	err := runLines(context.Background(), []string{dir}, &linesFlags{}, env)
	if !errors.Is(err, ErrFailedFiles) {
		t.Fatalf("runLines() error = %v, want ErrFailedFiles", err)
	}
	if !strings.Contains(stdout.String(), "0: heading-1: # fine") {
		t.Errorf("good file should still be listed, got %q", stdout)
	}
	if !strings.Contains(stderr.String(), "classification failed") {
		t.Errorf("stderr should log the failure, got %q", stderr)
	}
}

// ---------------------------------------------------------------------------
// TestRunLines_Quiet - Quiet suppresses info diagnostics
// ---------------------------------------------------------------------------

func TestRunLines_Quiet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.gmi": "a\n", "b.gmi": "b\n"})

	env, _, stderr := testEnv(map[string]string{"GMI_TYPO": "1"})
	flags := &linesFlags{common: commonFlags{quiet: true}}
	if err := runLines(context.Background(), []string{dir}, flags, env); err != nil {
		t.Fatalf("runLines: %v", err)
	}
	if strings.Contains(stderr.String(), "batch complete") {
		t.Errorf("quiet run should not log info, got %q", stderr)
	}
	if !strings.Contains(stderr.String(), "GMI_TYPO") {
		t.Errorf("unknown variable warning is emitted before quiet applies, got %q", stderr)
	}
}
