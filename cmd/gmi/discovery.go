package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-gmi/internal/config"
	"github.com/alnah/go-gmi/internal/fileutil"
	"github.com/alnah/go-gmi/internal/hints"
)

// stdinName is the display name and output base name for standard input.
const stdinName = "stdin"

// FileToClassify represents a single input to process.
type FileToClassify struct {
	InputPath  string // fileutil.StdinPath for standard input
	OutputPath string // empty = stdout
}

// IsStdin reports whether the input is standard input.
func (f FileToClassify) IsStdin() bool {
	return f.InputPath == fileutil.StdinPath
}

// DisplayName returns the name used in headers and diagnostics.
func (f FileToClassify) DisplayName() string {
	if f.IsStdin() {
		return stdinName
	}
	return f.InputPath
}

// resolveInputPaths determines the inputs from args or config.
func resolveInputPaths(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	return nil, fmt.Errorf("%w%s", ErrNoInput, hints.ForNoInput())
}

// discoverFiles expands inputs into files to classify, in argument order.
// Directories are walked lexically, skipping hidden entries and files
// whose extension is not in exts. Explicit files must match exts.
// Standard input may appear once, and no two inputs may share a listing path.
func discoverFiles(inputs, exts []string, outputDir, outputExt string) ([]FileToClassify, error) {
	var files []FileToClassify
	sawStdin := false

	for _, input := range inputs {
		if input == fileutil.StdinPath {
			if sawStdin {
				return nil, ErrRepeatedStdin
			}
			sawStdin = true
			files = append(files, FileToClassify{
				InputPath:  input,
				OutputPath: resolveOutputPath(stdinName, outputDir, "", outputExt),
			})
			continue
		}

		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if !fileutil.HasExtension(input, exts) {
				return nil, fmt.Errorf("%w: %s (accepted: %s)", ErrInvalidExtension, input, strings.Join(exts, ", "))
			}
			files = append(files, FileToClassify{
				InputPath:  input,
				OutputPath: resolveOutputPath(input, outputDir, "", outputExt),
			})
			continue
		}

		found, err := walkDir(input, exts, outputDir, outputExt)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("%w in %s%s", ErrNoFiles, input, hints.ForNoFiles(exts))
		}
		files = append(files, found...)
	}

	if err := checkOutputCollisions(files); err != nil {
		return nil, err
	}
	return files, nil
}

// checkOutputCollisions rejects inputs that would write the same listing file.
func checkOutputCollisions(files []FileToClassify) error {
	owners := make(map[string]string, len(files))
	for _, f := range files {
		if f.OutputPath == "" {
			continue
		}
		if prev, ok := owners[f.OutputPath]; ok {
			return fmt.Errorf("%w: %s and %s both write %s", ErrOutputCollision, prev, f.DisplayName(), f.OutputPath)
		}
		owners[f.OutputPath] = f.DisplayName()
	}
	return nil
}

// walkDir collects gemtext files under root.
func walkDir(root string, exts []string, outputDir, outputExt string) ([]FileToClassify, error) {
	var files []FileToClassify
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if path != root && fileutil.IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !fileutil.HasExtension(path, exts) {
			return nil
		}
		files = append(files, FileToClassify{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, outputDir, root, outputExt),
		})
		return nil
	})
	return files, err
}

// resolveOutputPath determines the listing path for an input.
// Returns "" when outputDir is empty (listing goes to stdout).
// Directory structure below baseInputDir is preserved.
func resolveOutputPath(inputPath, outputDir, baseInputDir, outputExt string) string {
	if outputDir == "" {
		return ""
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := base + ".lines." + outputExt

	if baseInputDir != "" {
		if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), name)
		}
	}

	return filepath.Join(outputDir, name)
}

// outputExtension maps a listing format to its file extension.
func outputExtension(format string) string {
	switch strings.ToLower(format) {
	case config.FormatYAML:
		return "yaml"
	case config.FormatJSON:
		return "json"
	default:
		return "txt"
	}
}

// resolveWorkers determines the worker count for n files.
// Priority: explicit setting > GOMAXPROCS (adjusted by automaxprocs).
// Never exceeds n or config.MaxWorkers, never below 1.
func resolveWorkers(workers, n int) int {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return max(1, min(workers, n, config.MaxWorkers))
}
