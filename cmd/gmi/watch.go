package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/alnah/go-gmi/internal/fileutil"
)

// watchDebounce coalesces bursts of events from editors saving a file.
const watchDebounce = 300 * time.Millisecond

// watchInputs re-runs classification whenever a watched gemtext file changes.
// Directories are watched recursively; explicit files are watched through
// their parent directory so atomic saves are seen. Returns nil when ctx is done.
func watchInputs(
	ctx context.Context,
	inputs, exts []string,
	discover func() ([]FileToClassify, error),
	run func([]FileToClassify) error,
	log logrus.FieldLogger,
) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}
	defer watcher.Close()

	set := watchSet{files: make(map[string]bool), exts: exts}
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWatch, err)
		}
		if info.IsDir() {
			set.roots = append(set.roots, filepath.Clean(input))
			addDirsRecursive(watcher, input, log)
			continue
		}
		set.files[filepath.Clean(input)] = true
		if err := watcher.Add(filepath.Dir(input)); err != nil {
			return fmt.Errorf("%w: %w", ErrWatch, err)
		}
	}

	log.WithField("inputs", strings.Join(inputs, ", ")).Info("watching for changes")

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("stopped watching")
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() && !fileutil.IsHidden(ev.Name) {
					addDirsRecursive(watcher, ev.Name, log)
					continue
				}
			}
			if !set.relevant(ev) {
				continue
			}
			log.WithFields(logrus.Fields{"path": ev.Name, "op": ev.Op.String()}).Debug("change detected")
			timer.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watcher error")

		case <-timer.C:
			files, err := discover()
			if err != nil {
				log.WithError(err).Warn("discovering files")
				continue
			}
			if err := run(files); err != nil {
				log.WithError(err).Warn("classification pass failed")
			}
		}
	}
}

// watchSet describes which paths trigger a classification pass.
type watchSet struct {
	files map[string]bool // explicit file inputs
	roots []string        // directory inputs, watched recursively
	exts  []string
}

// relevant reports whether ev concerns an explicit file or a gemtext file
// below a directory input. Chmod-only events and editor temp files are ignored.
func (s watchSet) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod || shouldIgnorePath(ev.Name) {
		return false
	}
	name := filepath.Clean(ev.Name)
	if s.files[name] {
		return true
	}
	if !fileutil.HasExtension(name, s.exts) {
		return false
	}
	for _, root := range s.roots {
		if rel, err := filepath.Rel(root, name); err == nil && !strings.HasPrefix(rel, "..") {
			return true
		}
	}
	return false
}

// shouldIgnorePath returns true for hidden files and editor swap/backup files.
func shouldIgnorePath(path string) bool {
	base := filepath.Base(path)
	return fileutil.IsHidden(path) ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasPrefix(base, "#")
}

// addDirsRecursive watches root and every non-hidden directory below it.
func addDirsRecursive(w *fsnotify.Watcher, root string, log logrus.FieldLogger) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && fileutil.IsHidden(path) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			log.WithError(err).WithField("dir", path).Warn("watch add failed")
		}
		return nil
	})
}
