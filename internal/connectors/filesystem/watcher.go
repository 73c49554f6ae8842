// Package filesystem provides a report folder watcher backed by fsnotify.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ReportWatcher = (*Watcher)(nil)

// Watcher reports supported files under a root directory.
type Watcher struct {
	root       string
	extensions map[string]bool

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	watching bool
}

// New creates a watcher for root. extensions are matched case-insensitively
// and include the leading dot (".pdf").
func New(root string, extensions []string) *Watcher {
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = true
	}
	return &Watcher{root: root, extensions: exts}
}

// Root returns the watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Scan walks the root and returns supported, non-hidden files sorted by path.
func (w *Watcher) Scan(ctx context.Context) ([]string, error) {
	var files []string
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, _ := filepath.Rel(w.root, path)
		if d.IsDir() {
			if path != w.root && isHidden(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if isHidden(rel) || !w.supported(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", w.root, err)
	}
	sort.Strings(files)
	return files, nil
}

// Watch starts watching the root and its non-hidden subdirectories.
func (w *Watcher) Watch(ctx context.Context) (<-chan driven.ReportEvent, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watching {
		return nil, errors.New("watcher already running")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	err = filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, _ := filepath.Rel(w.root, path)
		if path != w.root && isHidden(rel) {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", w.root, err)
	}

	w.watcher = fw
	w.watching = true

	events := make(chan driven.ReportEvent)
	go w.loop(ctx, fw, events)
	return events, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, out chan<- driven.ReportEvent) {
	defer close(out)
	defer w.Close() //nolint:errcheck

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			// New subdirectories are watched as they appear.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.hidden(event.Name) {
					if err := fw.Add(event.Name); err != nil {
						logger.Warn("Cannot watch %s: %v", event.Name, err)
					}
					continue
				}
			}
			change := w.handleFsEvent(event)
			if change == nil {
				continue
			}
			select {
			case out <- *change:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// handleFsEvent maps an fsnotify event to a report event.
// Removals, renames and chmods are ignored: the corpus only grows.
func (w *Watcher) handleFsEvent(event fsnotify.Event) *driven.ReportEvent {
	if w.hidden(event.Name) || !w.supported(event.Name) {
		return nil
	}

	var op driven.ReportOp
	switch {
	case event.Has(fsnotify.Create):
		op = driven.ReportCreated
	case event.Has(fsnotify.Write):
		op = driven.ReportUpdated
	default:
		return nil
	}

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return nil
	}
	return &driven.ReportEvent{Path: event.Name, Op: op}
}

// hidden checks path relative to the root, so a hidden parent of the root
// itself does not hide everything.
func (w *Watcher) hidden(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	return isHidden(rel)
}

func (w *Watcher) supported(path string) bool {
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.watching {
		return nil
	}
	w.watching = false
	return w.watcher.Close()
}

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part != "" && part != "." && part != ".." && strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
