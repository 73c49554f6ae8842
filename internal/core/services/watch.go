package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driving"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/logger"
)

// DefaultSettleDelay is how long a file must stay unchanged before it is ingested.
const DefaultSettleDelay = 2 * time.Second

// WatchReport is called after every ingestion attempt made by the folder watcher.
type WatchReport func(path string, result *domain.IngestResult, err error)

// FolderWatcher ingests reports as they appear in a watched folder.
// Bursts of writes to one file are coalesced into a single ingestion once
// the file has been quiet for the settle delay.
type FolderWatcher struct {
	ingest driving.IngestService
	settle time.Duration
	now    func() time.Time

	mu      sync.Mutex
	pending map[string]time.Time
}

// NewFolderWatcher creates a folder watcher. A settle delay <= 0 uses
// DefaultSettleDelay.
func NewFolderWatcher(ingest driving.IngestService, settle time.Duration) *FolderWatcher {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &FolderWatcher{
		ingest:  ingest,
		settle:  settle,
		now:     time.Now,
		pending: make(map[string]time.Time),
	}
}

// Run ingests matching files until ctx is cancelled or the watcher stops.
// When backfill is set, files already present are ingested first.
func (f *FolderWatcher) Run(ctx context.Context, w driven.ReportWatcher, backfill bool, report WatchReport) error {
	logger.Section("Folder Watch")

	if backfill {
		files, err := w.Scan(ctx)
		if err != nil {
			return err
		}
		logger.Debug("Backfilling %d existing reports", len(files))
		for _, path := range files {
			if ctx.Err() != nil {
				return nil
			}
			f.run(ctx, path, report)
		}
	}

	events, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(f.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				f.flush(ctx, true, report)
				return nil
			}
			logger.Debug("Report %s: %s", ev.Op, ev.Path)
			f.touch(ev.Path)
		case <-ticker.C:
			f.flush(ctx, false, report)
		}
	}
}

func (f *FolderWatcher) touch(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending[path] = f.now()
}

// due removes and returns the settled paths, or every pending path when all is set.
func (f *FolderWatcher) due(all bool) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	var paths []string
	for path, last := range f.pending {
		if all || now.Sub(last) >= f.settle {
			paths = append(paths, path)
			delete(f.pending, path)
		}
	}
	sort.Strings(paths)
	return paths
}

func (f *FolderWatcher) flush(ctx context.Context, all bool, report WatchReport) {
	for _, path := range f.due(all) {
		f.run(ctx, path, report)
	}
}

func (f *FolderWatcher) run(ctx context.Context, path string, report WatchReport) {
	if !f.ingest.Supports(path) {
		return
	}
	result, err := f.ingest.Ingest(ctx, path, "")
	if err != nil {
		logger.Warn("Watch ingest of %s failed: %v", path, err)
	}
	if report != nil {
		report(path, result, err)
	}
}
