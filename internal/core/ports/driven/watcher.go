package driven

import "context"

// ReportOp is the kind of change a ReportWatcher observed.
type ReportOp string

const (
	// ReportCreated means a new report file appeared.
	ReportCreated ReportOp = "created"

	// ReportUpdated means an existing report file was written.
	ReportUpdated ReportOp = "updated"
)

// ReportEvent is a change to a report file in a watched folder.
type ReportEvent struct {
	Path string
	Op   ReportOp
}

// ReportWatcher observes a folder for report files.
// Only files with a supported extension are reported; hidden files and
// directories are ignored.
type ReportWatcher interface {
	// Scan returns the supported files currently present, sorted by path.
	Scan(ctx context.Context) ([]string, error)

	// Watch emits events until ctx is cancelled or Close is called.
	// The channel is closed when watching stops.
	Watch(ctx context.Context) (<-chan ReportEvent, error)

	// Close stops watching and releases resources.
	Close() error
}
