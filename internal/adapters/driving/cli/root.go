// Package cli provides the finrag command-line interface.
// It implements a driving adapter over the core services using cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driving"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// skipBootstrap marks commands that run without opening the stores.
const skipBootstrap = "finrag/skip-bootstrap"

// Options carries the root persistent flags to the bootstrap function.
type Options struct {
	Verbose   bool
	DataDir   string
	ConfigDir string
}

// Services holds the ports the commands drive.
type Services struct {
	Catalog driving.CatalogService
	Ingest  driving.IngestService
	Query   driving.QueryService
	Records driving.RecordService
	Corpus  driving.CorpusService
	Config  driven.ConfigStore

	// NewWatcher creates a report watcher rooted at a directory.
	NewWatcher func(root string) driven.ReportWatcher

	// SettleDelay is how long a watched file must stay unchanged.
	SettleDelay time.Duration
}

// BootstrapFunc builds the services from the root options.
// The returned cleanup releases stores and connections.
type BootstrapFunc func(ctx context.Context, opts Options) (*Services, func(), error)

var (
	catalogService driving.CatalogService
	ingestService  driving.IngestService
	queryService   driving.QueryService
	recordService  driving.RecordService
	corpusService  driving.CorpusService
	configStore    driven.ConfigStore
	newWatcher     func(root string) driven.ReportWatcher
	settleDelay    time.Duration

	bootstrap BootstrapFunc
	cleanup   func()
	rootOpts  Options
)

var errNotConfigured = errors.New("not configured")

var rootCmd = &cobra.Command{
	Use:   "finrag",
	Short: "Question answering over quarterly financial reports",
	Long: `finrag ingests periodic financial reports, extracts catalogued metrics
into structured records and indexes report paragraphs for semantic search.

Questions are answered from the structured records when a known intent
matches (trends, margin changes, expense breakdowns) and from the most
similar report passages otherwise.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
	PersistentPostRun: func(*cobra.Command, []string) { Shutdown() },
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&rootOpts.Verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&rootOpts.DataDir, "data-dir", "", "data directory (default ~/.finrag/data)")
	flags.StringVar(&rootOpts.ConfigDir, "config-dir", "", "config directory (default ~/.finrag)")
}

// SetBootstrap registers the function that builds services before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices installs services directly, bypassing bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	catalogService = s.Catalog
	ingestService = s.Ingest
	queryService = s.Query
	recordService = s.Records
	corpusService = s.Corpus
	configStore = s.Config
	newWatcher = s.NewWatcher
	settleDelay = s.SettleDelay
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer Shutdown()
	return rootCmd.ExecuteContext(ctx)
}

// Shutdown releases whatever bootstrap opened. Safe to call more than once.
func Shutdown() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(rootOpts.Verbose)

	if bootstrap == nil || !needsBootstrap(cmd) {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, release, err := bootstrap(ctx, rootOpts)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(s)
	cleanup = release
	return nil
}

// needsBootstrap walks up from cmd looking for the skip annotation.
func needsBootstrap(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[skipBootstrap]; ok {
			return false
		}
	}
	return true
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func requireService(svc any, name string) error {
	if svc == nil {
		return fmt.Errorf("%s service %w", name, errNotConfigured)
	}
	return nil
}
