package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
)

// DatabaseFile is the database file name inside the data directory.
const DatabaseFile = "finrag.db"

// Store is a unified SQLite-based storage that provides access to
// all store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.finrag/data/finrag.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".finrag", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CatalogStore returns a CatalogStore interface backed by this store.
func (s *Store) CatalogStore() driven.CatalogStore {
	return &catalogStore{store: s}
}

// RecordStore returns a RecordStore interface backed by this store.
func (s *Store) RecordStore() driven.RecordStore {
	return &recordStore{store: s}
}

// PassageStore returns a PassageStore interface backed by this store.
func (s *Store) PassageStore() driven.PassageStore {
	return &passageStore{store: s}
}

// migrate runs all pending migrations. Each migration runs in its own
// transaction together with its schema_migrations row.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(content); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion() (int, error) {
	var v int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v)
	return v, err
}

// ==================== Catalog Store ====================

// catalogStore implements driven.CatalogStore.
type catalogStore struct {
	store *Store
}

var _ driven.CatalogStore = (*catalogStore)(nil)

// Create inserts a definition and sets its ID.
func (s *catalogStore) Create(ctx context.Context, def *domain.MetricDefinition) error {
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO metric_definitions (name, pattern, category) VALUES (?, ?, ?)
	`, def.Name, def.Pattern, def.Category)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("metric %q: %w", def.Name, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("creating metric definition: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading metric id: %w", err)
	}
	def.ID = id
	return nil
}

// Get retrieves a definition by ID.
func (s *catalogStore) Get(ctx context.Context, id int64) (*domain.MetricDefinition, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, pattern, category FROM metric_definitions WHERE id = ?
	`, id)

	var def domain.MetricDefinition
	if err := row.Scan(&def.ID, &def.Name, &def.Pattern, &def.Category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning metric definition: %w", err)
	}
	return &def, nil
}

// Update overwrites name, pattern and category of an existing definition.
func (s *catalogStore) Update(ctx context.Context, def *domain.MetricDefinition) error {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE metric_definitions SET name = ?, pattern = ?, category = ? WHERE id = ?
	`, def.Name, def.Pattern, def.Category, def.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("metric %q: %w", def.Name, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("updating metric definition: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a definition. Records it produced are kept.
func (s *catalogStore) Delete(ctx context.Context, id int64) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM metric_definitions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting metric definition: %w", err)
	}
	return requireAffected(res)
}

// List returns all definitions ordered by ID.
func (s *catalogStore) List(ctx context.Context) ([]domain.MetricDefinition, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, pattern, category FROM metric_definitions ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying metric definitions: %w", err)
	}
	defer rows.Close()

	var defs []domain.MetricDefinition //nolint:prealloc // size unknown from query
	for rows.Next() {
		var def domain.MetricDefinition
		if err := rows.Scan(&def.ID, &def.Name, &def.Pattern, &def.Category); err != nil {
			return nil, fmt.Errorf("scanning metric definition: %w", err)
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating metric definitions: %w", err)
	}
	return defs, nil
}

// Count returns the number of definitions.
func (s *catalogStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM metric_definitions").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting metric definitions: %w", err)
	}
	return n, nil
}

// ==================== Record Store ====================

// recordStore implements driven.RecordStore.
type recordStore struct {
	store *Store
}

var _ driven.RecordStore = (*recordStore)(nil)

const recordColumns = "id, period, metric_name, value, unit, year, source_page, category"

// ReplacePeriod deletes the period's records and inserts the new ones in a
// single transaction. Assigned IDs are written back into records.
func (s *recordStore) ReplacePeriod(ctx context.Context, period string, records []domain.ExtractedMetricRecord) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM metric_records WHERE period = ?", period); err != nil {
		return fmt.Errorf("clearing records for %s: %w", period, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO metric_records (period, metric_name, value, unit, year, source_page, category)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		r := &records[i]
		res, err := stmt.ExecContext(ctx, period, r.MetricName, r.Value, r.Unit, r.Year, r.SourcePage, r.Category)
		if err != nil {
			return fmt.Errorf("saving record %q: %w", r.MetricName, err)
		}
		if r.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("reading record id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListByMetric returns the records of one metric ordered by year, then period.
func (s *recordStore) ListByMetric(ctx context.Context, metricName string) ([]domain.ExtractedMetricRecord, error) {
	return s.query(ctx, "SELECT "+recordColumns+
		" FROM metric_records WHERE metric_name = ? ORDER BY year, period, id", metricName)
}

// ListByCategory returns the records of a category for one period.
func (s *recordStore) ListByCategory(ctx context.Context, period, category string) ([]domain.ExtractedMetricRecord, error) {
	return s.query(ctx, "SELECT "+recordColumns+
		" FROM metric_records WHERE period = ? AND category = ? ORDER BY id", period, category)
}

// List returns records for a period, or every record when period is empty.
func (s *recordStore) List(ctx context.Context, period string) ([]domain.ExtractedMetricRecord, error) {
	if period == "" {
		return s.query(ctx, "SELECT "+recordColumns+" FROM metric_records ORDER BY id")
	}
	return s.query(ctx, "SELECT "+recordColumns+" FROM metric_records WHERE period = ? ORDER BY id", period)
}

// Periods returns the distinct periods in ascending order.
func (s *recordStore) Periods(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT DISTINCT period FROM metric_records ORDER BY period")
	if err != nil {
		return nil, fmt.Errorf("querying periods: %w", err)
	}
	defer rows.Close()

	var periods []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning period: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating periods: %w", err)
	}
	return periods, nil
}

func (s *recordStore) query(ctx context.Context, query string, args ...any) ([]domain.ExtractedMetricRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []domain.ExtractedMetricRecord
	for rows.Next() {
		var r domain.ExtractedMetricRecord
		if err := rows.Scan(&r.ID, &r.Period, &r.MetricName, &r.Value, &r.Unit,
			&r.Year, &r.SourcePage, &r.Category); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}

// ==================== Passage Store ====================

// passageStore implements driven.PassageStore.
type passageStore struct {
	store *Store
}

var _ driven.PassageStore = (*passageStore)(nil)

// LoadPassages returns the corpus ordered by position.
func (s *passageStore) LoadPassages(ctx context.Context) ([]domain.Passage, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT position, id, period, page, text, embedding FROM passages ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying passages: %w", err)
	}
	defer rows.Close()

	var passages []domain.Passage
	for rows.Next() {
		var p domain.Passage
		var blob []byte
		if err := rows.Scan(&p.Position, &p.ID, &p.Period, &p.Page, &p.Text, &blob); err != nil {
			return nil, fmt.Errorf("scanning passage: %w", err)
		}
		p.Embedding = bytesToFloat32Slice(blob)
		passages = append(passages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating passages: %w", err)
	}
	return passages, nil
}

// ReplacePassages replaces the whole corpus in one transaction.
func (s *passageStore) ReplacePassages(ctx context.Context, passages []domain.Passage) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM passages"); err != nil {
		return fmt.Errorf("clearing passages: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO passages (position, id, period, page, text, embedding)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range passages {
		if _, err := stmt.ExecContext(ctx, p.Position, p.ID, p.Period, p.Page, p.Text,
			float32SliceToBytes(p.Embedding)); err != nil {
			return fmt.Errorf("saving passage %d: %w", p.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// requireAffected maps a zero-row UPDATE or DELETE to domain.ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
