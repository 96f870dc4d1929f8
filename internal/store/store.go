// Package store provides the SQLite-backed expense ledger.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/spend/internal/log"
	"github.com/theirongolddev/spend/internal/model"
	"github.com/theirongolddev/spend/internal/pipeline"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrInvalidWindow is returned when a trailing window is not a positive
// number of days.
var ErrInvalidWindow = errors.New("window must be at least 1 day")

// Store owns the expenses table.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
	log  *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the source of "today" for default dates and windows.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l.WithComponent(log.ComponentStore) }
}

// Open opens or creates the ledger database at the given path and makes
// sure the schema exists.
func Open(dbPath string, opts ...Option) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating ledger dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}
	// One connection: the ledger has a single writer and no parallel readers.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
		log:  log.Discard().WithComponent(log.ComponentStore),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.Initialize(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the ledger database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Initialize ensures the expenses table exists. Calling it again is a no-op.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping ledger db: %w", err)
	}
	if err := runMigrations(s.path); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	s.log.DebugContext(ctx, "schema ready", log.FieldOperation, log.OpInit, log.FieldPath, s.path)
	return nil
}

// Today returns the current local date in ledger format.
func (s *Store) Today() string {
	return model.FormatDate(s.now())
}

// Insert stores a new record and returns its id. An empty date means today.
// Values are stored as given; validation is the caller's job.
func (s *Store) Insert(ctx context.Context, category string, amount float64, date, description string) (int64, error) {
	if date == "" {
		date = s.Today()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (category, amount, date, description) VALUES (?, ?, ?, ?)`,
		category, amount, date, description,
	)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	s.log.DebugContext(ctx, "expense inserted",
		log.FieldOperation, log.OpInsert,
		log.FieldID, id,
		log.FieldCategory, category,
		log.FieldAmount, amount,
		log.FieldDate, date,
	)
	return id, nil
}

// ListAll returns every record, newest date first. Records sharing a date
// are ordered most recently inserted first.
func (s *Store) ListAll(ctx context.Context) ([]model.Expense, error) {
	return s.query(ctx, `SELECT id, category, amount, date, description
		FROM expenses
		ORDER BY date DESC, id DESC`)
}

// ListWithinLast returns records dated within [today-days, today], in the
// same order as ListAll.
func (s *Store) ListWithinLast(ctx context.Context, days int) ([]model.Expense, error) {
	if days < 1 {
		return nil, ErrInvalidWindow
	}
	now := s.now()
	since := pipeline.WindowStart(now, days)
	until := model.FormatDate(now)

	expenses, err := s.query(ctx, `SELECT id, category, amount, date, description
		FROM expenses
		WHERE date >= ? AND date <= ?
		ORDER BY date DESC, id DESC`, since, until)
	if err != nil {
		return nil, err
	}
	s.log.DebugContext(ctx, "window listed",
		log.FieldOperation, log.OpList, log.FieldDays, days, log.FieldCount, len(expenses))
	return expenses, nil
}

// SummarizeByCategory sums amounts per category over the trailing window.
// Categories with no records in the window are absent from the result.
func (s *Store) SummarizeByCategory(ctx context.Context, days int) (map[string]float64, error) {
	expenses, err := s.ListWithinLast(ctx, days)
	if err != nil {
		return nil, err
	}
	sums := pipeline.SumByCategory(expenses)
	s.log.DebugContext(ctx, "window summarized",
		log.FieldOperation, log.OpSummary, log.FieldDays, days, log.FieldCount, len(sums))
	return sums, nil
}

// Delete removes the record with the given id. A missing id is not an error.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	s.log.DebugContext(ctx, "expense deleted",
		log.FieldOperation, log.OpDelete, log.FieldID, id, log.FieldCount, n)
	return nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM expenses").Scan(&count); err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return count, nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	expenses := []model.Expense{}
	for rows.Next() {
		var e model.Expense
		var desc sql.NullString
		if err := rows.Scan(&e.ID, &e.Category, &e.Amount, &e.Date, &desc); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if desc.Valid {
			e.Description = desc.String
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}
