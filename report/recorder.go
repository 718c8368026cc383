package report

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/tebeka/atexit"
)

// Recorder stores finished run summaries.
type Recorder interface {
	Record(s Summary)
	Flush() error
}

const createRunsTable = `CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	policy TEXT NOT NULL,
	frames INTEGER NOT NULL,
	total_accesses INTEGER NOT NULL,
	page_faults INTEGER NOT NULL,
	replacements INTEGER NOT NULL,
	disk_writes INTEGER NOT NULL,
	hit_rate REAL NOT NULL,
	miss_rate REAL NOT NULL,
	effective_access_time_ns REAL NOT NULL,
	elapsed_ns INTEGER NOT NULL
);`

const insertRun = `INSERT INTO runs (
	run_id, policy, frames, total_accesses, page_faults, replacements,
	disk_writes, hit_rate, miss_rate, effective_access_time_ns, elapsed_ns
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// sqliteRecorder buffers summaries and writes them in one transaction per
// flush.
type sqliteRecorder struct {
	*sql.DB

	mu      sync.Mutex
	pending []Summary
}

// NewSQLiteRecorder opens (or creates) the database at path. Buffered rows
// are flushed when the process exits through atexit.
func NewSQLiteRecorder(path string) (Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	r, err := NewSQLiteRecorderWithDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	slog.Info("recording runs", "database", path)
	return r, nil
}

// NewSQLiteRecorderWithDB records into an already opened database.
func NewSQLiteRecorderWithDB(db *sql.DB) (Recorder, error) {
	if _, err := db.Exec(createRunsTable); err != nil {
		return nil, fmt.Errorf("create runs table: %w", err)
	}

	r := &sqliteRecorder{DB: db}
	atexit.Register(func() {
		if err := r.Flush(); err != nil {
			slog.Error("flushing recorded runs failed", "err", err)
		}
	})

	return r, nil
}

func (r *sqliteRecorder) Record(s Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = append(r.pending, s)
}

func (r *sqliteRecorder) Flush() (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.pending) == 0 {
		return nil
	}

	tx, err := r.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(insertRun)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range r.pending {
		_, err = stmt.Exec(
			s.RunID,
			string(s.Policy),
			s.Frames,
			s.Stats.TotalAccesses,
			s.Stats.PageFaults,
			s.Stats.Replacements,
			s.Stats.DiskWrites,
			s.HitRate,
			s.MissRate,
			s.EffectiveAccessTime,
			s.Elapsed.Nanoseconds(),
		)
		if err != nil {
			return fmt.Errorf("insert run %s: %w", s.RunID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	r.pending = r.pending[:0]
	return nil
}
