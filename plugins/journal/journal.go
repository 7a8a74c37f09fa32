package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one finished paste.
type Entry struct {
	ID         int64
	Requester  string
	File       string
	X, Y, Z    int32
	Dimension  int32
	Placed     int
	Skipped    int
	Failed     int
	StartedAt  time.Time
	FinishedAt time.Time
}

func (e Entry) Duration() time.Duration {
	return e.FinishedAt.Sub(e.StartedAt)
}

// Journal keeps the paste history in a sqlite file.
type Journal struct {
	db   *sql.DB
	once sync.Once
}

func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS pastes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			requester TEXT NOT NULL,
			file TEXT NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			z INTEGER NOT NULL,
			dimension INTEGER NOT NULL,
			placed INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS pastes_requester ON pastes(requester, id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (j *Journal) Close() error {
	var err error
	j.once.Do(func() {
		err = j.db.Close()
	})
	return err
}

// Record stores e and returns it with its assigned ID.
func (j *Journal) Record(ctx context.Context, e Entry) (Entry, error) {
	res, err := j.db.ExecContext(ctx,
		`INSERT INTO pastes(requester,file,x,y,z,dimension,placed,skipped,failed,started_at,finished_at)
		 VALUES(?,?,?,?,?,?,?,?,?,?,?)`,
		e.Requester, e.File, e.X, e.Y, e.Z, e.Dimension, e.Placed, e.Skipped, e.Failed,
		e.StartedAt.UnixMilli(), e.FinishedAt.UnixMilli())
	if err != nil {
		return e, fmt.Errorf("journal: record: %w", err)
	}
	e.ID, err = res.LastInsertId()
	return e, err
}

// Recent returns at most n entries of requester, newest first.
func (j *Journal) Recent(ctx context.Context, requester string, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id,requester,file,x,y,z,dimension,placed,skipped,failed,started_at,finished_at
		 FROM pastes WHERE requester=? ORDER BY id DESC LIMIT ?`, requester, n)
	if err != nil {
		return nil, fmt.Errorf("journal: recent: %w", err)
	}
	defer rows.Close()
	entries := make([]Entry, 0, n)
	for rows.Next() {
		var (
			e                 Entry
			started, finished int64
		)
		if err := rows.Scan(&e.ID, &e.Requester, &e.File, &e.X, &e.Y, &e.Z, &e.Dimension,
			&e.Placed, &e.Skipped, &e.Failed, &started, &finished); err != nil {
			return nil, fmt.Errorf("journal: recent: %w", err)
		}
		e.StartedAt = time.UnixMilli(started)
		e.FinishedAt = time.UnixMilli(finished)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
