// Package sqlite implements the repository interfaces on an embedded SQLite
// database (modernc.org/sqlite, pure Go, no cgo).
//
// One *DB owns the connection pool. Each entity gets a small repository
// value (Users, Projects, Skills, ...) that shares the pool, so a single
// database file holds every table.
//
// WHY ONE CONNECTION?
// sql.DB is a pool, not a connection. It opens new connections whenever
// concurrent callers need them. For SQLite that has two consequences:
//
//   - ":memory:" gives every connection its own private, empty database. With
//     a normal pool the migrations run on connection #1 and a request served
//     by connection #2 finds no tables at all. SetMaxOpenConns(1) pins every
//     query to the connection the migrations ran on.
//   - A file database still allows only one writer at a time. Extra pooled
//     connections would just wait on the file lock (or fail with SQLITE_BUSY
//     once busy_timeout runs out). Queuing inside database/sql is simpler.
//
// The portfolio's traffic is mostly small reads, so the single connection
// is not a bottleneck, and tests use the exact code path production does.
//
// THE ONE RULE THIS IMPOSES:
// Never issue a query on db.conn while holding a *sql.Tx from it. The
// transaction owns the only connection, so the second query waits forever.
// Inside a transaction, run everything through the tx.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DB wraps a sql.DB connection pool and hands out the per-entity repositories.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/portfolio.db" → file-based database (persistent)
//   - ":memory:"          → in-memory database (tests)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	// Ping forces a real connection so a bad path fails here, not on the first request.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write is in progress.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting busy timeout: %w", err)
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return &DB{conn: conn}, nil
}

// NewWithConn wraps an already-open pool without running migrations.
// Tests use it with go-sqlmock.
func NewWithConn(conn *sql.DB) *DB {
	return &DB{conn: conn}
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks that the database still answers. Used by the health check.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping: %w", err)
	}
	return nil
}

func (db *DB) Users() *UserRepo               { return &UserRepo{conn: db.conn} }
func (db *DB) Projects() *ProjectRepo         { return &ProjectRepo{conn: db.conn} }
func (db *DB) Skills() *SkillRepo             { return &SkillRepo{conn: db.conn} }
func (db *DB) Testimonials() *TestimonialRepo { return &TestimonialRepo{conn: db.conn} }
func (db *DB) Contacts() *ContactRepo         { return &ContactRepo{conn: db.conn} }
func (db *DB) About() *AboutRepo              { return &AboutRepo{conn: db.conn} }

// migrate applies the embedded goose migrations.
//
// goose keeps its settings in package globals; New is only called at
// startup and from sequential tests, so setting them here is safe.
func migrate(conn *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.Up(conn, "migrations"); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// withTx runs fn inside a transaction and commits only if fn succeeds.
func withTx(ctx context.Context, conn *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		// Rollback errors are secondary; the caller needs fn's error.
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// checkAffected turns a zero-row UPDATE/DELETE into a NotFound error.
func checkAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
