package eventlog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteLog persists the stream in a single append-only table. There are no
// UPDATE or DELETE statements on the events table; corrections do not exist
// in this model. WAL mode keeps concurrent read-model rescans from blocking
// the single writer.
type SQLiteLog struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS ledger_events (
	seq     INTEGER PRIMARY KEY AUTOINCREMENT,
	kind    TEXT    NOT NULL,
	at      INTEGER NOT NULL,
	subject TEXT    NOT NULL,
	payload BLOB    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ledger_events_subject ON ledger_events(subject);
`

// NewSQLiteLog opens (or creates) the log at path. Use ":memory:" for an
// ephemeral database.
func NewSQLiteLog(path string) (*SQLiteLog, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate event log schema: %w", err)
	}
	return &SQLiteLog{db: db}, nil
}

// Close releases the underlying database handle.
func (l *SQLiteLog) Close() error {
	return l.db.Close()
}

func (l *SQLiteLog) Append(ctx context.Context, e *Entry) error {
	payload, err := cbor.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	res, err := l.db.ExecContext(ctx,
		`INSERT INTO ledger_events (kind, at, subject, payload) VALUES (?, ?, ?, ?)`,
		string(e.Kind), e.At, string(e.Subject), payload,
	)
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read assigned seq: %w", err)
	}
	e.Seq = uint64(seq)
	return nil
}

func (l *SQLiteLog) Entries(ctx context.Context) ([]Entry, error) {
	return l.scan(ctx, 0)
}

func (l *SQLiteLog) EntriesSince(ctx context.Context, seq uint64) ([]Entry, error) {
	return l.scan(ctx, seq)
}

func (l *SQLiteLog) scan(ctx context.Context, after uint64) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT seq, payload FROM ledger_events WHERE seq > ? ORDER BY seq`, after)
	if err != nil {
		return nil, fmt.Errorf("scan event log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			seq     int64
			payload []byte
		)
		if err := rows.Scan(&seq, &payload); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		var e Entry
		if err := cbor.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("decode entry %d: %w", seq, err)
		}
		e.Seq = uint64(seq)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan event log: %w", err)
	}
	return entries, nil
}
