package tracker

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/prospector-cli/internal/model"
)

// SQLiteStore persists the tracking document in SQLite via
// modernc.org/sqlite: one row per contact plus a meta row. Load and Save
// still move the whole document — the layout changes, the read-modify-write
// contract does not.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (and migrates) a SQLite tracking database.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "tracker: open sqlite")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "tracker: exec %s", pragma)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS lifecycle_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS lifecycle_records (
	contact_id TEXT PRIMARY KEY,
	record     TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);
`

func (s *SQLiteStore) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "tracker: migrate")
}

func (s *SQLiteStore) Load(ctx context.Context) (*model.TrackingStore, error) {
	ts := model.NewTrackingStore()

	var version string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM lifecycle_meta WHERE key = 'version'`,
	).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return nil, eris.Wrap(err, "tracker: load version")
	}
	if version != "" {
		ts.Version = version
	}

	rows, err := s.db.QueryContext(ctx, `SELECT contact_id, record FROM lifecycle_records`)
	if err != nil {
		return nil, eris.Wrap(err, "tracker: load records")
	}
	defer rows.Close()

	for rows.Next() {
		var id, recordJSON string
		if err := rows.Scan(&id, &recordJSON); err != nil {
			return nil, eris.Wrap(err, "tracker: scan record")
		}
		var rec model.LifecycleRecord
		if err := json.Unmarshal([]byte(recordJSON), &rec); err != nil {
			return nil, eris.Wrapf(err, "tracker: unmarshal record %s", id)
		}
		ts.Contacts[id] = &rec
	}
	return ts, eris.Wrap(rows.Err(), "tracker: load iterate")
}

func (s *SQLiteStore) Save(ctx context.Context, ts *model.TrackingStore) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "tracker: begin save")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO lifecycle_meta (key, value) VALUES ('version', ?)`,
		ts.Version,
	); err != nil {
		return eris.Wrap(err, "tracker: save version")
	}

	// Whole-document semantics: replace every row.
	if _, err := tx.ExecContext(ctx, `DELETE FROM lifecycle_records`); err != nil {
		return eris.Wrap(err, "tracker: clear records")
	}

	now := time.Now().UTC()
	for id, rec := range ts.Contacts {
		recordJSON, err := json.Marshal(rec)
		if err != nil {
			return eris.Wrapf(err, "tracker: marshal record %s", id)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO lifecycle_records (contact_id, record, updated_at) VALUES (?, ?, ?)`,
			id, string(recordJSON), now,
		); err != nil {
			return eris.Wrapf(err, "tracker: insert record %s", id)
		}
	}

	return eris.Wrap(tx.Commit(), "tracker: commit save")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
