// Package indexdb keeps a queryable SQLite index of generation runs. The
// compressed archives stay the source of truth; the index can be rebuilt
// from them.
package indexdb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/samber/oops"
	_ "modernc.org/sqlite"

	"nonogram.ap/internal/sim/catalogs"
	"nonogram.ap/internal/sim/multiworld"
)

const schemaVersion = "1"

type SQLiteIndex struct {
	db   *sql.DB
	once sync.Once
}

// RunRow is one indexed generation run.
type RunRow struct {
	RunID       string
	Seed        int64
	Players     int
	Checksum    string
	ArchivePath string
	CreatedAt   string
}

// SlotRow is one indexed player slot of a run.
type SlotRow struct {
	RunID       string
	Slot        int
	Name        string
	GoalPuzzles int
	PoolSize    int
	OptionsJSON string
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, oops.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, oops.Wrapf(err, "create index dir")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, oops.Wrapf(err, "open sqlite %s", path)
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
	return &SQLiteIndex{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return oops.Wrapf(err, "pragma %s", p)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS catalogs (
			name TEXT PRIMARY KEY,
			digest TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			players INTEGER NOT NULL,
			checksum TEXT NOT NULL,
			archive_path TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);`,
		`CREATE TABLE IF NOT EXISTS slots (
			run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
			slot INTEGER NOT NULL,
			name TEXT NOT NULL,
			goal_puzzles INTEGER NOT NULL,
			pool_size INTEGER NOT NULL,
			options_json TEXT NOT NULL,
			slot_data_json TEXT NOT NULL,
			PRIMARY KEY (run_id, slot)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_slots_name ON slots(name);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return oops.Wrapf(err, "init schema")
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		err = s.db.Close()
	})
	return err
}

// UpsertCatalog stores the canonical tables and the data package under
// their digests.
func (s *SQLiteIndex) UpsertCatalog(ctx context.Context, cat *catalogs.Catalog) error {
	if s == nil || cat == nil {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	type kv struct {
		name   string
		digest string
		json   []byte
	}
	var rows []kv
	if b, _ := json.Marshal(cat.Items()); len(b) > 0 {
		rows = append(rows, kv{name: "items", digest: cat.ItemsDigest, json: b})
	}
	if b, _ := json.Marshal(cat.Locations()); len(b) > 0 {
		rows = append(rows, kv{name: "locations", digest: cat.LocationsDigest, json: b})
	}
	dp := cat.DataPackage()
	if b, _ := json.Marshal(dp); len(b) > 0 {
		rows = append(rows, kv{name: "data_package", digest: dp.Checksum, json: b})
	}
	if b, _ := json.Marshal(dp.ItemNameGroups); len(b) > 0 {
		sum := sha256.Sum256(b)
		rows = append(rows, kv{name: "item_groups", digest: hex.EncodeToString(sum[:]), json: b})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return oops.Wrapf(err, "begin catalog upsert")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version',?)`, schemaVersion); err != nil {
		return oops.Wrapf(err, "write schema version")
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO catalogs(name,digest,json,updated_at) VALUES(?,?,?,?)`)
	if err != nil {
		return oops.Wrapf(err, "prepare catalog upsert")
	}
	defer stmt.Close()
	for _, r := range rows {
		if r.name == "" || r.digest == "" || len(r.json) == 0 {
			continue
		}
		if _, err := stmt.ExecContext(ctx, r.name, r.digest, string(r.json), now); err != nil {
			return oops.Wrapf(err, "upsert catalog %s", r.name)
		}
	}
	return oops.Wrapf(tx.Commit(), "commit catalog upsert")
}

// RecordRun indexes a finished run and its slots in one transaction.
func (s *SQLiteIndex) RecordRun(ctx context.Context, res *multiworld.Result, archivePath string) error {
	if s == nil || res == nil {
		return nil
	}
	if res.RunID == "" {
		return oops.Errorf("record run: empty run id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return oops.Wrapf(err, "begin run %s", res.RunID)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs(run_id,seed,players,checksum,archive_path,created_at) VALUES(?,?,?,?,?,?)`,
		res.RunID, res.Seed, len(res.Slots), res.DataPackage.Checksum, archivePath, res.CreatedAt,
	); err != nil {
		return oops.Wrapf(err, "insert run %s", res.RunID)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO slots(run_id,slot,name,goal_puzzles,pool_size,options_json,slot_data_json) VALUES(?,?,?,?,?,?,?)`)
	if err != nil {
		return oops.Wrapf(err, "prepare slot insert")
	}
	defer stmt.Close()
	for _, sl := range res.Slots {
		opts, _ := json.Marshal(sl.Options)
		sd, _ := json.Marshal(sl.SlotData)
		size := 0
		for _, e := range sl.Pool {
			size += e.Count
		}
		if _, err := stmt.ExecContext(ctx, res.RunID, sl.Slot, sl.Name, sl.Options.GoalPuzzles, size, string(opts), string(sd)); err != nil {
			return oops.Wrapf(err, "insert slot %d of run %s", sl.Slot, res.RunID)
		}
	}
	return oops.Wrapf(tx.Commit(), "commit run %s", res.RunID)
}

// Runs lists indexed runs, newest first.
func (s *SQLiteIndex) Runs(ctx context.Context, limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id,seed,players,checksum,archive_path,created_at FROM runs ORDER BY run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, oops.Wrapf(err, "query runs")
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.RunID, &r.Seed, &r.Players, &r.Checksum, &r.ArchivePath, &r.CreatedAt); err != nil {
			return nil, oops.Wrapf(err, "scan run")
		}
		out = append(out, r)
	}
	return out, oops.Wrapf(rows.Err(), "iterate runs")
}

// Slots lists the slots of runID in slot order.
func (s *SQLiteIndex) Slots(ctx context.Context, runID string) ([]SlotRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id,slot,name,goal_puzzles,pool_size,options_json FROM slots WHERE run_id=? ORDER BY slot`, runID)
	if err != nil {
		return nil, oops.Wrapf(err, "query slots of %s", runID)
	}
	defer rows.Close()

	var out []SlotRow
	for rows.Next() {
		var r SlotRow
		if err := rows.Scan(&r.RunID, &r.Slot, &r.Name, &r.GoalPuzzles, &r.PoolSize, &r.OptionsJSON); err != nil {
			return nil, oops.Wrapf(err, "scan slot")
		}
		out = append(out, r)
	}
	return out, oops.Wrapf(rows.Err(), "iterate slots")
}
