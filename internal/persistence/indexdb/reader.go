package indexdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"harvestvalley.farm/internal/sim/world"
)

// Reader queries an index written by SQLiteIndex.
type Reader struct {
	db *sql.DB
}

func OpenReader(path string) (*Reader, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Reader{db: db}, nil
}

func (r *Reader) Close() error { return r.db.Close() }

type AuditFilter struct {
	Action string // empty matches all
	Actor  string
	Limit  int
}

// RecentAudits returns the newest matching audits, newest first.
func (r *Reader) RecentAudits(ctx context.Context, f AuditFilter) ([]world.AuditEntry, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT raw_json FROM audits
		 WHERE (?1 = '' OR action = ?1) AND (?2 = '' OR actor = ?2)
		 ORDER BY tick DESC, seq DESC LIMIT ?3`,
		f.Action, f.Actor, f.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []world.AuditEntry
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var e world.AuditEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("audit row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type SaveInfo struct {
	Tick       uint64 `json:"tick"`
	RunID      string `json:"run_id"`
	Path       string `json:"path"`
	Money      int    `json:"money"`
	Claimed    int    `json:"claimed"`
	Crops      int    `json:"crops"`
	Animals    int    `json:"animals"`
	Day        int    `json:"day"`
	Season     string `json:"season"`
	RecordedAt string `json:"recorded_at"`
}

// Saves lists indexed saves, newest first.
func (r *Reader) Saves(ctx context.Context, limit int) ([]SaveInfo, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT tick,run_id,path,money,claimed,crops,animals,day,season,recorded_at
		 FROM saves ORDER BY recorded_at DESC, tick DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SaveInfo
	for rows.Next() {
		var s SaveInfo
		var tick int64
		if err := rows.Scan(&tick, &s.RunID, &s.Path, &s.Money, &s.Claimed, &s.Crops, &s.Animals, &s.Day, &s.Season, &s.RecordedAt); err != nil {
			return nil, err
		}
		s.Tick = uint64(tick)
		out = append(out, s)
	}
	return out, rows.Err()
}

// ActionCounts tallies indexed actions by type and outcome code ("" for success).
func (r *Reader) ActionCounts(ctx context.Context) (map[string]map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT type, code, COUNT(*) FROM actions GROUP BY type, code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]map[string]int{}
	for rows.Next() {
		var typ, code string
		var n int
		if err := rows.Scan(&typ, &code, &n); err != nil {
			return nil, err
		}
		if out[typ] == nil {
			out[typ] = map[string]int{}
		}
		out[typ][code] = n
	}
	return out, rows.Err()
}

// CatalogDigest returns the stored digest for a catalog name.
func (r *Reader) CatalogDigest(ctx context.Context, name string) (string, bool, error) {
	var d string
	err := r.db.QueryRowContext(ctx, `SELECT digest FROM catalogs WHERE name = ?`, name).Scan(&d)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return d, true, nil
}
