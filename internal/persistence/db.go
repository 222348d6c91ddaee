// Package persistence provides SQLite-based storage for saved maps and
// district placement plans.
package persistence

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexplan/internal/adjacency"
	"github.com/talgya/hexplan/internal/world"
)

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS maps (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		civ TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tiles (
		map_id TEXT NOT NULL REFERENCES maps(id) ON DELETE CASCADE,
		q INTEGER NOT NULL,
		r INTEGER NOT NULL,
		tile_json TEXT NOT NULL,
		PRIMARY KEY (map_id, q, r)
	);

	CREATE TABLE IF NOT EXISTS plans (
		map_id TEXT NOT NULL REFERENCES maps(id) ON DELETE CASCADE,
		q INTEGER NOT NULL,
		r INTEGER NOT NULL,
		district INTEGER NOT NULL,
		bonus INTEGER NOT NULL,
		pinned INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (map_id, q, r, district)
	);

	CREATE INDEX IF NOT EXISTS idx_tiles_map ON tiles(map_id);
	CREATE INDEX IF NOT EXISTS idx_plans_map ON plans(map_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// MapInfo summarizes one saved map.
type MapInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Civ       string    `json:"civ"`
	CreatedAt time.Time `json:"created_at"`
	TileCount int       `json:"tile_count"`
}

// SaveMap stores a full tile snapshot under a fresh id and returns it.
func (db *DB) SaveMap(name, civ string, tiles world.TileMap) (string, error) {
	id := uuid.NewString()

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO maps (id, name, civ, created_at) VALUES (?, ?, ?, ?)",
		id, name, civ, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert map: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO tiles (map_id, q, r, tile_json) VALUES (?, ?, ?, ?)")
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for coord, tile := range tiles {
		blob, err := json.Marshal(tile)
		if err != nil {
			return "", fmt.Errorf("marshal tile %v: %w", coord, err)
		}
		if _, err := stmt.Exec(id, coord.Q, coord.R, string(blob)); err != nil {
			return "", fmt.Errorf("insert tile %v: %w", coord, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// LoadMap restores a tile snapshot by map id.
func (db *DB) LoadMap(id string) (world.TileMap, error) {
	var exists int
	if err := db.conn.Get(&exists, "SELECT COUNT(*) FROM maps WHERE id = ?", id); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("map %s: %w", id, sql.ErrNoRows)
	}

	rows, err := db.conn.Queryx("SELECT q, r, tile_json FROM tiles WHERE map_id = ?", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tiles := make(world.TileMap)
	for rows.Next() {
		var q, r int
		var blob string
		if err := rows.Scan(&q, &r, &blob); err != nil {
			return nil, err
		}
		var tile world.Tile
		if err := json.Unmarshal([]byte(blob), &tile); err != nil {
			return nil, fmt.Errorf("unmarshal tile (%d,%d): %w", q, r, err)
		}
		tile.Coord = world.HexCoord{Q: q, R: r}
		tiles.Set(&tile)
	}
	return tiles, rows.Err()
}

// ListMaps returns summaries of all saved maps, newest first.
func (db *DB) ListMaps() ([]MapInfo, error) {
	rows, err := db.conn.Queryx(`
		SELECT m.id, m.name, m.civ, m.created_at, COUNT(t.map_id) AS tile_count
		FROM maps m LEFT JOIN tiles t ON t.map_id = m.id
		GROUP BY m.id ORDER BY m.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []MapInfo
	for rows.Next() {
		var info MapInfo
		var created string
		if err := rows.Scan(&info.ID, &info.Name, &info.Civ, &created, &info.TileCount); err != nil {
			return nil, err
		}
		info.CreatedAt, _ = time.Parse(time.RFC3339, created)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteMap removes a saved map, its tiles, and its plans.
func (db *DB) DeleteMap(id string) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM plans WHERE map_id = ?",
		"DELETE FROM tiles WHERE map_id = ?",
		"DELETE FROM maps WHERE id = ?",
	} {
		if _, err := tx.Exec(q, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Plan is a saved district placement with the bonus computed at save time.
type Plan struct {
	MapID    string         `json:"map_id"`
	Coord    world.HexCoord `json:"coord"`
	District world.District `json:"district"`
	Bonus    int            `json:"bonus"`
	Pinned   bool           `json:"pinned"`
}

// SavePlan upserts a placement plan for one (coordinate, district) pair.
func (db *DB) SavePlan(mapID string, coord world.HexCoord, result adjacency.Result, pinned bool) error {
	_, err := db.conn.Exec(`
		INSERT INTO plans (map_id, q, r, district, bonus, pinned)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (map_id, q, r, district)
		DO UPDATE SET bonus = excluded.bonus, pinned = excluded.pinned`,
		mapID, coord.Q, coord.R, int(result.District), result.Bonus, pinned)
	if err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

// LoadPlans returns all saved plans for a map, best bonus first.
func (db *DB) LoadPlans(mapID string) ([]Plan, error) {
	rows, err := db.conn.Queryx(
		"SELECT q, r, district, bonus, pinned FROM plans WHERE map_id = ? ORDER BY bonus DESC, q, r",
		mapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var q, r, district, bonus, pinned int
		if err := rows.Scan(&q, &r, &district, &bonus, &pinned); err != nil {
			return nil, err
		}
		plans = append(plans, Plan{
			MapID:    mapID,
			Coord:    world.HexCoord{Q: q, R: r},
			District: world.District(district),
			Bonus:    bonus,
			Pinned:   pinned != 0,
		})
	}
	return plans, rows.Err()
}
