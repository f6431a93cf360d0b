// Package storage provides SQLite-based persistence for finished battles.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for battle history.
type Store struct {
	db *sql.DB
}

// BattleRecord is one stored battle outcome.
type BattleRecord struct {
	ID              string    `csv:"id"`
	Renderer        string    `csv:"renderer"`
	RngSeed         int64     `csv:"rng_seed"`
	TeamMode        bool      `csv:"team_mode"`
	TankWinner      string    `csv:"tank_winner"`
	TankWinnerScore float64   `csv:"tank_winner_score"`
	TeamWinner      string    `csv:"team_winner"` // Empty without teams
	TeamWinnerScore float64   `csv:"team_winner_score"`
	TankCount       int       `csv:"tank_count"`
	TimeLeftMs      int64     `csv:"time_left_ms"` // Negative if the battle overran
	UBD             string    `csv:"-"`
	CreatedAt       time.Time `csv:"created_at"`

	Tanks []TankRecord `csv:"-"`
}

// TankRecord is one tank's final standing in a stored battle.
type TankRecord struct {
	BattleID string  `csv:"battle_id"`
	TankID   int     `csv:"tank_id"`
	Name     string  `csv:"name"`
	Team     string  `csv:"team"`
	Score    float64 `csv:"score"`
	Energy   float64 `csv:"energy"`
}

// TankStats aggregates stored battles for one tank name.
type TankStats struct {
	Name      string
	Battles   int
	Wins      int
	BestScore float64
	AvgScore  float64
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS battles (
			id TEXT PRIMARY KEY,
			renderer TEXT NOT NULL,
			rng_seed INTEGER NOT NULL,
			team_mode INTEGER NOT NULL DEFAULT 0,
			tank_winner TEXT NOT NULL DEFAULT '',
			tank_winner_score REAL NOT NULL DEFAULT 0,
			team_winner TEXT NOT NULL DEFAULT '',
			team_winner_score REAL NOT NULL DEFAULT 0,
			tank_count INTEGER NOT NULL DEFAULT 0,
			time_left_ms INTEGER NOT NULL DEFAULT 0,
			ubd TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_battles_created ON battles(created_at DESC);

		CREATE TABLE IF NOT EXISTS battle_tanks (
			battle_id TEXT NOT NULL REFERENCES battles(id) ON DELETE CASCADE,
			tank_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			team TEXT NOT NULL DEFAULT '',
			score REAL NOT NULL DEFAULT 0,
			energy REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (battle_id, tank_id)
		);
		CREATE INDEX IF NOT EXISTS idx_battle_tanks_name ON battle_tanks(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveBattle stores a battle and its tanks in one transaction. An ID is
// generated when rec.ID is empty. Returns the battle ID.
func (s *Store) SaveBattle(rec BattleRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	_, err = tx.Exec(
		`INSERT INTO battles
		 (id, renderer, rng_seed, team_mode, tank_winner, tank_winner_score,
		  team_winner, team_winner_score, tank_count, time_left_ms, ubd)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Renderer,
		rec.RngSeed,
		rec.TeamMode,
		rec.TankWinner,
		rec.TankWinnerScore,
		rec.TeamWinner,
		rec.TeamWinnerScore,
		len(rec.Tanks),
		rec.TimeLeftMs,
		rec.UBD,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save battle: %w", err)
	}

	for _, t := range rec.Tanks {
		_, err = tx.Exec(
			`INSERT INTO battle_tanks (battle_id, tank_id, name, team, score, energy)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rec.ID, t.TankID, t.Name, t.Team, t.Score, t.Energy,
		)
		if err != nil {
			return "", fmt.Errorf("storage: cannot save tank %q: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit battle: %w", err)
	}
	return rec.ID, nil
}

const battleColumns = `id, renderer, rng_seed, team_mode, tank_winner, tank_winner_score,
		        team_winner, team_winner_score, tank_count, time_left_ms, ubd, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBattle(row rowScanner) (BattleRecord, error) {
	var rec BattleRecord
	var createdAt any
	err := row.Scan(
		&rec.ID,
		&rec.Renderer,
		&rec.RngSeed,
		&rec.TeamMode,
		&rec.TankWinner,
		&rec.TankWinnerScore,
		&rec.TeamWinner,
		&rec.TeamWinnerScore,
		&rec.TankCount,
		&rec.TimeLeftMs,
		&rec.UBD,
		&createdAt,
	)
	if err != nil {
		return rec, err
	}
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RecentBattles retrieves the most recent battles, newest first.
func (s *Store) RecentBattles(limit int) ([]BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+battleColumns+`
		 FROM battles
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battles: %w", err)
	}
	defer rows.Close()

	var records []BattleRecord
	for rows.Next() {
		rec, err := scanBattle(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// BattleByID retrieves a battle with its tanks. Returns nil if not found.
func (s *Store) BattleByID(id string) (*BattleRecord, error) {
	rec, err := scanBattle(s.db.QueryRow(
		`SELECT `+battleColumns+` FROM battles WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battle: %w", err)
	}

	rec.Tanks, err = s.BattleTanks(id)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// BattleTanks retrieves the tanks of a battle, best score first.
func (s *Store) BattleTanks(battleID string) ([]TankRecord, error) {
	rows, err := s.db.Query(
		`SELECT battle_id, tank_id, name, team, score, energy
		 FROM battle_tanks
		 WHERE battle_id = ?
		 ORDER BY score DESC, tank_id ASC`,
		battleID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query tanks: %w", err)
	}
	defer rows.Close()

	var tanks []TankRecord
	for rows.Next() {
		var t TankRecord
		if err := rows.Scan(&t.BattleID, &t.TankID, &t.Name, &t.Team, &t.Score, &t.Energy); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		tanks = append(tanks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return tanks, nil
}

// Leaderboard aggregates stored battles per tank name, most wins first.
func (s *Store) Leaderboard(limit int) ([]TankStats, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT t.name,
		        COUNT(*),
		        SUM(CASE WHEN b.tank_winner = t.name THEN 1 ELSE 0 END),
		        MAX(t.score),
		        AVG(t.score)
		 FROM battle_tanks t
		 JOIN battles b ON b.id = t.battle_id
		 GROUP BY t.name
		 ORDER BY 3 DESC, 4 DESC, t.name ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var stats []TankStats
	for rows.Next() {
		var st TankStats
		if err := rows.Scan(&st.Name, &st.Battles, &st.Wins, &st.BestScore, &st.AvgScore); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearBattles deletes every stored battle.
func (s *Store) ClearBattles() error {
	if _, err := s.db.Exec("DELETE FROM battle_tanks"); err != nil {
		return fmt.Errorf("storage: cannot clear tanks: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM battles"); err != nil {
		return fmt.Errorf("storage: cannot clear battles: %w", err)
	}
	return nil
}
