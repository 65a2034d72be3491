package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mcoot/scavengerhunt/internal/model"
	"github.com/mcoot/scavengerhunt/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage interface,
// for single-node deployments that want players to survive restarts.
type Storage struct {
	db     *sql.DB
	logger *slog.Logger
}

// New opens (or creates) the database file at path and runs migrations
func New(ctx context.Context, path string, logger *slog.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := configure(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring database: %w", err)
	}

	s := &Storage{db: db, logger: logger}
	if err := s.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func configure(db *sql.DB) error {
	// A single writer avoids SQLITE_BUSY under concurrent webhooks
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return err
	}
	return nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// RunMigrations creates the players table if needed
func (s *Storage) RunMigrations(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			phone_number TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'new',
			current_clue TEXT NOT NULL DEFAULT '',
			remaining_clues TEXT NOT NULL DEFAULT '',
			missed_count INTEGER NOT NULL DEFAULT 0,
			completed_count INTEGER NOT NULL DEFAULT 0,
			fastest_interval_ns INTEGER,
			last_solve_time INTEGER,
			injured_until INTEGER,
			hunt_started_at INTEGER,
			finished_at INTEGER,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_players_created ON players(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}

	s.logger.Info("database migrations completed", "driver", "sqlite3")
	return nil
}

const selectColumns = `id, phone_number, name, status, current_clue, remaining_clues,
	missed_count, completed_count, fastest_interval_ns, last_solve_time, injured_until,
	hunt_started_at, finished_at, created_at, updated_at`

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	query := `
		INSERT INTO players (` + selectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			phone_number = excluded.phone_number,
			name = excluded.name,
			status = excluded.status,
			current_clue = excluded.current_clue,
			remaining_clues = excluded.remaining_clues,
			missed_count = excluded.missed_count,
			completed_count = excluded.completed_count,
			fastest_interval_ns = excluded.fastest_interval_ns,
			last_solve_time = excluded.last_solve_time,
			injured_until = excluded.injured_until,
			hunt_started_at = excluded.hunt_started_at,
			finished_at = excluded.finished_at,
			updated_at = excluded.updated_at
	`

	var fastest sql.NullInt64
	if player.FastestInterval != nil {
		fastest = sql.NullInt64{Int64: int64(*player.FastestInterval), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		string(player.ID),
		player.PhoneNumber,
		player.Name,
		string(player.Status),
		string(player.CurrentClue),
		joinClues(player.RemainingClues),
		player.MissedCount,
		player.CompletedCount,
		fastest,
		nullUnix(player.LastSolveTime),
		nullUnix(player.InjuredUntil),
		nullUnix(player.HuntStartedAt),
		nullUnix(player.FinishedAt),
		player.CreatedAt.UnixNano(),
		player.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("saving player: %w", err)
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM players WHERE id = ?`, string(id))
	return scanPlayer(row)
}

func (s *Storage) GetPlayerByPhone(ctx context.Context, phoneNumber string) (*model.Player, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM players WHERE phone_number = ?`, phoneNumber)
	return scanPlayer(row)
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM players ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	defer rows.Close()

	players := []*model.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, string(id)); err != nil {
		return fmt.Errorf("deleting player: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner) (*model.Player, error) {
	var (
		p                                     model.Player
		id, status, currentClue, remaining    string
		fastest                               sql.NullInt64
		lastSolve, injured, started, finished sql.NullInt64
		createdAt, updatedAt                  int64
	)

	err := row.Scan(
		&id, &p.PhoneNumber, &p.Name, &status, &currentClue, &remaining,
		&p.MissedCount, &p.CompletedCount, &fastest, &lastSolve, &injured,
		&started, &finished, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("scanning player: %w", err)
	}

	p.ID = model.PlayerID(id)
	p.Status, err = model.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("player %s: %w", id, err)
	}
	p.CurrentClue = model.ClueID(currentClue)
	p.RemainingClues = splitClues(remaining)
	if fastest.Valid {
		d := time.Duration(fastest.Int64)
		p.FastestInterval = &d
	}
	p.LastSolveTime = fromUnix(lastSolve)
	p.InjuredUntil = fromUnix(injured)
	p.HuntStartedAt = fromUnix(started)
	p.FinishedAt = fromUnix(finished)
	p.CreatedAt = time.Unix(0, createdAt).UTC()
	p.UpdatedAt = time.Unix(0, updatedAt).UTC()

	return &p, nil
}

func joinClues(ids []model.ClueID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}

func splitClues(s string) []model.ClueID {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	ids := make([]model.ClueID, len(parts))
	for i, part := range parts {
		ids[i] = model.ClueID(part)
	}
	return ids
}

func nullUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixNano(), Valid: true}
}

func fromUnix(n sql.NullInt64) time.Time {
	if !n.Valid {
		return time.Time{}
	}
	return time.Unix(0, n.Int64).UTC()
}
