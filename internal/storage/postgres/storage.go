package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcoot/scavengerhunt/internal/model"
	"github.com/mcoot/scavengerhunt/internal/storage"
)

// Config holds PostgreSQL connection settings
type Config struct {
	URL             string
	MaxConnections  int32
	MinConnections  int32
	MaxConnLifetime time.Duration
}

// DefaultConfig returns sensible defaults for PostgreSQL configuration
func DefaultConfig() Config {
	return Config{
		URL:             "postgres://localhost:5432/scavenger?sslmode=disable",
		MaxConnections:  10,
		MinConnections:  1,
		MaxConnLifetime: time.Hour,
	}
}

// Storage is a PostgreSQL-backed implementation of the storage interface
type Storage struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// New connects to PostgreSQL and runs migrations
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConnections
	poolConfig.MinConns = cfg.MinConnections
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Storage{pool: pool, logger: logger}
	if err := s.RunMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the connection pool
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// RunMigrations creates the players table if needed
func (s *Storage) RunMigrations(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id VARCHAR(64) PRIMARY KEY,
			phone_number VARCHAR(30) NOT NULL UNIQUE,
			name TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'new',
			current_clue VARCHAR(64),
			remaining_clues TEXT[] NOT NULL DEFAULT '{}',
			missed_count INT NOT NULL DEFAULT 0,
			completed_count INT NOT NULL DEFAULT 0,
			fastest_interval_ns BIGINT,
			last_solve_time TIMESTAMPTZ,
			injured_until TIMESTAMPTZ,
			hunt_started_at TIMESTAMPTZ,
			finished_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_players_created ON players(created_at)`,
		`ALTER TABLE players ADD COLUMN IF NOT EXISTS fastest_interval_ns BIGINT`,
		`DO $$ BEGIN
			IF EXISTS (SELECT 1 FROM information_schema.columns
				WHERE table_name = 'players' AND column_name = 'fastest_interval_ms') THEN
				UPDATE players SET fastest_interval_ns = fastest_interval_ms * 1000000
					WHERE fastest_interval_ns IS NULL;
				ALTER TABLE players DROP COLUMN fastest_interval_ms;
			END IF;
		END $$`,
	}

	for _, migration := range migrations {
		if _, err := s.pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}

	s.logger.Info("database migrations completed")
	return nil
}

const selectColumns = `id, phone_number, name, status, current_clue, remaining_clues,
	missed_count, completed_count, fastest_interval_ns, last_solve_time, injured_until,
	hunt_started_at, finished_at, created_at, updated_at`

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	query := `
		INSERT INTO players (` + selectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			phone_number = EXCLUDED.phone_number,
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			current_clue = EXCLUDED.current_clue,
			remaining_clues = EXCLUDED.remaining_clues,
			missed_count = EXCLUDED.missed_count,
			completed_count = EXCLUDED.completed_count,
			fastest_interval_ns = EXCLUDED.fastest_interval_ns,
			last_solve_time = EXCLUDED.last_solve_time,
			injured_until = EXCLUDED.injured_until,
			hunt_started_at = EXCLUDED.hunt_started_at,
			finished_at = EXCLUDED.finished_at,
			updated_at = EXCLUDED.updated_at
	`

	remaining := make([]string, len(player.RemainingClues))
	for i, id := range player.RemainingClues {
		remaining[i] = string(id)
	}

	var fastest *int64
	if player.FastestInterval != nil {
		ns := player.FastestInterval.Nanoseconds()
		fastest = &ns
	}

	_, err := s.pool.Exec(ctx, query,
		string(player.ID),
		player.PhoneNumber,
		nullString(player.Name),
		string(player.Status),
		nullString(string(player.CurrentClue)),
		remaining,
		player.MissedCount,
		player.CompletedCount,
		fastest,
		nullTime(player.LastSolveTime),
		nullTime(player.InjuredUntil),
		nullTime(player.HuntStartedAt),
		nullTime(player.FinishedAt),
		player.CreatedAt,
		player.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving player: %w", err)
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM players WHERE id = $1`, string(id))
	return scanPlayer(row)
}

func (s *Storage) GetPlayerByPhone(ctx context.Context, phoneNumber string) (*model.Player, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM players WHERE phone_number = $1`, phoneNumber)
	return scanPlayer(row)
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+selectColumns+` FROM players ORDER BY created_at`)
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
	if _, err := s.pool.Exec(ctx, `DELETE FROM players WHERE id = $1`, string(id)); err != nil {
		return fmt.Errorf("deleting player: %w", err)
	}
	return nil
}

func scanPlayer(row pgx.Row) (*model.Player, error) {
	var (
		p                                     model.Player
		id, status                            string
		name, currentClue                     *string
		remaining                             []string
		fastestNs                             *int64
		lastSolve, injured, started, finished *time.Time
	)

	err := row.Scan(
		&id, &p.PhoneNumber, &name, &status, &currentClue, &remaining,
		&p.MissedCount, &p.CompletedCount, &fastestNs, &lastSolve, &injured,
		&started, &finished, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("scanning player: %w", err)
	}

	p.ID = model.PlayerID(id)
	p.Status, err = model.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("player %s: %w", id, err)
	}
	if name != nil {
		p.Name = *name
	}
	if currentClue != nil {
		p.CurrentClue = model.ClueID(*currentClue)
	}
	for _, r := range remaining {
		p.RemainingClues = append(p.RemainingClues, model.ClueID(r))
	}
	if fastestNs != nil {
		d := time.Duration(*fastestNs)
		p.FastestInterval = &d
	}
	p.LastSolveTime = derefTime(lastSolve)
	p.InjuredUntil = derefTime(injured)
	p.HuntStartedAt = derefTime(started)
	p.FinishedAt = derefTime(finished)

	return &p, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
