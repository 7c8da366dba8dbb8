package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type Store struct{ DB *sql.DB }

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return &Store{DB: db}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE TABLE IF NOT EXISTS saved_searches (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            username      TEXT NOT NULL,
            city          TEXT NOT NULL,
            state         TEXT NOT NULL,
            down_payment  NUMERIC NOT NULL,
            interest_rate NUMERIC NOT NULL,
            min_price     INTEGER NOT NULL DEFAULT 0,
            max_price     INTEGER NOT NULL DEFAULT 0,
            created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_saved_searches_user ON saved_searches(username, created_at DESC);`,
	}
	for _, q := range stmts {
		if _, err := s.DB.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

type SavedSearch struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	DownPayment  float64   `json:"down_payment"`
	InterestRate float64   `json:"interest_rate"`
	MinPrice     int       `json:"min_price"`
	MaxPrice     int       `json:"max_price"`
	CreatedAt    time.Time `json:"created_at"`
}

func (s *Store) SaveSearch(ctx context.Context, in SavedSearch) (string, error) {
	if s.DB == nil {
		return "", errors.New("nil db")
	}
	var id string
	err := s.DB.QueryRowContext(ctx, `
        INSERT INTO saved_searches (username, city, state, down_payment, interest_rate, min_price, max_price)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id`,
		in.Username, in.City, in.State, in.DownPayment, in.InterestRate, in.MinPrice, in.MaxPrice,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListSearches(ctx context.Context, username string) ([]SavedSearch, error) {
	if s.DB == nil {
		return nil, errors.New("nil db")
	}
	rows, err := s.DB.QueryContext(ctx, `
        SELECT id, username, city, state, down_payment, interest_rate, min_price, max_price, created_at
        FROM saved_searches
        WHERE username = $1
        ORDER BY created_at DESC`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SavedSearch
	for rows.Next() {
		var ss SavedSearch
		if err := rows.Scan(&ss.ID, &ss.Username, &ss.City, &ss.State, &ss.DownPayment, &ss.InterestRate, &ss.MinPrice, &ss.MaxPrice, &ss.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ss)
	}
	return out, rows.Err()
}
