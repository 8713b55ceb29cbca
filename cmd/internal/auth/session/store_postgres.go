package session

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultProcedure is the stored function queried for session validity.
const DefaultProcedure = "validate_session"

// PostgresStore implements Store by calling a set-returning stored function:
//
//	validate_session(token_hash text) RETURNS TABLE (is_valid boolean)
//
// Zero rows, a NULL is_valid, or is_valid=false all mean "no valid session".
type PostgresStore struct {
	pool  *pgxpool.Pool
	query string
}

// NewPostgresStore creates a Postgres-backed session store.
// procedure may be schema-qualified ("auth.validate_session"); it is quoted as an identifier.
func NewPostgresStore(pool *pgxpool.Pool, procedure string) (*PostgresStore, error) {
	if pool == nil {
		return nil, errors.New("session: nil db pool")
	}
	ident, err := procedureIdentifier(procedure)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{
		pool:  pool,
		query: "SELECT is_valid FROM " + ident.Sanitize() + "($1)",
	}, nil
}

// ValidateSession implements Store.
func (s *PostgresStore) ValidateSession(ctx context.Context, tokenHash string) (bool, error) {
	var valid *bool
	err := s.pool.QueryRow(ctx, s.query, tokenHash).Scan(&valid)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return valid != nil && *valid, nil
}

// Ping implements Pinger.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func procedureIdentifier(name string) (pgx.Identifier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultProcedure
	}
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return nil, ErrConfig
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return nil, ErrConfig
		}
	}
	return pgx.Identifier(parts), nil
}
