package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Row is one check result as returned by the audit function.
type Row struct {
	CheckName string          `json:"check_name"`
	Status    string          `json:"status"`
	Severity  string          `json:"severity"`
	Details   json.RawMessage `json:"details,omitempty"`
}

// Runner executes the audit and returns its raw rows.
type Runner interface {
	Run(ctx context.Context) ([]Row, error)
}

// PostgresRunner calls a set-returning function:
//
//	SELECT check_name, status, severity, details FROM <procedure>()
type PostgresRunner struct {
	pool  *pgxpool.Pool
	query string
}

// NewPostgresRunner validates procedure and prepares the query text.
func NewPostgresRunner(pool *pgxpool.Pool, procedure string) (*PostgresRunner, error) {
	if pool == nil {
		return nil, fmt.Errorf("%w: nil pool", ErrConfig)
	}
	query, err := auditQuery(procedure)
	if err != nil {
		return nil, err
	}
	return &PostgresRunner{pool: pool, query: query}, nil
}

func auditQuery(procedure string) (string, error) {
	if procedure == "" {
		procedure = DefaultProcedure
	}

	parts := strings.Split(procedure, ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("%w: procedure %q", ErrConfig, procedure)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return "", fmt.Errorf("%w: procedure %q", ErrConfig, procedure)
		}
	}
	return "SELECT check_name, status, severity, details FROM " + pgx.Identifier(parts).Sanitize() + "()", nil
}

// Run executes the audit function.
func (r *PostgresRunner) Run(ctx context.Context) ([]Row, error) {
	rows, err := r.pool.Query(ctx, r.query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProcedureFailed, err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Row, error) {
		var (
			res      Row
			severity *string
			details  []byte
		)
		if err := row.Scan(&res.CheckName, &res.Status, &severity, &details); err != nil {
			return Row{}, err
		}
		if severity != nil {
			res.Severity = *severity
		}
		if len(details) > 0 && json.Valid(details) {
			res.Details = json.RawMessage(details)
		}
		return res, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProcedureFailed, err)
	}
	return out, nil
}
