package contact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dellmdq/OT109-Server/internal/types"
)

var _ ContactRepo = (*PostgresContactRepo)(nil)

type ContactRepo interface {
	List(ctx context.Context) ([]types.Contact, error)
	Create(ctx context.Context, c *types.Contact) error
}

type PostgresContactRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresContactRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresContactRepo {
	return &PostgresContactRepo{logger: logger, pgpool: pgpool}
}

func (r *PostgresContactRepo) List(ctx context.Context) ([]types.Contact, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT id, name, phone, email, message, created_at
		 FROM contacts WHERE deleted_at IS NULL
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var out []types.Contact
	for rows.Next() {
		var c types.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Message, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresContactRepo) Create(ctx context.Context, c *types.Contact) error {
	_, err := r.pgpool.Exec(ctx,
		`INSERT INTO contacts (id, name, phone, email, message, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Phone, c.Email, c.Message, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	return nil
}
