package organization

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dellmdq/OT109-Server/internal/types"
)

var _ OrganizationRepo = (*PostgresOrganizationRepo)(nil)

type OrganizationRepo interface {
	// GetCurrent returns the most recently created active organization row.
	GetCurrent(ctx context.Context) (*types.Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Organization, error)
	Create(ctx context.Context, o *types.Organization) error
	Update(ctx context.Context, o *types.Organization) error
}

type PostgresOrganizationRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresOrganizationRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresOrganizationRepo {
	return &PostgresOrganizationRepo{logger: logger, pgpool: pgpool}
}

const orgColumns = `id, name, image, phone, address, email, welcome_text, about_us_text,
	facebook_url, instagram_url, linkedin_url, created_at, updated_at`

func scanOrganization(row pgx.Row) (*types.Organization, error) {
	var o types.Organization
	err := row.Scan(&o.ID, &o.Name, &o.Image, &o.Phone, &o.Address, &o.Email,
		&o.WelcomeText, &o.AboutUsText, &o.FacebookURL, &o.InstagramURL, &o.LinkedinURL,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PostgresOrganizationRepo) GetCurrent(ctx context.Context) (*types.Organization, error) {
	o, err := scanOrganization(r.pgpool.QueryRow(ctx,
		`SELECT `+orgColumns+` FROM organizations WHERE deleted_at IS NULL
		 ORDER BY created_at DESC LIMIT 1`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch organization: %w", err)
	}
	return o, nil
}

func (r *PostgresOrganizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Organization, error) {
	o, err := scanOrganization(r.pgpool.QueryRow(ctx,
		`SELECT `+orgColumns+` FROM organizations WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch organization: %w", err)
	}
	return o, nil
}

func (r *PostgresOrganizationRepo) Create(ctx context.Context, o *types.Organization) error {
	_, err := r.pgpool.Exec(ctx,
		`INSERT INTO organizations (id, name, image, phone, address, email, welcome_text, about_us_text,
		        facebook_url, instagram_url, linkedin_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)`,
		o.ID, o.Name, o.Image, o.Phone, o.Address, o.Email, o.WelcomeText, o.AboutUsText,
		o.FacebookURL, o.InstagramURL, o.LinkedinURL, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert organization: %w", err)
	}
	return nil
}

func (r *PostgresOrganizationRepo) Update(ctx context.Context, o *types.Organization) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE organizations SET name = $2, image = $3, phone = $4, address = $5, email = $6,
		        welcome_text = $7, about_us_text = $8, facebook_url = $9, instagram_url = $10,
		        linkedin_url = $11, updated_at = $12
		 WHERE id = $1 AND deleted_at IS NULL`,
		o.ID, o.Name, o.Image, o.Phone, o.Address, o.Email, o.WelcomeText, o.AboutUsText,
		o.FacebookURL, o.InstagramURL, o.LinkedinURL, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
