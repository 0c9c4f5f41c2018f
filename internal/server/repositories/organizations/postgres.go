package organizations

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/joinflow/internal/dbx"
	"github.com/dmitrijs2005/joinflow/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, org *models.Organization) (*models.Organization, error) {
	query :=
		`INSERT INTO organizations (id, name, github_handle, twitter_handle, website, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		org.ID, org.Name, org.GithubHandle, org.TwitterHandle, org.Website, org.CreatedBy).Scan(&org.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return org, nil
}

func (r *PostgresRepository) AddMember(ctx context.Context, organizationID, userID, role string) error {
	query :=
		`INSERT INTO organization_members (organization_id, user_id, role)
		 VALUES ($1, $2, $3)
		 `

	if _, err := r.db.ExecContext(ctx, query, organizationID, userID, role); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
