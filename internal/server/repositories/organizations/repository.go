package organizations

import (
	"context"

	"github.com/dmitrijs2005/joinflow/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, org *models.Organization) (*models.Organization, error)
	AddMember(ctx context.Context, organizationID, userID, role string) error
}
