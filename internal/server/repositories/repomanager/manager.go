package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/joinflow/internal/dbx"
	"github.com/dmitrijs2005/joinflow/internal/server/repositories/organizations"
	"github.com/dmitrijs2005/joinflow/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Organizations(db dbx.DBTX) organizations.Repository
}
