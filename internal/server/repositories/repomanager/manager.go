package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bynderpress/internal/dbx"
	"github.com/dmitrijs2005/bynderpress/internal/server/repositories/posts"
	"github.com/dmitrijs2005/bynderpress/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/bynderpress/internal/server/repositories/settings"
	"github.com/dmitrijs2005/bynderpress/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so a service can
// get the same set of repositories over *sql.DB or inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Settings(db dbx.DBTX) settings.Repository
	Posts(db dbx.DBTX) posts.Repository
}
