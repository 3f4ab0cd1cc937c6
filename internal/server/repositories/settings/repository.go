// Package settings persists the Bynder settings singleton.
package settings

import (
	"context"

	"github.com/dmitrijs2005/bynderpress/internal/server/models"
)

type Repository interface {
	// Get returns common.ErrorNotFound when the row was never written.
	Get(ctx context.Context) (*models.SettingsRecord, error)
	// Save overwrites the whole record; last write wins.
	Save(ctx context.Context, s *models.SettingsRecord) error
	// SaveDerivatives replaces only the cached derivative list.
	SaveDerivatives(ctx context.Context, derivatives []string) error
}
