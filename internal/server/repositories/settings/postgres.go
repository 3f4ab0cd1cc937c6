package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bynderpress/internal/common"
	"github.com/dmitrijs2005/bynderpress/internal/dbx"
	"github.com/dmitrijs2005/bynderpress/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context) (*models.SettingsRecord, error) {
	query :=
		`SELECT domain, permanent_token, default_search_term, image_derivative, available_derivatives, updated_at
		 FROM settings
		 WHERE id = 1
		 `

	s := &models.SettingsRecord{}
	var derivatives []byte
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.Domain, &s.SealedToken, &s.DefaultSearchTerm, &s.ImageDerivative, &derivatives, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if s.AvailableDerivatives, err = decodeDerivatives(derivatives); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PostgresRepository) Save(ctx context.Context, s *models.SettingsRecord) error {
	derivatives, err := encodeDerivatives(s.AvailableDerivatives)
	if err != nil {
		return err
	}

	query :=
		`INSERT INTO settings (id, domain, permanent_token, default_search_term, image_derivative, available_derivatives)
		 VALUES (1, $1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
		   domain = EXCLUDED.domain,
		   permanent_token = EXCLUDED.permanent_token,
		   default_search_term = EXCLUDED.default_search_term,
		   image_derivative = EXCLUDED.image_derivative,
		   available_derivatives = EXCLUDED.available_derivatives,
		   updated_at = now()
		 RETURNING updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		s.Domain, s.SealedToken, s.DefaultSearchTerm, s.ImageDerivative, derivatives).Scan(&s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SaveDerivatives(ctx context.Context, derivatives []string) error {
	encoded, err := encodeDerivatives(derivatives)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE settings SET available_derivatives = $1, updated_at = now() WHERE id = 1`, encoded)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// encodeDerivatives keeps the nil/empty distinction: nil is stored as SQL
// NULL ("never fetched"), an empty list as "[]".
func encodeDerivatives(d []string) (sql.NullString, error) {
	if d == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode derivatives: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeDerivatives(b []byte) ([]string, error) {
	if b == nil {
		return nil, nil
	}
	d := []string{}
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decode derivatives: %w", err)
	}
	return d, nil
}
