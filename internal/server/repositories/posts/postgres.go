package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bynderpress/internal/common"
	"github.com/dmitrijs2005/bynderpress/internal/dbx"
	"github.com/dmitrijs2005/bynderpress/internal/server/models"
)

const postColumns = `id, post_type, status, title, content, guid, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	query :=
		`INSERT INTO posts (post_type, status, title, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, p.Type, p.Status, p.Title, p.Content).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) SetGUID(ctx context.Context, id int64, guid string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE posts SET guid = $1 WHERE id = $2`, guid, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return notFoundIfNoRows(res)
}

// Update writes status, title and content. Type and GUID are immutable.
func (r *PostgresRepository) Update(ctx context.Context, p *models.Post) (*models.Post, error) {
	query :=
		`UPDATE posts SET status = $1, title = $2, content = $3, updated_at = now()
		 WHERE id = $4
		 RETURNING ` + postColumns

	return scanPost(r.db.QueryRowContext(ctx, query, p.Status, p.Title, p.Content, p.ID))
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Post, error) {
	return scanPost(r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.Post, error) {
	query, args := buildListQuery(f)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Post
	for rows.Next() {
		p := &models.Post{}
		if err := rows.Scan(&p.ID, &p.Type, &p.Status, &p.Title, &p.Content, &p.GUID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return notFoundIfNoRows(res)
}

func buildListQuery(f Filter) (string, []any) {
	var (
		where []string
		args  []any
	)

	in := func(column string, values []string, negate bool) {
		if len(values) == 0 {
			return
		}
		ph := make([]string, len(values))
		for i, v := range values {
			args = append(args, v)
			ph[i] = fmt.Sprintf("$%d", len(args))
		}
		op := "IN"
		if negate {
			op = "NOT IN"
		}
		where = append(where, fmt.Sprintf("%s %s (%s)", column, op, strings.Join(ph, ", ")))
	}

	in("post_type", toStrings(f.Types), false)
	in("status", toStrings(f.Statuses), false)
	in("status", toStrings(f.ExcludeStatuses), true)

	var b strings.Builder
	b.WriteString(`SELECT ` + postColumns + ` FROM posts`)
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY id")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}
	return b.String(), args
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func scanPost(row *sql.Row) (*models.Post, error) {
	p := &models.Post{}
	err := row.Scan(&p.ID, &p.Type, &p.Status, &p.Title, &p.Content, &p.GUID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func notFoundIfNoRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
