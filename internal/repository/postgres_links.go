package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/linkstash/linkstash/internal/apperr"
	"github.com/linkstash/linkstash/internal/model"
)

const linkColumns = "id, owner, url, title, description, word_count, reading_time, summary, label, created_at, updated_at"

type postgresLinks struct {
	pool *pgxpool.Pool
}

func (r *postgresLinks) Find(ctx context.Context, query model.LinkQuery) ([]*model.LinkItem, error) {
	sql := `
		SELECT ` + linkColumns + `
		FROM links
		WHERE ($1 = '' OR id = $1)
		  AND ($2 = '' OR owner = $2)
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, sql, query.ID, query.Owner)
	if err != nil {
		return nil, apperr.DatabaseError{Err: err}
	}
	defer rows.Close()

	var items []*model.LinkItem
	for rows.Next() {
		item, err := scanLink(rows)
		if err != nil {
			return nil, apperr.DatabaseError{Err: err}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.DatabaseError{Err: err}
	}

	return items, nil
}

func (r *postgresLinks) Get(ctx context.Context, query model.LinkQuery) (*model.LinkItem, error) {
	sql := `
		SELECT ` + linkColumns + `
		FROM links
		WHERE id = $1
	`

	item, err := scanLink(r.pool.QueryRow(ctx, sql, query.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.LinkNotFoundError{ID: query.ID}
		}
		return nil, apperr.DatabaseError{Err: err}
	}

	return item, nil
}

func (r *postgresLinks) Create(ctx context.Context, item *model.LinkItem) (*model.LinkItem, error) {
	sql := `
		INSERT INTO links (` + linkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	created := *item
	created.ID = ulid.Make().String()

	_, err := r.pool.Exec(ctx, sql,
		created.ID,
		created.Owner,
		created.URL,
		created.Title,
		created.Description,
		created.WordCount,
		created.ReadingTime,
		created.Summary,
		created.Label,
		created.CreatedAt,
		created.UpdatedAt,
	)
	if err != nil {
		return nil, apperr.DatabaseError{Err: err}
	}

	return &created, nil
}

func (r *postgresLinks) Update(ctx context.Context, query model.LinkQuery, item *model.LinkItem) (*model.LinkItem, error) {
	sql := `
		UPDATE links
		SET owner = $2, url = $3, title = $4, description = $5,
		    word_count = $6, reading_time = $7, summary = $8, label = $9,
		    created_at = $10, updated_at = $11
		WHERE id = $1
	`

	updated := *item
	updated.ID = query.ID

	tag, err := r.pool.Exec(ctx, sql,
		updated.ID,
		updated.Owner,
		updated.URL,
		updated.Title,
		updated.Description,
		updated.WordCount,
		updated.ReadingTime,
		updated.Summary,
		updated.Label,
		updated.CreatedAt,
		updated.UpdatedAt,
	)
	if err != nil {
		return nil, apperr.DatabaseError{Err: err}
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.LinkNotFoundError{ID: query.ID}
	}

	return &updated, nil
}

func (r *postgresLinks) Delete(ctx context.Context, query model.LinkQuery) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM links WHERE id = $1`, query.ID)
	if err != nil {
		return apperr.DatabaseError{Err: err}
	}
	if tag.RowsAffected() == 0 {
		return apperr.LinkNotFoundError{ID: query.ID}
	}
	return nil
}

func scanLink(row pgx.Row) (*model.LinkItem, error) {
	var item model.LinkItem
	err := row.Scan(
		&item.ID,
		&item.Owner,
		&item.URL,
		&item.Title,
		&item.Description,
		&item.WordCount,
		&item.ReadingTime,
		&item.Summary,
		&item.Label,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
