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

type postgresUsers struct {
	pool *pgxpool.Pool
}

func (r *postgresUsers) Get(ctx context.Context, query model.UserQuery) (*model.UserInfo, error) {
	sql := `
		SELECT id, email, password, admin, verified, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var info model.UserInfo
	err := r.pool.QueryRow(ctx, sql, query.Email).Scan(
		&info.ID,
		&info.Email,
		&info.Password,
		&info.Admin,
		&info.Verified,
		&info.CreatedAt,
		&info.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.UserNotFoundError{Email: query.Email}
		}
		return nil, apperr.DatabaseError{Err: err}
	}

	return &info, nil
}

func (r *postgresUsers) Create(ctx context.Context, info *model.UserInfo) (*model.UserInfo, error) {
	sql := `
		INSERT INTO users (id, email, password, admin, verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	created := *info
	created.ID = ulid.Make().String()

	_, err := r.pool.Exec(ctx, sql,
		created.ID,
		created.Email,
		created.Password,
		created.Admin,
		created.Verified,
		created.CreatedAt,
		created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.UserAlreadyExistsError{Email: created.Email}
		}
		return nil, apperr.DatabaseError{Err: err}
	}

	return &created, nil
}
