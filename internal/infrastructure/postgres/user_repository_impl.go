package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"sosmed-api/internal/domain/entity"
	"sosmed-api/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// duplicateField derives the colliding column from the violated constraint.
func duplicateField(pgErr *pgconn.PgError) *repository.DuplicateError {
	if strings.Contains(pgErr.ConstraintName, "email") {
		return &repository.DuplicateError{Field: "email"}
	}
	return &repository.DuplicateError{Field: "username"}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (fullname, username, email, password, bio, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, u.Fullname, u.Username, u.Email, u.Password, u.Bio, u.Image)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return duplicateField(pgErr)
		}
		return err
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, where string, args ...any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, fullname, username, email, password, COALESCE(bio, ''), COALESCE(image, ''), created_at, updated_at
		FROM users
		WHERE `+where, args...)

	if err := row.Scan(&u.ID, &u.Fullname, &u.Username, &u.Email, &u.Password,
		&u.Bio, &u.Image, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `email = $1`, email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, `username = $1`, username)
}

func (r *UserRepository) GetByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error) {
	// Email listed first so an email collision wins when both collide.
	return r.getOne(ctx, `email = $1 OR username = $2 ORDER BY (email = $1) DESC LIMIT 1`, email, username)
}

func (r *UserRepository) SearchByUsername(ctx context.Context, username string) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, username, fullname, COALESCE(image, '')
		FROM users
		WHERE username ILIKE '%' || $1 || '%'
		ORDER BY username
	`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Fullname, &u.Image); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET fullname = $1, username = $2, bio = NULLIF($3, ''), image = NULLIF($4, ''), password = $5, updated_at = $6
		WHERE id = $7
	`, u.Fullname, u.Username, u.Bio, u.Image, u.Password, u.UpdatedAt, u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return duplicateField(pgErr)
		}
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
