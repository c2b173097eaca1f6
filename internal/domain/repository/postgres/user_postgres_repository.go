package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/errors"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/models"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/repository"
)

const pgUniqueViolation = "23505"

// UserRepositoryPostgres implements repository.UserRepository on pgx.
type UserRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewUserRepositoryPostgres creates a new UserRepositoryPostgres.
func NewUserRepositoryPostgres(pool *pgxpool.Pool) *UserRepositoryPostgres {
	return &UserRepositoryPostgres{pool: pool}
}

// Create persists a new user.
func (r *UserRepositoryPostgres) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, password_configured, avatar_url)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash, user.PasswordConfigured, user.AvatarURL,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domainErrors.ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by id.
func (r *UserRepositoryPostgres) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, email, name, password_hash, password_configured, COALESCE(avatar_url, ''), created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// FindByEmail retrieves a user by email.
func (r *UserRepositoryPostgres) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, name, password_hash, password_configured, COALESCE(avatar_url, ''), created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

// UpdatePassword replaces the stored hash and flips the configured flag.
func (r *UserRepositoryPostgres) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, configured bool) error {
	query := `
		UPDATE users
		SET password_hash = $1, password_configured = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`
	result, err := r.pool.Exec(ctx, query, passwordHash, configured, id)
	if err != nil {
		return fmt.Errorf("failed to update user password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domainErrors.ErrUserNotFound
	}
	return nil
}

// UpdateAvatar sets the avatar URL.
func (r *UserRepositoryPostgres) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	query := `
		UPDATE users
		SET avatar_url = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	result, err := r.pool.Exec(ctx, query, avatarURL, id)
	if err != nil {
		return fmt.Errorf("failed to update user avatar: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domainErrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryPostgres) scanOne(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.PasswordConfigured, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepositoryPostgres)(nil)
