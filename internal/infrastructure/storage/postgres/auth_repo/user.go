// Package auth_repo provides the PostgreSQL implementation of the user
// repository.
package auth_repo

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ferropos/internal/core/apperror"
	"ferropos/internal/domain/auth"
	"ferropos/internal/infrastructure/storage/postgres"
)

const usersTable = "users"

var userColumns = []string{
	"id", "username", "email", "password_hash", "role", "registration_date",
}

// UserRepo implements auth.UserRepository.
type UserRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new user.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	q := r.builder.Insert(usersTable).
		Columns("username", "email", "password_hash", "role", "registration_date").
		Values(user.Username, user.Email, user.PasswordHash, user.Role, user.RegistrationDate).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return err
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&user.ID); err != nil {
		return apperror.NewDatabase("create user", err)
	}
	return nil
}

// GetByID retrieves user by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID int64) (*auth.User, error) {
	q := r.builder.Select(userColumns...).
		From(usersTable).
		Where(squirrel.Eq{"id": userID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var user auth.User
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &user, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", userID)
		}
		return nil, apperror.NewDatabase("get user", err)
	}
	return &user, nil
}

// GetByUsername retrieves user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	q := r.builder.Select(userColumns...).
		From(usersTable).
		Where(squirrel.Eq{"username": username}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var user auth.User
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &user, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", username)
		}
		return nil, apperror.NewDatabase("get user by username", err)
	}
	return &user, nil
}

// List retrieves all users ordered by username.
func (r *UserRepo) List(ctx context.Context) ([]auth.User, error) {
	q := r.builder.Select(userColumns...).
		From(usersTable).
		OrderBy("username ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var users []auth.User
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &users, sql, args...); err != nil {
		return nil, apperror.NewDatabase("list users", err)
	}
	return users, nil
}

// Exists checks if username or email is already taken.
func (r *UserRepo) Exists(ctx context.Context, username, email string) (bool, error) {
	sql := "SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)"

	var exists bool
	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, username, email).Scan(&exists); err != nil {
		return false, apperror.NewDatabase("check user exists", err)
	}
	return exists, nil
}

// Ensure interface compliance.
var _ auth.UserRepository = (*UserRepo)(nil)
