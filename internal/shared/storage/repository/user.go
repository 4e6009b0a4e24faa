package repository

import (
	"context"
	"database/sql"
	"errors"

	"medshare/internal/shared/model"
)

const userColumns = `id, name, email, password_hash, address, phone, created_at`

// CreateUser 创建用户，email 重复时返回 storage.ErrDuplicate
func (r *Store) CreateUser(ctx context.Context, user *model.User) error {
	_, err := r.db.ExecContext(ctx, r.rebind(
		`INSERT INTO users (`+userColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`),
		user.ID, user.Name, user.Email, user.PasswordHash,
		user.Address, user.Phone, user.CreatedAt,
	)
	return r.wrapError(err)
}

// GetUserByEmail 通过邮箱查找用户
func (r *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// GetUserByID 通过 ID 查找用户
func (r *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *Store) getUser(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, r.rebind(query), arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Address, &user.Phone, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
