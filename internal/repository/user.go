package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/langchou/lugnut/internal/models"
)

// UserRepository 用户仓库。认证在外部层完成，这里只维护
// 订阅标记等配额判定需要的资料。
type UserRepository struct {
	db *DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO users (uuid, name, email, is_paid)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, uuid.NewString(), u.Name, u.Email, u.IsPaid).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID 通过 ID 获取用户
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u := &models.User{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, uuid, COALESCE(name, ''), email, is_paid, created_at FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.UUID, &u.Name, &u.Email, &u.IsPaid, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}
