// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"context"

	"gorm.io/gorm"

	"resource-hub-go/internal/model"
)

// UserRepository 接口定义了用户数据的持久化操作。
type UserRepository interface {
	// WithTx 返回一个绑定到给定事务的仓库。
	WithTx(tx *Tx) UserRepository
	Create(ctx context.Context, user *model.User) error
	FindAll(ctx context.Context) ([]model.User, error)
}

// userRepository 是 UserRepository 接口的 GORM 实现。
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建一个新的 UserRepository 实例。
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *Tx) UserRepository {
	return &userRepository{db: dbFor(r.db, tx)}
}

// Create 在数据库中创建一个新的用户记录。邮箱重复时返回 ErrDuplicateEmail。
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error, ErrDuplicateEmail)
}

// FindAll 从数据库中检索所有用户记录，按 ID 倒序。
func (r *userRepository) FindAll(ctx context.Context) ([]model.User, error) {
	users := make([]model.User, 0)
	err := r.db.WithContext(ctx).Order("id DESC").Find(&users).Error
	return users, err
}
