package repository

import (
	"context"

	"gorm.io/gorm"

	"resource-hub-go/internal/model"
)

// CategoryRepository 接口定义了分类的数据操作方法。
type CategoryRepository interface {
	WithTx(tx *Tx) CategoryRepository
	Create(ctx context.Context, category *model.Category) error
	FindAll(ctx context.Context) ([]model.Category, error)
	// Exists reports whether a category with the given id exists.
	Exists(ctx context.Context, id int64) (bool, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建一个新的 CategoryRepository 实例。
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) WithTx(tx *Tx) CategoryRepository {
	return &categoryRepository{db: dbFor(r.db, tx)}
}

// Create 在数据库中插入一个新的分类记录。
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// FindAll 从数据库中检索所有的分类记录，按名称排序。
func (r *categoryRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	categories := make([]model.Category, 0)
	err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Limit(1).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
