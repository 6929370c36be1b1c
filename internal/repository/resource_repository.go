package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"resource-hub-go/internal/model"
)

// ResourceRepository 接口定义了资源元数据相关的数据持久化操作。
type ResourceRepository interface {
	WithTx(tx *Tx) ResourceRepository
	Create(ctx context.Context, resource *model.Resource) error
	FindByID(ctx context.Context, id int64) (*model.Resource, error)
	// FindListItemByID returns a single resource joined with its category name.
	FindListItemByID(ctx context.Context, id int64) (*model.ResourceListItem, error)
	// ListWithCategory returns every resource with its category name, newest first.
	ListWithCategory(ctx context.Context) ([]model.ResourceListItem, error)
	// SearchByName matches original names case-insensitively, newest first.
	SearchByName(ctx context.Context, query string, limit int) ([]model.ResourceListItem, error)
	// FindListItemsByIDs keeps the order of ids and skips the ones that no longer exist.
	FindListItemsByIDs(ctx context.Context, ids []int64) ([]model.ResourceListItem, error)
}

type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository 创建一个新的 ResourceRepository 实例。
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) WithTx(tx *Tx) ResourceRepository {
	return &resourceRepository{db: dbFor(r.db, tx)}
}

// Create 插入一条资源记录，并回填自增 ID 与创建时间。
func (r *resourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	return r.db.WithContext(ctx).Omit("Category").Create(resource).Error
}

// FindByID 根据资源 ID 查找一条资源记录。
func (r *resourceRepository) FindByID(ctx context.Context, id int64) (*model.Resource, error) {
	var resource model.Resource
	if err := r.db.WithContext(ctx).First(&resource, id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &resource, nil
}

// listQuery 构造资源与分类的左连接查询。
func (r *resourceRepository) listQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("resources AS r").
		Select("r.id, r.original_name, r.stored_name, r.mime_type, r.size_bytes, r.category_id, c.name AS category_name, r.created_at").
		Joins("LEFT JOIN categories AS c ON c.id = r.category_id")
}

func (r *resourceRepository) FindListItemByID(ctx context.Context, id int64) (*model.ResourceListItem, error) {
	var items []model.ResourceListItem
	if err := r.listQuery(ctx).Where("r.id = ?", id).Limit(1).Scan(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return &items[0], nil
}

func (r *resourceRepository) ListWithCategory(ctx context.Context) ([]model.ResourceListItem, error) {
	items := make([]model.ResourceListItem, 0)
	err := r.listQuery(ctx).Order("r.id DESC").Scan(&items).Error
	return items, err
}

func (r *resourceRepository) SearchByName(ctx context.Context, query string, limit int) ([]model.ResourceListItem, error) {
	items := make([]model.ResourceListItem, 0)
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	err := r.listQuery(ctx).
		Where("LOWER(r.original_name) LIKE ? ESCAPE '!'", pattern).
		Order("r.id DESC").
		Limit(limit).
		Scan(&items).Error
	return items, err
}

func (r *resourceRepository) FindListItemsByIDs(ctx context.Context, ids []int64) ([]model.ResourceListItem, error) {
	items := make([]model.ResourceListItem, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	var found []model.ResourceListItem
	if err := r.listQuery(ctx).Where("r.id IN ?", ids).Scan(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[int64]model.ResourceListItem, len(found))
	for _, item := range found {
		byID[item.ID] = item
	}
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
