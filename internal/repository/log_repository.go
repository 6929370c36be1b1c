package repository

import (
	"context"

	"gorm.io/gorm"

	"resource-hub-go/internal/model"
)

// LogRepository appends audit entries. Entries are never updated or deleted.
type LogRepository interface {
	WithTx(tx *Tx) LogRepository
	Create(ctx context.Context, entry *model.LogEntry) error
	FindByEntity(ctx context.Context, entity string, entityID int64) ([]model.LogEntry, error)
}

type logRepository struct {
	db *gorm.DB
}

// NewLogRepository 创建一个新的 LogRepository 实例。
func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{db: db}
}

func (r *logRepository) WithTx(tx *Tx) LogRepository {
	return &logRepository{db: dbFor(r.db, tx)}
}

func (r *logRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByEntity 查询某个实体的全部审计记录，按 ID 升序。
func (r *logRepository) FindByEntity(ctx context.Context, entity string, entityID int64) ([]model.LogEntry, error) {
	entries := make([]model.LogEntry, 0)
	err := r.db.WithContext(ctx).
		Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}
