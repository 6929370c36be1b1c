package service

import (
	"context"
	"strings"

	"resource-hub-go/internal/model"
	"resource-hub-go/internal/repository"
	"resource-hub-go/pkg/events"
)

// CategoryService manages the categories resources can be filed under.
type CategoryService interface {
	Create(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}

type categoryService struct {
	tx           repository.Transactor
	categoryRepo repository.CategoryRepository
	logRepo      repository.LogRepository
	publisher    events.Publisher
}

// NewCategoryService 创建一个新的 CategoryService 实例。
func NewCategoryService(tx repository.Transactor, categoryRepo repository.CategoryRepository, logRepo repository.LogRepository, publisher events.Publisher) CategoryService {
	return &categoryService{tx: tx, categoryRepo: categoryRepo, logRepo: logRepo, publisher: publisher}
}

func (s *categoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingCategoryName
	}

	tx, err := s.tx.Begin(ctx)
	if err != nil {
		return nil, persistenceErr("begin transaction", err)
	}
	defer tx.Rollback()

	category := &model.Category{Name: name}
	if err := s.categoryRepo.WithTx(tx).Create(ctx, category); err != nil {
		return nil, persistenceErr("insert category", err)
	}
	entry := &model.LogEntry{Entity: model.EntityCategory, EntityID: category.ID, Action: model.ActionCategoryCreated}
	if err := s.logRepo.WithTx(tx).Create(ctx, entry); err != nil {
		return nil, persistenceErr("insert audit entry", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, persistenceErr("commit", err)
	}

	publish(ctx, s.publisher, events.New(events.TypeCategoryCreated, model.EntityCategory, category.ID))
	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, persistenceErr("list categories", err)
	}
	return categories, nil
}
