package service

import (
	"context"
	"strings"

	"resource-hub-go/internal/model"
	"resource-hub-go/internal/repository"
	"resource-hub-go/pkg/log"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// ResourceSearcher is a full-text index over resources.
type ResourceSearcher interface {
	SearchResourceIDs(ctx context.Context, query string, size int) ([]int64, error)
}

// SearchService 接口定义了资源搜索操作。
type SearchService interface {
	Search(ctx context.Context, query string, limit int) ([]model.ResourceListItem, error)
}

type searchService struct {
	searcher     ResourceSearcher
	resourceRepo repository.ResourceRepository
}

// NewSearchService 创建一个新的 SearchService 实例。searcher 为 nil 时只使用数据库查询。
func NewSearchService(searcher ResourceSearcher, resourceRepo repository.ResourceRepository) SearchService {
	return &searchService{searcher: searcher, resourceRepo: resourceRepo}
}

// Search queries the index when one is configured and falls back to a
// name match in the database when it is not or when the index fails.
func (s *searchService) Search(ctx context.Context, query string, limit int) ([]model.ResourceListItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	if s.searcher != nil {
		ids, err := s.searcher.SearchResourceIDs(ctx, query, limit)
		if err == nil {
			items, err := s.resourceRepo.FindListItemsByIDs(ctx, ids)
			if err != nil {
				return nil, persistenceErr("load search hits", err)
			}
			return items, nil
		}
		log.Warnw("[SearchService] 索引查询失败，回退到数据库查询", "query", query, "error", err)
	}

	items, err := s.resourceRepo.SearchByName(ctx, query, limit)
	if err != nil {
		return nil, persistenceErr("search resources", err)
	}
	return items, nil
}
