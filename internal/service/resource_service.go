package service

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"resource-hub-go/internal/model"
	"resource-hub-go/internal/repository"
	"resource-hub-go/pkg/events"
	"resource-hub-go/pkg/log"
	"resource-hub-go/pkg/storage"
)

const defaultMimeType = "application/octet-stream"

// UploadInput is one uploaded file plus the raw category_id form value.
type UploadInput struct {
	// File is nil when the request carried no file part.
	File         io.Reader
	OriginalName string
	MimeType     string
	// CategoryID is the raw form value; empty means no category.
	CategoryID string
}

// FileContent is an opened resource ready to be streamed back.
type FileContent struct {
	Resource *model.Resource
	Body     io.ReadCloser
	Size     int64
}

// ResourceService 接口定义了资源上传与读取的业务操作。
type ResourceService interface {
	Upload(ctx context.Context, in UploadInput) (*model.Resource, error)
	List(ctx context.Context) ([]model.ResourceListItem, error)
	// Open looks up a resource and opens its file. The caller closes Body.
	Open(ctx context.Context, id int64) (*FileContent, error)
}

type resourceService struct {
	tx           repository.Transactor
	resourceRepo repository.ResourceRepository
	categoryRepo repository.CategoryRepository
	logRepo      repository.LogRepository
	store        storage.FileStore
	publisher    events.Publisher
	now          func() time.Time
}

// NewResourceService 创建一个新的 ResourceService 实例。
func NewResourceService(
	tx repository.Transactor,
	resourceRepo repository.ResourceRepository,
	categoryRepo repository.CategoryRepository,
	logRepo repository.LogRepository,
	store storage.FileStore,
	publisher events.Publisher,
) ResourceService {
	return &resourceService{
		tx:           tx,
		resourceRepo: resourceRepo,
		categoryRepo: categoryRepo,
		logRepo:      logRepo,
		store:        store,
		publisher:    publisher,
		now:          time.Now,
	}
}

// parseCategoryID returns nil for an absent or blank value.
func parseCategoryID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, ErrInvalidCategoryID
	}
	return &id, nil
}

// Upload validates the input and the category, writes the file, then inside one
// transaction re-checks the category and inserts the resource row and its audit entry.
// No transaction is held while the body streams to the store. The file is deleted
// again if anything after the write fails, so a failed upload leaves no orphan.
func (s *resourceService) Upload(ctx context.Context, in UploadInput) (*model.Resource, error) {
	// 1. 输入校验，在事务开始之前完成
	if in.File == nil {
		return nil, ErrMissingFile
	}
	categoryID, err := parseCategoryID(in.CategoryID)
	if err != nil {
		return nil, err
	}

	// 2. 校验分类是否存在，未通过时不写入任何文件
	if err := s.checkCategory(ctx, s.categoryRepo, categoryID); err != nil {
		return nil, err
	}

	// 3. 写入文件
	storedName := StoredName(in.OriginalName, s.now())
	size, err := s.store.Save(ctx, storedName, in.File)
	if err != nil {
		return nil, persistenceErr("save file", err)
	}
	committed := false
	defer func() {
		if !committed {
			s.removeOrphan(ctx, storedName)
		}
	}()

	// 4. 开启事务
	tx, err := s.tx.Begin(ctx)
	if err != nil {
		return nil, persistenceErr("begin transaction", err)
	}
	defer tx.Rollback()

	// 5. 事务内再次确认分类存在
	if err := s.checkCategory(ctx, s.categoryRepo.WithTx(tx), categoryID); err != nil {
		return nil, err
	}

	// 6. 写入资源元数据
	mimeType := strings.TrimSpace(in.MimeType)
	if mimeType == "" {
		mimeType = defaultMimeType
	}
	resource := &model.Resource{
		OriginalName: in.OriginalName,
		StoredName:   storedName,
		MimeType:     mimeType,
		SizeBytes:    size,
		StoragePath:  storedName,
		CategoryID:   categoryID,
	}
	if err := s.resourceRepo.WithTx(tx).Create(ctx, resource); err != nil {
		return nil, persistenceErr("insert resource", err)
	}

	// 7. 写入审计记录
	entry := &model.LogEntry{Entity: model.EntityResource, EntityID: resource.ID, Action: model.ActionResourceUploaded}
	if err := s.logRepo.WithTx(tx).Create(ctx, entry); err != nil {
		return nil, persistenceErr("insert audit entry", err)
	}

	// 8. 提交事务
	if err := tx.Commit(); err != nil {
		return nil, persistenceErr("commit", err)
	}
	committed = true

	log.Infow("resource uploaded", "resource_id", resource.ID, "stored_name", storedName, "size", size)
	publish(ctx, s.publisher, events.New(events.TypeResourceUploaded, model.EntityResource, resource.ID))
	return resource, nil
}

// checkCategory returns ErrCategoryNotFound when id is set and names no category.
func (s *resourceService) checkCategory(ctx context.Context, repo repository.CategoryRepository, id *int64) error {
	if id == nil {
		return nil
	}
	exists, err := repo.Exists(ctx, *id)
	if err != nil {
		return persistenceErr("check category", err)
	}
	if !exists {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *resourceService) removeOrphan(ctx context.Context, storedName string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := s.store.Delete(ctx, storedName); err != nil {
		log.Errorf("删除未提交的上传文件失败: %s: %v", storedName, err)
	}
}

// List 返回全部资源及其分类名称，按 ID 倒序。
func (s *resourceService) List(ctx context.Context) ([]model.ResourceListItem, error) {
	items, err := s.resourceRepo.ListWithCategory(ctx)
	if err != nil {
		return nil, persistenceErr("list resources", err)
	}
	return items, nil
}

func (s *resourceService) Open(ctx context.Context, id int64) (*FileContent, error) {
	resource, err := s.resourceRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, persistenceErr("find resource", err)
	}

	body, info, err := s.store.Open(ctx, resource.StoragePath)
	if errors.Is(err, storage.ErrNotExist) {
		log.Warnw("resource file missing from store", "resource_id", id, "storage_path", resource.StoragePath)
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, persistenceErr("open file", err)
	}
	return &FileContent{Resource: resource, Body: body, Size: info.Size}, nil
}
