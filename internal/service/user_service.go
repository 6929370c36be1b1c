// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"errors"
	"strings"

	"resource-hub-go/internal/model"
	"resource-hub-go/internal/repository"
	"resource-hub-go/pkg/events"
	"resource-hub-go/pkg/hash"
	"resource-hub-go/pkg/log"
)

// RegisterInput carries the registration form. Name and Role are optional.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// RolePolicy is the allow-list of roles accepted at registration and the fallback role.
type RolePolicy struct {
	Allowed []string
	Default string
}

// Normalize returns role when it is allowed, the default otherwise.
func (p RolePolicy) Normalize(role string) string {
	role = strings.TrimSpace(role)
	for _, allowed := range p.Allowed {
		if role != "" && role == allowed {
			return role
		}
	}
	return p.Default
}

// UserService 接口定义了所有与用户相关的业务操作。
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// userService 是 UserService 接口的实现。
type userService struct {
	tx        repository.Transactor
	userRepo  repository.UserRepository
	logRepo   repository.LogRepository
	roles     RolePolicy
	publisher events.Publisher
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(tx repository.Transactor, userRepo repository.UserRepository, logRepo repository.LogRepository, roles RolePolicy, publisher events.Publisher) UserService {
	return &userService{
		tx:        tx,
		userRepo:  userRepo,
		logRepo:   logRepo,
		roles:     roles,
		publisher: publisher,
	}
}

// Register 处理用户注册的业务逻辑：用户与审计记录在同一事务中写入。
func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	// 1. 校验必填字段
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, ErrMissingRequiredField
	}

	// 2. 对密码进行哈希处理
	hashedPassword, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    email,
		Password: hashedPassword,
		Role:     s.roles.Normalize(in.Role),
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = &name
	}

	// 3. 开启事务，写入用户与审计记录
	tx, err := s.tx.Begin(ctx)
	if err != nil {
		return nil, persistenceErr("begin transaction", err)
	}
	defer tx.Rollback()

	if err := s.userRepo.WithTx(tx).Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, persistenceErr("insert user", err)
	}
	entry := &model.LogEntry{Entity: model.EntityUser, EntityID: user.ID, Action: model.ActionUserCreated}
	if err := s.logRepo.WithTx(tx).Create(ctx, entry); err != nil {
		return nil, persistenceErr("insert audit entry", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, persistenceErr("commit", err)
	}

	log.Infow("user registered", "user_id", user.ID, "role", user.Role)
	publish(ctx, s.publisher, events.New(events.TypeUserCreated, model.EntityUser, user.ID))
	return user, nil
}

// List 返回全部用户，按 ID 倒序。
func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, persistenceErr("list users", err)
	}
	return users, nil
}
