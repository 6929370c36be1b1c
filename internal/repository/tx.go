package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrTxDone is returned by Commit when the transaction was already finished.
var ErrTxDone = errors.New("repository: transaction already committed or rolled back")

// Transactor 负责开启数据库事务。
type Transactor interface {
	Begin(ctx context.Context) (*Tx, error)
}

type transactor struct {
	db *gorm.DB
}

// NewTransactor 创建一个新的 Transactor 实例。
func NewTransactor(db *gorm.DB) Transactor {
	return &transactor{db: db}
}

// Begin starts a transaction bound to ctx. Callers must defer Rollback right away;
// after a successful Commit the deferred Rollback does nothing.
func (t *transactor) Begin(ctx context.Context) (*Tx, error) {
	tx := t.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &Tx{db: tx}, nil
}

// Tx is a scoped transaction handle.
type Tx struct {
	db   *gorm.DB
	done bool
}

// Commit 提交事务。
func (tx *Tx) Commit() error {
	if tx.done {
		return ErrTxDone
	}
	tx.done = true
	return tx.db.Commit().Error
}

// Rollback 回滚事务，事务已结束时为空操作。
func (tx *Tx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.done = true
	return tx.db.Rollback().Error
}

// dbFor returns the transaction's handle when tx is set, otherwise db.
func dbFor(db *gorm.DB, tx *Tx) *gorm.DB {
	if tx != nil {
		return tx.db
	}
	return db
}
