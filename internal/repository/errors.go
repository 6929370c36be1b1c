package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound 表示查询的记录不存在。
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEmail 表示邮箱违反了唯一约束。
	ErrDuplicateEmail = errors.New("repository: duplicate email")
)

// translate maps gorm's driver-independent errors onto the repository's own.
// The database must be opened with TranslateError enabled for duplicates to be recognized.
func translate(err error, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case duplicate != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return duplicate
	default:
		return err
	}
}
