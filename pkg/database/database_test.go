package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"gorm.io/gorm"

	"resource-hub-go/internal/config"
)

type uniqueRow struct {
	ID    int64  `gorm:"primaryKey"`
	Email string `gorm:"uniqueIndex"`
}

func TestOpenSQLiteTranslatesDuplicateKey(t *testing.T) {
	db, err := Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })

	if err := db.AutoMigrate(&uniqueRow{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Create(&uniqueRow{Email: "a@x.com"}).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err = db.Create(&uniqueRow{Email: "a@x.com"}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(config.DatabaseConfig{Driver: "oracle", DSN: "x"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	rdb, err := OpenRedis(context.Background(), config.RedisConfig{Addr: addr})
	if err != nil {
		t.Fatalf("OpenRedis: %v", err)
	}
	_ = rdb.Close()

	mr.Close()
	if _, err := OpenRedis(context.Background(), config.RedisConfig{Addr: addr}); err == nil {
		t.Fatal("expected error when redis is down")
	}
}
