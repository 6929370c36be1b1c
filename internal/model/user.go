// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// User 对应于数据库中的 'users' 表。
type User struct {
	ID    int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  *string `gorm:"type:varchar(120)" json:"name"`
	Email string  `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	// Password holds the bcrypt hash and is never serialized.
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      string    `gorm:"type:varchar(30);not null" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (User) TableName() string {
	return "users"
}
