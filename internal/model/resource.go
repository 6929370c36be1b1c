package model

import "time"

// Resource 定义了 resources 表的 ORM 模型。
// 每一行都对应文件存储中的一个文件，StoragePath 就是生成的存储文件名。
type Resource struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OriginalName string    `gorm:"type:varchar(255);not null" json:"original_name"`
	StoredName   string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"stored_name"`
	MimeType     string    `gorm:"type:varchar(150);not null" json:"mime_type"`
	SizeBytes    int64     `gorm:"not null" json:"size_bytes"`
	StoragePath  string    `gorm:"type:varchar(500);not null" json:"storage_path"`
	CategoryID   *int64    `gorm:"index" json:"category_id"`
	Category     *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Resource) TableName() string {
	return "resources"
}

// ResourceListItem is a resource row joined with the name of its category.
type ResourceListItem struct {
	ID           int64     `json:"id"`
	OriginalName string    `json:"original_name"`
	StoredName   string    `json:"stored_name"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CategoryID   *int64    `json:"category_id"`
	CategoryName *string   `json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// ResourceDocument 定义了存储在 Elasticsearch 中的资源文档结构。
type ResourceDocument struct {
	ResourceID   int64     `json:"resource_id"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CategoryID   *int64    `json:"category_id,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewResourceDocument builds the index document for a listed resource.
func NewResourceDocument(item *ResourceListItem) ResourceDocument {
	doc := ResourceDocument{
		ResourceID:   item.ID,
		OriginalName: item.OriginalName,
		MimeType:     item.MimeType,
		SizeBytes:    item.SizeBytes,
		CategoryID:   item.CategoryID,
		CreatedAt:    item.CreatedAt,
	}
	if item.CategoryName != nil {
		doc.CategoryName = *item.CategoryName
	}
	return doc
}
