package model

import "time"

// Audit tags written to the logs table.
const (
	EntityUser     = "user"
	EntityResource = "resource"
	EntityCategory = "category"

	ActionUserCreated      = "USER_CREATED"
	ActionResourceUploaded = "RESOURCE_UPLOADED"
	ActionCategoryCreated  = "CATEGORY_CREATED"
)

// LogEntry 对应于数据库中的 'logs' 表，是只追加的审计记录。
type LogEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Entity    string    `gorm:"type:varchar(50);not null;index:idx_logs_entity" json:"entity"`
	EntityID  int64     `gorm:"not null;index:idx_logs_entity" json:"entity_id"`
	Action    string    `gorm:"type:varchar(50);not null" json:"action"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (LogEntry) TableName() string {
	return "logs"
}
