package entity

import (
	"time"
)

// AuditFields is embedded in every table. Soft delete is a flag plus
// timestamp and actor; deleted rows stay in storage for audit and are
// excluded from all uniqueness and existence checks.
type AuditFields struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	CreatedBy string     `json:"created_by" gorm:"size:36;not null"`
	UpdatedBy string     `json:"updated_by" gorm:"size:36"`
	IsDeleted bool       `json:"is_deleted" gorm:"not null;default:false;index"`
	DeletedAt *time.Time `json:"deleted_at"`
	DeletedBy string     `json:"deleted_by" gorm:"size:36"`
}
