package entity

import (
	"time"
)

// Project is delivery work attached to an account.
type Project struct {
	ID             string     `json:"id" gorm:"primaryKey;size:36"`
	AccountID      string     `json:"account_id" gorm:"size:36;not null;index"`
	ProjectName    string     `json:"project_name" gorm:"size:256"`
	ProjectCode    string     `json:"project_code" gorm:"size:64;index"`
	Status         string     `json:"status" gorm:"size:64"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	RevenueBudget  *float64   `json:"revenue_budget"`
	BillingType    string     `json:"billing_type" gorm:"size:64"`
	Probability    *float64   `json:"probability"`
	ProjectManager string     `json:"project_manager" gorm:"size:256"`

	AuditFields
}

func (Project) TableName() string {
	return "projects"
}
