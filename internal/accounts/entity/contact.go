package entity

// Contact belongs to exactly one account and may be moved between
// accounts. Email is not unique: multiple contacts of the same client
// can share a mailbox.
type Contact struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	AccountID string `json:"account_id" gorm:"size:36;not null;index"`
	Name      string `json:"name" gorm:"size:256;not null"`
	Email     string `json:"email" gorm:"size:256;not null;index"`
	Phone     string `json:"phone" gorm:"size:64"`

	AuditFields
}

func (Contact) TableName() string {
	return "contacts"
}
