package entity

// Account is a client account. Code is the business key: unique among
// non-deleted accounts and used by the importer to decide create vs update.
type Account struct {
	ID              string  `json:"id" gorm:"primaryKey;size:36"`
	Name            string  `json:"name" gorm:"size:256;not null"`
	Code            string  `json:"code" gorm:"size:64;not null;index"`
	Probability     *int    `json:"probability"`
	AccountPartner  string  `json:"account_partner" gorm:"size:256"`
	DeliveryPartner string  `json:"delivery_partner" gorm:"size:256"`
	DepartmentID    *string `json:"department_id" gorm:"size:36"`
	UnitID          *string `json:"unit_id" gorm:"size:36"`
	VerticalID      *string `json:"vertical_id" gorm:"size:36"`
	LocationID      *string `json:"location_id" gorm:"size:36"`
	StatusID        *string `json:"status_id" gorm:"size:36"`

	AuditFields

	// relations
	BillingAddress *Address    `json:"billing_address,omitempty" gorm:"foreignKey:AccountID"`
	Contacts       []Contact   `json:"contacts,omitempty" gorm:"foreignKey:AccountID"`
	Projects       []Project   `json:"projects,omitempty" gorm:"foreignKey:AccountID"`
	Department     *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Unit           *Unit       `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
	Vertical       *Vertical   `json:"vertical,omitempty" gorm:"foreignKey:VerticalID"`
	Location       *Location   `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	Status         *Status     `json:"status,omitempty" gorm:"foreignKey:StatusID"`
}

func (Account) TableName() string {
	return "accounts"
}

// Address is one-to-one with Account; the account id is its primary key.
type Address struct {
	AccountID    string `json:"account_id" gorm:"primaryKey;size:36"`
	AddressLine1 string `json:"address_line1" gorm:"size:256;not null"`
	AddressLine2 string `json:"address_line2" gorm:"size:256"`
	City         string `json:"city" gorm:"size:128;not null"`
	State        string `json:"state" gorm:"size:128"`
	Zip          string `json:"zip" gorm:"size:32"`
	CountryCode  string `json:"country_code" gorm:"size:64;not null"`

	AuditFields
}

func (Address) TableName() string {
	return "addresses"
}
