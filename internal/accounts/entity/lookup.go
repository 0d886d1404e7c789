package entity

// LookupItem is the shared row shape of the five reference tables.
// Name is unique among non-deleted rows of each table.
type LookupItem struct {
	ID   string `json:"id" gorm:"primaryKey;size:36"`
	Name string `json:"name" gorm:"size:128;not null;index"`

	AuditFields
}

type Department struct {
	LookupItem
}

func (Department) TableName() string {
	return "departments"
}

type Unit struct {
	LookupItem
}

func (Unit) TableName() string {
	return "units"
}

type Vertical struct {
	LookupItem
}

func (Vertical) TableName() string {
	return "verticals"
}

type Location struct {
	LookupItem
}

func (Location) TableName() string {
	return "locations"
}

type Status struct {
	LookupItem
}

func (Status) TableName() string {
	return "statuses"
}

// LookupCategory describes one reference table: Key doubles as URL path
// segment and table name, Label is the human-readable name used in
// import columns and error messages.
type LookupCategory struct {
	Key   string
	Label string
}

// LookupCategories lists the five reference tables in display order.
var LookupCategories = []LookupCategory{
	{Key: "departments", Label: "Department"},
	{Key: "units", Label: "Unit"},
	{Key: "verticals", Label: "Vertical"},
	{Key: "locations", Label: "Location"},
	{Key: "statuses", Label: "Status"},
}

// LookupCategoryByLabel returns the category with the given label.
func LookupCategoryByLabel(label string) (LookupCategory, bool) {
	for _, cat := range LookupCategories {
		if cat.Label == label {
			return cat, true
		}
	}
	return LookupCategory{}, false
}
