package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/entity"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories is the repository set wired once at startup.
type Repositories struct {
	Account *AccountRepository
	Contact *ContactRepository
	Project *ProjectRepository
	Lookups map[string]*LookupRepository
}

// NewRepositories creates all repositories, one lookup repository per
// reference table.
func NewRepositories(db *gorm.DB) *Repositories {
	lookups := make(map[string]*LookupRepository, len(entity.LookupCategories))
	for _, cat := range entity.LookupCategories {
		lookups[cat.Key] = NewLookupRepository(db, cat)
	}
	return &Repositories{
		Account: NewAccountRepository(db),
		Contact: NewContactRepository(db),
		Project: NewProjectRepository(db),
		Lookups: lookups,
	}
}

// deleteMarks returns the column set applied on soft delete.
func deleteMarks(actor string) map[string]interface{} {
	return map[string]interface{}{
		"is_deleted": true,
		"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
		"deleted_by": actor,
		"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		"updated_by": actor,
	}
}
