package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/entity"
)

// AccountRepository persists accounts with their owned address and
// contact rows.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// withRelations preloads the account's owned rows and lookup
// references, active rows only in every case.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("BillingAddress", "is_deleted = ?", false).
		Preload("Contacts", "is_deleted = ?", false).
		Preload("Projects", "is_deleted = ?", false).
		Preload("Department", "is_deleted = ?", false).
		Preload("Unit", "is_deleted = ?", false).
		Preload("Vertical", "is_deleted = ?", false).
		Preload("Location", "is_deleted = ?", false).
		Preload("Status", "is_deleted = ?", false)
}

// FindByID returns an active account with relations loaded.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	var account entity.Account
	err := withRelations(r.db.WithContext(ctx)).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindByCode returns the active account with the given business code.
func (r *AccountRepository) FindByCode(ctx context.Context, code string) (*entity.Account, error) {
	var account entity.Account
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_deleted = ?", code, false).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// CodeExists reports whether another active account already uses code.
func (r *AccountRepository) CodeExists(ctx context.Context, code, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&entity.Account{}).
		Where("code = ? AND is_deleted = ?", code, false)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns active accounts with relations, newest first.
func (r *AccountRepository) List(ctx context.Context, skip, limit int) ([]entity.Account, int64, error) {
	var accounts []entity.Account
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Account{}).Where("is_deleted = ?", false)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := withRelations(query).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&accounts).Error

	return accounts, total, err
}

// ListAll returns every active account with relations, for export.
func (r *AccountRepository) ListAll(ctx context.Context) ([]entity.Account, error) {
	var accounts []entity.Account
	err := withRelations(r.db.WithContext(ctx)).
		Where("is_deleted = ?", false).
		Order("created_at ASC").
		Find(&accounts).Error
	return accounts, err
}

func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *AccountRepository) Save(ctx context.Context, account *entity.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// FindAddress returns the active address row of an account, if any.
func (r *AccountRepository) FindAddress(ctx context.Context, accountID string) (*entity.Address, error) {
	var addr entity.Address
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND is_deleted = ?", accountID, false).
		First(&addr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &addr, nil
}

func (r *AccountRepository) CreateAddress(ctx context.Context, addr *entity.Address) error {
	return r.db.WithContext(ctx).Create(addr).Error
}

func (r *AccountRepository) SaveAddress(ctx context.Context, addr *entity.Address) error {
	return r.db.WithContext(ctx).Save(addr).Error
}

// ReplaceContacts soft-deletes the account's contacts and inserts the
// new list in one transaction.
func (r *AccountRepository) ReplaceContacts(ctx context.Context, accountID, actor string, contacts []entity.Contact) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Contact{}).
			Where("account_id = ? AND is_deleted = ?", accountID, false).
			Updates(deleteMarks(actor)).Error; err != nil {
			return err
		}
		for i := range contacts {
			if err := tx.Create(&contacts[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SoftDeleteCascade marks the account and all of its owned address,
// contact and project rows deleted.
func (r *AccountRepository) SoftDeleteCascade(ctx context.Context, id, actor string) error {
	marks := deleteMarks(actor)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Account{}).Where("id = ?", id).Updates(marks).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.Address{}).Where("account_id = ?", id).Updates(marks).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.Contact{}).Where("account_id = ?", id).Updates(marks).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Project{}).Where("account_id = ?", id).Updates(marks).Error
	})
}
