package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/entity"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	var contact entity.Contact
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// List returns all active contacts, optionally filtered by account.
func (r *ContactRepository) List(ctx context.Context, accountID string) ([]entity.Contact, error) {
	var contacts []entity.Contact
	query := r.db.WithContext(ctx).Where("is_deleted = ?", false)
	if accountID != "" {
		query = query.Where("account_id = ?", accountID)
	}
	err := query.Order("created_at ASC").Find(&contacts).Error
	return contacts, err
}

func (r *ContactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *ContactRepository) Save(ctx context.Context, contact *entity.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *ContactRepository) SoftDelete(ctx context.Context, id, actor string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Contact{}).
		Where("id = ?", id).
		Updates(deleteMarks(actor)).Error
}
