package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/entity"
)

// LookupRepository is one instance per reference table; the category
// key doubles as the table name.
type LookupRepository struct {
	db  *gorm.DB
	cat entity.LookupCategory
}

func NewLookupRepository(db *gorm.DB, cat entity.LookupCategory) *LookupRepository {
	return &LookupRepository{db: db, cat: cat}
}

// Category returns the reference-table descriptor.
func (r *LookupRepository) Category() entity.LookupCategory {
	return r.cat
}

func (r *LookupRepository) table(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.cat.Key)
}

func (r *LookupRepository) FindByID(ctx context.Context, id string) (*entity.LookupItem, error) {
	var item entity.LookupItem
	err := r.table(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByName matches by exact name among active rows.
func (r *LookupRepository) FindByName(ctx context.Context, name string) (*entity.LookupItem, error) {
	var item entity.LookupItem
	err := r.table(ctx).
		Where("name = ? AND is_deleted = ?", name, false).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// NameExists reports whether another active row already uses name.
func (r *LookupRepository) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	var count int64
	query := r.table(ctx).Where("name = ? AND is_deleted = ?", name, false)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *LookupRepository) List(ctx context.Context) ([]entity.LookupItem, error) {
	var items []entity.LookupItem
	err := r.table(ctx).
		Where("is_deleted = ?", false).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *LookupRepository) Create(ctx context.Context, item *entity.LookupItem) error {
	return r.table(ctx).Create(item).Error
}

func (r *LookupRepository) Save(ctx context.Context, item *entity.LookupItem) error {
	return r.table(ctx).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"name":       item.Name,
		"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		"updated_by": item.UpdatedBy,
	}).Error
}

func (r *LookupRepository) SoftDelete(ctx context.Context, id, actor string) error {
	return r.table(ctx).
		Where("id = ?", id).
		Updates(deleteMarks(actor)).Error
}
