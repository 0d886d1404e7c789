package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/entity"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// List returns active projects, optionally filtered by account.
func (r *ProjectRepository) List(ctx context.Context, accountID string) ([]entity.Project, error) {
	var projects []entity.Project
	query := r.db.WithContext(ctx).Where("is_deleted = ?", false)
	if accountID != "" {
		query = query.Where("account_id = ?", accountID)
	}
	err := query.Order("created_at ASC").Find(&projects).Error
	return projects, err
}

// CodeExists reports whether another active project already uses code.
func (r *ProjectRepository) CodeExists(ctx context.Context, code, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&entity.Project{}).
		Where("project_code = ? AND is_deleted = ?", code, false)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) Save(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *ProjectRepository) SoftDelete(ctx context.Context, id, actor string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Project{}).
		Where("id = ?", id).
		Updates(deleteMarks(actor)).Error
}
