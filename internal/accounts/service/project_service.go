package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/entity"
	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/repository"
)

type ProjectService struct {
	repo     *repository.ProjectRepository
	accounts *repository.AccountRepository
}

func NewProjectService(repo *repository.ProjectRepository, accounts *repository.AccountRepository) *ProjectService {
	return &ProjectService{repo: repo, accounts: accounts}
}

// CreateProjectRequest is the POST /projects payload. Dates use RFC 3339.
type CreateProjectRequest struct {
	AccountID      string     `json:"account_id"`
	ProjectName    string     `json:"project_name"`
	ProjectCode    string     `json:"project_code"`
	Status         string     `json:"status"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	RevenueBudget  *float64   `json:"revenue_budget"`
	BillingType    string     `json:"billing_type"`
	Probability    *float64   `json:"probability"`
	ProjectManager string     `json:"project_manager"`
}

// UpdateProjectRequest patches the supplied fields.
type UpdateProjectRequest struct {
	ProjectName    *string    `json:"project_name"`
	ProjectCode    *string    `json:"project_code"`
	Status         *string    `json:"status"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	RevenueBudget  *float64   `json:"revenue_budget"`
	BillingType    *string    `json:"billing_type"`
	Probability    *float64   `json:"probability"`
	ProjectManager *string    `json:"project_manager"`
}

func (s *ProjectService) checkAccount(ctx context.Context, accountID string) error {
	_, err := s.accounts.FindByID(ctx, accountID)
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Message: fmt.Sprintf("Account with id '%s' not found", accountID)}
	}
	return err
}

func (s *ProjectService) Create(ctx context.Context, req *CreateProjectRequest, actor string) (*entity.Project, error) {
	req.ProjectName = strings.TrimSpace(req.ProjectName)
	req.ProjectCode = strings.TrimSpace(req.ProjectCode)
	if req.ProjectName == "" {
		return nil, &ValidationError{Message: "Project name is required"}
	}
	if req.AccountID == "" {
		return nil, &ValidationError{Message: "Account id is required"}
	}
	if err := s.checkAccount(ctx, req.AccountID); err != nil {
		return nil, err
	}

	if req.ProjectCode != "" {
		exists, err := s.repo.CodeExists(ctx, req.ProjectCode, "")
		if err != nil {
			return nil, fmt.Errorf("check project code: %w", err)
		}
		if exists {
			return nil, &DuplicateError{Message: fmt.Sprintf("Project with code '%s' already exists", req.ProjectCode)}
		}
	}

	now := time.Now()
	project := &entity.Project{
		ID:             uuid.New().String(),
		AccountID:      req.AccountID,
		ProjectName:    req.ProjectName,
		ProjectCode:    req.ProjectCode,
		Status:         req.Status,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		RevenueBudget:  req.RevenueBudget,
		BillingType:    req.BillingType,
		Probability:    req.Probability,
		ProjectManager: req.ProjectManager,
	}
	project.CreatedAt = now
	project.UpdatedAt = now
	project.CreatedBy = actor

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*entity.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Message: fmt.Sprintf("Project with id '%s' not found", id)}
	}
	return project, err
}

// List returns active projects, optionally scoped to one account.
func (s *ProjectService) List(ctx context.Context, accountID string) ([]entity.Project, error) {
	if accountID != "" {
		if err := s.checkAccount(ctx, accountID); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, accountID)
}

func (s *ProjectService) Update(ctx context.Context, id string, req *UpdateProjectRequest, actor string) (*entity.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Message: fmt.Sprintf("Project with id '%s' not found", id)}
	}
	if err != nil {
		return nil, err
	}

	if req.ProjectName != nil {
		name := strings.TrimSpace(*req.ProjectName)
		if name == "" {
			return nil, &ValidationError{Message: "Project name is required"}
		}
		project.ProjectName = name
	}
	if req.ProjectCode != nil {
		code := strings.TrimSpace(*req.ProjectCode)
		if code != "" && code != project.ProjectCode {
			exists, err := s.repo.CodeExists(ctx, code, id)
			if err != nil {
				return nil, fmt.Errorf("check project code: %w", err)
			}
			if exists {
				return nil, &DuplicateError{Message: fmt.Sprintf("Project with code '%s' already exists", code)}
			}
		}
		project.ProjectCode = code
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if req.RevenueBudget != nil {
		project.RevenueBudget = req.RevenueBudget
	}
	if req.BillingType != nil {
		project.BillingType = *req.BillingType
	}
	if req.Probability != nil {
		project.Probability = req.Probability
	}
	if req.ProjectManager != nil {
		project.ProjectManager = *req.ProjectManager
	}
	project.UpdatedAt = time.Now()
	project.UpdatedBy = actor

	if err := s.repo.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id, actor string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Message: fmt.Sprintf("Project with id '%s' not found", id)}
		}
		return err
	}
	if err := s.repo.SoftDelete(ctx, id, actor); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
