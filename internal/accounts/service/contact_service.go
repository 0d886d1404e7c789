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

type ContactService struct {
	repo     *repository.ContactRepository
	accounts *repository.AccountRepository
}

func NewContactService(repo *repository.ContactRepository, accounts *repository.AccountRepository) *ContactService {
	return &ContactService{repo: repo, accounts: accounts}
}

// CreateContactRequest is the POST /contacts payload.
type CreateContactRequest struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// UpdateContactRequest patches the supplied fields; a non-nil AccountID
// moves the contact to another account.
type UpdateContactRequest struct {
	AccountID *string `json:"account_id"`
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

func (s *ContactService) checkAccount(ctx context.Context, accountID string) error {
	_, err := s.accounts.FindByID(ctx, accountID)
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Message: fmt.Sprintf("Account with id '%s' not found", accountID)}
	}
	return err
}

func (s *ContactService) Create(ctx context.Context, req *CreateContactRequest, actor string) (*entity.Contact, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, &ValidationError{Message: "Name is required"}
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return nil, &ValidationError{Message: "Email is required"}
	}
	if req.AccountID == "" {
		return nil, &ValidationError{Message: "Account id is required"}
	}
	if err := s.checkAccount(ctx, req.AccountID); err != nil {
		return nil, err
	}

	now := time.Now()
	contact := &entity.Contact{
		ID:        uuid.New().String(),
		AccountID: req.AccountID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	contact.CreatedAt = now
	contact.UpdatedAt = now
	contact.CreatedBy = actor

	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

func (s *ContactService) Get(ctx context.Context, id string) (*entity.Contact, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Message: fmt.Sprintf("Contact with id '%s' not found", id)}
	}
	return contact, err
}

// List returns active contacts, optionally scoped to one account.
func (s *ContactService) List(ctx context.Context, accountID string) ([]entity.Contact, error) {
	if accountID != "" {
		if err := s.checkAccount(ctx, accountID); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, accountID)
}

func (s *ContactService) Update(ctx context.Context, id string, req *UpdateContactRequest, actor string) (*entity.Contact, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Message: fmt.Sprintf("Contact with id '%s' not found", id)}
	}
	if err != nil {
		return nil, err
	}

	if req.AccountID != nil && *req.AccountID != contact.AccountID {
		if err := s.checkAccount(ctx, *req.AccountID); err != nil {
			return nil, err
		}
		contact.AccountID = *req.AccountID
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, &ValidationError{Message: "Name is required"}
		}
		contact.Name = name
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			return nil, &ValidationError{Message: "Email is required"}
		}
		contact.Email = email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	contact.UpdatedAt = time.Now()
	contact.UpdatedBy = actor

	if err := s.repo.Save(ctx, contact); err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return contact, nil
}

func (s *ContactService) Delete(ctx context.Context, id, actor string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Message: fmt.Sprintf("Contact with id '%s' not found", id)}
		}
		return err
	}
	if err := s.repo.SoftDelete(ctx, id, actor); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}
