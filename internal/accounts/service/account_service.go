package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/entity"
	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/repository"
)

// AccountService implements account CRUD with soft delete. Deleting an
// account cascades the delete mark to its address, contacts and
// projects.
type AccountService struct {
	db      *gorm.DB
	repo    *repository.AccountRepository
	lookups map[string]*repository.LookupRepository
}

func NewAccountService(db *gorm.DB, repo *repository.AccountRepository, lookups map[string]*repository.LookupRepository) *AccountService {
	return &AccountService{db: db, repo: repo, lookups: lookups}
}

// AddressInput is the billing address payload on account writes.
type AddressInput struct {
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	CountryCode  string `json:"country_code"`
}

// ContactInput is one contact row on account writes.
type ContactInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateAccountRequest is the POST /accounts payload.
type CreateAccountRequest struct {
	Name            string         `json:"name"`
	Code            string         `json:"code"`
	Probability     *int           `json:"probability"`
	AccountPartner  string         `json:"account_partner"`
	DeliveryPartner string         `json:"delivery_partner"`
	DepartmentID    *string        `json:"department_id"`
	UnitID          *string        `json:"unit_id"`
	VerticalID      *string        `json:"vertical_id"`
	LocationID      *string        `json:"location_id"`
	StatusID        *string        `json:"status_id"`
	BillingAddress  *AddressInput  `json:"billing_address"`
	Contacts        []ContactInput `json:"contacts"`
}

// UpdateAccountRequest is the PUT /accounts/:id payload. Nil fields are
// left untouched; a non-nil Contacts slice replaces the contact list.
type UpdateAccountRequest struct {
	Name            *string        `json:"name"`
	Code            *string        `json:"code"`
	Probability     *int           `json:"probability"`
	AccountPartner  *string        `json:"account_partner"`
	DeliveryPartner *string        `json:"delivery_partner"`
	DepartmentID    *string        `json:"department_id"`
	UnitID          *string        `json:"unit_id"`
	VerticalID      *string        `json:"vertical_id"`
	LocationID      *string        `json:"location_id"`
	StatusID        *string        `json:"status_id"`
	BillingAddress  *AddressInput  `json:"billing_address"`
	Contacts        []ContactInput `json:"contacts"`
}

// AccountList is a paginated account page.
type AccountList struct {
	Items []entity.Account `json:"items"`
	Total int64            `json:"total"`
	Skip  int              `json:"skip"`
	Limit int              `json:"limit"`
}

func (s *AccountService) validateLookupRef(ctx context.Context, key string, id *string) error {
	if id == nil || *id == "" {
		return nil
	}
	repo := s.lookups[key]
	_, err := repo.FindByID(ctx, *id)
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Message: fmt.Sprintf("%s with id '%s' does not exist", repo.Category().Label, *id)}
	}
	return err
}

func (s *AccountService) validateLookupRefs(ctx context.Context, dep, unit, vert, loc, status *string) error {
	refs := []struct {
		key string
		id  *string
	}{
		{"departments", dep},
		{"units", unit},
		{"verticals", vert},
		{"locations", loc},
		{"statuses", status},
	}
	for _, ref := range refs {
		if err := s.validateLookupRef(ctx, ref.key, ref.id); err != nil {
			return err
		}
	}
	return nil
}

func validateAddressInput(in *AddressInput) error {
	if strings.TrimSpace(in.AddressLine1) == "" {
		return &ValidationError{Message: "Address Line 1 is required"}
	}
	if strings.TrimSpace(in.City) == "" {
		return &ValidationError{Message: "City is required"}
	}
	if strings.TrimSpace(in.CountryCode) == "" {
		return &ValidationError{Message: "Country is required"}
	}
	return nil
}

// Create validates and inserts an account with its optional address and
// contacts in one transaction.
func (s *AccountService) Create(ctx context.Context, req *CreateAccountRequest, actor string) (*entity.Account, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Code = strings.TrimSpace(req.Code)
	if req.Name == "" {
		return nil, &ValidationError{Message: "Name is required"}
	}
	if req.Code == "" {
		return nil, &ValidationError{Message: "Code is required"}
	}

	exists, err := s.repo.CodeExists(ctx, req.Code, "")
	if err != nil {
		return nil, fmt.Errorf("check code: %w", err)
	}
	if exists {
		return nil, &DuplicateError{Message: fmt.Sprintf("Account with code '%s' already exists", req.Code)}
	}

	if err := s.validateLookupRefs(ctx, req.DepartmentID, req.UnitID, req.VerticalID, req.LocationID, req.StatusID); err != nil {
		return nil, err
	}
	if req.BillingAddress != nil {
		if err := validateAddressInput(req.BillingAddress); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	account := &entity.Account{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Code:            req.Code,
		Probability:     req.Probability,
		AccountPartner:  req.AccountPartner,
		DeliveryPartner: req.DeliveryPartner,
		DepartmentID:    normalizeRef(req.DepartmentID),
		UnitID:          normalizeRef(req.UnitID),
		VerticalID:      normalizeRef(req.VerticalID),
		LocationID:      normalizeRef(req.LocationID),
		StatusID:        normalizeRef(req.StatusID),
	}
	account.CreatedAt = now
	account.UpdatedAt = now
	account.CreatedBy = actor

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		if req.BillingAddress != nil {
			addr := addressFromInput(account.ID, req.BillingAddress, actor, now)
			if err := tx.Create(addr).Error; err != nil {
				return err
			}
		}
		for _, in := range req.Contacts {
			contact := contactFromInput(account.ID, in, actor, now)
			if err := tx.Create(contact).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	return s.Get(ctx, account.ID)
}

func (s *AccountService) Get(ctx context.Context, id string) (*entity.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Message: fmt.Sprintf("Account with id '%s' not found", id)}
	}
	return account, err
}

func (s *AccountService) List(ctx context.Context, skip, limit int) (*AccountList, error) {
	items, total, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return &AccountList{Items: items, Total: total, Skip: skip, Limit: limit}, nil
}

// Update patches the supplied scalar fields, upserts the billing
// address when one is supplied, and replaces the contact list when a
// non-nil Contacts slice is supplied.
func (s *AccountService) Update(ctx context.Context, id string, req *UpdateAccountRequest, actor string) (*entity.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Message: fmt.Sprintf("Account with id '%s' not found", id)}
	}
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, &ValidationError{Message: "Name is required"}
		}
		account.Name = name
	}
	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" {
			return nil, &ValidationError{Message: "Code is required"}
		}
		if code != account.Code {
			exists, err := s.repo.CodeExists(ctx, code, id)
			if err != nil {
				return nil, fmt.Errorf("check code: %w", err)
			}
			if exists {
				return nil, &DuplicateError{Message: fmt.Sprintf("Account with code '%s' already exists", code)}
			}
		}
		account.Code = code
	}

	if err := s.validateLookupRefs(ctx, req.DepartmentID, req.UnitID, req.VerticalID, req.LocationID, req.StatusID); err != nil {
		return nil, err
	}
	if req.BillingAddress != nil {
		if err := validateAddressInput(req.BillingAddress); err != nil {
			return nil, err
		}
	}

	if req.Probability != nil {
		account.Probability = req.Probability
	}
	if req.AccountPartner != nil {
		account.AccountPartner = *req.AccountPartner
	}
	if req.DeliveryPartner != nil {
		account.DeliveryPartner = *req.DeliveryPartner
	}
	if req.DepartmentID != nil {
		account.DepartmentID = normalizeRef(req.DepartmentID)
	}
	if req.UnitID != nil {
		account.UnitID = normalizeRef(req.UnitID)
	}
	if req.VerticalID != nil {
		account.VerticalID = normalizeRef(req.VerticalID)
	}
	if req.LocationID != nil {
		account.LocationID = normalizeRef(req.LocationID)
	}
	if req.StatusID != nil {
		account.StatusID = normalizeRef(req.StatusID)
	}
	account.UpdatedAt = time.Now()
	account.UpdatedBy = actor

	// Preloaded relations must not be written back through Save.
	account.BillingAddress = nil
	account.Contacts = nil
	account.Projects = nil
	account.Department = nil
	account.Unit = nil
	account.Vertical = nil
	account.Location = nil
	account.Status = nil

	if err := s.repo.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}

	if req.BillingAddress != nil {
		if err := s.upsertAddress(ctx, id, req.BillingAddress, actor); err != nil {
			return nil, err
		}
	}
	if req.Contacts != nil {
		now := time.Now()
		contacts := make([]entity.Contact, 0, len(req.Contacts))
		for _, in := range req.Contacts {
			contacts = append(contacts, *contactFromInput(id, in, actor, now))
		}
		if err := s.repo.ReplaceContacts(ctx, id, actor, contacts); err != nil {
			return nil, fmt.Errorf("replace contacts: %w", err)
		}
	}

	return s.Get(ctx, id)
}

func (s *AccountService) upsertAddress(ctx context.Context, accountID string, in *AddressInput, actor string) error {
	now := time.Now()
	existing, err := s.repo.FindAddress(ctx, accountID)
	if errors.Is(err, repository.ErrNotFound) {
		addr := addressFromInput(accountID, in, actor, now)
		return s.repo.CreateAddress(ctx, addr)
	}
	if err != nil {
		return err
	}

	existing.AddressLine1 = in.AddressLine1
	existing.AddressLine2 = in.AddressLine2
	existing.City = in.City
	existing.State = in.State
	existing.Zip = in.Zip
	existing.CountryCode = in.CountryCode
	existing.UpdatedAt = now
	existing.UpdatedBy = actor
	return s.repo.SaveAddress(ctx, existing)
}

// Delete soft-deletes the account together with its address, contacts
// and projects.
func (s *AccountService) Delete(ctx context.Context, id, actor string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Message: fmt.Sprintf("Account with id '%s' not found", id)}
		}
		return err
	}
	if err := s.repo.SoftDeleteCascade(ctx, id, actor); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// normalizeRef maps an empty string to nil so clearing a reference
// stores NULL rather than an empty id.
func normalizeRef(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

func addressFromInput(accountID string, in *AddressInput, actor string, now time.Time) *entity.Address {
	addr := &entity.Address{
		AccountID:    accountID,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		State:        in.State,
		Zip:          in.Zip,
		CountryCode:  in.CountryCode,
	}
	addr.CreatedAt = now
	addr.UpdatedAt = now
	addr.CreatedBy = actor
	return addr
}

func contactFromInput(accountID string, in ContactInput, actor string, now time.Time) *entity.Contact {
	contact := &entity.Contact{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
	}
	contact.CreatedAt = now
	contact.UpdatedAt = now
	contact.CreatedBy = actor
	return contact
}
