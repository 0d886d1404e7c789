package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/entity"
	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/repository"
)

// LookupService manages the five reference tables and resolves display
// names to ids for the importer. Name→id pairs are cached in a redis
// hash per table when redis is configured.
type LookupService struct {
	repos map[string]*repository.LookupRepository
	rdb   *redis.Client
}

func NewLookupService(repos map[string]*repository.LookupRepository, rdb *redis.Client) *LookupService {
	return &LookupService{repos: repos, rdb: rdb}
}

func (s *LookupService) repo(key string) (*repository.LookupRepository, error) {
	repo, ok := s.repos[key]
	if !ok {
		return nil, &NotFoundError{Message: fmt.Sprintf("Unknown lookup category '%s'", key)}
	}
	return repo, nil
}

// Create adds a reference row; the name must be unique among active rows.
func (s *LookupService) Create(ctx context.Context, key, name, actor string) (*entity.LookupItem, error) {
	repo, err := s.repo(key)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Message: "Name is required"}
	}

	exists, err := repo.NameExists(ctx, name, "")
	if err != nil {
		return nil, fmt.Errorf("check name: %w", err)
	}
	if exists {
		return nil, &DuplicateError{Message: fmt.Sprintf("%s '%s' already exists", repo.Category().Label, name)}
	}

	now := time.Now()
	item := &entity.LookupItem{
		ID:   uuid.New().String(),
		Name: name,
	}
	item.CreatedAt = now
	item.UpdatedAt = now
	item.CreatedBy = actor

	if err := repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create %s: %w", repo.Category().Label, err)
	}
	s.invalidate(ctx, key)
	return item, nil
}

func (s *LookupService) List(ctx context.Context, key string) ([]entity.LookupItem, error) {
	repo, err := s.repo(key)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

func (s *LookupService) Get(ctx context.Context, key, id string) (*entity.LookupItem, error) {
	repo, err := s.repo(key)
	if err != nil {
		return nil, err
	}
	item, err := repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Message: fmt.Sprintf("%s with id '%s' not found", repo.Category().Label, id)}
	}
	return item, err
}

// Update renames a reference row, keeping names unique among active rows.
func (s *LookupService) Update(ctx context.Context, key, id, name, actor string) (*entity.LookupItem, error) {
	repo, err := s.repo(key)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Message: "Name is required"}
	}

	item, err := repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Message: fmt.Sprintf("%s with id '%s' not found", repo.Category().Label, id)}
	}
	if err != nil {
		return nil, err
	}

	exists, err := repo.NameExists(ctx, name, id)
	if err != nil {
		return nil, fmt.Errorf("check name: %w", err)
	}
	if exists {
		return nil, &DuplicateError{Message: fmt.Sprintf("%s '%s' already exists", repo.Category().Label, name)}
	}

	item.Name = name
	item.UpdatedBy = actor
	if err := repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("update %s: %w", repo.Category().Label, err)
	}
	s.invalidate(ctx, key)
	return item, nil
}

func (s *LookupService) Delete(ctx context.Context, key, id, actor string) error {
	repo, err := s.repo(key)
	if err != nil {
		return err
	}
	if _, err := repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Message: fmt.Sprintf("%s with id '%s' not found", repo.Category().Label, id)}
		}
		return err
	}
	if err := repo.SoftDelete(ctx, id, actor); err != nil {
		return fmt.Errorf("delete %s: %w", repo.Category().Label, err)
	}
	s.invalidate(ctx, key)
	return nil
}

// Exists reports whether an active row with the given id exists; used
// for foreign-key validation on account writes.
func (s *LookupService) Exists(ctx context.Context, key, id string) (bool, error) {
	repo, err := s.repo(key)
	if err != nil {
		return false, err
	}
	_, err = repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ResolveByName maps a display name to the id of the active row with
// that exact name. Returns a ValidationError when no active row
// matches, so a failed import row carries the category label and the
// offending name.
func (s *LookupService) ResolveByName(ctx context.Context, label, name string) (string, error) {
	cat, ok := entity.LookupCategoryByLabel(label)
	if !ok {
		return "", fmt.Errorf("unknown lookup category %q", label)
	}

	if s.rdb != nil {
		if id, err := s.rdb.HGet(ctx, cacheKey(cat.Key), name).Result(); err == nil && id != "" {
			return id, nil
		}
	}

	item, err := s.repos[cat.Key].FindByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return "", &ValidationError{Message: fmt.Sprintf("%s '%s' does not exist", label, name)}
	}
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", label, err)
	}

	if s.rdb != nil {
		s.rdb.HSet(ctx, cacheKey(cat.Key), name, item.ID)
		s.rdb.Expire(ctx, cacheKey(cat.Key), 5*time.Minute)
	}
	return item.ID, nil
}

func (s *LookupService) invalidate(ctx context.Context, key string) {
	if s.rdb != nil {
		s.rdb.Del(ctx, cacheKey(key))
	}
}

func cacheKey(key string) string {
	return "lookup:" + key
}
