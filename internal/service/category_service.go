package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/policy"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

const duplicateCategoryMessage = "You already have a category with this name."

// CategoryService предоставляет методы для работы с категориями
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService создает новый сервис категорий
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory создает категорию пользователя. Повтор имени дает ValidationError на поле name.
func (s *CategoryService) CreateCategory(ctx context.Context, actor policy.Actor, input CategoryInput) (*entity.Category, error) {
	if err := policy.Authorize(actor, actor.UserID, true, policy.OpCreate); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if err := s.validateName(ctx, actor.UserID, name, 0); err != nil {
		return nil, err
	}

	category := &entity.Category{
		Name:        name,
		Description: input.Description,
		UserID:      actor.UserID,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, conflictAsValidation(err)
	}
	return category, nil
}

// GetCategory возвращает категорию владельца
func (s *CategoryService) GetCategory(ctx context.Context, actor policy.Actor, categoryID uint) (*entity.Category, error) {
	if err := policy.Authenticate(actor); err != nil {
		return nil, err
	}
	return s.categoryRepo.GetOwnedByID(ctx, categoryID, actor.UserID)
}

// ListCategories возвращает категории владельца. Пустой список допустим.
func (s *CategoryService) ListCategories(ctx context.Context, actor policy.Actor) ([]entity.Category, error) {
	if err := policy.Authenticate(actor); err != nil {
		return nil, err
	}
	return s.categoryRepo.ListByOwner(ctx, actor.UserID)
}

// UpdateCategory изменяет имя и/или описание категории
func (s *CategoryService) UpdateCategory(ctx context.Context, actor policy.Actor, categoryID uint, update CategoryUpdate) (*entity.Category, error) {
	category, err := s.loadForWrite(ctx, actor, categoryID, policy.OpUpdate)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if err := s.validateName(ctx, actor.UserID, name, category.ID); err != nil {
			return nil, err
		}
		category.Name = name
	}
	if update.Description != nil {
		category.Description = *update.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, conflictAsValidation(err)
	}
	return category, nil
}

// DeleteCategory удаляет категорию. Викторины этой категории остаются без категории.
func (s *CategoryService) DeleteCategory(ctx context.Context, actor policy.Actor, categoryID uint) error {
	category, err := s.loadForWrite(ctx, actor, categoryID, policy.OpDelete)
	if err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(ctx, category.ID); err != nil {
		return fmt.Errorf("failed to delete category #%d: %w", categoryID, err)
	}
	log.Printf("[CategoryService] Категория #%d удалена пользователем %d", categoryID, actor.UserID)
	return nil
}

func (s *CategoryService) loadForWrite(ctx context.Context, actor policy.Actor, categoryID uint, op policy.Operation) (*entity.Category, error) {
	if err := policy.Authenticate(actor); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeCategory(actor, category, op); err != nil {
		return nil, err
	}
	return category, nil
}

// validateName проверяет имя и его уникальность у владельца
func (s *CategoryService) validateName(ctx context.Context, ownerID uint, name string, excludeID uint) error {
	verr := &apperrors.ValidationError{}
	validateText(verr, "name", name, MaxCategoryNameLen)
	if verr.HasErrors() {
		return verr
	}

	exists, err := s.categoryRepo.ExistsByName(ctx, ownerID, name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return apperrors.NewValidationError("name", duplicateCategoryMessage).WithCause(apperrors.ErrConflict)
	}
	return nil
}

// conflictAsValidation превращает нарушение уникальности (гонка после предварительной проверки)
// в ошибку валидации поля name
func conflictAsValidation(err error) error {
	if errors.Is(err, apperrors.ErrConflict) {
		return apperrors.NewValidationError("name", duplicateCategoryMessage).WithCause(err)
	}
	return err
}
