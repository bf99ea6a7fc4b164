package service

import (
	"context"
	"fmt"
	"log"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
)

// BackfillReport - итог заполнения категорий по умолчанию
type BackfillReport struct {
	UsersScanned      int
	UsersUpdated      int
	CategoriesCreated int
}

// BootstrapService досоздает категории по умолчанию пользователям,
// зарегистрированным до их появления. Повторный запуск ничего не меняет.
type BootstrapService struct {
	userRepo          repository.UserRepository
	categoryRepo      repository.CategoryRepository
	defaultCategories []entity.DefaultCategory
}

// NewBootstrapService создает сервис заполнения категорий по умолчанию
func NewBootstrapService(
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	defaultCategories []entity.DefaultCategory,
) *BootstrapService {
	return &BootstrapService{
		userRepo:          userRepo,
		categoryRepo:      categoryRepo,
		defaultCategories: defaultCategories,
	}
}

// BackfillDefaultCategories проходит по всем пользователям и создает недостающие категории
func (s *BootstrapService) BackfillDefaultCategories(ctx context.Context) (*BackfillReport, error) {
	ids, err := s.userRepo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	report := &BackfillReport{}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		created, err := s.categoryRepo.EnsureDefaults(ctx, id, s.defaultCategories)
		if err != nil {
			return report, fmt.Errorf("failed to backfill categories for user %d: %w", id, err)
		}
		report.UsersScanned++
		if created > 0 {
			report.UsersUpdated++
			report.CategoriesCreated += created
			log.Printf("[BootstrapService] Пользователю %d добавлено категорий: %d", id, created)
		}
	}
	return report, nil
}
