package repository

import (
	"context"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// CategoryRepository определяет методы для работы с категориями
type CategoryRepository interface {
	// Create возвращает apperrors.ErrConflict при повторе имени у того же пользователя
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uint) (*entity.Category, error)
	GetOwnedByID(ctx context.Context, id, ownerID uint) (*entity.Category, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Category, error)
	// ExistsByName проверяет имя у владельца, исключая категорию excludeID (0 - не исключать)
	ExistsByName(ctx context.Context, ownerID uint, name string, excludeID uint) (bool, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uint) error
	// EnsureDefaults создает отсутствующие категории по умолчанию, возвращает число созданных
	EnsureDefaults(ctx context.Context, ownerID uint, defaults []entity.DefaultCategory) (int, error)
}
