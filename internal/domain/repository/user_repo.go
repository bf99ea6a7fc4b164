package repository

import (
	"context"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	// CreateWithBootstrap атомарно создает пользователя, пустой профиль и категории по умолчанию
	CreateWithBootstrap(ctx context.Context, user *entity.User, defaults []entity.DefaultCategory) error
	GetByID(ctx context.Context, id uint) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// ListIDs возвращает идентификаторы всех пользователей по возрастанию
	ListIDs(ctx context.Context) ([]uint, error)
}

// ProfileRepository определяет методы для работы с профилями
type ProfileRepository interface {
	// GetOrCreate возвращает профиль пользователя, создавая пустой при отсутствии
	GetOrCreate(ctx context.Context, userID uint) (*entity.UserProfile, error)
	UpdateBio(ctx context.Context, userID uint, bio string) error
}
