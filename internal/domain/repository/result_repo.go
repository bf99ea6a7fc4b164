package repository

import (
	"context"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// ResultRepository определяет методы для работы с результатами
type ResultRepository interface {
	// SaveWithStats в одной транзакции блокирует профиль пользователя, сохраняет результат
	// и применяет UserProfile.RecordAttempt. Возвращает обновленный профиль.
	SaveWithStats(ctx context.Context, result *entity.QuizResult) (*entity.UserProfile, error)
	GetOwnedByID(ctx context.Context, id, userID uint) (*entity.QuizResult, error)
	// ListByUser возвращает результаты пользователя, новые первыми
	ListByUser(ctx context.Context, userID uint) ([]entity.QuizResult, error)
}
