package repository

import (
	"context"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// QuizFilters определяет фильтры для списка викторин владельца
type QuizFilters struct {
	CategoryID *uint             // Фильтр по категории
	Difficulty entity.Difficulty // Фильтр по сложности
	Search     string            // Поиск по названию/описанию
}

// QuizRepository определяет методы для работы с викторинами.
// Все методы чтения исключают мягко удаленные викторины.
type QuizRepository interface {
	// CreateWithQuestions сохраняет викторину, ее вопросы и варианты в одной транзакции
	CreateWithQuestions(ctx context.Context, quiz *entity.Quiz) error
	// GetByID возвращает видимую викторину без учета владельца (для проверки прав на запись)
	GetByID(ctx context.Context, id uint) (*entity.Quiz, error)
	// GetOwnedByID возвращает видимую викторину владельца вместе с вопросами и вариантами
	GetOwnedByID(ctx context.Context, id, ownerID uint) (*entity.Quiz, error)
	ListByOwner(ctx context.Context, ownerID uint, filters QuizFilters) ([]entity.Quiz, error)
	// Update сохраняет поля викторины; при replaceQuestions дерево вопросов заменяется в той же транзакции
	Update(ctx context.Context, quiz *entity.Quiz, replaceQuestions bool) error
	SoftDelete(ctx context.Context, id uint) error
}
