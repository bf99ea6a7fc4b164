package repository

import (
	"context"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами.
// Вопросы мягко удаленных викторин не возвращаются.
type QuestionRepository interface {
	// CreateWithChoices сохраняет вопрос и его варианты в одной транзакции
	CreateWithChoices(ctx context.Context, question *entity.Question) error
	GetByID(ctx context.Context, id uint) (*entity.Question, error)
	// GetOwnedByID возвращает вопрос, если его викторина принадлежит ownerID
	GetOwnedByID(ctx context.Context, id, ownerID uint) (*entity.Question, error)
	// ListByOwner возвращает вопросы викторин владельца; quizID != nil сужает выборку
	ListByOwner(ctx context.Context, ownerID uint, quizID *uint) ([]entity.Question, error)
	// Update сохраняет вопрос; при replaceChoices варианты заменяются в той же транзакции
	Update(ctx context.Context, question *entity.Question, replaceChoices bool) error
	Delete(ctx context.Context, id uint) error
}

// ChoiceRepository определяет методы для работы с вариантами ответа
type ChoiceRepository interface {
	Create(ctx context.Context, choice *entity.Choice) error
	GetByID(ctx context.Context, id uint) (*entity.Choice, error)
	GetOwnedByID(ctx context.Context, id, ownerID uint) (*entity.Choice, error)
	ListByOwner(ctx context.Context, ownerID uint, questionID *uint) ([]entity.Choice, error)
	Update(ctx context.Context, choice *entity.Choice) error
	Delete(ctx context.Context, id uint) error
}
