package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
)

// ResultRepo реализует repository.ResultRepository
type ResultRepo struct {
	db *gorm.DB
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

var _ repository.ResultRepository = (*ResultRepo)(nil)

// SaveWithStats сохраняет результат и обновляет статистику профиля атомарно.
// Строка профиля блокируется (SELECT ... FOR UPDATE), поэтому параллельные
// отправки одного пользователя применяются последовательно.
func (r *ResultRepo) SaveWithStats(ctx context.Context, result *entity.QuizResult) (*entity.UserProfile, error) {
	var profile entity.UserProfile

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", result.UserID).
			First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Профиль мог не создаться у пользователей до миграции профилей
			profile = entity.UserProfile{UserID: result.UserID}
			err = tx.Omit(clause.Associations).Create(&profile).Error
		}
		if err != nil {
			return translateError(err)
		}

		if err := profile.RecordAttempt(result.Score, result.CorrectAnswers); err != nil {
			return err
		}

		if result.CompletedAt.IsZero() {
			result.CompletedAt = time.Now()
		}
		if err := tx.Omit(clause.Associations).Create(result).Error; err != nil {
			return translateError(err)
		}

		return tx.Model(&profile).
			Select("quizzes_taken", "average_score", "total_correct_answers", "updated_at").
			Updates(&profile).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[ResultRepo] Результат #%d сохранен: user=%d quiz=%d score=%.2f, попыток=%d",
		result.ID, result.UserID, result.QuizID, result.Score, profile.QuizzesTaken)
	return &profile, nil
}

// GetOwnedByID возвращает результат пользователя вместе с викториной и пользователем
func (r *ResultRepo) GetOwnedByID(ctx context.Context, id, userID uint) (*entity.QuizResult, error) {
	var result entity.QuizResult
	err := r.db.WithContext(ctx).
		Preload("Quiz").
		Preload("User").
		Where("id = ? AND user_id = ?", id, userID).
		First(&result).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &result, nil
}

// ListByUser возвращает все результаты пользователя, новые первыми
func (r *ResultRepo) ListByUser(ctx context.Context, userID uint) ([]entity.QuizResult, error) {
	var results []entity.QuizResult
	err := r.db.WithContext(ctx).
		Preload("Quiz").
		Preload("User").
		Where("user_id = ?", userID).
		Order("completed_at DESC, id DESC").
		Find(&results).Error
	return results, err
}
