package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

var _ repository.QuestionRepository = (*QuestionRepo)(nil)

// visible ограничивает выборку вопросами неудаленных викторин
func (r *QuestionRepo) visible(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entity.Question{}).
		Select("questions.*").
		Joins("JOIN quizzes ON quizzes.id = questions.quiz_id AND quizzes.is_deleted = ?", false).
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		})
}

// CreateWithChoices создает вопрос и его варианты в одной транзакции
func (r *QuestionRepo) CreateWithChoices(ctx context.Context, question *entity.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		choices := question.Choices
		if err := tx.Omit(clause.Associations).Create(question).Error; err != nil {
			return translateError(err)
		}
		if err := createChoices(tx, question.ID, choices); err != nil {
			return err
		}
		question.Choices = choices
		return nil
	})
}

// GetByID возвращает вопрос видимой викторины без фильтра по владельцу
func (r *QuestionRepo) GetByID(ctx context.Context, id uint) (*entity.Question, error) {
	var question entity.Question
	if err := r.visible(ctx).Where("questions.id = ?", id).First(&question).Error; err != nil {
		return nil, translateError(err)
	}
	return &question, nil
}

// GetOwnedByID возвращает вопрос, если викторина принадлежит ownerID
func (r *QuestionRepo) GetOwnedByID(ctx context.Context, id, ownerID uint) (*entity.Question, error) {
	var question entity.Question
	err := r.visible(ctx).
		Where("questions.id = ? AND quizzes.user_id = ?", id, ownerID).
		First(&question).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &question, nil
}

// ListByOwner возвращает вопросы викторин владельца в порядке отображения
func (r *QuestionRepo) ListByOwner(ctx context.Context, ownerID uint, quizID *uint) ([]entity.Question, error) {
	query := r.visible(ctx).Where("quizzes.user_id = ?", ownerID)
	if quizID != nil {
		query = query.Where("questions.quiz_id = ?", *quizID)
	}

	var questions []entity.Question
	err := query.Order("questions.quiz_id, questions.question_order, questions.id").Find(&questions).Error
	return questions, err
}

// Update обновляет вопрос; при replaceChoices варианты пересоздаются из question.Choices
func (r *QuestionRepo) Update(ctx context.Context, question *entity.Question, replaceChoices bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(question).
			Select("quiz_id", "text", "question_order", "updated_at").
			Updates(question)
		if res.Error != nil {
			return translateError(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		if !replaceChoices {
			return nil
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&entity.Choice{}).Error; err != nil {
			return err
		}
		return createChoices(tx, question.ID, question.Choices)
	})
}

// Delete удаляет вопрос вместе с вариантами
func (r *QuestionRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&entity.Choice{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Question{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}
