package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// ChoiceRepo реализует repository.ChoiceRepository
type ChoiceRepo struct {
	db *gorm.DB
}

// NewChoiceRepo создает новый репозиторий вариантов ответа
func NewChoiceRepo(db *gorm.DB) *ChoiceRepo {
	return &ChoiceRepo{db: db}
}

var _ repository.ChoiceRepository = (*ChoiceRepo)(nil)

func (r *ChoiceRepo) visible(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entity.Choice{}).
		Select("choices.*").
		Joins("JOIN questions ON questions.id = choices.question_id").
		Joins("JOIN quizzes ON quizzes.id = questions.quiz_id AND quizzes.is_deleted = ?", false)
}

// Create создает вариант ответа
func (r *ChoiceRepo) Create(ctx context.Context, choice *entity.Choice) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(choice).Error)
}

// GetByID возвращает вариант ответа без фильтра по владельцу
func (r *ChoiceRepo) GetByID(ctx context.Context, id uint) (*entity.Choice, error) {
	var choice entity.Choice
	if err := r.visible(ctx).Where("choices.id = ?", id).First(&choice).Error; err != nil {
		return nil, translateError(err)
	}
	return &choice, nil
}

// GetOwnedByID возвращает вариант ответа, если его викторина принадлежит ownerID
func (r *ChoiceRepo) GetOwnedByID(ctx context.Context, id, ownerID uint) (*entity.Choice, error) {
	var choice entity.Choice
	err := r.visible(ctx).
		Where("choices.id = ? AND quizzes.user_id = ?", id, ownerID).
		First(&choice).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &choice, nil
}

// ListByOwner возвращает варианты ответов владельца; questionID сужает выборку
func (r *ChoiceRepo) ListByOwner(ctx context.Context, ownerID uint, questionID *uint) ([]entity.Choice, error) {
	query := r.visible(ctx).Where("quizzes.user_id = ?", ownerID)
	if questionID != nil {
		query = query.Where("choices.question_id = ?", *questionID)
	}

	var choices []entity.Choice
	err := query.Order("choices.question_id, choices.id").Find(&choices).Error
	return choices, err
}

// Update обновляет вариант ответа
func (r *ChoiceRepo) Update(ctx context.Context, choice *entity.Choice) error {
	res := r.db.WithContext(ctx).Model(choice).
		Select("question_id", "text", "is_correct", "updated_at").
		Updates(choice)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete удаляет вариант ответа
func (r *ChoiceRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Choice{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
