package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

var _ repository.QuizRepository = (*QuizRepo)(nil)

// visible возвращает запрос по викторинам, не помеченным как удаленные
func (r *QuizRepo) visible(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&entity.Quiz{}).Where("quizzes.is_deleted = ?", false)
}

// likeEscaper экранирует спецсимволы LIKE, чтобы поиск шел по подстроке буквально
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// withTree подгружает категорию, вопросы в порядке отображения и их варианты
func withTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_order, id")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		})
}

// CreateWithQuestions создает викторину со всеми вопросами и вариантами.
// Любая ошибка откатывает всю транзакцию: частично созданных викторин не бывает.
func (r *QuizRepo) CreateWithQuestions(ctx context.Context, quiz *entity.Quiz) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		questions := quiz.Questions
		if err := tx.Omit(clause.Associations).Create(quiz).Error; err != nil {
			return translateError(err)
		}
		if err := createQuestions(tx, quiz.ID, questions); err != nil {
			return err
		}
		quiz.Questions = questions
		return nil
	})
}

// createQuestions сохраняет вопросы викторины и их варианты внутри транзакции tx
func createQuestions(tx *gorm.DB, quizID uint, questions []entity.Question) error {
	for i := range questions {
		questions[i].QuizID = quizID
		choices := questions[i].Choices
		if err := tx.Omit(clause.Associations).Create(&questions[i]).Error; err != nil {
			return fmt.Errorf("create question %d: %w", i, translateError(err))
		}
		if err := createChoices(tx, questions[i].ID, choices); err != nil {
			return fmt.Errorf("create question %d: %w", i, err)
		}
		questions[i].Choices = choices
	}
	return nil
}

// createChoices сохраняет варианты ответа вопроса внутри транзакции tx
func createChoices(tx *gorm.DB, questionID uint, choices []entity.Choice) error {
	for i := range choices {
		choices[i].QuestionID = questionID
		if err := tx.Omit(clause.Associations).Create(&choices[i]).Error; err != nil {
			return fmt.Errorf("create choice %d: %w", i, translateError(err))
		}
	}
	return nil
}

// GetByID возвращает видимую викторину без фильтра по владельцу
func (r *QuizRepo) GetByID(ctx context.Context, id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	if err := r.visible(ctx).Where("quizzes.id = ?", id).First(&quiz).Error; err != nil {
		return nil, translateError(err)
	}
	return &quiz, nil
}

// GetOwnedByID возвращает видимую викторину владельца со всем деревом вопросов
func (r *QuizRepo) GetOwnedByID(ctx context.Context, id, ownerID uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := withTree(r.visible(ctx)).
		Where("quizzes.id = ? AND quizzes.user_id = ?", id, ownerID).
		First(&quiz).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &quiz, nil
}

// ListByOwner возвращает видимые викторины владельца, новые первыми
func (r *QuizRepo) ListByOwner(ctx context.Context, ownerID uint, filters repository.QuizFilters) ([]entity.Quiz, error) {
	query := withTree(r.visible(ctx)).Where("quizzes.user_id = ?", ownerID)

	if filters.CategoryID != nil {
		query = query.Where("quizzes.category_id = ?", *filters.CategoryID)
	}
	if filters.Difficulty != "" {
		query = query.Where("quizzes.difficulty = ?", filters.Difficulty)
	}
	if filters.Search != "" {
		search := "%" + likeEscaper.Replace(filters.Search) + "%"
		query = query.Where(`quizzes.title ILIKE ? ESCAPE '\' OR quizzes.description ILIKE ? ESCAPE '\'`, search, search)
	}

	var quizzes []entity.Quiz
	if err := query.Order("quizzes.created_at DESC, quizzes.id DESC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

// Update обновляет поля викторины. При replaceQuestions старые вопросы и варианты
// удаляются, а quiz.Questions создаются заново в той же транзакции.
func (r *QuizRepo) Update(ctx context.Context, quiz *entity.Quiz, replaceQuestions bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(quiz).
			Where("is_deleted = ?", false).
			Select("title", "description", "category_id", "difficulty", "time_limit", "updated_at").
			Updates(quiz)
		if res.Error != nil {
			return translateError(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		if !replaceQuestions {
			return nil
		}

		questionIDs := tx.Model(&entity.Question{}).Select("id").Where("quiz_id = ?", quiz.ID)
		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&entity.Choice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&entity.Question{}).Error; err != nil {
			return err
		}
		return createQuestions(tx, quiz.ID, quiz.Questions)
	})
}

// SoftDelete помечает викторину удаленной. Повторное удаление возвращает ErrNotFound.
func (r *QuizRepo) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&entity.Quiz{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
