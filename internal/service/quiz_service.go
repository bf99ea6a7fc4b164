package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/policy"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// DifficultyOption - допустимое значение сложности с локализованным названием
type DifficultyOption struct {
	Value entity.Difficulty `json:"value"`
	Label string            `json:"label"`
}

// QuizService предоставляет методы для работы с викторинами
type QuizService struct {
	quizRepo     repository.QuizRepository
	categoryRepo repository.CategoryRepository
}

// NewQuizService создает новый сервис викторин
func NewQuizService(
	quizRepo repository.QuizRepository,
	categoryRepo repository.CategoryRepository,
) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateQuiz проверяет викторину со всем деревом вопросов и сохраняет ее одной транзакцией.
// При любой ошибке валидации репозиторий не вызывается.
func (s *QuizService) CreateQuiz(ctx context.Context, actor policy.Actor, input QuizInput) (*entity.Quiz, error) {
	if err := policy.Authorize(actor, actor.UserID, true, policy.OpCreate); err != nil {
		return nil, err
	}

	verr := &apperrors.ValidationError{}
	validateText(verr, "title", input.Title, MaxQuizTitleLen)
	difficulty := validateDifficulty(verr, input.Difficulty)
	timeLimit := validateTimeLimit(verr, input.TimeLimit)
	category, err := s.resolveCategory(ctx, verr, actor, input.CategoryID)
	if err != nil {
		return nil, err
	}
	questions := buildQuestions(verr, input.Questions)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	ownerID := actor.UserID
	quiz := &entity.Quiz{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		UserID:      &ownerID,
		CategoryID:  input.CategoryID,
		Difficulty:  difficulty,
		TimeLimit:   timeLimit,
		Questions:   questions,
	}

	if err := s.quizRepo.CreateWithQuestions(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}
	quiz.Category = category

	log.Printf("[QuizService] Викторина #%d создана пользователем %d (вопросов: %d)", quiz.ID, ownerID, len(questions))
	return quiz, nil
}

// GetQuiz возвращает видимую викторину владельца
func (s *QuizService) GetQuiz(ctx context.Context, actor policy.Actor, quizID uint) (*entity.Quiz, error) {
	if err := policy.Authenticate(actor); err != nil {
		return nil, err
	}
	return s.quizRepo.GetOwnedByID(ctx, quizID, actor.UserID)
}

// ListQuizzes возвращает видимые викторины владельца
func (s *QuizService) ListQuizzes(ctx context.Context, actor policy.Actor, filter QuizListFilter) ([]entity.Quiz, error) {
	if err := policy.Authenticate(actor); err != nil {
		return nil, err
	}

	filters := repository.QuizFilters{
		CategoryID: filter.CategoryID,
		Search:     strings.TrimSpace(filter.Search),
	}
	if filter.Difficulty != "" {
		d, ok := entity.ParseDifficulty(filter.Difficulty)
		if !ok {
			return nil, apperrors.NewValidationError("difficulty", fmt.Sprintf("%q is not a valid choice.", filter.Difficulty))
		}
		filters.Difficulty = d
	}
	return s.quizRepo.ListByOwner(ctx, actor.UserID, filters)
}

// UpdateQuiz применяет изменения к викторине. Чужая викторина дает ErrForbidden,
// удаленная или несуществующая - ErrNotFound.
func (s *QuizService) UpdateQuiz(ctx context.Context, actor policy.Actor, quizID uint, update QuizUpdate) (*entity.Quiz, error) {
	quiz, err := s.loadForWrite(ctx, actor, quizID, policy.OpUpdate)
	if err != nil {
		return nil, err
	}

	verr := &apperrors.ValidationError{}
	if update.Title != nil {
		validateText(verr, "title", *update.Title, MaxQuizTitleLen)
		quiz.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		quiz.Description = *update.Description
	}
	if update.Difficulty != nil {
		quiz.Difficulty = validateDifficulty(verr, *update.Difficulty)
	}
	if update.TimeLimit != nil {
		quiz.TimeLimit = validateTimeLimit(verr, update.TimeLimit)
	}
	if update.SetCategory {
		if quiz.Category, err = s.resolveCategory(ctx, verr, actor, update.CategoryID); err != nil {
			return nil, err
		}
		quiz.CategoryID = update.CategoryID
	}
	replaceQuestions := update.Questions != nil
	if replaceQuestions {
		quiz.Questions = buildQuestions(verr, *update.Questions)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.quizRepo.Update(ctx, quiz, replaceQuestions); err != nil {
		return nil, fmt.Errorf("failed to update quiz #%d: %w", quizID, err)
	}
	return s.quizRepo.GetOwnedByID(ctx, quizID, actor.UserID)
}

// DeleteQuiz мягко удаляет викторину. Обратного перехода нет.
func (s *QuizService) DeleteQuiz(ctx context.Context, actor policy.Actor, quizID uint) error {
	quiz, err := s.loadForWrite(ctx, actor, quizID, policy.OpDelete)
	if err != nil {
		return err
	}
	if err := s.quizRepo.SoftDelete(ctx, quiz.ID); err != nil {
		return fmt.Errorf("failed to delete quiz #%d: %w", quizID, err)
	}
	log.Printf("[QuizService] Викторина #%d помечена удаленной пользователем %d", quizID, actor.UserID)
	return nil
}

// Difficulties возвращает допустимые значения сложности
func (s *QuizService) Difficulties() []DifficultyOption {
	options := make([]DifficultyOption, 0, 3)
	for _, d := range entity.Difficulties() {
		options = append(options, DifficultyOption{Value: d, Label: d.Label()})
	}
	return options
}

// loadForWrite загружает видимую викторину любого владельца и проверяет права на запись
func (s *QuizService) loadForWrite(ctx context.Context, actor policy.Actor, quizID uint, op policy.Operation) (*entity.Quiz, error) {
	if err := policy.Authenticate(actor); err != nil {
		return nil, err
	}
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !policy.IsVisible(quiz) {
		return nil, apperrors.ErrNotFound
	}
	if err := policy.AuthorizeQuiz(actor, quiz, op); err != nil {
		return nil, err
	}
	return quiz, nil
}

// resolveCategory проверяет, что категория принадлежит actor.
// Чужая или несуществующая категория добавляется в verr как ошибка поля category_id.
func (s *QuizService) resolveCategory(ctx context.Context, verr *apperrors.ValidationError, actor policy.Actor, categoryID *uint) (*entity.Category, error) {
	if categoryID == nil {
		return nil, nil
	}
	category, err := s.categoryRepo.GetOwnedByID(ctx, *categoryID, actor.UserID)
	if errors.Is(err, apperrors.ErrNotFound) {
		verr.Add("category_id", fmt.Sprintf("Invalid pk %d - object does not exist.", *categoryID))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load category #%d: %w", *categoryID, err)
	}
	return category, nil
}
