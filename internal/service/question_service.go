package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/policy"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// QuestionService предоставляет методы для работы с вопросами вне состава викторины
type QuestionService struct {
	questionRepo repository.QuestionRepository
	guard        *OwnershipGuard
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(questionRepo repository.QuestionRepository, guard *OwnershipGuard) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		guard:        guard,
	}
}

// CreateQuestion создает вопрос (и, возможно, варианты) в викторине actor
func (s *QuestionService) CreateQuestion(ctx context.Context, actor policy.Actor, input StandaloneQuestionInput) (*entity.Question, error) {
	if err := authorizeParent(s.guard.AuthorizeQuiz(ctx, actor, input.QuizID, policy.OpCreate), "quiz_id", input.QuizID); err != nil {
		return nil, err
	}

	verr := &apperrors.ValidationError{}
	validateText(verr, "text", input.Text, MaxQuestionTextLen)
	choices := buildChoices(verr, "", input.Choices)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	question := &entity.Question{
		QuizID:  input.QuizID,
		Text:    strings.TrimSpace(input.Text),
		Choices: choices,
	}
	if input.Order != nil {
		question.Order = *input.Order
	}
	if err := s.questionRepo.CreateWithChoices(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// GetQuestion возвращает вопрос из викторины владельца
func (s *QuestionService) GetQuestion(ctx context.Context, actor policy.Actor, questionID uint) (*entity.Question, error) {
	if err := policy.Authenticate(actor); err != nil {
		return nil, err
	}
	return s.questionRepo.GetOwnedByID(ctx, questionID, actor.UserID)
}

// ListQuestions возвращает вопросы викторин владельца; quizID сужает выборку
func (s *QuestionService) ListQuestions(ctx context.Context, actor policy.Actor, quizID *uint) ([]entity.Question, error) {
	if err := policy.Authenticate(actor); err != nil {
		return nil, err
	}
	return s.questionRepo.ListByOwner(ctx, actor.UserID, quizID)
}

// UpdateQuestion изменяет вопрос. Перенос в другую викторину требует владения ею.
func (s *QuestionService) UpdateQuestion(ctx context.Context, actor policy.Actor, questionID uint, update QuestionUpdate) (*entity.Question, error) {
	if err := s.guard.AuthorizeQuestion(ctx, actor, questionID, policy.OpUpdate); err != nil {
		return nil, err
	}
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	if update.QuizID != nil && *update.QuizID != question.QuizID {
		if err := authorizeParent(s.guard.AuthorizeQuiz(ctx, actor, *update.QuizID, policy.OpUpdate), "quiz_id", *update.QuizID); err != nil {
			return nil, err
		}
		question.QuizID = *update.QuizID
	}

	verr := &apperrors.ValidationError{}
	if update.Text != nil {
		validateText(verr, "text", *update.Text, MaxQuestionTextLen)
		question.Text = strings.TrimSpace(*update.Text)
	}
	if update.Order != nil {
		question.Order = *update.Order
	}
	replaceChoices := update.Choices != nil
	if replaceChoices {
		question.Choices = buildChoices(verr, "", *update.Choices)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.questionRepo.Update(ctx, question, replaceChoices); err != nil {
		return nil, fmt.Errorf("failed to update question #%d: %w", questionID, err)
	}
	return s.questionRepo.GetOwnedByID(ctx, questionID, actor.UserID)
}

// DeleteQuestion удаляет вопрос вместе с вариантами
func (s *QuestionService) DeleteQuestion(ctx context.Context, actor policy.Actor, questionID uint) error {
	if err := s.guard.AuthorizeQuestion(ctx, actor, questionID, policy.OpDelete); err != nil {
		return err
	}
	if err := s.questionRepo.Delete(ctx, questionID); err != nil {
		return fmt.Errorf("failed to delete question #%d: %w", questionID, err)
	}
	return nil
}

// authorizeParent превращает отсутствие родителя в ошибку поля: ссылка на
// несуществующий родитель - ошибка входных данных, а не отсутствующий ресурс
func authorizeParent(err error, field string, parentID uint) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewValidationError(field, fmt.Sprintf("Invalid pk %d - object does not exist.", parentID))
	}
	return err
}
