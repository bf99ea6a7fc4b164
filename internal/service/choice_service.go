package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/policy"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// ChoiceService предоставляет методы для работы с вариантами ответа
type ChoiceService struct {
	choiceRepo repository.ChoiceRepository
	guard      *OwnershipGuard
}

// NewChoiceService создает новый сервис вариантов ответа
func NewChoiceService(choiceRepo repository.ChoiceRepository, guard *OwnershipGuard) *ChoiceService {
	return &ChoiceService{
		choiceRepo: choiceRepo,
		guard:      guard,
	}
}

// CreateChoice создает вариант ответа к вопросу из викторины actor
func (s *ChoiceService) CreateChoice(ctx context.Context, actor policy.Actor, input StandaloneChoiceInput) (*entity.Choice, error) {
	if err := authorizeParent(s.guard.AuthorizeQuestion(ctx, actor, input.QuestionID, policy.OpCreate), "question_id", input.QuestionID); err != nil {
		return nil, err
	}

	verr := &apperrors.ValidationError{}
	validateText(verr, "text", input.Text, MaxChoiceTextLen)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	choice := &entity.Choice{
		QuestionID: input.QuestionID,
		Text:       strings.TrimSpace(input.Text),
		IsCorrect:  input.IsCorrect,
	}
	if err := s.choiceRepo.Create(ctx, choice); err != nil {
		return nil, fmt.Errorf("failed to create choice: %w", err)
	}
	return choice, nil
}

// GetChoice возвращает вариант ответа владельца
func (s *ChoiceService) GetChoice(ctx context.Context, actor policy.Actor, choiceID uint) (*entity.Choice, error) {
	if err := policy.Authenticate(actor); err != nil {
		return nil, err
	}
	return s.choiceRepo.GetOwnedByID(ctx, choiceID, actor.UserID)
}

// ListChoices возвращает варианты ответов владельца; questionID сужает выборку
func (s *ChoiceService) ListChoices(ctx context.Context, actor policy.Actor, questionID *uint) ([]entity.Choice, error) {
	if err := policy.Authenticate(actor); err != nil {
		return nil, err
	}
	return s.choiceRepo.ListByOwner(ctx, actor.UserID, questionID)
}

// UpdateChoice изменяет вариант ответа
func (s *ChoiceService) UpdateChoice(ctx context.Context, actor policy.Actor, choiceID uint, update ChoiceUpdate) (*entity.Choice, error) {
	if err := s.guard.AuthorizeChoice(ctx, actor, choiceID, policy.OpUpdate); err != nil {
		return nil, err
	}
	choice, err := s.choiceRepo.GetByID(ctx, choiceID)
	if err != nil {
		return nil, err
	}

	if update.QuestionID != nil && *update.QuestionID != choice.QuestionID {
		if err := authorizeParent(s.guard.AuthorizeQuestion(ctx, actor, *update.QuestionID, policy.OpUpdate), "question_id", *update.QuestionID); err != nil {
			return nil, err
		}
		choice.QuestionID = *update.QuestionID
	}
	if update.Text != nil {
		verr := &apperrors.ValidationError{}
		validateText(verr, "text", *update.Text, MaxChoiceTextLen)
		if err := verr.OrNil(); err != nil {
			return nil, err
		}
		choice.Text = strings.TrimSpace(*update.Text)
	}
	if update.IsCorrect != nil {
		choice.IsCorrect = *update.IsCorrect
	}

	if err := s.choiceRepo.Update(ctx, choice); err != nil {
		return nil, fmt.Errorf("failed to update choice #%d: %w", choiceID, err)
	}
	return choice, nil
}

// DeleteChoice удаляет вариант ответа
func (s *ChoiceService) DeleteChoice(ctx context.Context, actor policy.Actor, choiceID uint) error {
	if err := s.guard.AuthorizeChoice(ctx, actor, choiceID, policy.OpDelete); err != nil {
		return err
	}
	if err := s.choiceRepo.Delete(ctx, choiceID); err != nil {
		return fmt.Errorf("failed to delete choice #%d: %w", choiceID, err)
	}
	return nil
}
