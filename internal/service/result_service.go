package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"

	"gorm.io/datatypes"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/policy"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// ResultService предоставляет методы для работы с результатами
type ResultService struct {
	resultRepo repository.ResultRepository
	quizRepo   repository.QuizRepository
}

// NewResultService создает новый сервис результатов
func NewResultService(resultRepo repository.ResultRepository, quizRepo repository.QuizRepository) *ResultService {
	return &ResultService{
		resultRepo: resultRepo,
		quizRepo:   quizRepo,
	}
}

// SubmitResult сохраняет результат прохождения викторины и обновляет статистику профиля.
// Результат и профиль фиксируются вместе или не фиксируются вовсе.
func (s *ResultService) SubmitResult(ctx context.Context, actor policy.Actor, quizID uint, input ResultInput) (*entity.QuizResult, *entity.UserProfile, error) {
	if err := policy.Authenticate(actor); err != nil {
		return nil, nil, err
	}

	quiz, err := s.quizRepo.GetOwnedByID(ctx, quizID, actor.UserID)
	if err != nil {
		return nil, nil, err
	}

	verr := &apperrors.ValidationError{}
	if math.IsNaN(input.Score) || input.Score < MinScore || input.Score > MaxScore {
		verr.Add("score", fmt.Sprintf("Score must be between %.0f and %.0f.", MinScore, MaxScore))
	}
	if input.CorrectAnswers < 0 {
		verr.Add("correct_answers", fmt.Sprintf("must be a non-negative integer, got %d", input.CorrectAnswers))
	}
	answers := bytes.TrimSpace(input.Answers)
	if len(answers) == 0 || bytes.Equal(answers, []byte("null")) {
		verr.Add("answers", "This field is required.")
	} else if !json.Valid(answers) {
		verr.Add("answers", "Value must be valid JSON.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, nil, err
	}

	result := &entity.QuizResult{
		UserID:         actor.UserID,
		QuizID:         quiz.ID,
		Score:          input.Score,
		CorrectAnswers: input.CorrectAnswers,
		Answers:        datatypes.JSON(answers),
	}
	profile, err := s.resultRepo.SaveWithStats(ctx, result)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to save result for quiz #%d: %w", quizID, err)
	}
	result.Quiz = quiz

	log.Printf("[ResultService] Пользователь %d прошел викторину #%d: score=%.2f, среднее=%.2f",
		actor.UserID, quizID, result.Score, profile.AverageScore)
	return result, profile, nil
}

// GetResult возвращает результат пользователя
func (s *ResultService) GetResult(ctx context.Context, actor policy.Actor, resultID uint) (*entity.QuizResult, error) {
	if err := policy.Authenticate(actor); err != nil {
		return nil, err
	}
	return s.resultRepo.GetOwnedByID(ctx, resultID, actor.UserID)
}

// ListResults возвращает результаты пользователя, новые первыми
func (s *ResultService) ListResults(ctx context.Context, actor policy.Actor) ([]entity.QuizResult, error) {
	if err := policy.Authenticate(actor); err != nil {
		return nil, err
	}
	return s.resultRepo.ListByUser(ctx, actor.UserID)
}
