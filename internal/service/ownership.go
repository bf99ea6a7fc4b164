package service

import (
	"context"

	"github.com/yourusername/quiz-api/internal/domain/policy"
	"github.com/yourusername/quiz-api/internal/domain/repository"
)

// OwnershipGuard определяет владельца вложенных ресурсов, проходя по родительским
// идентификаторам до викторины: choice.question_id -> question.quiz_id -> quiz.user_id.
type OwnershipGuard struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	choiceRepo   repository.ChoiceRepository
}

// NewOwnershipGuard создает новый guard владения
func NewOwnershipGuard(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	choiceRepo repository.ChoiceRepository,
) *OwnershipGuard {
	return &OwnershipGuard{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		choiceRepo:   choiceRepo,
	}
}

// OwnerOfQuiz возвращает владельца видимой викторины
func (g *OwnershipGuard) OwnerOfQuiz(ctx context.Context, quizID uint) (uint, bool, error) {
	quiz, err := g.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return 0, false, err
	}
	ownerID, ok := quiz.OwnerID()
	return ownerID, ok, nil
}

// OwnerOfQuestion возвращает владельца вопроса через его викторину
func (g *OwnershipGuard) OwnerOfQuestion(ctx context.Context, questionID uint) (uint, bool, error) {
	question, err := g.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return 0, false, err
	}
	return g.OwnerOfQuiz(ctx, question.QuizID)
}

// OwnerOfChoice возвращает владельца варианта ответа через вопрос и викторину
func (g *OwnershipGuard) OwnerOfChoice(ctx context.Context, choiceID uint) (uint, bool, error) {
	choice, err := g.choiceRepo.GetByID(ctx, choiceID)
	if err != nil {
		return 0, false, err
	}
	return g.OwnerOfQuestion(ctx, choice.QuestionID)
}

// AuthorizeQuiz проверяет право actor выполнить op над викториной quizID
func (g *OwnershipGuard) AuthorizeQuiz(ctx context.Context, actor policy.Actor, quizID uint, op policy.Operation) error {
	return g.authorize(actor, op, func() (uint, bool, error) {
		return g.OwnerOfQuiz(ctx, quizID)
	})
}

// AuthorizeQuestion проверяет право actor выполнить op над вопросом questionID
func (g *OwnershipGuard) AuthorizeQuestion(ctx context.Context, actor policy.Actor, questionID uint, op policy.Operation) error {
	return g.authorize(actor, op, func() (uint, bool, error) {
		return g.OwnerOfQuestion(ctx, questionID)
	})
}

// AuthorizeChoice проверяет право actor выполнить op над вариантом choiceID
func (g *OwnershipGuard) AuthorizeChoice(ctx context.Context, actor policy.Actor, choiceID uint, op policy.Operation) error {
	return g.authorize(actor, op, func() (uint, bool, error) {
		return g.OwnerOfChoice(ctx, choiceID)
	})
}

func (g *OwnershipGuard) authorize(actor policy.Actor, op policy.Operation, ownerOf func() (uint, bool, error)) error {
	if err := policy.Authenticate(actor); err != nil {
		return err
	}
	ownerID, hasOwner, err := ownerOf()
	if err != nil {
		return err
	}
	return policy.Authorize(actor, ownerID, hasOwner, op)
}
