package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/policy"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/pkg/auth"
)

type MockQuizUseCase struct{ mock.Mock }

func (m *MockQuizUseCase) CreateQuiz(ctx context.Context, actor policy.Actor, input service.QuizInput) (*entity.Quiz, error) {
	args := m.Called(ctx, actor, input)
	quiz, _ := args.Get(0).(*entity.Quiz)
	return quiz, args.Error(1)
}

func (m *MockQuizUseCase) GetQuiz(ctx context.Context, actor policy.Actor, quizID uint) (*entity.Quiz, error) {
	args := m.Called(ctx, actor, quizID)
	quiz, _ := args.Get(0).(*entity.Quiz)
	return quiz, args.Error(1)
}

func (m *MockQuizUseCase) ListQuizzes(ctx context.Context, actor policy.Actor, filter service.QuizListFilter) ([]entity.Quiz, error) {
	args := m.Called(ctx, actor, filter)
	quizzes, _ := args.Get(0).([]entity.Quiz)
	return quizzes, args.Error(1)
}

func (m *MockQuizUseCase) UpdateQuiz(ctx context.Context, actor policy.Actor, quizID uint, update service.QuizUpdate) (*entity.Quiz, error) {
	args := m.Called(ctx, actor, quizID, update)
	quiz, _ := args.Get(0).(*entity.Quiz)
	return quiz, args.Error(1)
}

func (m *MockQuizUseCase) DeleteQuiz(ctx context.Context, actor policy.Actor, quizID uint) error {
	return m.Called(ctx, actor, quizID).Error(0)
}

func (m *MockQuizUseCase) Difficulties() []service.DifficultyOption {
	return m.Called().Get(0).([]service.DifficultyOption)
}

type MockCategoryUseCase struct{ mock.Mock }

func (m *MockCategoryUseCase) CreateCategory(ctx context.Context, actor policy.Actor, input service.CategoryInput) (*entity.Category, error) {
	args := m.Called(ctx, actor, input)
	category, _ := args.Get(0).(*entity.Category)
	return category, args.Error(1)
}

func (m *MockCategoryUseCase) GetCategory(ctx context.Context, actor policy.Actor, categoryID uint) (*entity.Category, error) {
	args := m.Called(ctx, actor, categoryID)
	category, _ := args.Get(0).(*entity.Category)
	return category, args.Error(1)
}

func (m *MockCategoryUseCase) ListCategories(ctx context.Context, actor policy.Actor) ([]entity.Category, error) {
	args := m.Called(ctx, actor)
	categories, _ := args.Get(0).([]entity.Category)
	return categories, args.Error(1)
}

func (m *MockCategoryUseCase) UpdateCategory(ctx context.Context, actor policy.Actor, categoryID uint, update service.CategoryUpdate) (*entity.Category, error) {
	args := m.Called(ctx, actor, categoryID, update)
	category, _ := args.Get(0).(*entity.Category)
	return category, args.Error(1)
}

func (m *MockCategoryUseCase) DeleteCategory(ctx context.Context, actor policy.Actor, categoryID uint) error {
	return m.Called(ctx, actor, categoryID).Error(0)
}

type MockQuestionUseCase struct{ mock.Mock }

func (m *MockQuestionUseCase) CreateQuestion(ctx context.Context, actor policy.Actor, input service.StandaloneQuestionInput) (*entity.Question, error) {
	args := m.Called(ctx, actor, input)
	question, _ := args.Get(0).(*entity.Question)
	return question, args.Error(1)
}

func (m *MockQuestionUseCase) GetQuestion(ctx context.Context, actor policy.Actor, questionID uint) (*entity.Question, error) {
	args := m.Called(ctx, actor, questionID)
	question, _ := args.Get(0).(*entity.Question)
	return question, args.Error(1)
}

func (m *MockQuestionUseCase) ListQuestions(ctx context.Context, actor policy.Actor, quizID *uint) ([]entity.Question, error) {
	args := m.Called(ctx, actor, quizID)
	questions, _ := args.Get(0).([]entity.Question)
	return questions, args.Error(1)
}

func (m *MockQuestionUseCase) UpdateQuestion(ctx context.Context, actor policy.Actor, questionID uint, update service.QuestionUpdate) (*entity.Question, error) {
	args := m.Called(ctx, actor, questionID, update)
	question, _ := args.Get(0).(*entity.Question)
	return question, args.Error(1)
}

func (m *MockQuestionUseCase) DeleteQuestion(ctx context.Context, actor policy.Actor, questionID uint) error {
	return m.Called(ctx, actor, questionID).Error(0)
}

type MockChoiceUseCase struct{ mock.Mock }

func (m *MockChoiceUseCase) CreateChoice(ctx context.Context, actor policy.Actor, input service.StandaloneChoiceInput) (*entity.Choice, error) {
	args := m.Called(ctx, actor, input)
	choice, _ := args.Get(0).(*entity.Choice)
	return choice, args.Error(1)
}

func (m *MockChoiceUseCase) GetChoice(ctx context.Context, actor policy.Actor, choiceID uint) (*entity.Choice, error) {
	args := m.Called(ctx, actor, choiceID)
	choice, _ := args.Get(0).(*entity.Choice)
	return choice, args.Error(1)
}

func (m *MockChoiceUseCase) ListChoices(ctx context.Context, actor policy.Actor, questionID *uint) ([]entity.Choice, error) {
	args := m.Called(ctx, actor, questionID)
	choices, _ := args.Get(0).([]entity.Choice)
	return choices, args.Error(1)
}

func (m *MockChoiceUseCase) UpdateChoice(ctx context.Context, actor policy.Actor, choiceID uint, update service.ChoiceUpdate) (*entity.Choice, error) {
	args := m.Called(ctx, actor, choiceID, update)
	choice, _ := args.Get(0).(*entity.Choice)
	return choice, args.Error(1)
}

func (m *MockChoiceUseCase) DeleteChoice(ctx context.Context, actor policy.Actor, choiceID uint) error {
	return m.Called(ctx, actor, choiceID).Error(0)
}

type MockResultUseCase struct{ mock.Mock }

func (m *MockResultUseCase) SubmitResult(ctx context.Context, actor policy.Actor, quizID uint, input service.ResultInput) (*entity.QuizResult, *entity.UserProfile, error) {
	args := m.Called(ctx, actor, quizID, input)
	result, _ := args.Get(0).(*entity.QuizResult)
	profile, _ := args.Get(1).(*entity.UserProfile)
	return result, profile, args.Error(2)
}

func (m *MockResultUseCase) GetResult(ctx context.Context, actor policy.Actor, resultID uint) (*entity.QuizResult, error) {
	args := m.Called(ctx, actor, resultID)
	result, _ := args.Get(0).(*entity.QuizResult)
	return result, args.Error(1)
}

func (m *MockResultUseCase) ListResults(ctx context.Context, actor policy.Actor) ([]entity.QuizResult, error) {
	args := m.Called(ctx, actor)
	results, _ := args.Get(0).([]entity.QuizResult)
	return results, args.Error(1)
}

type MockProfileUseCase struct{ mock.Mock }

func (m *MockProfileUseCase) GetProfile(ctx context.Context, actor policy.Actor) (*entity.UserProfile, error) {
	args := m.Called(ctx, actor)
	profile, _ := args.Get(0).(*entity.UserProfile)
	return profile, args.Error(1)
}

func (m *MockProfileUseCase) UpdateBio(ctx context.Context, actor policy.Actor, bio string) (*entity.UserProfile, error) {
	args := m.Called(ctx, actor, bio)
	profile, _ := args.Get(0).(*entity.UserProfile)
	return profile, args.Error(1)
}

type MockAuthUseCase struct{ mock.Mock }

func (m *MockAuthUseCase) Register(ctx context.Context, input service.RegisterInput) (*service.AuthResult, error) {
	args := m.Called(ctx, input)
	result, _ := args.Get(0).(*service.AuthResult)
	return result, args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, username, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, username, password)
	result, _ := args.Get(0).(*service.AuthResult)
	return result, args.Error(1)
}

func (m *MockAuthUseCase) Logout(ctx context.Context, claims *auth.JWTCustomClaims) error {
	return m.Called(ctx, claims).Error(0)
}

// stubAuthenticator принимает только токен "valid-token"
type stubAuthenticator struct {
	claims *auth.JWTCustomClaims
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*auth.JWTCustomClaims, error) {
	if token != "valid-token" {
		return nil, auth.ErrTokenInvalid
	}
	return s.claims, nil
}
