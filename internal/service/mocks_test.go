package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
)

// ============================================================================
// Моки репозиториев
// ============================================================================

// MockQuizRepository реализует repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) CreateWithQuestions(ctx context.Context, quiz *entity.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id uint) (*entity.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetOwnedByID(ctx context.Context, id, ownerID uint) (*entity.Quiz, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) ListByOwner(ctx context.Context, ownerID uint, filters repository.QuizFilters) ([]entity.Quiz, error) {
	args := m.Called(ctx, ownerID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) Update(ctx context.Context, quiz *entity.Quiz, replaceQuestions bool) error {
	args := m.Called(ctx, quiz, replaceQuestions)
	return args.Error(0)
}

func (m *MockQuizRepository) SoftDelete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryRepository реализует repository.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uint) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetOwnedByID(ctx context.Context, id, ownerID uint) (*entity.Category, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Category, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, ownerID uint, name string, excludeID uint) (bool, error) {
	args := m.Called(ctx, ownerID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) EnsureDefaults(ctx context.Context, ownerID uint, defaults []entity.DefaultCategory) (int, error) {
	args := m.Called(ctx, ownerID, defaults)
	return args.Int(0), args.Error(1)
}

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) CreateWithChoices(ctx context.Context, question *entity.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id uint) (*entity.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetOwnedByID(ctx context.Context, id, ownerID uint) (*entity.Question, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) ListByOwner(ctx context.Context, ownerID uint, quizID *uint) ([]entity.Question, error) {
	args := m.Called(ctx, ownerID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) Update(ctx context.Context, question *entity.Question, replaceChoices bool) error {
	args := m.Called(ctx, question, replaceChoices)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockChoiceRepository реализует repository.ChoiceRepository
type MockChoiceRepository struct {
	mock.Mock
}

func (m *MockChoiceRepository) Create(ctx context.Context, choice *entity.Choice) error {
	args := m.Called(ctx, choice)
	return args.Error(0)
}

func (m *MockChoiceRepository) GetByID(ctx context.Context, id uint) (*entity.Choice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Choice), args.Error(1)
}

func (m *MockChoiceRepository) GetOwnedByID(ctx context.Context, id, ownerID uint) (*entity.Choice, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Choice), args.Error(1)
}

func (m *MockChoiceRepository) ListByOwner(ctx context.Context, ownerID uint, questionID *uint) ([]entity.Choice, error) {
	args := m.Called(ctx, ownerID, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Choice), args.Error(1)
}

func (m *MockChoiceRepository) Update(ctx context.Context, choice *entity.Choice) error {
	args := m.Called(ctx, choice)
	return args.Error(0)
}

func (m *MockChoiceRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockResultRepository реализует repository.ResultRepository
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) SaveWithStats(ctx context.Context, result *entity.QuizResult) (*entity.UserProfile, error) {
	args := m.Called(ctx, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserProfile), args.Error(1)
}

func (m *MockResultRepository) GetOwnedByID(ctx context.Context, id, userID uint) (*entity.QuizResult, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizResult), args.Error(1)
}

func (m *MockResultRepository) ListByUser(ctx context.Context, userID uint) ([]entity.QuizResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizResult), args.Error(1)
}

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateWithBootstrap(ctx context.Context, user *entity.User, defaults []entity.DefaultCategory) error {
	args := m.Called(ctx, user, defaults)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) ListIDs(ctx context.Context) ([]uint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

// MockProfileRepository реализует repository.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetOrCreate(ctx context.Context, userID uint) (*entity.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) UpdateBio(ctx context.Context, userID uint, bio string) error {
	args := m.Called(ctx, userID, bio)
	return args.Error(0)
}

// MockTokenStore реализует repository.TokenRevocationStore
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	args := m.Called(ctx, jti, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

// MockEmailService реализует EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWelcome(ctx context.Context, toEmail, username string) error {
	args := m.Called(ctx, toEmail, username)
	return args.Error(0)
}

func uintPtr(v uint) *uint { return &v }

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
