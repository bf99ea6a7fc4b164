package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/policy"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// memoryResultRepo хранит результаты и профиль в памяти и применяет
// RecordAttempt так же атомарно, как транзакция в postgres.ResultRepo
type memoryResultRepo struct {
	mu      sync.Mutex
	profile entity.UserProfile
	results []entity.QuizResult
}

func (r *memoryResultRepo) SaveWithStats(_ context.Context, result *entity.QuizResult) (*entity.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated := r.profile
	if err := updated.RecordAttempt(result.Score, result.CorrectAnswers); err != nil {
		return nil, err
	}
	result.ID = uint(len(r.results) + 1)
	r.results = append(r.results, *result)
	r.profile = updated
	p := r.profile
	return &p, nil
}

func (r *memoryResultRepo) GetOwnedByID(_ context.Context, id, userID uint) (*entity.QuizResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.results {
		if r.results[i].ID == id && r.results[i].UserID == userID {
			res := r.results[i]
			return &res, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memoryResultRepo) ListByUser(_ context.Context, userID uint) ([]entity.QuizResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.QuizResult, 0, len(r.results))
	for i := len(r.results) - 1; i >= 0; i-- {
		if r.results[i].UserID == userID {
			out = append(out, r.results[i])
		}
	}
	return out, nil
}

func ownQuiz(quizRepo *MockQuizRepository, quizID, ownerID uint) {
	quizRepo.On("GetOwnedByID", mock.Anything, quizID, ownerID).
		Return(&entity.Quiz{ID: quizID, UserID: uintPtr(ownerID), Title: "Quiz"}, nil)
}

func TestResultService_SubmitResult_RunningAverage(t *testing.T) {
	// Arrange
	quizRepo := new(MockQuizRepository)
	ownQuiz(quizRepo, 1, 5)
	repo := &memoryResultRepo{profile: entity.UserProfile{UserID: 5}}
	svc := NewResultService(repo, quizRepo)
	actor := policy.Actor{UserID: 5}
	answers := json.RawMessage(`{"1":[2]}`)

	// Act
	_, first, err := svc.SubmitResult(context.Background(), actor, 1, ResultInput{Score: 80, CorrectAnswers: 4, Answers: answers})
	require.NoError(t, err)
	_, second, err := svc.SubmitResult(context.Background(), actor, 1, ResultInput{Score: 60, CorrectAnswers: 2, Answers: answers})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 1, first.QuizzesTaken)
	assert.Equal(t, 80.0, first.AverageScore)
	assert.Equal(t, 4, first.TotalCorrectAnswers)

	assert.Equal(t, 2, second.QuizzesTaken)
	assert.InDelta(t, 70.0, second.AverageScore, 1e-9)
	assert.Equal(t, 6, second.TotalCorrectAnswers)

	results, err := svc.ListResults(context.Background(), actor)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 60.0, results[0].Score, "новые результаты первыми")
}

func TestResultService_SubmitResult_ConcurrentSubmissionsSerialize(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	ownQuiz(quizRepo, 1, 5)
	repo := &memoryResultRepo{profile: entity.UserProfile{UserID: 5}}
	svc := NewResultService(repo, quizRepo)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(score float64) {
			defer wg.Done()
			_, _, err := svc.SubmitResult(context.Background(), policy.Actor{UserID: 5}, 1,
				ResultInput{Score: score, CorrectAnswers: 1, Answers: json.RawMessage(`[]`)})
			assert.NoError(t, err)
		}(float64(i * 5))
	}
	wg.Wait()

	assert.Equal(t, 20, repo.profile.QuizzesTaken)
	assert.Equal(t, 20, repo.profile.TotalCorrectAnswers)
	assert.InDelta(t, 47.5, repo.profile.AverageScore, 1e-9)
	assert.Len(t, repo.results, 20)
}

func TestResultService_SubmitResult_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input ResultInput
		field string
	}{
		{"negative correct answers", ResultInput{Score: 50, CorrectAnswers: -1, Answers: json.RawMessage(`[]`)}, "correct_answers"},
		{"score above 100", ResultInput{Score: 100.5, Answers: json.RawMessage(`[]`)}, "score"},
		{"negative score", ResultInput{Score: -1, Answers: json.RawMessage(`[]`)}, "score"},
		{"missing answers", ResultInput{Score: 10}, "answers"},
		{"null answers", ResultInput{Score: 10, Answers: json.RawMessage(`null`)}, "answers"},
		{"broken answers", ResultInput{Score: 10, Answers: json.RawMessage(`{"a":`)}, "answers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quizRepo := new(MockQuizRepository)
			ownQuiz(quizRepo, 1, 5)
			resultRepo := new(MockResultRepository)
			svc := NewResultService(resultRepo, quizRepo)

			_, _, err := svc.SubmitResult(context.Background(), policy.Actor{UserID: 5}, 1, tt.input)

			requireFieldError(t, err, tt.field)
			resultRepo.AssertNotCalled(t, "SaveWithStats", mock.Anything, mock.Anything)
		})
	}
}

func TestResultService_SubmitResult_ScoreBoundsAccepted(t *testing.T) {
	for _, score := range []float64{0, 100} {
		quizRepo := new(MockQuizRepository)
		ownQuiz(quizRepo, 1, 5)
		repo := &memoryResultRepo{profile: entity.UserProfile{UserID: 5}}
		svc := NewResultService(repo, quizRepo)

		_, profile, err := svc.SubmitResult(context.Background(), policy.Actor{UserID: 5}, 1,
			ResultInput{Score: score, Answers: json.RawMessage(`{}`)})

		require.NoError(t, err)
		assert.Equal(t, score, profile.AverageScore)
	}
}

func TestResultService_SubmitResult_ForeignOrDeletedQuiz(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	quizRepo.On("GetOwnedByID", mock.Anything, uint(1), uint(6)).Return(nil, apperrors.ErrNotFound)
	resultRepo := new(MockResultRepository)
	svc := NewResultService(resultRepo, quizRepo)

	_, _, err := svc.SubmitResult(context.Background(), policy.Actor{UserID: 6}, 1,
		ResultInput{Score: 10, Answers: json.RawMessage(`[]`)})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	resultRepo.AssertNotCalled(t, "SaveWithStats", mock.Anything, mock.Anything)
}

func TestResultService_SubmitResult_StoreFailureLeavesNoStats(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	ownQuiz(quizRepo, 1, 5)
	resultRepo := new(MockResultRepository)
	resultRepo.On("SaveWithStats", mock.Anything, mock.Anything).Return(nil, errors.New("deadlock detected"))
	svc := NewResultService(resultRepo, quizRepo)

	result, profile, err := svc.SubmitResult(context.Background(), policy.Actor{UserID: 5}, 1,
		ResultInput{Score: 10, Answers: json.RawMessage(`[]`)})

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, result)
	assert.Nil(t, profile)
}

func TestResultService_GetResult_OtherUser(t *testing.T) {
	repo := &memoryResultRepo{}
	repo.results = append(repo.results, entity.QuizResult{ID: 1, UserID: 5, QuizID: 1, Score: 90})
	svc := NewResultService(repo, new(MockQuizRepository))

	_, err := svc.GetResult(context.Background(), policy.Actor{UserID: 6}, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	res, err := svc.GetResult(context.Background(), policy.Actor{UserID: 5}, 1)
	require.NoError(t, err)
	assert.Equal(t, 90.0, res.Score)
}
