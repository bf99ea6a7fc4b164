package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

func sampleTree() *entity.Quiz {
	owner := uint(10)
	return &entity.Quiz{
		Title:      "Algèbre",
		UserID:     &owner,
		Difficulty: entity.DifficultyMedium,
		TimeLimit:  10,
		Questions: []entity.Question{{
			Text: "2+2?",
			Choices: []entity.Choice{
				{Text: "4", IsCorrect: true},
				{Text: "5"},
			},
		}},
	}
}

func TestQuizRepo_CreateWithQuestions(t *testing.T) {
	t.Run("whole tree is committed once", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "quizzes"`).WillReturnRows(idRows(1))
		mock.ExpectQuery(`INSERT INTO "questions"`).WillReturnRows(idRows(5))
		mock.ExpectQuery(`INSERT INTO "choices"`).WillReturnRows(idRows(7))
		mock.ExpectQuery(`INSERT INTO "choices"`).WillReturnRows(idRows(8))
		mock.ExpectCommit()

		quiz := sampleTree()
		err := NewQuizRepo(db).CreateWithQuestions(context.Background(), quiz)

		require.NoError(t, err)
		assert.Equal(t, uint(1), quiz.ID)
		require.Len(t, quiz.Questions, 1)
		assert.Equal(t, uint(1), quiz.Questions[0].QuizID)
		assert.Equal(t, uint(5), quiz.Questions[0].Choices[1].QuestionID)
		assert.Equal(t, uint(8), quiz.Questions[0].Choices[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failing choice insert rolls back the quiz", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "quizzes"`).WillReturnRows(idRows(1))
		mock.ExpectQuery(`INSERT INTO "questions"`).WillReturnRows(idRows(5))
		mock.ExpectQuery(`INSERT INTO "choices"`).WillReturnRows(idRows(7))
		mock.ExpectQuery(`INSERT INTO "choices"`).WillReturnError(errors.New("value too long for type character varying(200)"))
		mock.ExpectRollback()

		err := NewQuizRepo(db).CreateWithQuestions(context.Background(), sampleTree())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "create choice 1")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQuizRepo_Update(t *testing.T) {
	t.Run("failing question insert rolls back the replacement", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "quizzes" SET .* WHERE is_deleted = .*"id" = `).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "choices" WHERE question_id IN \(SELECT .*id.* FROM "questions" WHERE quiz_id = \$1\)`).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "questions" WHERE quiz_id = \$1`).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO "questions"`).WillReturnError(errors.New("connection reset by peer"))
		mock.ExpectRollback()

		quiz := sampleTree()
		quiz.ID = 1
		err := NewQuizRepo(db).Update(context.Background(), quiz, true)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "create question 0")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("soft-deleted quiz is not updated", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "quizzes" SET .* WHERE is_deleted = .*"id" = `).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		quiz := sampleTree()
		quiz.ID = 1
		err := NewQuizRepo(db).Update(context.Background(), quiz, true)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQuizRepo_ReadsHideDeletedAndForeignQuizzes(t *testing.T) {
	t.Run("get owned", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT \* FROM "quizzes" WHERE quizzes\.is_deleted = \$1 AND .*quizzes\.id = \$2 AND quizzes\.user_id = \$3`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := NewQuizRepo(db).GetOwnedByID(context.Background(), 1, 10)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get by id", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT \* FROM "quizzes" WHERE quizzes\.is_deleted = \$1 AND quizzes\.id = \$2`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := NewQuizRepo(db).GetByID(context.Background(), 1)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list with filters", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT \* FROM "quizzes" WHERE quizzes\.is_deleted = \$1 AND quizzes\.user_id = \$2 AND quizzes\.difficulty = \$3 .*ORDER BY quizzes\.created_at DESC, quizzes\.id DESC`).
			WithArgs(false, 10, "hard").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		quizzes, err := NewQuizRepo(db).ListByOwner(context.Background(), 10, repository.QuizFilters{Difficulty: "hard"})

		require.NoError(t, err)
		assert.Empty(t, quizzes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQuizRepo_ListByOwner_SearchIsLiteral(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`quizzes\.title ILIKE \$3 ESCAPE '\\' OR quizzes\.description ILIKE \$4 ESCAPE '\\'`).
		WithArgs(false, 10, `%50\%\_off\\%`, `%50\%\_off\\%`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewQuizRepo(db).ListByOwner(context.Background(), 10, repository.QuizFilters{Search: `50%_off\`})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepo_SoftDelete(t *testing.T) {
	t.Run("marks quiz deleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`UPDATE "quizzes" SET "is_deleted"=\$1,"updated_at"=\$2 WHERE .*id = \$3 AND is_deleted = \$4`).
			WithArgs(true, sqlmock.AnyArg(), 1, false).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewQuizRepo(db).SoftDelete(context.Background(), 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second delete is not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`UPDATE "quizzes" SET "is_deleted"=`).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, NewQuizRepo(db).SoftDelete(context.Background(), 1), apperrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
