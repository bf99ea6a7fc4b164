package entity

import (
	"fmt"
	"time"

	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// UserProfile хранит агрегированную статистику пользователя
type UserProfile struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User                *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Bio                 string    `gorm:"size:500;not null;default:''" json:"bio"`
	QuizzesTaken        int       `gorm:"not null;default:0" json:"quizzes_taken"`
	AverageScore        float64   `gorm:"not null;default:0" json:"average_score"`
	TotalCorrectAnswers int       `gorm:"not null;default:0" json:"total_correct_answers"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (UserProfile) TableName() string {
	return "user_profiles"
}

// RecordAttempt учитывает новую попытку в статистике, пересчитывая среднее инкрементально.
// При отрицательном correctAnswers профиль не изменяется.
func (p *UserProfile) RecordAttempt(newScore float64, correctAnswers int) error {
	if correctAnswers < 0 {
		return apperrors.NewValidationError("correct_answers",
			fmt.Sprintf("must be a non-negative integer, got %d", correctAnswers))
	}

	taken := p.QuizzesTaken + 1
	p.AverageScore = (p.AverageScore*float64(p.QuizzesTaken) + newScore) / float64(taken)
	p.QuizzesTaken = taken
	p.TotalCorrectAnswers += correctAnswers
	return nil
}
