package entity

import (
	"time"

	"gorm.io/datatypes"
)

// QuizResult представляет одну попытку прохождения викторины.
// После создания не изменяется.
type QuizResult struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index:idx_quiz_results_user_completed" json:"user_id"`
	User           *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	QuizID         uint           `gorm:"not null;index" json:"quiz_id"`
	Quiz           *Quiz          `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
	Score          float64        `gorm:"not null" json:"score"`
	CorrectAnswers int            `gorm:"not null;default:0" json:"correct_answers"`
	Answers        datatypes.JSON `gorm:"type:jsonb;not null" json:"answers"`
	CompletedAt    time.Time      `gorm:"not null;index:idx_quiz_results_user_completed,sort:desc" json:"completed_at"`
}

// TableName определяет имя таблицы для GORM
func (QuizResult) TableName() string {
	return "quiz_results"
}

// QuizTitle возвращает название викторины, если она подгружена
func (r *QuizResult) QuizTitle() string {
	if r.Quiz == nil {
		return ""
	}
	return r.Quiz.Title
}

// Username возвращает имя пользователя, если он подгружен
func (r *QuizResult) Username() string {
	if r.User == nil {
		return ""
	}
	return r.User.Username
}
