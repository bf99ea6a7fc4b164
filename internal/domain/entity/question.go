package entity

import (
	"time"
)

// Question представляет вопрос в викторине.
// Владелец определяется только через QuizID.
type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	QuizID    uint      `gorm:"not null;index" json:"quiz_id"`
	Quiz      *Quiz     `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
	Text      string    `gorm:"size:500;not null" json:"text"`
	Order     int       `gorm:"column:question_order;not null;default:0" json:"order"`
	Choices   []Choice  `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"choices"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// CorrectChoices возвращает количество правильных вариантов ответа
func (q *Question) CorrectChoices() int {
	n := 0
	for _, c := range q.Choices {
		if c.IsCorrect {
			n++
		}
	}
	return n
}

// Choice представляет вариант ответа на вопрос
type Choice struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Question   *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	Text       string    `gorm:"size:200;not null" json:"text"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"is_correct"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Choice) TableName() string {
	return "choices"
}
