package entity

import (
	"strings"
	"time"
)

// Difficulty - каноническое значение сложности викторины
type Difficulty string

// Константы сложности викторины
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Ограничения на длительность викторины (в минутах)
const (
	MinTimeLimit     = 1
	MaxTimeLimit     = 180
	DefaultTimeLimit = 10
)

// difficultyAliases сопоставляет входные значения (включая локализованные) каноническим
var difficultyAliases = map[string]Difficulty{
	"easy":      DifficultyEasy,
	"medium":    DifficultyMedium,
	"hard":      DifficultyHard,
	"facile":    DifficultyEasy,
	"moyen":     DifficultyMedium,
	"difficile": DifficultyHard,
}

var difficultyLabels = map[Difficulty]string{
	DifficultyEasy:   "Facile",
	DifficultyMedium: "Moyen",
	DifficultyHard:   "Difficile",
}

// ParseDifficulty нормализует значение сложности.
// Возвращает false, если значение не входит в допустимый набор.
func ParseDifficulty(value string) (Difficulty, bool) {
	d, ok := difficultyAliases[strings.ToLower(strings.TrimSpace(value))]
	return d, ok
}

// Difficulties возвращает допустимые значения в порядке отображения
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Label возвращает локализованное название сложности
func (d Difficulty) Label() string {
	return difficultyLabels[d]
}

// IsValidTimeLimit проверяет, что длительность в пределах [MinTimeLimit, MaxTimeLimit]
func IsValidTimeLimit(minutes int) bool {
	return minutes >= MinTimeLimit && minutes <= MaxTimeLimit
}

// Quiz представляет викторину пользователя
type Quiz struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text;not null;default:''" json:"description"`
	UserID      *uint      `gorm:"index" json:"user_id"`
	CategoryID  *uint      `gorm:"index" json:"category_id"`
	Category    *Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Difficulty  Difficulty `gorm:"size:10;not null;default:'medium'" json:"difficulty"`
	TimeLimit   int        `gorm:"not null;default:10" json:"time_limit"`
	IsDeleted   bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	Questions   []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// OwnerID возвращает владельца викторины; false, если владелец не задан
func (q *Quiz) OwnerID() (uint, bool) {
	if q.UserID == nil {
		return 0, false
	}
	return *q.UserID, true
}

// CategoryName возвращает название категории или пустую строку
func (q *Quiz) CategoryName() string {
	if q.Category == nil {
		return ""
	}
	return q.Category.Name
}

// SoftDelete помечает викторину удаленной. Обратного перехода нет.
func (q *Quiz) SoftDelete() {
	q.IsDeleted = true
}
