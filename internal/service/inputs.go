package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// Ограничения длины текстовых полей
const (
	MaxQuizTitleLen    = 200
	MaxQuestionTextLen = 500
	MaxChoiceTextLen   = 200
	MaxCategoryNameLen = 100
	MaxBioLen          = 500
)

// Допустимый диапазон результата в процентах
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// ChoiceInput - вариант ответа в составе вопроса
type ChoiceInput struct {
	Text      string
	IsCorrect bool
}

// QuestionInput - вопрос в составе викторины. Order == nil означает позицию в списке.
type QuestionInput struct {
	Text    string
	Order   *int
	Choices []ChoiceInput
}

// QuizInput содержит данные для создания викторины вместе с вопросами
type QuizInput struct {
	Title       string
	Description string
	CategoryID  *uint
	Difficulty  string
	TimeLimit   *int
	Questions   []QuestionInput
}

// QuizUpdate содержит изменяемые поля викторины; nil означает "не менять".
// Questions != nil заменяет все вопросы викторины.
type QuizUpdate struct {
	Title       *string
	Description *string
	SetCategory bool
	CategoryID  *uint
	Difficulty  *string
	TimeLimit   *int
	Questions   *[]QuestionInput
}

// QuizListFilter - параметры списка викторин
type QuizListFilter struct {
	CategoryID *uint
	Difficulty string
	Search     string
}

// CategoryInput содержит данные категории
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryUpdate содержит изменяемые поля категории
type CategoryUpdate struct {
	Name        *string
	Description *string
}

// StandaloneQuestionInput - вопрос, создаваемый отдельно от викторины
type StandaloneQuestionInput struct {
	QuizID uint
	QuestionInput
}

// QuestionUpdate содержит изменяемые поля вопроса. Choices != nil заменяет варианты.
type QuestionUpdate struct {
	QuizID  *uint
	Text    *string
	Order   *int
	Choices *[]ChoiceInput
}

// StandaloneChoiceInput - вариант ответа, создаваемый отдельно
type StandaloneChoiceInput struct {
	QuestionID uint
	Text       string
	IsCorrect  bool
}

// ChoiceUpdate содержит изменяемые поля варианта ответа
type ChoiceUpdate struct {
	QuestionID *uint
	Text       *string
	IsCorrect  *bool
}

// ResultInput - результат прохождения викторины
type ResultInput struct {
	Score          float64
	CorrectAnswers int
	Answers        json.RawMessage
}

// validateText проверяет обязательный текст с ограничением длины
func validateText(verr *apperrors.ValidationError, field, value string, maxLen int) {
	switch {
	case strings.TrimSpace(value) == "":
		verr.Add(field, "This field may not be blank.")
	case utf8.RuneCountInString(value) > maxLen:
		verr.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", maxLen))
	}
}

// validateDifficulty нормализует сложность; пустое значение дает сложность по умолчанию
func validateDifficulty(verr *apperrors.ValidationError, value string) entity.Difficulty {
	if strings.TrimSpace(value) == "" {
		return entity.DifficultyMedium
	}
	d, ok := entity.ParseDifficulty(value)
	if !ok {
		verr.Add("difficulty", fmt.Sprintf("%q is not a valid choice.", value))
	}
	return d
}

// validateTimeLimit проверяет длительность; nil дает значение по умолчанию
func validateTimeLimit(verr *apperrors.ValidationError, value *int) int {
	if value == nil {
		return entity.DefaultTimeLimit
	}
	if !entity.IsValidTimeLimit(*value) {
		verr.Add("time_limit", fmt.Sprintf("Time limit must be between %d and %d minutes, got %d.",
			entity.MinTimeLimit, entity.MaxTimeLimit, *value))
	}
	return *value
}

// buildChoices проверяет варианты и строит сущности; prefix - путь поля в запросе
func buildChoices(verr *apperrors.ValidationError, prefix string, inputs []ChoiceInput) []entity.Choice {
	choices := make([]entity.Choice, 0, len(inputs))
	for i, in := range inputs {
		validateText(verr, fmt.Sprintf("%schoices[%d].text", prefix, i), in.Text, MaxChoiceTextLen)
		choices = append(choices, entity.Choice{
			Text:      strings.TrimSpace(in.Text),
			IsCorrect: in.IsCorrect,
		})
	}
	return choices
}

// buildQuestions проверяет все дерево вопросов и строит сущности
func buildQuestions(verr *apperrors.ValidationError, inputs []QuestionInput) []entity.Question {
	questions := make([]entity.Question, 0, len(inputs))
	for i, in := range inputs {
		prefix := fmt.Sprintf("questions[%d].", i)
		validateText(verr, prefix+"text", in.Text, MaxQuestionTextLen)

		order := i
		if in.Order != nil {
			order = *in.Order
		}
		questions = append(questions, entity.Question{
			Text:    strings.TrimSpace(in.Text),
			Order:   order,
			Choices: buildChoices(verr, prefix, in.Choices),
		})
	}
	return questions
}
