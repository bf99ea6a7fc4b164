package dto

import (
	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/service"
)

// CreateQuestionRequest - тело POST /questions
type CreateQuestionRequest struct {
	QuizID  uint            `json:"quiz_id" binding:"required"`
	Text    string          `json:"text"`
	Order   *int            `json:"order"`
	Choices []ChoiceRequest `json:"choices" binding:"dive"`
}

// UpdateQuestionRequest - тело PUT/PATCH /questions/:id
type UpdateQuestionRequest struct {
	QuizID  *uint            `json:"quiz_id"`
	Text    *string          `json:"text"`
	Order   *int             `json:"order"`
	Choices *[]ChoiceRequest `json:"choices"`
}

// CreateChoiceRequest - тело POST /choices
type CreateChoiceRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct"`
}

// UpdateChoiceRequest - тело PUT/PATCH /choices/:id
type UpdateChoiceRequest struct {
	QuestionID *uint   `json:"question_id"`
	Text       *string `json:"text"`
	IsCorrect  *bool   `json:"is_correct"`
}

// ToInput преобразует запрос в данные сервиса
func (r *CreateQuestionRequest) ToInput() service.StandaloneQuestionInput {
	return service.StandaloneQuestionInput{
		QuizID: r.QuizID,
		QuestionInput: ToQuestionInput(QuestionRequest{
			Text:    r.Text,
			Order:   r.Order,
			Choices: r.Choices,
		}),
	}
}

// ToUpdate преобразует запрос в данные сервиса
func (r *UpdateQuestionRequest) ToUpdate() service.QuestionUpdate {
	update := service.QuestionUpdate{
		QuizID: r.QuizID,
		Text:   r.Text,
		Order:  r.Order,
	}
	if r.Choices != nil {
		choices := ToChoiceInputs(*r.Choices)
		update.Choices = &choices
	}
	return update
}

// ToInput преобразует запрос в данные сервиса
func (r *CreateChoiceRequest) ToInput() service.StandaloneChoiceInput {
	return service.StandaloneChoiceInput{
		QuestionID: r.QuestionID,
		Text:       r.Text,
		IsCorrect:  r.IsCorrect,
	}
}

// ToUpdate преобразует запрос в данные сервиса
func (r *UpdateChoiceRequest) ToUpdate() service.ChoiceUpdate {
	return service.ChoiceUpdate{
		QuestionID: r.QuestionID,
		Text:       r.Text,
		IsCorrect:  r.IsCorrect,
	}
}

// NewListQuestionResponse создает список DTO вопросов
func NewListQuestionResponse(questions []entity.Question) []QuestionResponse {
	result := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		result = append(result, NewQuestionResponse(&questions[i]))
	}
	return result
}

// NewListChoiceResponse создает список DTO вариантов ответа
func NewListChoiceResponse(choices []entity.Choice) []ChoiceResponse {
	result := make([]ChoiceResponse, 0, len(choices))
	for i := range choices {
		result = append(result, NewChoiceResponse(&choices[i]))
	}
	return result
}
