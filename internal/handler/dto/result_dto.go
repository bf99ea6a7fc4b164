package dto

import (
	"encoding/json"
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/service"
)

// SubmitResultRequest - тело POST /quizzes/:id/submit_result
type SubmitResultRequest struct {
	Score          *float64        `json:"score" binding:"required"`
	CorrectAnswers *int            `json:"correct_answers" binding:"required"`
	Answers        json.RawMessage `json:"answers"`
}

// ResultResponse представляет результат прохождения в ответе клиенту
type ResultResponse struct {
	ID             uint            `json:"id"`
	UserID         uint            `json:"user_id"`
	Username       string          `json:"username"`
	QuizID         uint            `json:"quiz_id"`
	QuizTitle      string          `json:"quiz_title"`
	Score          float64         `json:"score"`
	CorrectAnswers int             `json:"correct_answers"`
	Answers        json.RawMessage `json:"answers"`
	CompletedAt    time.Time       `json:"completed_at"`
}

// SubmitResultResponse - сохраненный результат и обновленная статистика
type SubmitResultResponse struct {
	Result  *ResultResponse  `json:"result"`
	Profile *ProfileResponse `json:"profile"`
}

// ToInput преобразует запрос в данные сервиса
func (r *SubmitResultRequest) ToInput() service.ResultInput {
	return service.ResultInput{
		Score:          *r.Score,
		CorrectAnswers: *r.CorrectAnswers,
		Answers:        r.Answers,
	}
}

// NewResultResponse создает DTO для результата
func NewResultResponse(r *entity.QuizResult) *ResultResponse {
	answers := json.RawMessage(r.Answers)
	if len(answers) == 0 {
		answers = json.RawMessage("null")
	}
	return &ResultResponse{
		ID:             r.ID,
		UserID:         r.UserID,
		Username:       r.Username(),
		QuizID:         r.QuizID,
		QuizTitle:      r.QuizTitle(),
		Score:          r.Score,
		CorrectAnswers: r.CorrectAnswers,
		Answers:        answers,
		CompletedAt:    r.CompletedAt,
	}
}

// NewListResultResponse создает список DTO результатов
func NewListResultResponse(results []entity.QuizResult) []*ResultResponse {
	list := make([]*ResultResponse, 0, len(results))
	for i := range results {
		list = append(list, NewResultResponse(&results[i]))
	}
	return list
}
