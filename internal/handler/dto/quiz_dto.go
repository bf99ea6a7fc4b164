package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/service"
)

// OptionalUint различает отсутствующее поле и явный null в PATCH-запросах
type OptionalUint struct {
	Set   bool
	Value *uint
}

// UnmarshalJSON вызывается только для присутствующего поля, в том числе для null
func (o *OptionalUint) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v uint
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// ChoiceRequest - вариант ответа во вложенном запросе
type ChoiceRequest struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionRequest - вопрос во вложенном запросе
type QuestionRequest struct {
	Text    string          `json:"text"`
	Order   *int            `json:"order"`
	Choices []ChoiceRequest `json:"choices" binding:"dive"`
}

// QuizRequest - тело POST /quizzes
type QuizRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	CategoryID  *uint             `json:"category_id"`
	Difficulty  string            `json:"difficulty" binding:"omitempty,difficulty"`
	TimeLimit   *int              `json:"time_limit"`
	Questions   []QuestionRequest `json:"questions" binding:"dive"`
}

// QuizReplaceRequest - тело PUT /quizzes/:id.
// Название и описание заменяются всегда, остальные поля только если присутствуют в теле.
type QuizReplaceRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	CategoryID  OptionalUint       `json:"category_id"`
	Difficulty  *string            `json:"difficulty" binding:"omitempty,difficulty"`
	TimeLimit   *int               `json:"time_limit"`
	Questions   *[]QuestionRequest `json:"questions"`
}

// QuizPatchRequest - тело PATCH /quizzes/:id, все поля необязательны
type QuizPatchRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	CategoryID  OptionalUint       `json:"category_id"`
	Difficulty  *string            `json:"difficulty" binding:"omitempty,difficulty"`
	TimeLimit   *int               `json:"time_limit"`
	Questions   *[]QuestionRequest `json:"questions"`
}

// ChoiceResponse представляет вариант ответа в ответе клиенту
type ChoiceResponse struct {
	ID         uint   `json:"id"`
	QuestionID uint   `json:"question_id"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct"`
}

// QuestionResponse представляет вопрос в ответе клиенту
type QuestionResponse struct {
	ID                  uint             `json:"id"`
	QuizID              uint             `json:"quiz_id"`
	Text                string           `json:"text"`
	Order               int              `json:"order"`
	CorrectChoicesCount int              `json:"correct_choices_count"`
	Choices             []ChoiceResponse `json:"choices"`
}

// QuizResponse представляет викторину в ответе клиенту
type QuizResponse struct {
	ID              uint               `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	UserID          *uint              `json:"user_id"`
	CategoryID      *uint              `json:"category_id"`
	CategoryName    string             `json:"category_name"`
	Difficulty      entity.Difficulty  `json:"difficulty"`
	DifficultyLabel string             `json:"difficulty_label"`
	TimeLimit       int                `json:"time_limit"`
	QuestionCount   int                `json:"question_count"`
	Questions       []QuestionResponse `json:"questions"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// ToChoiceInputs преобразует вложенные варианты в данные сервиса
func ToChoiceInputs(choices []ChoiceRequest) []service.ChoiceInput {
	inputs := make([]service.ChoiceInput, 0, len(choices))
	for _, c := range choices {
		inputs = append(inputs, service.ChoiceInput{Text: c.Text, IsCorrect: c.IsCorrect})
	}
	return inputs
}

// ToQuestionInput преобразует вложенный вопрос в данные сервиса
func ToQuestionInput(q QuestionRequest) service.QuestionInput {
	return service.QuestionInput{
		Text:    q.Text,
		Order:   q.Order,
		Choices: ToChoiceInputs(q.Choices),
	}
}

func toQuestionInputs(questions []QuestionRequest) []service.QuestionInput {
	inputs := make([]service.QuestionInput, 0, len(questions))
	for _, q := range questions {
		inputs = append(inputs, ToQuestionInput(q))
	}
	return inputs
}

// ToInput преобразует запрос создания в данные сервиса
func (r *QuizRequest) ToInput() service.QuizInput {
	return service.QuizInput{
		Title:       r.Title,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		Difficulty:  r.Difficulty,
		TimeLimit:   r.TimeLimit,
		Questions:   toQuestionInputs(r.Questions),
	}
}

// ToReplacement преобразует PUT-запрос в обновление викторины
func (r *QuizReplaceRequest) ToReplacement() service.QuizUpdate {
	update := service.QuizUpdate{
		Title:       &r.Title,
		Description: &r.Description,
		SetCategory: r.CategoryID.Set,
		CategoryID:  r.CategoryID.Value,
		Difficulty:  r.Difficulty,
		TimeLimit:   r.TimeLimit,
	}
	if r.Questions != nil {
		questions := toQuestionInputs(*r.Questions)
		update.Questions = &questions
	}
	return update
}

// ToUpdate преобразует PATCH-запрос в частичное обновление
func (r *QuizPatchRequest) ToUpdate() service.QuizUpdate {
	update := service.QuizUpdate{
		Title:       r.Title,
		Description: r.Description,
		SetCategory: r.CategoryID.Set,
		CategoryID:  r.CategoryID.Value,
		Difficulty:  r.Difficulty,
		TimeLimit:   r.TimeLimit,
	}
	if r.Questions != nil {
		questions := toQuestionInputs(*r.Questions)
		update.Questions = &questions
	}
	return update
}

// NewChoiceResponse создает DTO для варианта ответа
func NewChoiceResponse(c *entity.Choice) ChoiceResponse {
	return ChoiceResponse{
		ID:         c.ID,
		QuestionID: c.QuestionID,
		Text:       c.Text,
		IsCorrect:  c.IsCorrect,
	}
}

// NewQuestionResponse создает DTO для вопроса вместе с вариантами
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	choices := make([]ChoiceResponse, 0, len(q.Choices))
	for i := range q.Choices {
		choices = append(choices, NewChoiceResponse(&q.Choices[i]))
	}
	return QuestionResponse{
		ID:                  q.ID,
		QuizID:              q.QuizID,
		Text:                q.Text,
		Order:               q.Order,
		CorrectChoicesCount: q.CorrectChoices(),
		Choices:             choices,
	}
}

// NewQuizResponse создает DTO для викторины с вложенными вопросами
func NewQuizResponse(quiz *entity.Quiz) *QuizResponse {
	questions := make([]QuestionResponse, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		questions = append(questions, NewQuestionResponse(&quiz.Questions[i]))
	}
	return &QuizResponse{
		ID:              quiz.ID,
		Title:           quiz.Title,
		Description:     quiz.Description,
		UserID:          quiz.UserID,
		CategoryID:      quiz.CategoryID,
		CategoryName:    quiz.CategoryName(),
		Difficulty:      quiz.Difficulty,
		DifficultyLabel: quiz.Difficulty.Label(),
		TimeLimit:       quiz.TimeLimit,
		QuestionCount:   len(quiz.Questions),
		Questions:       questions,
		CreatedAt:       quiz.CreatedAt,
		UpdatedAt:       quiz.UpdatedAt,
	}
}

// NewListQuizResponse создает список DTO викторин
func NewListQuizResponse(quizzes []entity.Quiz) []*QuizResponse {
	result := make([]*QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		result = append(result, NewQuizResponse(&quizzes[i]))
	}
	return result
}
