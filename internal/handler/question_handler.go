package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/policy"
	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/middleware"
	"github.com/yourusername/quiz-api/internal/service"
)

// QuestionUseCase - операции над вопросами
type QuestionUseCase interface {
	CreateQuestion(ctx context.Context, actor policy.Actor, input service.StandaloneQuestionInput) (*entity.Question, error)
	GetQuestion(ctx context.Context, actor policy.Actor, questionID uint) (*entity.Question, error)
	ListQuestions(ctx context.Context, actor policy.Actor, quizID *uint) ([]entity.Question, error)
	UpdateQuestion(ctx context.Context, actor policy.Actor, questionID uint, update service.QuestionUpdate) (*entity.Question, error)
	DeleteQuestion(ctx context.Context, actor policy.Actor, questionID uint) error
}

// QuestionHandler обрабатывает запросы вопросов
type QuestionHandler struct {
	questionService QuestionUseCase
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService QuestionUseCase) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// ListQuestions возвращает вопросы пользователя, опционально одной викторины
// GET /api/questions?quiz_id=
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	quizID, err := parseOptionalUintQuery(c, "quiz_id")
	if err != nil {
		respondError(c, err)
		return
	}

	questions, err := h.questionService.ListQuestions(c.Request.Context(), middleware.ActorFromContext(c), quizID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListQuestionResponse(questions))
}

func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	question, err := h.questionService.CreateQuestion(c.Request.Context(), middleware.ActorFromContext(c), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewQuestionResponse(question))
}

func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	question, err := h.questionService.GetQuestion(c.Request.Context(), middleware.ActorFromContext(c), questionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// UpdateQuestion обслуживает PUT и PATCH: отсутствующие поля не меняются
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	var req dto.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	question, err := h.questionService.UpdateQuestion(c.Request.Context(), middleware.ActorFromContext(c), questionID, req.ToUpdate())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	if err := h.questionService.DeleteQuestion(c.Request.Context(), middleware.ActorFromContext(c), questionID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
