package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/policy"
	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/middleware"
	"github.com/yourusername/quiz-api/internal/service"
)

// QuizUseCase - операции над викторинами, которые нужны обработчику
type QuizUseCase interface {
	CreateQuiz(ctx context.Context, actor policy.Actor, input service.QuizInput) (*entity.Quiz, error)
	GetQuiz(ctx context.Context, actor policy.Actor, quizID uint) (*entity.Quiz, error)
	ListQuizzes(ctx context.Context, actor policy.Actor, filter service.QuizListFilter) ([]entity.Quiz, error)
	UpdateQuiz(ctx context.Context, actor policy.Actor, quizID uint, update service.QuizUpdate) (*entity.Quiz, error)
	DeleteQuiz(ctx context.Context, actor policy.Actor, quizID uint) error
	Difficulties() []service.DifficultyOption
}

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	quizService QuizUseCase
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService QuizUseCase) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// ListQuizzes возвращает викторины пользователя
// GET /api/quizzes?category_id=&difficulty=&search=
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	categoryID, err := parseOptionalUintQuery(c, "category_id")
	if err != nil {
		respondError(c, err)
		return
	}
	filter := service.QuizListFilter{
		CategoryID: categoryID,
		Difficulty: c.Query("difficulty"),
		Search:     strings.TrimSpace(c.Query("search")),
	}

	quizzes, err := h.quizService.ListQuizzes(c.Request.Context(), middleware.ActorFromContext(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListQuizResponse(quizzes))
}

// CreateQuiz создает викторину вместе с вопросами и вариантами
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req dto.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	quiz, err := h.quizService.CreateQuiz(c.Request.Context(), middleware.ActorFromContext(c), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewQuizResponse(quiz))
}

// GetQuiz возвращает викторину с вопросами
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	quiz, err := h.quizService.GetQuiz(c.Request.Context(), middleware.ActorFromContext(c), quizID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz))
}

// ReplaceQuiz обновляет викторину (PUT); опущенные необязательные поля не меняются
func (h *QuizHandler) ReplaceQuiz(c *gin.Context) {
	var req dto.QuizReplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	h.update(c, req.ToReplacement())
}

// PatchQuiz частично обновляет викторину (PATCH)
func (h *QuizHandler) PatchQuiz(c *gin.Context) {
	var req dto.QuizPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	h.update(c, req.ToUpdate())
}

func (h *QuizHandler) update(c *gin.Context, update service.QuizUpdate) {
	quizID := c.MustGet("quizID").(uint)

	quiz, err := h.quizService.UpdateQuiz(c.Request.Context(), middleware.ActorFromContext(c), quizID, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz))
}

// DeleteQuiz мягко удаляет викторину
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	if err := h.quizService.DeleteQuiz(c.Request.Context(), middleware.ActorFromContext(c), quizID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Difficulties возвращает допустимые уровни сложности с подписями
func (h *QuizHandler) Difficulties(c *gin.Context) {
	c.JSON(http.StatusOK, h.quizService.Difficulties())
}
