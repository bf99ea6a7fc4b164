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

// ChoiceUseCase - операции над вариантами ответа
type ChoiceUseCase interface {
	CreateChoice(ctx context.Context, actor policy.Actor, input service.StandaloneChoiceInput) (*entity.Choice, error)
	GetChoice(ctx context.Context, actor policy.Actor, choiceID uint) (*entity.Choice, error)
	ListChoices(ctx context.Context, actor policy.Actor, questionID *uint) ([]entity.Choice, error)
	UpdateChoice(ctx context.Context, actor policy.Actor, choiceID uint, update service.ChoiceUpdate) (*entity.Choice, error)
	DeleteChoice(ctx context.Context, actor policy.Actor, choiceID uint) error
}

// ChoiceHandler обрабатывает запросы вариантов ответа
type ChoiceHandler struct {
	choiceService ChoiceUseCase
}

// NewChoiceHandler создает новый обработчик вариантов ответа
func NewChoiceHandler(choiceService ChoiceUseCase) *ChoiceHandler {
	return &ChoiceHandler{choiceService: choiceService}
}

// ListChoices возвращает варианты пользователя, опционально одного вопроса
// GET /api/choices?question_id=
func (h *ChoiceHandler) ListChoices(c *gin.Context) {
	questionID, err := parseOptionalUintQuery(c, "question_id")
	if err != nil {
		respondError(c, err)
		return
	}

	choices, err := h.choiceService.ListChoices(c.Request.Context(), middleware.ActorFromContext(c), questionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListChoiceResponse(choices))
}

func (h *ChoiceHandler) CreateChoice(c *gin.Context) {
	var req dto.CreateChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	choice, err := h.choiceService.CreateChoice(c.Request.Context(), middleware.ActorFromContext(c), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewChoiceResponse(choice))
}

func (h *ChoiceHandler) GetChoice(c *gin.Context) {
	choiceID := c.MustGet("choiceID").(uint)

	choice, err := h.choiceService.GetChoice(c.Request.Context(), middleware.ActorFromContext(c), choiceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewChoiceResponse(choice))
}

// UpdateChoice обслуживает PUT и PATCH
func (h *ChoiceHandler) UpdateChoice(c *gin.Context) {
	choiceID := c.MustGet("choiceID").(uint)

	var req dto.UpdateChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	choice, err := h.choiceService.UpdateChoice(c.Request.Context(), middleware.ActorFromContext(c), choiceID, req.ToUpdate())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewChoiceResponse(choice))
}

func (h *ChoiceHandler) DeleteChoice(c *gin.Context) {
	choiceID := c.MustGet("choiceID").(uint)

	if err := h.choiceService.DeleteChoice(c.Request.Context(), middleware.ActorFromContext(c), choiceID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
