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

// CategoryUseCase - операции над категориями
type CategoryUseCase interface {
	CreateCategory(ctx context.Context, actor policy.Actor, input service.CategoryInput) (*entity.Category, error)
	GetCategory(ctx context.Context, actor policy.Actor, categoryID uint) (*entity.Category, error)
	ListCategories(ctx context.Context, actor policy.Actor) ([]entity.Category, error)
	UpdateCategory(ctx context.Context, actor policy.Actor, categoryID uint, update service.CategoryUpdate) (*entity.Category, error)
	DeleteCategory(ctx context.Context, actor policy.Actor, categoryID uint) error
}

// CategoryHandler обрабатывает запросы категорий
type CategoryHandler struct {
	categoryService CategoryUseCase
}

// NewCategoryHandler создает новый обработчик категорий
func NewCategoryHandler(categoryService CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context(), middleware.ActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListCategoryResponse(categories))
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), middleware.ActorFromContext(c), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCategoryResponse(category))
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	categoryID := c.MustGet("categoryID").(uint)

	category, err := h.categoryService.GetCategory(c.Request.Context(), middleware.ActorFromContext(c), categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCategoryResponse(category))
}

// ReplaceCategory обновляет категорию (PUT)
func (h *CategoryHandler) ReplaceCategory(c *gin.Context) {
	var req dto.CategoryReplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	h.update(c, req.ToReplacement())
}

// PatchCategory обновляет переданные поля категории (PATCH)
func (h *CategoryHandler) PatchCategory(c *gin.Context) {
	var req dto.CategoryPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	h.update(c, req.ToUpdate())
}

func (h *CategoryHandler) update(c *gin.Context, update service.CategoryUpdate) {
	categoryID := c.MustGet("categoryID").(uint)

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), middleware.ActorFromContext(c), categoryID, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCategoryResponse(category))
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID := c.MustGet("categoryID").(uint)

	if err := h.categoryService.DeleteCategory(c.Request.Context(), middleware.ActorFromContext(c), categoryID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
