package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/policy"
	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/middleware"
)

// ProfileUseCase - операции над профилем текущего пользователя
type ProfileUseCase interface {
	GetProfile(ctx context.Context, actor policy.Actor) (*entity.UserProfile, error)
	UpdateBio(ctx context.Context, actor policy.Actor, bio string) (*entity.UserProfile, error)
}

// ProfileHandler обрабатывает запросы профиля
type ProfileHandler struct {
	profileService ProfileUseCase
}

// NewProfileHandler создает новый обработчик профиля
func NewProfileHandler(profileService ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile возвращает профиль со статистикой
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context(), middleware.ActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileResponse(profile))
}

// UpdateProfile изменяет bio. Статистика через этот метод не меняется.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actor := middleware.ActorFromContext(c)
	if req.Bio == nil {
		// без bio обновлять нечего, отдаем текущее состояние
		h.GetProfile(c)
		return
	}

	profile, err := h.profileService.UpdateBio(c.Request.Context(), actor, *req.Bio)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileResponse(profile))
}
