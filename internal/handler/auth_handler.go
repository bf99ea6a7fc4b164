package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/middleware"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/pkg/auth"
)

// AuthUseCase - регистрация, вход и выход
type AuthUseCase interface {
	Register(ctx context.Context, input service.RegisterInput) (*service.AuthResult, error)
	Login(ctx context.Context, username, password string) (*service.AuthResult, error)
	Logout(ctx context.Context, claims *auth.JWTCustomClaims) error
}

// AuthHandler обрабатывает запросы, связанные с аутентификацией
type AuthHandler struct {
	authService AuthUseCase
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService AuthUseCase) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register регистрирует пользователя и сразу выдает токен
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("[AuthHandler] Зарегистрирован пользователь ID=%d username=%s", result.User.ID, result.User.Username)
	c.JSON(http.StatusCreated, dto.NewAuthResponse(result))
}

// Login выдает токен по имени пользователя и паролю
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAuthResponse(result))
}

// Logout отзывает текущий токен до истечения его срока
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
