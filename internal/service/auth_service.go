package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/pkg/auth"
)

// Ограничения учетных данных
const (
	MaxUsernameLen    = 150
	MinPasswordLength = 8
	welcomeTimeout    = 10 * time.Second
)

// RegisterInput содержит данные для регистрации
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthResult - пользователь и выданный ему bearer-токен
type AuthResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// AuthService предоставляет методы для регистрации, входа и выхода
type AuthService struct {
	userRepo          repository.UserRepository
	tokenStore        repository.TokenRevocationStore
	jwtService        *auth.JWTService
	emailService      EmailService
	defaultCategories []entity.DefaultCategory

	// pendingEmails отслеживает письма, отправляемые в фоне
	pendingEmails sync.WaitGroup
}

// NewAuthService создает новый сервис аутентификации и возвращает ошибку при проблемах
func NewAuthService(
	userRepo repository.UserRepository,
	tokenStore repository.TokenRevocationStore,
	jwtService *auth.JWTService,
	emailService EmailService,
	defaultCategories []entity.DefaultCategory,
) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if tokenStore == nil {
		return nil, fmt.Errorf("TokenRevocationStore is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	if emailService == nil {
		emailService = &NoopEmailService{}
	}
	return &AuthService{
		userRepo:          userRepo,
		tokenStore:        tokenStore,
		jwtService:        jwtService,
		emailService:      emailService,
		defaultCategories: defaultCategories,
	}, nil
}

// Register создает пользователя вместе с пустым профилем и категориями по умолчанию
// и сразу выдает токен
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	verr := &apperrors.ValidationError{}
	validateText(verr, "username", username, MaxUsernameLen)
	if utf8.RuneCountInString(input.Password) < MinPasswordLength {
		verr.Add("password", fmt.Sprintf("Ensure this field has at least %d characters.", MinPasswordLength))
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, duplicateUsername(apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: input.Password,
	}
	if err := s.userRepo.CreateWithBootstrap(ctx, user, s.defaultCategories); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, duplicateUsername(err)
		}
		log.Printf("[AuthService] Ошибка регистрации пользователя username=%s: %v", username, err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	log.Printf("[AuthService] Пользователь ID=%d (%s) зарегистрирован, категорий по умолчанию: %d",
		user.ID, user.Username, len(s.defaultCategories))

	s.sendWelcomeAsync(ctx, user)
	return s.issueToken(user)
}

// Login проверяет учетные данные и выдает новый токен.
// Неизвестное имя и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.CheckPassword(password) {
		log.Printf("[AuthService] Неверный пароль для пользователя ID=%d", user.ID)
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	return s.issueToken(user)
}

// Logout отзывает токен до истечения его срока действия
func (s *AuthService) Logout(ctx context.Context, claims *auth.JWTCustomClaims) error {
	if claims == nil {
		return apperrors.ErrUnauthorized
	}
	if err := s.tokenStore.Revoke(ctx, claims.ID, claims.ExpiresIn(time.Now())); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	log.Printf("[AuthService] Токен пользователя ID=%d отозван", claims.UserID)
	return nil
}

// Authenticate проверяет bearer-токен и то, что он не был отозван
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.JWTCustomClaims, error) {
	claims, err := s.jwtService.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	revoked, err := s.tokenStore.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token has been revoked", apperrors.ErrUnauthorized)
	}
	return claims, nil
}

func (s *AuthService) issueToken(user *entity.User) (*AuthResult, error) {
	token, claims, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{
		User:      user,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// sendWelcomeAsync отправляет приветственное письмо в фоне, не задерживая ответ.
// Ошибка отправки не отменяет регистрацию.
func (s *AuthService) sendWelcomeAsync(ctx context.Context, user *entity.User) {
	if user.Email == "" {
		return
	}
	userID, email, username := user.ID, user.Email, user.Username
	sendCtx := context.WithoutCancel(ctx)

	s.pendingEmails.Add(1)
	go func() {
		defer s.pendingEmails.Done()
		ctx, cancel := context.WithTimeout(sendCtx, welcomeTimeout)
		defer cancel()
		if err := s.emailService.SendWelcome(ctx, email, username); err != nil {
			log.Printf("[AuthService] Не удалось отправить приветственное письмо пользователю ID=%d: %v", userID, err)
		}
	}()
}

// WaitPendingEmails ждет завершения фоновых отправок писем (при остановке сервера)
func (s *AuthService) WaitPendingEmails() {
	s.pendingEmails.Wait()
}

func duplicateUsername(cause error) error {
	return apperrors.NewValidationError("username", "A user with that username already exists.").WithCause(cause)
}
