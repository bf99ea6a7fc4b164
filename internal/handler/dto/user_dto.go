package dto

import (
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/service"
)

// RegisterRequest - тело POST /auth/register
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest - тело POST /auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProfileRequest - тело PUT/PATCH /profile. Изменяется только bio.
type ProfileRequest struct {
	Bio *string `json:"bio"`
}

// UserResponse - публичные данные пользователя
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse - ответ на регистрацию и вход
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// ProfileResponse - профиль со статистикой
type ProfileResponse struct {
	UserID              uint      `json:"user_id"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	Bio                 string    `json:"bio"`
	QuizzesTaken        int       `json:"quizzes_taken"`
	AverageScore        float64   `json:"average_score"`
	TotalCorrectAnswers int       `json:"total_correct_answers"`
	CreatedAt           time.Time `json:"created_at"`
}

// ToInput преобразует запрос в данные сервиса
func (r *RegisterRequest) ToInput() service.RegisterInput {
	return service.RegisterInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
	}
}

// NewUserResponse создает DTO пользователя
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// NewAuthResponse создает DTO ответа аутентификации
func NewAuthResponse(result *service.AuthResult) *AuthResponse {
	return &AuthResponse{
		User:      NewUserResponse(result.User),
		Token:     result.Token,
		TokenType: "Bearer",
		ExpiresAt: result.ExpiresAt,
	}
}

// NewProfileResponse создает DTO профиля
func NewProfileResponse(p *entity.UserProfile) *ProfileResponse {
	resp := &ProfileResponse{
		UserID:              p.UserID,
		Bio:                 p.Bio,
		QuizzesTaken:        p.QuizzesTaken,
		AverageScore:        p.AverageScore,
		TotalCorrectAnswers: p.TotalCorrectAnswers,
		CreatedAt:           p.CreatedAt,
	}
	if p.User != nil {
		resp.Username = p.User.Username
		resp.Email = p.User.Email
	}
	return resp
}
