package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/domain/policy"
	"github.com/yourusername/quiz-api/pkg/auth"
)

// Ключи контекста Gin, которые заполняет RequireAuth
const (
	ContextUserID = "user_id"
	ContextClaims = "claims"
)

// TokenAuthenticator проверяет bearer-токен (подпись, срок, отзыв)
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.JWTCustomClaims, error)
}

// AuthMiddleware обеспечивает аутентификацию для защищенных маршрутов
type AuthMiddleware struct {
	authenticator TokenAuthenticator
}

// NewAuthMiddleware создает новый middleware аутентификации
func NewAuthMiddleware(authenticator TokenAuthenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// RequireAuth проверяет заголовок Authorization: Bearer {token}
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required", "error_type": "token_missing"})
			return
		}

		// Проверяем формат заголовка Bearer {token}
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}", "error_type": "token_format"})
			return
		}

		claims, err := m.authenticator.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			if gin.Mode() != gin.ReleaseMode {
				log.Printf("[AuthMiddleware] Токен отклонен для %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "error_type": "token_invalid"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// ActorFromContext возвращает идентичность запроса. Без RequireAuth это анонимный Actor.
func ActorFromContext(c *gin.Context) policy.Actor {
	userID, ok := c.Get(ContextUserID)
	if !ok {
		return policy.Actor{}
	}
	id, _ := userID.(uint)
	return policy.Actor{UserID: id}
}

// ClaimsFromContext возвращает claims токена текущего запроса
func ClaimsFromContext(c *gin.Context) (*auth.JWTCustomClaims, bool) {
	value, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*auth.JWTCustomClaims)
	return claims, ok && claims != nil
}
