package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/yourusername/quiz-api/internal/middleware"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

const conflictMessage = "A record with these values already exists."

// respondError переводит ошибку приложения в HTTP-ответ.
// Неклассифицированные ошибки логируются и отправляются в Sentry без раскрытия деталей.
func respondError(c *gin.Context, err error) {
	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": verr.Fields})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided or are invalid"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrConflict):
		// Детали нарушения ограничения клиенту не отдаем
		log.Printf("[Handler] Конфликт уникальности %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"fields": map[string]string{"non_field_errors": conflictMessage},
		})
	default:
		requestID := c.GetString(middleware.ContextRequestID)
		log.Printf("ERROR: Internal server error [request_id=%s] %s %s: %v", requestID, c.Request.Method, c.Request.URL.Path, err)
		hub := sentry.CurrentHub().Clone()
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("request_id", requestID)
			scope.SetTag("route", c.FullPath())
		})
		hub.CaptureException(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// respondBindError отвечает 400 на ошибку разбора тела запроса.
// Ошибки валидатора превращаются в сообщения по полям.
func respondBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		verr := &apperrors.ValidationError{}
		for _, fe := range validationErrs {
			verr.Add(fieldPath(fe), fieldMessage(fe))
		}
		respondError(c, verr)
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		respondError(c, apperrors.NewValidationError(typeErr.Field, fmt.Sprintf("Incorrect type. Expected %s.", typeErr.Type)))
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}

// fieldPath отбрасывает имя корневой структуры: "QuizRequest.questions[0].text" -> "questions[0].text"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "difficulty":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}

// parseOptionalUintQuery читает необязательный числовой параметр строки запроса
func parseOptionalUintQuery(c *gin.Context, name string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, apperrors.NewValidationError(name, "A valid integer is required.")
	}
	id := uint(v)
	return &id, nil
}
