package errors

import (
	"errors"
	"sort"
	"strings"
)

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись не найдена в видимом для пользователя наборе.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется, когда к запросу не привязан аутентифицированный пользователь.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда пользователь аутентифицирован, но не владеет ресурсом.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется при нарушении уникального ограничения (23505).
	ErrConflict = errors.New("resource state conflict")
)

// ValidationError содержит сообщения об ошибках по каждому полю.
// errors.Is(err, ErrValidation) возвращает true для любой ValidationError.
type ValidationError struct {
	Fields map[string]string
	cause  error
}

// NewValidationError создает ошибку валидации для одного поля
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Add добавляет сообщение для поля. Первое сообщение для поля сохраняется.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// HasErrors сообщает, накоплена ли хотя бы одна ошибка
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// WithCause привязывает исходную ошибку (например, ErrConflict от репозитория)
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// OrNil возвращает nil, если ошибок нет. Удобно в конце цепочки проверок.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap позволяет errors.Is находить и ErrValidation, и исходную причину
func (e *ValidationError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrValidation, e.cause}
	}
	return []error{ErrValidation}
}
