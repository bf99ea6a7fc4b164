// Package policy содержит чистые правила доступа к ресурсам пользователя.
// Разрешение владельца для вложенных ресурсов выполняется в service.OwnershipGuard.
package policy

import (
	"fmt"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// Operation - тип операции над ресурсом
type Operation int

const (
	OpRead Operation = iota
	OpList
	OpCreate
	OpUpdate
	OpDelete
)

func (op Operation) String() string {
	switch op {
	case OpRead:
		return "read"
	case OpList:
		return "list"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("operation(%d)", int(op))
	}
}

// IsSafe сообщает, является ли операция только чтением
func (op Operation) IsSafe() bool {
	return op == OpRead || op == OpList
}

// Actor - идентичность, выполняющая запрос. Нулевое значение - анонимный запрос.
type Actor struct {
	UserID uint
}

// Authenticated сообщает, привязан ли к запросу пользователь
func (a Actor) Authenticated() bool {
	return a.UserID != 0
}

// Authenticate возвращает ErrUnauthorized для анонимного запроса.
// Вызывается до любой логики, зависящей от ресурса.
func Authenticate(actor Actor) error {
	if !actor.Authenticated() {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// Authorize решает, может ли actor выполнить op над ресурсом владельца ownerID.
// hasOwner=false означает ресурс без владельца: изменять его не может никто.
//
// Чтение разрешено любому аутентифицированному пользователю, но видимый набор
// всегда заранее отфильтрован по владельцу на уровне репозиториев.
func Authorize(actor Actor, ownerID uint, hasOwner bool, op Operation) error {
	if err := Authenticate(actor); err != nil {
		return err
	}
	if op.IsSafe() {
		return nil
	}
	if !hasOwner || ownerID != actor.UserID {
		return fmt.Errorf("%w: user %d cannot %s this resource", apperrors.ErrForbidden, actor.UserID, op)
	}
	return nil
}

// AuthorizeQuiz применяет Authorize к викторине
func AuthorizeQuiz(actor Actor, quiz *entity.Quiz, op Operation) error {
	ownerID, ok := quiz.OwnerID()
	return Authorize(actor, ownerID, ok, op)
}

// AuthorizeCategory применяет Authorize к категории
func AuthorizeCategory(actor Actor, category *entity.Category, op Operation) error {
	return Authorize(actor, category.UserID, true, op)
}

// IsVisible - единственный предикат видимости викторины.
// Мягко удаленная викторина не видна никому, включая владельца.
func IsVisible(quiz *entity.Quiz) bool {
	return quiz != nil && !quiz.IsDeleted
}
