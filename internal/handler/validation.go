package handler

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// RegisterValidators добавляет правила домена в валидатор gin.
// Вызывается один раз при сборке роутера.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return registerValidators(v)
}

func registerValidators(v *validator.Validate) error {
	// В путях ошибок используем имена полей из json-тегов
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v.RegisterValidation("difficulty", validateDifficulty)
}

// validateDifficulty принимает каноничные значения и локализованные псевдонимы
func validateDifficulty(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	if field.Kind() != reflect.String {
		return false
	}
	_, ok := entity.ParseDifficulty(field.String())
	return ok
}
