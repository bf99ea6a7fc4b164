package dto

import (
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/service"
)

// CategoryRequest - тело POST /categories
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryReplaceRequest - тело PUT /categories/:id; опущенное описание не меняется
type CategoryReplaceRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CategoryPatchRequest - тело PATCH /categories/:id
type CategoryPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CategoryResponse представляет категорию в ответе клиенту
type CategoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UserID      uint      `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToInput преобразует запрос в данные сервиса
func (r *CategoryRequest) ToInput() service.CategoryInput {
	return service.CategoryInput{Name: r.Name, Description: r.Description}
}

// ToReplacement преобразует PUT-запрос в обновление категории
func (r *CategoryReplaceRequest) ToReplacement() service.CategoryUpdate {
	return service.CategoryUpdate{Name: &r.Name, Description: r.Description}
}

// ToUpdate преобразует PATCH-запрос в частичное обновление
func (r *CategoryPatchRequest) ToUpdate() service.CategoryUpdate {
	return service.CategoryUpdate{Name: r.Name, Description: r.Description}
}

// NewCategoryResponse создает DTO для категории
func NewCategoryResponse(c *entity.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		UserID:      c.UserID,
		CreatedAt:   c.CreatedAt,
	}
}

// NewListCategoryResponse создает список DTO категорий
func NewListCategoryResponse(categories []entity.Category) []*CategoryResponse {
	result := make([]*CategoryResponse, 0, len(categories))
	for i := range categories {
		result = append(result, NewCategoryResponse(&categories[i]))
	}
	return result
}
