package entity

import "time"

// Category представляет категорию викторин пользователя.
// Пара (Name, UserID) уникальна.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex:idx_categories_name_user" json:"name"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	UserID      uint      `gorm:"not null;index;uniqueIndex:idx_categories_name_user" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// DefaultCategory описывает категорию, создаваемую при регистрации
type DefaultCategory struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
}

// ForUser создает категорию пользователя из шаблона
func (d DefaultCategory) ForUser(userID uint) Category {
	return Category{
		Name:        d.Name,
		Description: d.Description,
		UserID:      userID,
	}
}
