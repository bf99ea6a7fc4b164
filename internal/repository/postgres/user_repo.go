package postgres

import (
	"context"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

var _ repository.UserRepository = (*UserRepo)(nil)

// CreateWithBootstrap создает пользователя, его пустой профиль и категории по умолчанию.
// Если любой шаг не удался, пользователь не создается.
func (r *UserRepo) CreateWithBootstrap(ctx context.Context, user *entity.User, defaults []entity.DefaultCategory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return translateError(err)
		}

		profile := entity.UserProfile{UserID: user.ID}
		if err := tx.Omit(clause.Associations).Create(&profile).Error; err != nil {
			return translateError(err)
		}
		user.Profile = &profile

		if len(defaults) == 0 {
			return nil
		}
		categories := make([]entity.Category, 0, len(defaults))
		for _, d := range defaults {
			categories = append(categories, d.ForUser(user.ID))
		}
		if err := tx.Create(&categories).Error; err != nil {
			log.Printf("[UserRepo] Ошибка создания категорий по умолчанию для username=%s: %v", user.Username, err)
			return translateError(err)
		}
		return nil
	})
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetByUsername возвращает пользователя по имени пользователя
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// ListIDs возвращает идентификаторы всех пользователей
func (r *UserRepo) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&entity.User{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}
