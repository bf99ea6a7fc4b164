package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// CategoryRepo реализует repository.CategoryRepository
type CategoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepo создает новый репозиторий категорий
func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// Create создает категорию
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	return translateError(r.db.WithContext(ctx).Create(category).Error)
}

// GetByID возвращает категорию по ID без фильтра по владельцу
func (r *CategoryRepo) GetByID(ctx context.Context, id uint) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}

// GetOwnedByID возвращает категорию, только если она принадлежит ownerID
func (r *CategoryRepo) GetOwnedByID(ctx context.Context, id, ownerID uint) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&category).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}

// ListByOwner возвращает категории пользователя по алфавиту
func (r *CategoryRepo) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("name, id").
		Find(&categories).Error
	return categories, err
}

// ExistsByName проверяет, занято ли имя у владельца
func (r *CategoryRepo) ExistsByName(ctx context.Context, ownerID uint, name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Category{}).
		Where("user_id = ? AND name = ?", ownerID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update обновляет имя и описание категории
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	res := r.db.WithContext(ctx).Model(category).
		Select("name", "description", "updated_at").
		Updates(category)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete удаляет категорию. Ссылки викторин обнуляются ограничением ON DELETE SET NULL.
func (r *CategoryRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// EnsureDefaults создает недостающие категории по умолчанию, не трогая существующие
func (r *CategoryRepo) EnsureDefaults(ctx context.Context, ownerID uint, defaults []entity.DefaultCategory) (int, error) {
	created := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range defaults {
			category := d.ForUser(ownerID)
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}, {Name: "user_id"}},
				DoNothing: true,
			}).Create(&category)
			if res.Error != nil {
				return res.Error
			}
			created += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
