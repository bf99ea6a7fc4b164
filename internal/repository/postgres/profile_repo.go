package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// ProfileRepo реализует repository.ProfileRepository
type ProfileRepo struct {
	db *gorm.DB
}

// NewProfileRepo создает новый репозиторий профилей
func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// GetOrCreate возвращает профиль пользователя, создавая пустой при первом обращении
func (r *ProfileRepo) GetOrCreate(ctx context.Context, userID uint) (*entity.UserProfile, error) {
	var profile entity.UserProfile
	err := r.db.WithContext(ctx).
		Where(entity.UserProfile{UserID: userID}).
		FirstOrCreate(&profile).Error
	if err != nil {
		// параллельный запрос успел создать профиль первым
		if errors.Is(translateError(err), apperrors.ErrConflict) {
			err = r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
		}
		if err != nil {
			return nil, translateError(err)
		}
	}
	return &profile, nil
}

// UpdateBio обновляет описание профиля, не затрагивая статистику
func (r *ProfileRepo) UpdateBio(ctx context.Context, userID uint, bio string) error {
	profile, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(profile).Update("bio", bio).Error
}
