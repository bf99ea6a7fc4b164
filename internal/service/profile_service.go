package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/policy"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// ProfileService предоставляет методы для работы с профилем пользователя.
// Статистику изменяет только ResultService.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// NewProfileService создает новый сервис профилей
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// GetProfile возвращает профиль пользователя, создавая пустой при отсутствии
func (s *ProfileService) GetProfile(ctx context.Context, actor policy.Actor) (*entity.UserProfile, error) {
	if err := policy.Authenticate(actor); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetOrCreate(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile for user %d: %w", actor.UserID, err)
	}
	profile.User = user
	return profile, nil
}

// UpdateBio изменяет описание профиля
func (s *ProfileService) UpdateBio(ctx context.Context, actor policy.Actor, bio string) (*entity.UserProfile, error) {
	if err := policy.Authenticate(actor); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(bio) > MaxBioLen {
		return nil, apperrors.NewValidationError("bio", fmt.Sprintf("Ensure this field has no more than %d characters.", MaxBioLen))
	}
	if err := s.profileRepo.UpdateBio(ctx, actor.UserID, bio); err != nil {
		return nil, fmt.Errorf("failed to update profile for user %d: %w", actor.UserID, err)
	}
	return s.GetProfile(ctx, actor)
}
