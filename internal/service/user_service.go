package service

import (
	"context"
	"strings"

	"devmesh/internal/models"
	"devmesh/internal/repository"
	"devmesh/internal/validation"
)

// UserService provides profile business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns the full user record for the owner's own view.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies a partial profile edit. Only the allowed fields can
// change; email and password are not editable through this path.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in validation.ProfileEditInput) (*models.User, error) {
	if err := validation.ValidateProfileEdit(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Age != nil {
		user.Age = *in.Age
	}
	if in.Gender != nil {
		user.Gender = *in.Gender
	}
	if in.About != nil {
		user.About = *in.About
	}
	if in.PhotoURL != nil {
		user.PhotoURL = *in.PhotoURL
	}
	if in.Skills != nil {
		user.Skills = in.Skills
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
