package service

import (
	"fmt"
	"strings"

	"github.com/monohq/mono/internal/model"
	"github.com/monohq/mono/internal/repository"
	"github.com/monohq/mono/internal/validation"
)

type UserService struct {
	userRepository repository.UserRepository
	authService    *AuthService
}

func NewUserService(userRepository repository.UserRepository, authService *AuthService) *UserService {
	return &UserService{
		userRepository: userRepository,
		authService:    authService,
	}
}

func (s *UserService) All() ([]*model.User, error) {
	return s.userRepository.All()
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepository.ByID(id)
}

// Update applies a partial profile update. A supplied password is validated
// and bcrypt-hashed before it is stored.
func (s *UserService) Update(id string, patch *model.UserPatch) (*model.User, error) {
	if patch.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*patch.Email))
		if err := validation.ValidateEmail(email); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		patch.Email = &email
	}

	if patch.Username != nil {
		if err := validation.ValidateUsername(*patch.Username); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	if patch.Password != nil {
		if err := validation.ValidatePassword(*patch.Password); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		hash, err := s.authService.HashPassword(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		patch.Password = &hash
	}

	return s.userRepository.Update(id, patch)
}
