package qkart

import (
	"context"
	"errors"

	"github.com/talkincode/qkart/internal/domain"
	"github.com/talkincode/qkart/pkg/apierrors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService validates credentials against the user store
type AuthService struct {
	userRepo UserRepository
}

func NewAuthService(userRepo UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// LoginWithEmailAndPassword returns the account matching the
// credentials. A missing user and a wrong password report the same
// error so the response does not leak which emails exist.
func (s *AuthService) LoginWithEmailAndPassword(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.Unauthorized("Incorrect email or password")
	}
	if err != nil {
		return nil, apierrors.Internal("Failed to query user")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apierrors.Unauthorized("Incorrect email or password")
	}
	return user, nil
}
