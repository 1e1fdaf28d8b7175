package qkart

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/talkincode/qkart/internal/domain"
	"github.com/talkincode/qkart/pkg/apierrors"
	"github.com/talkincode/qkart/pkg/common"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minAddressLength = 20

// RegisterForm is the registration payload
type RegisterForm struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// UserService manages user accounts
type UserService struct {
	userRepo UserRepository
}

func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.NotFound("User not found")
	}
	if err != nil {
		return nil, apierrors.Internal("Failed to query user")
	}
	return user, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.NotFound("User not found")
	}
	if err != nil {
		return nil, apierrors.Internal("Failed to query user")
	}
	return user, nil
}

// CreateUser registers a new account with a hashed password and the
// default address and wallet credit.
//
// A duplicate email deliberately reports status 200 with "Email already
// taken" instead of a conflict status; clients depend on this shape.
func (s *UserService) CreateUser(ctx context.Context, form RegisterForm) (*domain.User, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)

	if form.Email == "" {
		return nil, apierrors.BadRequest("Email is not allowed to be empty")
	}
	if !common.IsEmailValid(form.Email) {
		return nil, apierrors.BadRequest("Email must be a valid email")
	}
	if form.Name == "" {
		return nil, apierrors.BadRequest("Name field is required")
	}
	if form.Password == "" {
		return nil, apierrors.BadRequest("Password field is required")
	}
	if len(form.Password) < 8 {
		return nil, apierrors.BadRequest("Password must be at least 8 characters")
	}
	if !common.IsStrongPassword(form.Password) {
		return nil, apierrors.BadRequest("Password must contain at least one letter and one number")
	}

	taken, err := s.userRepo.EmailTaken(ctx, form.Email)
	if err != nil {
		return nil, apierrors.Internal("Failed to query user")
	}
	if taken {
		return nil, apierrors.New(http.StatusOK, "EMAIL_TAKEN", "Email already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierrors.Internal("Failed to hash password")
	}

	user := &domain.User{
		ID:          common.UUIDint64(),
		Name:        form.Name,
		Email:       form.Email,
		Password:    string(hashed),
		Address:     domain.DefaultAddress,
		WalletMoney: domain.DefaultWalletMoney,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apierrors.Internal("Failed to create user")
	}
	return user, nil
}

// SetAddress replaces the user's shipping address
func (s *UserService) SetAddress(ctx context.Context, user *domain.User, address string) (string, error) {
	address = strings.TrimSpace(address)
	if len(address) < minAddressLength {
		return "", apierrors.BadRequest("Address shouldn't be less than 20 characters")
	}
	if err := s.userRepo.UpdateAddress(ctx, user.ID, address); err != nil {
		return "", apierrors.Internal("Failed to update address")
	}
	user.Address = address
	return address, nil
}
