package service

import (
	"errors"
	"log"

	"go-stock-opname/internal/model"
	"go-stock-opname/internal/repository"
	"go-stock-opname/pkg/jwt"

	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("email atau password salah")

type AuthService interface {
	Login(email, password string) (string, *model.User, error)
	SeedAdmin()
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(uRepo repository.UserRepository) AuthService {
	return &authService{userRepo: uRepo}
}

func (s *authService) Login(email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.IsActive {
		return "", nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// SeedAdmin creates the default admin account when no such user exists
func (s *authService) SeedAdmin() {
	if _, err := s.userRepo.FindByEmail("admin@example.com"); err == nil {
		return
	}

	admin := &model.User{
		Email:    "admin@example.com",
		FullName: "Administrator",
		IsActive: true,
	}
	if err := admin.SetPassword("admin123"); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}
	if err := s.userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
		return
	}
	log.Println("Admin user created: admin@example.com / admin123")
}
