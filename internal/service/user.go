package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"WebStarter/internal/model"
	"WebStarter/internal/repo"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserService implements registration and credential checking on top of the
// user repository.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// Register hashes the password and creates the account. Returns
// ErrUsernameTaken when the name is already used.
func (s *UserService) Register(ctx context.Context, username, password string) (*model.User, error) {
	existing, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateUser(ctx, &model.User{Username: username, Password: string(hash)})
}

// Login verifies the credentials. An unknown username and a wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *UserService) SetAvatar(ctx context.Context, id int64, avatarURL string) error {
	return s.repo.UpdateAvatar(ctx, id, avatarURL)
}

func (s *UserService) ListUsers(ctx context.Context, page, perPage int, search string) ([]model.User, repo.Pagination, error) {
	return s.repo.ListUsers(ctx, page, perPage, search)
}
