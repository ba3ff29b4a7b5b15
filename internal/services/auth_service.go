package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/khoirulmuhlisin/unitproduksi/internal/models"
	"github.com/khoirulmuhlisin/unitproduksi/pkg/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthResponse is returned on a successful login.
type AuthResponse struct {
	User        models.User `json:"user"`
	AccessToken string      `json:"access_token"`
}

// Operator is a configured terminal account: a demo login gate, not a
// user directory. Passwords are bcrypt-hashed at construction so plain
// text never lives past startup.
type Operator struct {
	ID          string
	Username    string
	Role        string
	DisplayName string
	Password    string
}

// AuthService is the login gate for the shop terminal.
type AuthService interface {
	Login(req models.Credentials) (*AuthResponse, error)
	GetUserProfile(username string) (*models.User, error)
}

type authService struct {
	users map[string]operatorRecord
}

type operatorRecord struct {
	user models.User
	hash []byte
}

// NewAuthService hashes the configured operator passwords and creates a
// new instance of AuthService.
func NewAuthService(operators []Operator) (AuthService, error) {
	users := make(map[string]operatorRecord, len(operators))
	for _, op := range operators {
		hash, err := bcrypt.GenerateFromPassword([]byte(op.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password for %s: %w", op.Username, err)
		}
		users[op.Username] = operatorRecord{
			user: models.User{
				ID:          op.ID,
				Username:    op.Username,
				Role:        op.Role,
				DisplayName: op.DisplayName,
			},
			hash: hash,
		}
	}
	return &authService{users: users}, nil
}

// DefaultOperators returns the two demo accounts, with passwords
// overridable from the environment.
func DefaultOperators() []Operator {
	return []Operator{
		{
			ID:          "1",
			Username:    utils.Getenv("ADMIN_USERNAME", "admin"),
			Password:    utils.Getenv("ADMIN_PASSWORD", "admin123"),
			Role:        "admin",
			DisplayName: "Administrator",
		},
		{
			ID:          "2",
			Username:    utils.Getenv("STAFF_USERNAME", "staff"),
			Password:    utils.Getenv("STAFF_PASSWORD", "staff123"),
			Role:        "staff",
			DisplayName: "Staff Toko",
		},
	}
}

func (s *authService) Login(req models.Credentials) (*AuthResponse, error) {
	rec, ok := s.users[req.Username]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.hash, []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateAccessToken(rec.user.Username, rec.user.Role, rec.user.DisplayName)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &AuthResponse{User: rec.user, AccessToken: token}, nil
}

func (s *authService) GetUserProfile(username string) (*models.User, error) {
	rec, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	user := rec.user
	return &user, nil
}
