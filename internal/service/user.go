package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vadimbarashkov/cookie-keeper/internal/database"
	"github.com/vadimbarashkov/cookie-keeper/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when login fails because the user
	// doesn't exist or the password doesn't match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned when an access token fails verification.
	ErrInvalidToken = errors.New("invalid token")
)

// UserRepository defines the interface for working with users at the
// business logic layer.
type UserRepository interface {
	// Create inserts a new user with the given username and password hash.
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

// UserService provides account registration, login and access token handling.
type UserService struct {
	repo      UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewUserService creates a new instance of UserService with the provided
// repository, signing secret and access token lifetime.
func NewUserService(repo UserRepository, jwtSecret []byte, tokenTTL time.Duration) *UserService {
	return &UserService{
		repo:      repo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	const op = "service.UserService.Register"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user, err := s.repo.Create(ctx, username, string(hash))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to register user: %w", op, err)
	}

	return user, nil
}

// Login verifies the credentials and issues a signed access token.
// Unknown usernames and wrong passwords both map to ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	const op = "service.UserService.Login"

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return "", nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	return token, user, nil
}

// GetUser retrieves the account behind an authenticated user id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "service.UserService.GetUser"

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	return user, nil
}

func (s *UserService) generateToken(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})

	return token.SignedString(s.jwtSecret)
}

// VerifyToken validates a signed access token and returns the user id it
// carries. Expired, malformed or foreign-signed tokens map to ErrInvalidToken.
func (s *UserService) VerifyToken(tokenString string) (int64, error) {
	const op = "service.UserService.VerifyToken"

	claims := new(tokenClaims)

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return claims.UserID, nil
}
