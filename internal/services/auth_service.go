package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshua-takyi/carhive/internal/helpers"
	"github.com/joshua-takyi/carhive/internal/models"
)

const sessionTTL = 24 * time.Hour

type AuthService struct {
	userRepo  models.UserRepo
	jwtSecret string
	logger    *slog.Logger
}

func NewAuthService(userRepo models.UserRepo, jwtSecret string, logger *slog.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func (as *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if err := models.Validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid registration data: %v", err)
	}

	_, err := as.userRepo.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, models.ErrEmailTaken
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}

	user := &models.User{
		ID:        helpers.GenerateID(helpers.UserIDPrefix),
		Email:     req.Email,
		Name:      req.Name,
		Role:      models.RoleCustomer,
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: time.Now(),
	}

	if err := as.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}

	cred := &models.Credential{
		UserID:       user.ID,
		Email:        user.Email,
		PasswordHash: helpers.HashPassword(req.Password),
	}
	if err := as.userRepo.SaveCredential(ctx, cred); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}

	as.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login checks the stored password hash and issues a session token carrying
// the user's role.
func (as *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := as.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}

	cred, err := as.userRepo.GetCredential(ctx, user.ID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}

	hash := helpers.HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(hash), []byte(cred.PasswordHash)) != 1 {
		return "", nil, models.ErrInvalidCredentials
	}

	token, err := helpers.GenerateToken(as.jwtSecret, user.ID, user.Email, user.Name, user.Role, sessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue session token: %v", err)
	}

	as.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return token, user, nil
}

func (as *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return as.userRepo.GetUserByID(ctx, id)
}

func (as *AuthService) ValidateToken(tokenStr string) (*helpers.SessionClaims, error) {
	return helpers.ValidateToken(as.jwtSecret, tokenStr)
}
