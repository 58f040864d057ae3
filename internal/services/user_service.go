package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lokalBack/internal/models"
	"lokalBack/internal/repositories"
	"lokalBack/utils"
)

type UserService struct {
	UserRepo     *repositories.UserRepository
	TokenManager *utils.Manager
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.AuthResponse, error) {
	if req.Role == "" {
		req.Role = models.RoleCustomer
	}
	if req.Role != models.RoleCustomer && req.Role != models.RoleProvider {
		return models.AuthResponse{}, models.ErrForbidden
	}

	existing, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return models.AuthResponse{}, err
	}
	if existing.Email != "" {
		return models.AuthResponse{}, models.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.AuthResponse{}, err
	}

	user, err := s.UserRepo.CreateUser(ctx, models.User{
		Email:    req.Email,
		Phone:    req.Phone,
		FullName: req.FullName,
		Password: string(hashedPassword),
		Role:     req.Role,
	})
	if err != nil {
		return models.AuthResponse{}, err
	}

	return s.issueTokens(ctx, user)
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.AuthResponse, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.AuthResponse{}, models.ErrInvalidCredentials
		}
		return models.AuthResponse{}, err
	}
	if !user.IsActive {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// RefreshTokens rotates the refresh token: the presented one is replaced in
// the same session row, so a stolen token stops working after first use.
func (s *UserService) RefreshTokens(ctx context.Context, refreshToken string) (models.AuthResponse, error) {
	session, err := s.UserRepo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if session.UserID == 0 || session.ExpiresAt.Before(time.Now()) {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}

	user, err := s.UserRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if !user.IsActive {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

func (s *UserService) issueTokens(ctx context.Context, user models.User) (models.AuthResponse, error) {
	accessToken, err := s.TokenManager.NewJWT(user.ID, user.Role, s.AccessTTL)
	if err != nil {
		return models.AuthResponse{}, err
	}
	refreshToken, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.AuthResponse{}, err
	}

	err = s.UserRepo.CreateSession(ctx, models.Session{
		UserID:       user.ID,
		Role:         user.Role,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.RefreshTTL),
	})
	if err != nil {
		return models.AuthResponse{}, err
	}

	user.Password = ""
	return models.AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *UserService) Logout(ctx context.Context, userID int) error {
	return s.UserRepo.DeleteSession(ctx, userID)
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, role string, page, pageSize int) (models.UserListResponse, error) {
	return s.UserRepo.ListUsers(ctx, role, page, pageSize)
}

func (s *UserService) UpdateUserRole(ctx context.Context, userID int, role string) error {
	if role != models.RoleCustomer && role != models.RoleProvider && role != models.RoleAdmin {
		return models.ErrForbidden
	}
	return s.UserRepo.UpdateUserRole(ctx, userID, role)
}

func (s *UserService) SetUserActive(ctx context.Context, userID int, active bool) error {
	return s.UserRepo.SetUserActive(ctx, userID, active)
}
