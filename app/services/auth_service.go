package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/rasoi/app/models"
	"github.com/shashiranjanraj/rasoi/app/repositories"
	"github.com/shashiranjanraj/rasoi/pkg/auth"
	"github.com/shashiranjanraj/rasoi/pkg/logger"
	"github.com/shashiranjanraj/rasoi/pkg/middleware"
	"github.com/shashiranjanraj/rasoi/pkg/storage"
)

// AuthService handles registration, login and profile management.
type AuthService struct {
	accounts repositories.AccountRepository
}

func NewAuthService(accounts repositories.AccountRepository) *AuthService {
	return &AuthService{accounts: accounts}
}

// RegisterInput carries the registration form. Image is the stored upload
// path and is filled by the controller, never by the client directly.
type RegisterInput struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PhoneNumber     string `json:"phoneNumber" validate:"nullable,min=7,max=20"`
	CateringService string `json:"cateringService" validate:"nullable,max=150"`
	Image           string `json:"-"`
}

// Register creates an account with the role fixed by the calling endpoint.
func (s *AuthService) Register(ctx context.Context, in RegisterInput, role models.Role) (models.Account, string, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.Account{}, "", err
	}

	account := models.Account{
		Name:        in.Name,
		Email:       in.Email,
		Password:    hash,
		Role:        role,
		PhoneNumber: in.PhoneNumber,
		Image:       in.Image,
	}
	if role == models.RoleManager {
		account.CateringService = in.CateringService
	}

	if err := s.accounts.Create(ctx, &account); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return models.Account{}, "", Invalid("User already exists")
		}
		return models.Account{}, "", err
	}

	token, err := auth.GenerateToken(account.ID.Hex())
	if err != nil {
		return models.Account{}, "", err
	}
	return account, token, nil
}

// LoginInput is the credentials payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and issues a token. A missing account and a
// wrong password produce the same message so the endpoint does not reveal
// which emails are registered.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (models.Account, string, error) {
	account, err := s.accounts.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Account{}, "", Unauthenticated("Invalid email or password")
		}
		return models.Account{}, "", err
	}

	if !auth.CheckPassword(account.Password, in.Password) {
		return models.Account{}, "", Unauthenticated("Invalid email or password")
	}

	token, err := auth.GenerateToken(account.ID.Hex())
	if err != nil {
		return models.Account{}, "", err
	}
	return account, token, nil
}

// Me returns the caller's account.
func (s *AuthService) Me(ctx context.Context, accountID string) (models.Account, error) {
	id, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return models.Account{}, NotFound("User not found!")
	}
	account, err := s.accounts.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Account{}, NotFound("User not found!")
	}
	return account, err
}

// ProfileInput carries the profile update form. Empty fields keep the
// stored value.
type ProfileInput struct {
	Name            string `json:"name" validate:"nullable,min=2,max=100"`
	Email           string `json:"email" validate:"nullable,email"`
	Password        string `json:"password" validate:"nullable,min=6"`
	PhoneNumber     string `json:"phoneNumber" validate:"nullable,min=7,max=20"`
	CateringService string `json:"cateringService" validate:"nullable,max=150"`
	Image           string `json:"-"`
}

// UpdateProfile overwrites the non-empty fields and issues a fresh token.
// Old tokens are not revoked; they stay valid until they expire.
func (s *AuthService) UpdateProfile(ctx context.Context, accountID string, in ProfileInput) (models.Account, string, error) {
	account, err := s.Me(ctx, accountID)
	if err != nil {
		return models.Account{}, "", err
	}

	if in.Name != "" {
		account.Name = in.Name
	}
	if in.Email != "" {
		account.Email = in.Email
	}
	if in.PhoneNumber != "" {
		account.PhoneNumber = in.PhoneNumber
	}
	if in.CateringService != "" && account.Role == models.RoleManager {
		account.CateringService = in.CateringService
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return models.Account{}, "", err
		}
		account.Password = hash
	}
	oldImage := account.Image
	if in.Image != "" {
		account.Image = in.Image
	}

	if err := s.accounts.Update(ctx, &account); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return models.Account{}, "", Invalid("User already exists")
		}
		return models.Account{}, "", err
	}

	if in.Image != "" && oldImage != "" && oldImage != in.Image {
		if err := storage.Delete(oldImage); err != nil {
			logger.WithCtx(ctx).Warn("failed to remove replaced profile image", "path", oldImage, "error", err)
		}
	}

	token, err := auth.GenerateToken(account.ID.Hex())
	if err != nil {
		return models.Account{}, "", err
	}
	return account, token, nil
}

// ResolvePrincipal is the middleware.Resolver used by the auth middleware.
// It re-fetches the account on every request so role changes are never
// served from a stale token.
func (s *AuthService) ResolvePrincipal(ctx context.Context, accountID string) (middleware.Principal, error) {
	account, err := s.Me(ctx, accountID)
	if err != nil {
		return middleware.Principal{}, err
	}
	return middleware.Principal{
		ID:    account.ID.Hex(),
		Name:  account.Name,
		Email: account.Email,
		Role:  string(account.Role),
	}, nil
}
