package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
	"github.com/essaylab/essaylab-backend/internal/core/ports"
)

const minPasswordLength = 6

type AuthUseCase struct {
	users  ports.UserRepository
	tokens ports.TokenIssuer
}

func NewAuthUseCase(users ports.UserRepository, tokens ports.TokenIssuer) *AuthUseCase {
	return &AuthUseCase{
		users:  users,
		tokens: tokens,
	}
}

func (uc *AuthUseCase) Register(ctx context.Context, name, email, password, confirmPassword string) (*domain.AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" || email == "" || password == "" || confirmPassword == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "register", errors.New("all fields are required"))
	}
	if password != confirmPassword {
		return nil, domain.WrapError(domain.ErrInvalidInput, "register", errors.New("passwords do not match"))
	}
	if len(password) < minPasswordLength {
		return nil, domain.WrapError(domain.ErrInvalidInput, "register",
			fmt.Errorf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return uc.authResult(user)
}

// Login answers unknown emails and wrong passwords with the same error so
// the response never leaks whether an account exists.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "login", errors.New("email and password are required"))
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsKind(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	return uc.authResult(user)
}

func (uc *AuthUseCase) Profile(ctx context.Context, email string) (*domain.User, error) {
	user, err := uc.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	return user, nil
}

func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (uc *AuthUseCase) authResult(user *domain.User) (*domain.AuthResult, error) {
	token, err := uc.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &domain.AuthResult{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
