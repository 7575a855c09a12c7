package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/anjimamurali/BlogHub/internal/jwt"
	"github.com/anjimamurali/BlogHub/internal/model"
	"github.com/anjimamurali/BlogHub/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, token string) (*model.User, error)
	ListUsers(ctx context.Context) ([]repository.UserWithPostCount, error)
	UpdateUserRole(ctx context.Context, admin *model.User, targetID uuid.UUID, role string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Service
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Service) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a user with the default role and issues a first
// token. The existence checks are a fast path only; the store's unique
// constraints are the real arbiter and a late violation still maps to
// the same conflict.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, string, error) {
	if existing, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", ErrEmailTaken
	}
	if existing, err := s.userRepo.FindByUsername(ctx, username); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, "", conflictForConstraint(err)
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.TokenVersion)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login deliberately returns the same error for an unknown email and a
// wrong password so callers cannot enumerate accounts.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.TokenVersion)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Authenticate verifies the bearer token and resolves it to a live
// user. A token whose embedded version no longer matches the user's
// token_version was issued before a role change and is rejected.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, jwt.ErrInvalidCredential
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, jwt.ErrInvalidCredential
	}

	return user, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]repository.UserWithPostCount, error) {
	return s.userRepo.ListWithPostCount(ctx)
}

// UpdateUserRole rejects self-changes outright, even when the submitted
// role equals the admin's current one, to rule out self-demotion
// lockouts.
func (s *authService) UpdateUserRole(ctx context.Context, admin *model.User, targetID uuid.UUID, role string) (*model.User, error) {
	if admin.ID == targetID {
		return nil, ErrSelfRoleChange
	}

	parsed, ok := model.ParseRole(role)
	if !ok {
		return nil, ErrInvalidRole
	}

	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	if err := s.userRepo.UpdateRole(ctx, targetID, parsed); err != nil {
		return nil, err
	}

	target.Role = parsed
	target.TokenVersion++
	return target, nil
}

func conflictForConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.Contains(pgErr.ConstraintName, "username") {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}
