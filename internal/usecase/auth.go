package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	domainErrors "github.com/darkahs/storefront/internal/domain/errors"
	"github.com/darkahs/storefront/internal/domain/model"
	"github.com/darkahs/storefront/internal/domain/repository"
	pkgAuth "github.com/darkahs/storefront/internal/pkg/auth"
)

// AdminSubject is the token subject issued to the admin panel session.
const AdminSubject = "admin"

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users         repository.UserRepository
	hasher        pkgAuth.PasswordHasher
	tokens        pkgAuth.Strategy
	adminEmail    string
	adminPassword string
}

// NewAuthUseCase constructs AuthUseCase. Empty admin credentials disable
// the admin login entirely.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, adminEmail, adminPassword string) *AuthUseCase {
	return &AuthUseCase{
		users:         users,
		hasher:        hasher,
		tokens:        strategy,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

// Register creates a new user and returns a session token.
func (u *AuthUseCase) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, name, email, hash)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns a session token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// AuthenticateAdmin checks credentials against the configured admin account
// and issues a token carrying the admin subject.
func (u *AuthUseCase) AuthenticateAdmin(email, password string) (string, error) {
	if u.adminEmail == "" || u.adminPassword == "" {
		return "", domainErrors.ErrInvalidCredentials
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(u.adminEmail)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(u.adminPassword)) == 1
	if !emailOK || !passwordOK {
		return "", domainErrors.ErrInvalidCredentials
	}
	return u.tokens.IssueToken(AdminSubject)
}

// ParseToken extracts the subject from the provided token.
func (u *AuthUseCase) ParseToken(token string) (string, error) {
	if token == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id string) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
