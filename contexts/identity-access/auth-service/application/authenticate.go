package application

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"requisite/contexts/identity-access/auth-service/domain/entities"
	domainerrors "requisite/contexts/identity-access/auth-service/domain/errors"
	"requisite/contexts/identity-access/auth-service/ports"
)

// DefaultDomain is assumed when a login request carries no domain.
const DefaultDomain = "local"

// PasswordLoginQuery is the request model for password authentication.
type PasswordLoginQuery struct {
	Domain   string
	UserName string
	Password string
}

// PasswordLoginUseCase verifies a (domain, userName, password) credential
// against stored state. Every failure mode is surfaced as not-authenticated,
// never as a system error, so callers cannot distinguish a missing user from
// a bad password or a revoked account.
type PasswordLoginUseCase struct {
	Users  ports.UserStore
	Logger *slog.Logger
}

func (u PasswordLoginUseCase) Execute(ctx context.Context, query PasswordLoginQuery) (entities.User, error) {
	logger := ResolveLogger(u.Logger)

	domain := strings.TrimSpace(query.Domain)
	if domain == "" {
		domain = DefaultDomain
	}
	userName := strings.TrimSpace(query.UserName)

	record, found, err := u.Users.GetCredential(ctx, domain, userName)
	if err != nil {
		return entities.User{}, err
	}
	if !found {
		logger.Info("login rejected for unknown user",
			"event", "auth_login_unknown_user",
			"module", "identity-access/auth-service",
			"layer", "application",
			"domain", domain,
			"user_name", userName,
		)
		return entities.User{}, domainerrors.ErrNotAuthenticated
	}

	if bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(query.Password)) != nil {
		logger.Info("login rejected for bad password",
			"event", "auth_login_bad_password",
			"module", "identity-access/auth-service",
			"layer", "application",
			"domain", domain,
			"user_name", userName,
		)
		return entities.User{}, domainerrors.ErrNotAuthenticated
	}

	if record.User.Revoked {
		logger.Warn("login rejected for revoked user",
			"event", "auth_login_revoked_user",
			"module", "identity-access/auth-service",
			"layer", "application",
			"domain", domain,
			"user_name", userName,
		)
		return entities.User{}, domainerrors.ErrNotAuthenticated
	}

	return record.User, nil
}

// VerifyTokenUseCase authenticates a bearer token. Verification fails closed:
// a malformed, expired, or tampered token yields no identity rather than an
// error. Structurally valid tokens are revalidated against live storage so a
// revoked or deleted user cannot ride a previously issued token.
type VerifyTokenUseCase struct {
	Users  ports.UserStore
	Tokens ports.TokenSigner
	Logger *slog.Logger
}

func (u VerifyTokenUseCase) Execute(ctx context.Context, token string) (entities.User, bool, error) {
	logger := ResolveLogger(u.Logger)

	claims, ok := u.Tokens.Verify(token)
	if !ok {
		return entities.User{}, false, nil
	}

	user, found, err := u.Users.GetUser(ctx, claims.Domain, claims.UserName)
	if err != nil {
		return entities.User{}, false, err
	}
	if !found || user.Revoked {
		logger.Warn("token rejected after live revalidation",
			"event", "auth_token_stale_identity",
			"module", "identity-access/auth-service",
			"layer", "application",
			"domain", claims.Domain,
			"user_name", claims.UserName,
			"found", found,
		)
		return entities.User{}, false, nil
	}
	return user, true, nil
}

// RegisterUserInput is the request model for user registration.
type RegisterUserInput struct {
	Domain       string
	UserName     string
	Password     string
	EmailAddress string
	FirstName    string
	LastName     string
}

// RegisterUserUseCase creates a local account with a bcrypt password hash.
type RegisterUserUseCase struct {
	Users  ports.UserStore
	Logger *slog.Logger
}

func (u RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (entities.User, error) {
	logger := ResolveLogger(u.Logger)

	domain := strings.TrimSpace(input.Domain)
	if domain == "" {
		domain = DefaultDomain
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return entities.User{}, err
	}

	user, err := u.Users.CreateUser(ctx, ports.CreateUserInput{
		Domain:       domain,
		UserName:     strings.TrimSpace(input.UserName),
		PasswordHash: string(hash),
		EmailAddress: strings.TrimSpace(input.EmailAddress),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
	})
	if err != nil {
		return entities.User{}, err
	}

	logger.Info("user registered",
		"event", "auth_user_registered",
		"module", "identity-access/auth-service",
		"layer", "application",
		"domain", user.Domain,
		"user_name", user.UserName,
	)
	return user, nil
}
