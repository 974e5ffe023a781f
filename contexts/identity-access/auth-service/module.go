package authservice

import (
	"log/slog"
	"time"

	"requisite/contexts/identity-access/auth-service/adapters/memory"
	"requisite/contexts/identity-access/auth-service/adapters/token"
	"requisite/contexts/identity-access/auth-service/application"
	"requisite/contexts/identity-access/auth-service/ports"
)

// Module is the auth-service composition root exposed to runtime wiring.
type Module struct {
	Login           application.PasswordLoginUseCase
	VerifyToken     application.VerifyTokenUseCase
	Register        application.RegisterUserUseCase
	SecurityContext application.SecurityContextUseCase
	Members         application.MemberAdminUseCase
	Tokens          ports.TokenSigner
	Store           *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Users       ports.UserStore
	Memberships ports.MembershipStore
	Members     ports.MemberStore
	Tokens      ports.TokenSigner
	Logger      *slog.Logger
}

// NewModule wires the authentication and security-context use cases using
// explicit ports.
func NewModule(deps Dependencies) Module {
	return Module{
		Login: application.PasswordLoginUseCase{
			Users:  deps.Users,
			Logger: deps.Logger,
		},
		VerifyToken: application.VerifyTokenUseCase{
			Users:  deps.Users,
			Tokens: deps.Tokens,
			Logger: deps.Logger,
		},
		Register: application.RegisterUserUseCase{
			Users:  deps.Users,
			Logger: deps.Logger,
		},
		SecurityContext: application.SecurityContextUseCase{
			Memberships: deps.Memberships,
			Logger:      deps.Logger,
		},
		Members: application.MemberAdminUseCase{
			Members: deps.Members,
			Logger:  deps.Logger,
		},
		Tokens: deps.Tokens,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters and a short-lived HS256 signer.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	signer, err := token.NewSigner("requisite-dev-secret", time.Hour, nil)
	if err != nil {
		panic(err)
	}
	module := NewModule(Dependencies{
		Users:       store,
		Memberships: store,
		Members:     store,
		Tokens:      signer,
		Logger:      logger,
	})
	module.Store = store
	return module
}
