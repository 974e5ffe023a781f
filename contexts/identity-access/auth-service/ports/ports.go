package ports

import (
	"context"
	"time"

	"requisite/contexts/identity-access/auth-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// CredentialRecord pairs a stored user with its password hash. The hash never
// leaves the application layer.
type CredentialRecord struct {
	User         entities.User
	PasswordHash string
}

// CreateUserInput captures a registration request after validation.
type CreateUserInput struct {
	Domain       string
	UserName     string
	PasswordHash string
	EmailAddress string
	FirstName    string
	LastName     string
}

// UserStore is the credential/identity storage collaborator.
type UserStore interface {
	GetCredential(ctx context.Context, domain string, userName string) (CredentialRecord, bool, error)
	GetUser(ctx context.Context, domain string, userName string) (entities.User, bool, error)
	CreateUser(ctx context.Context, input CreateUserInput) (entities.User, error)
}

// MembershipStore resolves system-admin status and membership lists. Results
// are never cached across requests: a revoked membership must take effect on
// the next request.
type MembershipStore interface {
	IsSystemAdmin(ctx context.Context, userID int) (bool, error)
	ListOrganizationMemberships(ctx context.Context, userID int) ([]entities.OrganizationMembership, error)
	ListProductMemberships(ctx context.Context, userID int) ([]entities.ProductMembership, error)
}

// OrganizationMemberInput captures an org membership create/update request.
type OrganizationMemberInput struct {
	UserDomain string
	UserName   string
	EntityID   int
	Role       entities.OrganizationRole
}

// ProductMemberInput captures a product membership create/update request.
type ProductMemberInput struct {
	UserDomain string
	UserName   string
	EntityID   int
	Role       entities.ProductRole
}

// MemberStore is the membership administration collaborator used by the
// team-management handlers.
type MemberStore interface {
	ListOrganizationMembers(ctx context.Context, orgID int) ([]entities.OrganizationMembership, error)
	GetOrganizationMember(ctx context.Context, memberID int) (entities.OrganizationMembership, bool, error)
	AddOrganizationMember(ctx context.Context, input OrganizationMemberInput) (entities.OrganizationMembership, error)
	UpdateOrganizationMember(ctx context.Context, memberID int, role entities.OrganizationRole) (entities.OrganizationMembership, error)
	RemoveOrganizationMember(ctx context.Context, memberID int) error

	ListProductMembers(ctx context.Context, productID int) ([]entities.ProductMembership, error)
	GetProductMember(ctx context.Context, memberID int) (entities.ProductMembership, bool, error)
	AddProductMember(ctx context.Context, input ProductMemberInput) (entities.ProductMembership, error)
	UpdateProductMember(ctx context.Context, memberID int, role entities.ProductRole) (entities.ProductMembership, error)
	RemoveProductMember(ctx context.Context, memberID int) error
}

// TokenClaims is the identity embedded in a signed token. Tokens are not
// trusted as a cache: claims must be revalidated against live storage.
type TokenClaims struct {
	Domain   string
	UserName string
}

// TokenSigner signs and verifies opaque bearer tokens. Verify fails closed:
// any verification error reports no identity rather than an error.
type TokenSigner interface {
	Sign(user entities.User) (string, error)
	Verify(token string) (TokenClaims, bool)
}
