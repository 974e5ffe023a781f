package application

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"requisite/contexts/identity-access/auth-service/domain/entities"
	"requisite/contexts/identity-access/auth-service/ports"
)

// SecurityContextUseCase computes the per-request security context for an
// authenticated caller. The admin flag is resolved first; non-admins then
// fetch organization and product memberships concurrently. Membership lists
// are left unresolved for system admins because every downstream check
// short-circuits on the admin flag.
type SecurityContextUseCase struct {
	Memberships ports.MembershipStore
	Logger      *slog.Logger
}

func (u SecurityContextUseCase) Execute(ctx context.Context, user entities.User) (entities.SecurityContext, error) {
	logger := ResolveLogger(u.Logger)

	isAdmin, err := u.Memberships.IsSystemAdmin(ctx, user.ID)
	if err != nil {
		return entities.SecurityContext{}, err
	}
	if isAdmin {
		return entities.SecurityContext{User: user, IsSystemAdmin: true}, nil
	}

	// Two independent fetches with no ordering guarantee between them.
	// Either failure aborts the context computation.
	var (
		orgMemberships     []entities.OrganizationMembership
		productMemberships []entities.ProductMembership
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		items, err := u.Memberships.ListOrganizationMemberships(groupCtx, user.ID)
		if err != nil {
			return err
		}
		orgMemberships = items
		return nil
	})
	group.Go(func() error {
		items, err := u.Memberships.ListProductMemberships(groupCtx, user.ID)
		if err != nil {
			return err
		}
		productMemberships = items
		return nil
	})
	if err := group.Wait(); err != nil {
		logger.Error("membership resolution failed",
			"event", "auth_security_context_failed",
			"module", "identity-access/auth-service",
			"layer", "application",
			"user_id", user.ID,
			"error", err.Error(),
		)
		return entities.SecurityContext{}, err
	}

	return entities.SecurityContext{
		User:               user,
		OrgMemberships:     orgMemberships,
		ProductMemberships: productMemberships,
	}, nil
}
