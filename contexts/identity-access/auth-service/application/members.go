package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"requisite/contexts/identity-access/auth-service/domain/entities"
	domainerrors "requisite/contexts/identity-access/auth-service/domain/errors"
	"requisite/contexts/identity-access/auth-service/ports"
)

// MemberAdminUseCase implements the team-management operations on
// organization and product memberships. Mutations verify that the membership
// targeted by the request body belongs to the URI-resolved entity before any
// persistence happens; a mismatch is a conflict, not a not-found, because the
// caller supplied two contradictory identifiers.
type MemberAdminUseCase struct {
	Members ports.MemberStore
	Logger  *slog.Logger
}

func (u MemberAdminUseCase) ListOrganizationMembers(ctx context.Context, orgID int) ([]entities.OrganizationMembership, error) {
	return u.Members.ListOrganizationMembers(ctx, orgID)
}

func (u MemberAdminUseCase) AddOrganizationMember(
	ctx context.Context,
	orgID int,
	input ports.OrganizationMemberInput,
) (entities.OrganizationMembership, error) {
	if input.EntityID != 0 && input.EntityID != orgID {
		return entities.OrganizationMembership{}, domainerrors.NewConflict(
			fmt.Sprintf("membership entity id %d does not match organization %d", input.EntityID, orgID),
		)
	}
	input.EntityID = orgID
	if strings.TrimSpace(input.UserDomain) == "" {
		input.UserDomain = DefaultDomain
	}
	return u.Members.AddOrganizationMember(ctx, input)
}

func (u MemberAdminUseCase) UpdateOrganizationMember(
	ctx context.Context,
	orgID int,
	memberID int,
	input ports.OrganizationMemberInput,
) (entities.OrganizationMembership, error) {
	if input.EntityID != 0 && input.EntityID != orgID {
		return entities.OrganizationMembership{}, domainerrors.NewConflict(
			fmt.Sprintf("membership entity id %d does not match organization %d", input.EntityID, orgID),
		)
	}

	existing, found, err := u.Members.GetOrganizationMember(ctx, memberID)
	if err != nil {
		return entities.OrganizationMembership{}, err
	}
	if !found || existing.Entity.ID != orgID {
		return entities.OrganizationMembership{}, domainerrors.ErrMemberNotFound
	}
	return u.Members.UpdateOrganizationMember(ctx, memberID, input.Role)
}

func (u MemberAdminUseCase) RemoveOrganizationMember(ctx context.Context, orgID int, memberID int) error {
	existing, found, err := u.Members.GetOrganizationMember(ctx, memberID)
	if err != nil {
		return err
	}
	if !found || existing.Entity.ID != orgID {
		return domainerrors.ErrMemberNotFound
	}
	return u.Members.RemoveOrganizationMember(ctx, memberID)
}

func (u MemberAdminUseCase) ListProductMembers(ctx context.Context, productID int) ([]entities.ProductMembership, error) {
	return u.Members.ListProductMembers(ctx, productID)
}

func (u MemberAdminUseCase) AddProductMember(
	ctx context.Context,
	productID int,
	input ports.ProductMemberInput,
) (entities.ProductMembership, error) {
	if input.EntityID != 0 && input.EntityID != productID {
		return entities.ProductMembership{}, domainerrors.NewConflict(
			fmt.Sprintf("membership entity id %d does not match product %d", input.EntityID, productID),
		)
	}
	input.EntityID = productID
	if strings.TrimSpace(input.UserDomain) == "" {
		input.UserDomain = DefaultDomain
	}
	return u.Members.AddProductMember(ctx, input)
}

func (u MemberAdminUseCase) UpdateProductMember(
	ctx context.Context,
	productID int,
	memberID int,
	input ports.ProductMemberInput,
) (entities.ProductMembership, error) {
	if input.EntityID != 0 && input.EntityID != productID {
		return entities.ProductMembership{}, domainerrors.NewConflict(
			fmt.Sprintf("membership entity id %d does not match product %d", input.EntityID, productID),
		)
	}

	existing, found, err := u.Members.GetProductMember(ctx, memberID)
	if err != nil {
		return entities.ProductMembership{}, err
	}
	if !found || existing.Entity.ID != productID {
		return entities.ProductMembership{}, domainerrors.ErrMemberNotFound
	}
	return u.Members.UpdateProductMember(ctx, memberID, input.Role)
}

func (u MemberAdminUseCase) RemoveProductMember(ctx context.Context, productID int, memberID int) error {
	existing, found, err := u.Members.GetProductMember(ctx, memberID)
	if err != nil {
		return err
	}
	if !found || existing.Entity.ID != productID {
		return domainerrors.ErrMemberNotFound
	}
	return u.Members.RemoveProductMember(ctx, memberID)
}
