package application

import (
	"context"
	"errors"
	"testing"

	"requisite/contexts/identity-access/auth-service/adapters/memory"
	"requisite/contexts/identity-access/auth-service/domain/entities"
)

// failingMemberships answers the admin check but fails any membership fetch,
// proving that admins never touch the membership lists.
type failingMemberships struct {
	admin bool
}

func (m failingMemberships) IsSystemAdmin(context.Context, int) (bool, error) {
	return m.admin, nil
}

func (m failingMemberships) ListOrganizationMemberships(context.Context, int) ([]entities.OrganizationMembership, error) {
	return nil, errors.New("orgs backend down")
}

func (m failingMemberships) ListProductMemberships(context.Context, int) ([]entities.ProductMembership, error) {
	return nil, errors.New("products backend down")
}

func TestSecurityContextAdminSkipsMembershipFetches(t *testing.T) {
	uc := SecurityContextUseCase{Memberships: failingMemberships{admin: true}}

	sc, err := uc.Execute(context.Background(), entities.User{ID: 1})
	if err != nil {
		t.Fatalf("expected admin context despite failing membership backend, got %v", err)
	}
	if !sc.IsSystemAdmin {
		t.Fatalf("expected admin flag set")
	}
	if len(sc.OrgMemberships) != 0 || len(sc.ProductMemberships) != 0 {
		t.Fatalf("expected unresolved membership lists for admin, got %+v", sc)
	}
}

func TestSecurityContextMembershipFailureAborts(t *testing.T) {
	uc := SecurityContextUseCase{Memberships: failingMemberships{admin: false}}

	if _, err := uc.Execute(context.Background(), entities.User{ID: 1}); err == nil {
		t.Fatalf("expected membership fetch failure to abort")
	}
}

func TestSecurityContextCollectsBothMembershipKinds(t *testing.T) {
	store := memory.NewStore()
	user := store.SeedUser("local", "alice", "s3cret", false)
	store.SeedOrganizationMembership(user, entities.EntityRef{ID: 5, Name: "Acme"}, entities.OrganizationRoleMember)
	store.SeedProductMembership(user, entities.EntityRef{ID: 9, Name: "Storefront"}, entities.ProductRoleContributor)

	uc := SecurityContextUseCase{Memberships: store}
	sc, err := uc.Execute(context.Background(), user)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if sc.IsSystemAdmin {
		t.Fatalf("expected non-admin context")
	}
	if len(sc.OrgMemberships) != 1 || sc.OrgMemberships[0].Entity.ID != 5 {
		t.Fatalf("unexpected org memberships %+v", sc.OrgMemberships)
	}
	if len(sc.ProductMemberships) != 1 || sc.ProductMemberships[0].Entity.ID != 9 {
		t.Fatalf("unexpected product memberships %+v", sc.ProductMemberships)
	}
}

func TestAuthorizedForOrganizationExactRoleMatch(t *testing.T) {
	sc := entities.SecurityContext{
		OrgMemberships: []entities.OrganizationMembership{
			{Entity: entities.EntityRef{ID: 5}, Role: entities.OrganizationRoleOwner},
		},
	}

	if !sc.AuthorizedForOrganization(5, "") {
		t.Fatalf("expected any-role check to pass for a member")
	}
	if !sc.AuthorizedForOrganization(5, entities.OrganizationRoleOwner) {
		t.Fatalf("expected exact role match to pass")
	}
	if sc.AuthorizedForOrganization(5, entities.OrganizationRoleMember) {
		t.Fatalf("OWNER must not satisfy a MEMBER-only check")
	}
	if sc.AuthorizedForOrganization(6, "") {
		t.Fatalf("expected other organization to be denied")
	}
}

func TestAuthorizedForProductAdminBypass(t *testing.T) {
	sc := entities.SecurityContext{IsSystemAdmin: true}

	if !sc.AuthorizedForProduct(42, entities.ProductRoleOwner) {
		t.Fatalf("expected admin to bypass product role checks")
	}
}
