package application

import (
	"context"
	"errors"
	"testing"

	"requisite/contexts/identity-access/auth-service/adapters/memory"
	"requisite/contexts/identity-access/auth-service/domain/entities"
	domainerrors "requisite/contexts/identity-access/auth-service/domain/errors"
	"requisite/contexts/identity-access/auth-service/ports"
)

func TestAddOrganizationMemberEntityMismatchIsConflict(t *testing.T) {
	store := memory.NewStore()
	store.SeedUser("local", "bob", "s3cret", false)

	uc := MemberAdminUseCase{Members: store}
	_, err := uc.AddOrganizationMember(context.Background(), 5, ports.OrganizationMemberInput{
		UserName: "bob",
		EntityID: 6,
		Role:     entities.OrganizationRoleMember,
	})

	var conflict *domainerrors.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	members, listErr := store.ListOrganizationMembers(context.Background(), 5)
	if listErr != nil {
		t.Fatalf("list: %v", listErr)
	}
	if len(members) != 0 {
		t.Fatalf("expected no persistence after conflict, got %d members", len(members))
	}
}

func TestAddOrganizationMemberDefaultsEntityAndDomain(t *testing.T) {
	store := memory.NewStore()
	store.SeedUser("local", "bob", "s3cret", false)

	uc := MemberAdminUseCase{Members: store}
	member, err := uc.AddOrganizationMember(context.Background(), 5, ports.OrganizationMemberInput{
		UserName: "bob",
		Role:     entities.OrganizationRoleMember,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if member.Entity.ID != 5 {
		t.Fatalf("expected membership pinned to organization 5, got %d", member.Entity.ID)
	}
}

func TestUpdateOrganizationMemberWrongOrganizationIsNotFound(t *testing.T) {
	store := memory.NewStore()
	bob := store.SeedUser("local", "bob", "s3cret", false)
	membership := store.SeedOrganizationMembership(bob, entities.EntityRef{ID: 6}, entities.OrganizationRoleMember)

	uc := MemberAdminUseCase{Members: store}
	_, err := uc.UpdateOrganizationMember(context.Background(), 5, membership.ID, ports.OrganizationMemberInput{
		UserName: "bob",
		Role:     entities.OrganizationRoleOwner,
	})
	if !errors.Is(err, domainerrors.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestUpdateProductMemberEntityMismatchPersistsNothing(t *testing.T) {
	store := memory.NewStore()
	bob := store.SeedUser("local", "bob", "s3cret", false)
	membership := store.SeedProductMembership(bob, entities.EntityRef{ID: 9}, entities.ProductRoleContributor)

	uc := MemberAdminUseCase{Members: store}
	_, err := uc.UpdateProductMember(context.Background(), 9, membership.ID, ports.ProductMemberInput{
		UserName: "bob",
		EntityID: 10,
		Role:     entities.ProductRoleOwner,
	})

	var conflict *domainerrors.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	current, found, getErr := store.GetProductMember(context.Background(), membership.ID)
	if getErr != nil || !found {
		t.Fatalf("get member: found=%v err=%v", found, getErr)
	}
	if current.Role != entities.ProductRoleContributor {
		t.Fatalf("expected role unchanged, got %s", current.Role)
	}
}

func TestRemoveOrganizationMember(t *testing.T) {
	store := memory.NewStore()
	bob := store.SeedUser("local", "bob", "s3cret", false)
	membership := store.SeedOrganizationMembership(bob, entities.EntityRef{ID: 5}, entities.OrganizationRoleMember)

	uc := MemberAdminUseCase{Members: store}
	if err := uc.RemoveOrganizationMember(context.Background(), 5, membership.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if _, found, _ := store.GetOrganizationMember(context.Background(), membership.ID); found {
		t.Fatalf("expected membership removed")
	}
}
