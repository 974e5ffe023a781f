package application

import (
	"context"
	"errors"
	"testing"

	"requisite/contexts/requirements/tracking-service/adapters/memory"
	domainerrors "requisite/contexts/requirements/tracking-service/domain/errors"
	"requisite/contexts/requirements/tracking-service/ports"
)

func TestListOrganizationsScopedByViewer(t *testing.T) {
	store := memory.NewStore()
	mine := store.SeedOrganization("Acme")
	store.SeedOrganization("Globex")

	service := Service{Repo: store}

	scoped, err := service.ListOrganizations(context.Background(), Viewer{OrganizationIDs: []int{mine.ID}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(scoped) != 1 || scoped[0].ID != mine.ID {
		t.Fatalf("expected only membership organizations, got %v", scoped)
	}

	all, err := service.ListOrganizations(context.Background(), Viewer{IsSystemAdmin: true})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected admin to see everything, got %v", all)
	}
}

func TestListVisibleProductsUnionsAndSorts(t *testing.T) {
	store := memory.NewStore()
	org := store.SeedOrganization("Acme")
	store.SeedProduct(org.ID, "Zeta Public", true)
	mine := store.SeedProduct(org.ID, "Alpha Private", false)
	store.SeedProduct(org.ID, "Hidden Private", false)

	service := Service{Repo: store}
	visible, err := service.ListVisibleProducts(context.Background(), org.ID, Viewer{ProductIDs: []int{mine.ID}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible products, got %v", visible)
	}
	if visible[0].Name != "Alpha Private" || visible[1].Name != "Zeta Public" {
		t.Fatalf("expected name-sorted union, got %v", visible)
	}
}

func TestListVisibleProductsAdminSeesAll(t *testing.T) {
	store := memory.NewStore()
	org := store.SeedOrganization("Acme")
	store.SeedProduct(org.ID, "Private", false)
	store.SeedProduct(org.ID, "Public", true)

	service := Service{Repo: store}
	visible, err := service.ListVisibleProducts(context.Background(), org.ID, Viewer{IsSystemAdmin: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("expected admin to see both products, got %v", visible)
	}
}

func TestGetVisibleProductHidesPrivateFromNonMembers(t *testing.T) {
	store := memory.NewStore()
	org := store.SeedOrganization("Acme")
	private := store.SeedProduct(org.ID, "Skunkworks", false)

	service := Service{Repo: store}
	_, err := service.GetVisibleProduct(context.Background(), org.ID, private.ID, Viewer{})
	if !errors.Is(err, domainerrors.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound for invisible product, got %v", err)
	}

	if _, err := service.GetVisibleProduct(context.Background(), org.ID, private.ID,
		Viewer{ProductIDs: []int{private.ID}}); err != nil {
		t.Fatalf("expected member to see private product, got %v", err)
	}
}

func TestGetVisibleProductWrongOrganizationIsNotFound(t *testing.T) {
	store := memory.NewStore()
	orgA := store.SeedOrganization("Acme")
	orgB := store.SeedOrganization("Globex")
	product := store.SeedProduct(orgA.ID, "Storefront", true)

	service := Service{Repo: store}
	_, err := service.GetVisibleProduct(context.Background(), orgB.ID, product.ID, Viewer{IsSystemAdmin: true})
	if !errors.Is(err, domainerrors.ErrProductNotFound) {
		t.Fatalf("expected parent mismatch to read as absence, got %v", err)
	}
}

func TestCreateOrganizationRejectsBlankName(t *testing.T) {
	service := Service{Repo: memory.NewStore()}

	_, err := service.CreateOrganization(context.Background(), ports.OrganizationInput{Name: "   "})
	if !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateOrganizationDuplicateNameIsConflict(t *testing.T) {
	store := memory.NewStore()
	store.SeedOrganization("Acme")

	service := Service{Repo: store}
	_, err := service.CreateOrganization(context.Background(), ports.OrganizationInput{Name: "Acme"})

	var conflict *domainerrors.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if conflict.Reason != "name" {
		t.Fatalf("expected name conflict reason, got %q", conflict.Reason)
	}
}

func TestUpdateStoryMissingIsNotFound(t *testing.T) {
	service := Service{Repo: memory.NewStore()}

	_, err := service.UpdateStory(context.Background(), 42, ports.StoryInput{Name: "Renamed"})
	if !errors.Is(err, domainerrors.ErrStoryNotFound) {
		t.Fatalf("expected ErrStoryNotFound, got %v", err)
	}
}
