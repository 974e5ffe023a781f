package application

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"requisite/contexts/requirements/tracking-service/domain/entities"
	domainerrors "requisite/contexts/requirements/tracking-service/domain/errors"
	"requisite/contexts/requirements/tracking-service/ports"
)

// Viewer is the caller's already-computed authorization summary, passed as
// primitives so this context stays independent of identity-access types.
type Viewer struct {
	IsSystemAdmin   bool
	OrganizationIDs []int
	ProductIDs      []int
}

// Service implements the entity CRUD operations behind the resolver chain.
// It performs no authorization of its own beyond the product-visibility
// rules; route-level authorization happens in the pipeline before a handler
// reaches this layer.
type Service struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (s Service) ListOrganizations(ctx context.Context, viewer Viewer) ([]entities.Organization, error) {
	if viewer.IsSystemAdmin {
		return s.Repo.ListOrganizations(ctx)
	}
	return s.Repo.ListOrganizationsByIDs(ctx, viewer.OrganizationIDs)
}

func (s Service) CreateOrganization(ctx context.Context, input ports.OrganizationInput) (entities.Organization, error) {
	if strings.TrimSpace(input.Name) == "" {
		return entities.Organization{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.CreateOrganization(ctx, input)
}

func (s Service) UpdateOrganization(ctx context.Context, id int, input ports.OrganizationInput) (entities.Organization, error) {
	if strings.TrimSpace(input.Name) == "" {
		return entities.Organization{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.UpdateOrganization(ctx, id, input)
}

// ListVisibleProducts returns the union of public products and the viewer's
// membership products within one organization, de-duplicated by id and
// sorted by name. System admins see everything.
func (s Service) ListVisibleProducts(ctx context.Context, orgID int, viewer Viewer) ([]entities.Product, error) {
	products, err := s.Repo.ListProductsByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	memberProducts := make(map[int]struct{}, len(viewer.ProductIDs))
	for _, id := range viewer.ProductIDs {
		memberProducts[id] = struct{}{}
	}

	seen := make(map[int]struct{}, len(products))
	visible := make([]entities.Product, 0, len(products))
	for _, product := range products {
		if _, dup := seen[product.ID]; dup {
			continue
		}
		_, member := memberProducts[product.ID]
		if !viewer.IsSystemAdmin && !product.Public && !member {
			continue
		}
		seen[product.ID] = struct{}{}
		visible = append(visible, product)
	}

	sort.Slice(visible, func(i, j int) bool { return visible[i].Name < visible[j].Name })
	return visible, nil
}

// GetVisibleProduct fetches one product under an organization, applying the
// same visibility rules as the listing. An invisible or missing product is
// NotFound either way: existence of a private product is never disclosed.
func (s Service) GetVisibleProduct(ctx context.Context, orgID int, productID int, viewer Viewer) (entities.Product, error) {
	product, found, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		return entities.Product{}, err
	}
	if !found || product.OrganizationID != orgID {
		return entities.Product{}, domainerrors.ErrProductNotFound
	}
	if viewer.IsSystemAdmin || product.Public {
		return product, nil
	}
	for _, id := range viewer.ProductIDs {
		if id == product.ID {
			return product, nil
		}
	}
	return entities.Product{}, domainerrors.ErrProductNotFound
}

func (s Service) CreateProduct(ctx context.Context, orgID int, input ports.ProductInput) (entities.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return entities.Product{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.CreateProduct(ctx, orgID, input)
}

func (s Service) UpdateProduct(ctx context.Context, id int, input ports.ProductInput) (entities.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return entities.Product{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.UpdateProduct(ctx, id, input)
}

func (s Service) ListFeatures(ctx context.Context, productID int) ([]entities.Feature, error) {
	return s.Repo.ListFeaturesByProduct(ctx, productID)
}

func (s Service) CreateFeature(ctx context.Context, productID int, input ports.FeatureInput) (entities.Feature, error) {
	if strings.TrimSpace(input.Name) == "" {
		return entities.Feature{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.CreateFeature(ctx, productID, input)
}

func (s Service) UpdateFeature(ctx context.Context, id int, input ports.FeatureInput) (entities.Feature, error) {
	if strings.TrimSpace(input.Name) == "" {
		return entities.Feature{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.UpdateFeature(ctx, id, input)
}

func (s Service) ListStories(ctx context.Context, featureID int) ([]entities.Story, error) {
	return s.Repo.ListStoriesByFeature(ctx, featureID)
}

func (s Service) CreateStory(ctx context.Context, featureID int, input ports.StoryInput) (entities.Story, error) {
	if strings.TrimSpace(input.Name) == "" {
		return entities.Story{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.CreateStory(ctx, featureID, input)
}

func (s Service) UpdateStory(ctx context.Context, id int, input ports.StoryInput) (entities.Story, error) {
	if strings.TrimSpace(input.Name) == "" {
		return entities.Story{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.UpdateStory(ctx, id, input)
}
