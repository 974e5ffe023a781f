package ports

import (
	"context"
	"time"

	"requisite/contexts/requirements/tracking-service/domain/entities"
	"requisite/internal/shared/events"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// OrganizationInput captures an organization create/update request.
type OrganizationInput struct {
	Name        string
	Description string
}

// ProductInput captures a product create/update request.
type ProductInput struct {
	Name        string
	Description string
	Public      bool
}

// FeatureInput captures a feature create/update request.
type FeatureInput struct {
	Name        string
	Description string
}

// StoryInput captures a story create/update request.
type StoryInput struct {
	Name        string
	Description string
}

// Repository is the storage boundary for the entity hierarchy. Lookups
// return (entity, found, error) so absence is distinguishable from failure;
// the pipeline maps absence to NotFound and failure to a system error.
type Repository interface {
	GetOrganization(ctx context.Context, id int) (entities.Organization, bool, error)
	ListOrganizations(ctx context.Context) ([]entities.Organization, error)
	ListOrganizationsByIDs(ctx context.Context, ids []int) ([]entities.Organization, error)
	CreateOrganization(ctx context.Context, input OrganizationInput) (entities.Organization, error)
	UpdateOrganization(ctx context.Context, id int, input OrganizationInput) (entities.Organization, error)

	GetProduct(ctx context.Context, id int) (entities.Product, bool, error)
	ListProductsByOrganization(ctx context.Context, orgID int) ([]entities.Product, error)
	CreateProduct(ctx context.Context, orgID int, input ProductInput) (entities.Product, error)
	UpdateProduct(ctx context.Context, id int, input ProductInput) (entities.Product, error)

	GetFeature(ctx context.Context, id int) (entities.Feature, bool, error)
	ListFeaturesByProduct(ctx context.Context, productID int) ([]entities.Feature, error)
	CreateFeature(ctx context.Context, productID int, input FeatureInput) (entities.Feature, error)
	UpdateFeature(ctx context.Context, id int, input FeatureInput) (entities.Feature, error)

	GetStory(ctx context.Context, id int) (entities.Story, bool, error)
	ListStoriesByFeature(ctx context.Context, featureID int) ([]entities.Story, error)
	CreateStory(ctx context.Context, featureID int, input StoryInput) (entities.Story, error)
	UpdateStory(ctx context.Context, id int, input StoryInput) (entities.Story, error)
}

// OutboxMessage represents a pending relay message.
type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository supports worker relay polling and acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// EntityChangedEvent reuses the canonical envelope shape.
type EntityChangedEvent = events.Envelope

// EntityChangedPublisher emits entity change events to the event bus adapter.
type EntityChangedPublisher interface {
	PublishEntityChanged(ctx context.Context, event EntityChangedEvent) error
}
