package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"requisite/contexts/requirements/tracking-service/domain/entities"
	domainerrors "requisite/contexts/requirements/tracking-service/domain/errors"
	"requisite/contexts/requirements/tracking-service/ports"
	"requisite/internal/shared/events"
	"requisite/internal/shared/outbox"
)

// Store is an in-memory adapter implementing the repository and outbox
// ports. It is intended for tests and local development wiring.
type Store struct {
	mu sync.RWMutex

	nextID int

	organizations map[int]entities.Organization
	products      map[int]entities.Product
	features      map[int]entities.Feature
	stories       map[int]entities.Story

	outboxRows []outboxRow
}

type outboxRow struct {
	outbox.Message
	CreatedAt   time.Time
	PublishedAt *time.Time
}

func NewStore() *Store {
	return &Store{
		nextID:        1,
		organizations: make(map[int]entities.Organization),
		products:      make(map[int]entities.Product),
		features:      make(map[int]entities.Feature),
		stories:       make(map[int]entities.Story),
	}
}

// SeedOrganization inserts an organization without an outbox record.
func (s *Store) SeedOrganization(name string) entities.Organization {
	s.mu.Lock()
	defer s.mu.Unlock()

	org := entities.Organization{ID: s.nextID, Name: name}
	s.nextID++
	s.organizations[org.ID] = org
	return org
}

// SeedProduct inserts a product under an organization.
func (s *Store) SeedProduct(orgID int, name string, public bool) entities.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := entities.Product{ID: s.nextID, OrganizationID: orgID, Name: name, Public: public}
	s.nextID++
	s.products[product.ID] = product
	return product
}

// SeedFeature inserts a feature under a product.
func (s *Store) SeedFeature(productID int, name string) entities.Feature {
	s.mu.Lock()
	defer s.mu.Unlock()

	feature := entities.Feature{ID: s.nextID, ProductID: productID, Name: name}
	s.nextID++
	s.features[feature.ID] = feature
	return feature
}

// SeedStory inserts a story under a feature.
func (s *Store) SeedStory(featureID int, name string) entities.Story {
	s.mu.Lock()
	defer s.mu.Unlock()

	story := entities.Story{ID: s.nextID, FeatureID: featureID, Name: name}
	s.nextID++
	s.stories[story.ID] = story
	return story
}

func (s *Store) GetOrganization(_ context.Context, id int) (entities.Organization, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, ok := s.organizations[id]
	return org, ok, nil
}

func (s *Store) ListOrganizations(_ context.Context) ([]entities.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Organization, 0, len(s.organizations))
	for _, org := range s.organizations {
		items = append(items, org)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *Store) ListOrganizationsByIDs(_ context.Context, ids []int) ([]entities.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Organization, 0, len(ids))
	for _, id := range ids {
		if org, ok := s.organizations[id]; ok {
			items = append(items, org)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *Store) CreateOrganization(_ context.Context, input ports.OrganizationInput) (entities.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.organizations {
		if existing.Name == input.Name {
			return entities.Organization{}, domainerrors.NewConflict("name")
		}
	}

	org := entities.Organization{ID: s.nextID, Name: input.Name, Description: input.Description}
	s.nextID++
	s.organizations[org.ID] = org
	s.appendOutboxLocked("organization.created", "organization", org.ID, org)
	return org, nil
}

func (s *Store) UpdateOrganization(_ context.Context, id int, input ports.OrganizationInput) (entities.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	org, ok := s.organizations[id]
	if !ok {
		return entities.Organization{}, domainerrors.ErrOrganizationNotFound
	}
	org.Name = input.Name
	org.Description = input.Description
	s.organizations[id] = org
	s.appendOutboxLocked("organization.updated", "organization", org.ID, org)
	return org, nil
}

func (s *Store) GetProduct(_ context.Context, id int) (entities.Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	return product, ok, nil
}

func (s *Store) ListProductsByOrganization(_ context.Context, orgID int) ([]entities.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Product, 0)
	for _, product := range s.products {
		if product.OrganizationID == orgID {
			items = append(items, product)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Store) CreateProduct(_ context.Context, orgID int, input ports.ProductInput) (entities.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := entities.Product{
		ID:             s.nextID,
		OrganizationID: orgID,
		Name:           input.Name,
		Description:    input.Description,
		Public:         input.Public,
	}
	s.nextID++
	s.products[product.ID] = product
	s.appendOutboxLocked("product.created", "product", product.ID, product)
	return product, nil
}

func (s *Store) UpdateProduct(_ context.Context, id int, input ports.ProductInput) (entities.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return entities.Product{}, domainerrors.ErrProductNotFound
	}
	product.Name = input.Name
	product.Description = input.Description
	product.Public = input.Public
	s.products[id] = product
	s.appendOutboxLocked("product.updated", "product", product.ID, product)
	return product, nil
}

func (s *Store) GetFeature(_ context.Context, id int) (entities.Feature, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	feature, ok := s.features[id]
	return feature, ok, nil
}

func (s *Store) ListFeaturesByProduct(_ context.Context, productID int) ([]entities.Feature, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Feature, 0)
	for _, feature := range s.features {
		if feature.ProductID == productID {
			items = append(items, feature)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Store) CreateFeature(_ context.Context, productID int, input ports.FeatureInput) (entities.Feature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	feature := entities.Feature{
		ID:          s.nextID,
		ProductID:   productID,
		Name:        input.Name,
		Description: input.Description,
	}
	s.nextID++
	s.features[feature.ID] = feature
	s.appendOutboxLocked("feature.created", "feature", feature.ID, feature)
	return feature, nil
}

func (s *Store) UpdateFeature(_ context.Context, id int, input ports.FeatureInput) (entities.Feature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	feature, ok := s.features[id]
	if !ok {
		return entities.Feature{}, domainerrors.ErrFeatureNotFound
	}
	feature.Name = input.Name
	feature.Description = input.Description
	s.features[id] = feature
	s.appendOutboxLocked("feature.updated", "feature", feature.ID, feature)
	return feature, nil
}

func (s *Store) GetStory(_ context.Context, id int) (entities.Story, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	story, ok := s.stories[id]
	return story, ok, nil
}

func (s *Store) ListStoriesByFeature(_ context.Context, featureID int) ([]entities.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Story, 0)
	for _, story := range s.stories {
		if story.FeatureID == featureID {
			items = append(items, story)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Store) CreateStory(_ context.Context, featureID int, input ports.StoryInput) (entities.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	story := entities.Story{
		ID:          s.nextID,
		FeatureID:   featureID,
		Name:        input.Name,
		Description: input.Description,
	}
	s.nextID++
	s.stories[story.ID] = story
	s.appendOutboxLocked("story.created", "story", story.ID, story)
	return story, nil
}

func (s *Store) UpdateStory(_ context.Context, id int, input ports.StoryInput) (entities.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	story, ok := s.stories[id]
	if !ok {
		return entities.Story{}, domainerrors.ErrStoryNotFound
	}
	story.Name = input.Name
	story.Description = input.Description
	s.stories[id] = story
	s.appendOutboxLocked("story.updated", "story", story.ID, story)
	return story, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.OutboxMessage, 0, limit)
	for _, row := range s.outboxRows {
		if row.Status != outbox.StatusPending {
			continue
		}
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.ID,
			EventType: row.EventType,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		})
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outboxRows {
		if s.outboxRows[i].ID == outboxID {
			s.outboxRows[i].Status = outbox.StatusPublished
			s.outboxRows[i].PublishedAt = &publishedAt
			return nil
		}
	}
	return nil
}

func (s *Store) appendOutboxLocked(eventType string, entityType string, entityID int, payload any) {
	envelope := events.Envelope{
		EventID:        uuid.NewString(),
		EventType:      eventType,
		SourceService:  "requisite",
		OccurredAtUTC:  time.Now().UTC(),
		EntityType:     entityType,
		EntityID:       strconv.Itoa(entityID),
		PayloadVersion: 1,
		Payload:        payload,
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		return
	}
	s.outboxRows = append(s.outboxRows, outboxRow{
		Message: outbox.Message{
			ID:        envelope.EventID,
			EventType: eventType,
			Payload:   raw,
			Status:    outbox.StatusPending,
		},
		CreatedAt: envelope.OccurredAtUTC,
	})
}
