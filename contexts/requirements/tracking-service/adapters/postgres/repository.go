package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"requisite/contexts/requirements/tracking-service/domain/entities"
	domainerrors "requisite/contexts/requirements/tracking-service/domain/errors"
	"requisite/contexts/requirements/tracking-service/ports"
	"requisite/internal/shared/events"
	"requisite/internal/shared/outbox"
)

// Repository is the PostgreSQL adapter for the entity hierarchy. Mutations
// append an outbox row in the same transaction as the state change.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) GetOrganization(ctx context.Context, id int) (entities.Organization, bool, error) {
	var row organizationModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Organization{}, false, nil
		}
		return entities.Organization{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListOrganizations(ctx context.Context) ([]entities.Organization, error) {
	var rows []organizationModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Organization, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListOrganizationsByIDs(ctx context.Context, ids []int) ([]entities.Organization, error) {
	if len(ids) == 0 {
		return []entities.Organization{}, nil
	}
	var rows []organizationModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Organization, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateOrganization(ctx context.Context, input ports.OrganizationInput) (entities.Organization, error) {
	row := organizationModel{Name: input.Name, Description: input.Description}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.NewConflict("name")
			}
			return err
		}
		return appendOutbox(tx, "organization.created", "organization", row.ID, row.toEntity())
	})
	if err != nil {
		return entities.Organization{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateOrganization(ctx context.Context, id int, input ports.OrganizationInput) (entities.Organization, error) {
	var out entities.Organization
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&organizationModel{}).
			Where("id = ?", id).
			Updates(map[string]any{"name": input.Name, "description": input.Description})
		if result.Error != nil {
			if isUniqueViolation(result.Error) {
				return domainerrors.NewConflict("name")
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrOrganizationNotFound
		}
		out = entities.Organization{ID: id, Name: input.Name, Description: input.Description}
		return appendOutbox(tx, "organization.updated", "organization", id, out)
	})
	if err != nil {
		return entities.Organization{}, err
	}
	return out, nil
}

func (r *Repository) GetProduct(ctx context.Context, id int) (entities.Product, bool, error) {
	var row productModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Product{}, false, nil
		}
		return entities.Product{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListProductsByOrganization(ctx context.Context, orgID int) ([]entities.Product, error) {
	var rows []productModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Product, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateProduct(ctx context.Context, orgID int, input ports.ProductInput) (entities.Product, error) {
	row := productModel{
		OrganizationID: orgID,
		Name:           input.Name,
		Description:    input.Description,
		Public:         input.Public,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.NewConflict("name")
			}
			return err
		}
		return appendOutbox(tx, "product.created", "product", row.ID, row.toEntity())
	})
	if err != nil {
		return entities.Product{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateProduct(ctx context.Context, id int, input ports.ProductInput) (entities.Product, error) {
	var out entities.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row productModel
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrProductNotFound
			}
			return err
		}
		row.Name = input.Name
		row.Description = input.Description
		row.Public = input.Public
		if err := tx.Save(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.NewConflict("name")
			}
			return err
		}
		out = row.toEntity()
		return appendOutbox(tx, "product.updated", "product", id, out)
	})
	if err != nil {
		return entities.Product{}, err
	}
	return out, nil
}

func (r *Repository) GetFeature(ctx context.Context, id int) (entities.Feature, bool, error) {
	var row featureModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Feature{}, false, nil
		}
		return entities.Feature{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListFeaturesByProduct(ctx context.Context, productID int) ([]entities.Feature, error) {
	var rows []featureModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Feature, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateFeature(ctx context.Context, productID int, input ports.FeatureInput) (entities.Feature, error) {
	row := featureModel{ProductID: productID, Name: input.Name, Description: input.Description}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.NewConflict("name")
			}
			return err
		}
		return appendOutbox(tx, "feature.created", "feature", row.ID, row.toEntity())
	})
	if err != nil {
		return entities.Feature{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateFeature(ctx context.Context, id int, input ports.FeatureInput) (entities.Feature, error) {
	var out entities.Feature
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row featureModel
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrFeatureNotFound
			}
			return err
		}
		row.Name = input.Name
		row.Description = input.Description
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		out = row.toEntity()
		return appendOutbox(tx, "feature.updated", "feature", id, out)
	})
	if err != nil {
		return entities.Feature{}, err
	}
	return out, nil
}

func (r *Repository) GetStory(ctx context.Context, id int) (entities.Story, bool, error) {
	var row storyModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Story{}, false, nil
		}
		return entities.Story{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListStoriesByFeature(ctx context.Context, featureID int) ([]entities.Story, error) {
	var rows []storyModel
	err := r.db.WithContext(ctx).
		Where("feature_id = ?", featureID).
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Story, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateStory(ctx context.Context, featureID int, input ports.StoryInput) (entities.Story, error) {
	row := storyModel{FeatureID: featureID, Name: input.Name, Description: input.Description}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.NewConflict("name")
			}
			return err
		}
		return appendOutbox(tx, "story.created", "story", row.ID, row.toEntity())
	})
	if err != nil {
		return entities.Story{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateStory(ctx context.Context, id int, input ports.StoryInput) (entities.Story, error) {
	var out entities.Story
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row storyModel
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrStoryNotFound
			}
			return err
		}
		row.Name = input.Name
		row.Description = input.Description
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		out = row.toEntity()
		return appendOutbox(tx, "story.updated", "story", id, out)
	})
	if err != nil {
		return entities.Story{}, err
	}
	return out, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       outbox.StatusPublished,
			"published_at": publishedAt,
		}).
		Error
}

func appendOutbox(tx *gorm.DB, eventType string, entityType string, entityID int, payload any) error {
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
		return err
	}
	return tx.Create(&outboxModel{
		OutboxID:  envelope.EventID,
		EventType: eventType,
		Payload:   raw,
		Status:    outbox.StatusPending,
		CreatedAt: envelope.OccurredAtUTC,
	}).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
