package postgresadapter

import (
	"time"

	"requisite/contexts/requirements/tracking-service/domain/entities"
)

type organizationModel struct {
	ID          int    `gorm:"column:id;primaryKey"`
	Name        string `gorm:"column:name"`
	Description string `gorm:"column:description"`
}

func (organizationModel) TableName() string { return "organizations" }

func (m organizationModel) toEntity() entities.Organization {
	return entities.Organization{ID: m.ID, Name: m.Name, Description: m.Description}
}

type productModel struct {
	ID             int    `gorm:"column:id;primaryKey"`
	OrganizationID int    `gorm:"column:organization_id"`
	Name           string `gorm:"column:name"`
	Description    string `gorm:"column:description"`
	Public         bool   `gorm:"column:public"`
}

func (productModel) TableName() string { return "products" }

func (m productModel) toEntity() entities.Product {
	return entities.Product{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Description:    m.Description,
		Public:         m.Public,
	}
}

type featureModel struct {
	ID          int    `gorm:"column:id;primaryKey"`
	ProductID   int    `gorm:"column:product_id"`
	Name        string `gorm:"column:name"`
	Description string `gorm:"column:description"`
}

func (featureModel) TableName() string { return "features" }

func (m featureModel) toEntity() entities.Feature {
	return entities.Feature{ID: m.ID, ProductID: m.ProductID, Name: m.Name, Description: m.Description}
}

type storyModel struct {
	ID          int    `gorm:"column:id;primaryKey"`
	FeatureID   int    `gorm:"column:feature_id"`
	Name        string `gorm:"column:name"`
	Description string `gorm:"column:description"`
}

func (storyModel) TableName() string { return "stories" }

func (m storyModel) toEntity() entities.Story {
	return entities.Story{ID: m.ID, FeatureID: m.FeatureID, Name: m.Name, Description: m.Description}
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "tracking_outbox" }
