package postgresadapter

import (
	"requisite/contexts/identity-access/auth-service/domain/entities"
)

type userModel struct {
	ID           int    `gorm:"column:id;primaryKey"`
	Domain       string `gorm:"column:domain"`
	UserName     string `gorm:"column:user_name"`
	PasswordHash string `gorm:"column:password_hash"`
	EmailAddress string `gorm:"column:email_address"`
	FirstName    string `gorm:"column:first_name"`
	LastName     string `gorm:"column:last_name"`
	Revoked      bool   `gorm:"column:revoked"`
	Expired      bool   `gorm:"column:expired"`
}

func (userModel) TableName() string { return "users" }

func (m userModel) toEntity() entities.User {
	return entities.User{
		ID:           m.ID,
		Domain:       m.Domain,
		UserName:     m.UserName,
		EmailAddress: m.EmailAddress,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Revoked:      m.Revoked,
		Expired:      m.Expired,
	}
}

type systemAdminModel struct {
	ID     int `gorm:"column:id;primaryKey"`
	UserID int `gorm:"column:user_id"`
}

func (systemAdminModel) TableName() string { return "system_admins" }

type orgMembershipModel struct {
	ID             int       `gorm:"column:id;primaryKey"`
	UserID         int       `gorm:"column:user_id"`
	OrganizationID int       `gorm:"column:organization_id"`
	Role           string    `gorm:"column:role"`
	User           userModel `gorm:"foreignKey:UserID"`
	EntityName     string    `gorm:"column:entity_name;->"`
}

func (orgMembershipModel) TableName() string { return "organization_memberships" }

func (m orgMembershipModel) toEntity() entities.OrganizationMembership {
	return entities.OrganizationMembership{
		ID:     m.ID,
		User:   m.User.toEntity(),
		Entity: entities.EntityRef{ID: m.OrganizationID, Name: m.EntityName},
		Role:   entities.OrganizationRole(m.Role),
	}
}

type productMembershipModel struct {
	ID         int       `gorm:"column:id;primaryKey"`
	UserID     int       `gorm:"column:user_id"`
	ProductID  int       `gorm:"column:product_id"`
	Role       string    `gorm:"column:role"`
	User       userModel `gorm:"foreignKey:UserID"`
	EntityName string    `gorm:"column:entity_name;->"`
}

func (productMembershipModel) TableName() string { return "product_memberships" }

func (m productMembershipModel) toEntity() entities.ProductMembership {
	return entities.ProductMembership{
		ID:     m.ID,
		User:   m.User.toEntity(),
		Entity: entities.EntityRef{ID: m.ProductID, Name: m.EntityName},
		Role:   entities.ProductRole(m.Role),
	}
}
