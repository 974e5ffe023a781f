package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"requisite/contexts/identity-access/auth-service/domain/entities"
	domainerrors "requisite/contexts/identity-access/auth-service/domain/errors"
	"requisite/contexts/identity-access/auth-service/ports"
)

// Repository is the PostgreSQL adapter for the user, membership, and
// member-administration ports.
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

func (r *Repository) GetCredential(ctx context.Context, domain string, userName string) (ports.CredentialRecord, bool, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("domain = ? AND user_name = ?", strings.TrimSpace(domain), strings.TrimSpace(userName)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CredentialRecord{}, false, nil
		}
		return ports.CredentialRecord{}, false, err
	}
	return ports.CredentialRecord{User: row.toEntity(), PasswordHash: row.PasswordHash}, true, nil
}

func (r *Repository) GetUser(ctx context.Context, domain string, userName string) (entities.User, bool, error) {
	record, found, err := r.GetCredential(ctx, domain, userName)
	if err != nil || !found {
		return entities.User{}, found, err
	}
	return record.User, true, nil
}

func (r *Repository) CreateUser(ctx context.Context, input ports.CreateUserInput) (entities.User, error) {
	row := userModel{
		Domain:       input.Domain,
		UserName:     input.UserName,
		PasswordHash: input.PasswordHash,
		EmailAddress: input.EmailAddress,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.User{}, domainerrors.ErrUserExists
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) IsSystemAdmin(ctx context.Context, userID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&systemAdminModel{}).
		Where("user_id = ?", userID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) ListOrganizationMemberships(ctx context.Context, userID int) ([]entities.OrganizationMembership, error) {
	var rows []orgMembershipModel
	err := r.db.WithContext(ctx).
		Model(&orgMembershipModel{}).
		Select("organization_memberships.*, organizations.name AS entity_name").
		Joins("JOIN organizations ON organizations.id = organization_memberships.organization_id").
		Preload("User").
		Where("organization_memberships.user_id = ?", userID).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return orgMembershipEntities(rows), nil
}

func (r *Repository) ListProductMemberships(ctx context.Context, userID int) ([]entities.ProductMembership, error) {
	var rows []productMembershipModel
	err := r.db.WithContext(ctx).
		Model(&productMembershipModel{}).
		Select("product_memberships.*, products.name AS entity_name").
		Joins("JOIN products ON products.id = product_memberships.product_id").
		Preload("User").
		Where("product_memberships.user_id = ?", userID).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return productMembershipEntities(rows), nil
}

func (r *Repository) ListOrganizationMembers(ctx context.Context, orgID int) ([]entities.OrganizationMembership, error) {
	var rows []orgMembershipModel
	err := r.db.WithContext(ctx).
		Model(&orgMembershipModel{}).
		Select("organization_memberships.*, organizations.name AS entity_name").
		Joins("JOIN organizations ON organizations.id = organization_memberships.organization_id").
		Preload("User").
		Where("organization_memberships.organization_id = ?", orgID).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return orgMembershipEntities(rows), nil
}

func (r *Repository) GetOrganizationMember(ctx context.Context, memberID int) (entities.OrganizationMembership, bool, error) {
	var row orgMembershipModel
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", memberID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.OrganizationMembership{}, false, nil
		}
		return entities.OrganizationMembership{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) AddOrganizationMember(ctx context.Context, input ports.OrganizationMemberInput) (entities.OrganizationMembership, error) {
	user, found, err := r.GetUser(ctx, input.UserDomain, input.UserName)
	if err != nil {
		return entities.OrganizationMembership{}, err
	}
	if !found {
		return entities.OrganizationMembership{}, domainerrors.ErrUserNotFound
	}

	row := orgMembershipModel{
		UserID:         user.ID,
		OrganizationID: input.EntityID,
		Role:           string(input.Role),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.OrganizationMembership{}, domainerrors.NewConflict("user is already a member of the organization")
		}
		return entities.OrganizationMembership{}, err
	}
	return entities.OrganizationMembership{
		ID:     row.ID,
		User:   user,
		Entity: entities.EntityRef{ID: input.EntityID},
		Role:   input.Role,
	}, nil
}

func (r *Repository) UpdateOrganizationMember(ctx context.Context, memberID int, role entities.OrganizationRole) (entities.OrganizationMembership, error) {
	result := r.db.WithContext(ctx).
		Model(&orgMembershipModel{}).
		Where("id = ?", memberID).
		Update("role", string(role))
	if result.Error != nil {
		return entities.OrganizationMembership{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.OrganizationMembership{}, domainerrors.ErrMemberNotFound
	}

	membership, _, err := r.GetOrganizationMember(ctx, memberID)
	return membership, err
}

func (r *Repository) RemoveOrganizationMember(ctx context.Context, memberID int) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", memberID).
		Delete(&orgMembershipModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrMemberNotFound
	}
	return nil
}

func (r *Repository) ListProductMembers(ctx context.Context, productID int) ([]entities.ProductMembership, error) {
	var rows []productMembershipModel
	err := r.db.WithContext(ctx).
		Model(&productMembershipModel{}).
		Select("product_memberships.*, products.name AS entity_name").
		Joins("JOIN products ON products.id = product_memberships.product_id").
		Preload("User").
		Where("product_memberships.product_id = ?", productID).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return productMembershipEntities(rows), nil
}

func (r *Repository) GetProductMember(ctx context.Context, memberID int) (entities.ProductMembership, bool, error) {
	var row productMembershipModel
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", memberID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ProductMembership{}, false, nil
		}
		return entities.ProductMembership{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) AddProductMember(ctx context.Context, input ports.ProductMemberInput) (entities.ProductMembership, error) {
	user, found, err := r.GetUser(ctx, input.UserDomain, input.UserName)
	if err != nil {
		return entities.ProductMembership{}, err
	}
	if !found {
		return entities.ProductMembership{}, domainerrors.ErrUserNotFound
	}

	row := productMembershipModel{
		UserID:    user.ID,
		ProductID: input.EntityID,
		Role:      string(input.Role),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.ProductMembership{}, domainerrors.NewConflict("user is already a member of the product")
		}
		return entities.ProductMembership{}, err
	}
	return entities.ProductMembership{
		ID:     row.ID,
		User:   user,
		Entity: entities.EntityRef{ID: input.EntityID},
		Role:   input.Role,
	}, nil
}

func (r *Repository) UpdateProductMember(ctx context.Context, memberID int, role entities.ProductRole) (entities.ProductMembership, error) {
	result := r.db.WithContext(ctx).
		Model(&productMembershipModel{}).
		Where("id = ?", memberID).
		Update("role", string(role))
	if result.Error != nil {
		return entities.ProductMembership{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ProductMembership{}, domainerrors.ErrMemberNotFound
	}

	membership, _, err := r.GetProductMember(ctx, memberID)
	return membership, err
}

func (r *Repository) RemoveProductMember(ctx context.Context, memberID int) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", memberID).
		Delete(&productMembershipModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrMemberNotFound
	}
	return nil
}

func orgMembershipEntities(rows []orgMembershipModel) []entities.OrganizationMembership {
	items := make([]entities.OrganizationMembership, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func productMembershipEntities(rows []productMembershipModel) []entities.ProductMembership {
	items := make([]entities.ProductMembership, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
