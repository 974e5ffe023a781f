package entities

// OrganizationRole enumerates organization-scoped membership roles.
type OrganizationRole string

const (
	OrganizationRoleOwner  OrganizationRole = "OWNER"
	OrganizationRoleMember OrganizationRole = "MEMBER"
)

// ProductRole enumerates product-scoped membership roles.
type ProductRole string

const (
	ProductRoleOwner       ProductRole = "OWNER"
	ProductRoleStakeholder ProductRole = "STAKEHOLDER"
	ProductRoleContributor ProductRole = "CONTRIBUTOR"
)

// SystemRole enumerates system-wide roles.
type SystemRole string

const SystemRoleAdmin SystemRole = "ADMIN"

// EntityRef is a back-reference to the organization or product a membership
// grants access to. The membership does not own the entity's lifecycle.
type EntityRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// OrganizationMembership grants one user a role on one organization.
type OrganizationMembership struct {
	ID     int              `json:"id"`
	User   User             `json:"user"`
	Entity EntityRef        `json:"entity"`
	Role   OrganizationRole `json:"role"`
}

// ProductMembership grants one user a role on one product.
type ProductMembership struct {
	ID     int         `json:"id"`
	User   User        `json:"user"`
	Entity EntityRef   `json:"entity"`
	Role   ProductRole `json:"role"`
}
