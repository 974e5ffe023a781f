package entities

// Organization is the root of the tenancy hierarchy.
type Organization struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Product belongs to exactly one organization. Private products are visible
// only to product members and system admins.
type Product struct {
	ID             int    `json:"id"`
	OrganizationID int    `json:"organizationId"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Public         bool   `json:"public"`
}

// Feature belongs to exactly one product.
type Feature struct {
	ID          int    `json:"id"`
	ProductID   int    `json:"productId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Story belongs to exactly one feature.
type Story struct {
	ID          int    `json:"id"`
	FeatureID   int    `json:"featureId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
