package httptransport

// OrganizationRequest is the create/update body for organizations.
type OrganizationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProductRequest is the create/update body for products.
type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Public      bool   `json:"public"`
}

// FeatureRequest is the create/update body for features.
type FeatureRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// StoryRequest is the create/update body for stories.
type StoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ErrorResponse is the generic error body for tracking endpoints.
type ErrorResponse struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	ConflictReason string `json:"conflictReason,omitempty"`
}
