package httptransport

// LoginRequest is the password-mode authentication body. Domain defaults to
// "local" when absent.
type LoginRequest struct {
	Domain   string `json:"domain,omitempty"`
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// RegisterRequest is the registration body. ConfirmPassword must match
// Password; the schema validator enforces this before the handler runs.
type RegisterRequest struct {
	Domain          string `json:"domain,omitempty"`
	UserName        string `json:"userName"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	EmailAddress    string `json:"emailAddress"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
}

// LoginResponse carries the signed bearer token and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the caller identity sans secret material.
type UserResponse struct {
	ID           int    `json:"id"`
	Domain       string `json:"domain"`
	UserName     string `json:"userName"`
	EmailAddress string `json:"emailAddress"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
}

// MemberRequest is the create/update body for org and product memberships.
// Entity carries the id the caller believes the membership belongs to; a
// mismatch with the URI-resolved entity is a conflict.
type MemberRequest struct {
	User   MemberUserRef    `json:"user"`
	Entity *MemberEntityRef `json:"entity,omitempty"`
	Role   string           `json:"role"`
}

type MemberUserRef struct {
	Domain   string `json:"domain,omitempty"`
	UserName string `json:"userName"`
}

type MemberEntityRef struct {
	ID int `json:"id"`
}

// MemberResponse describes one membership.
type MemberResponse struct {
	ID     int             `json:"id"`
	User   UserResponse    `json:"user"`
	Entity MemberEntityDTO `json:"entity"`
	Role   string          `json:"role"`
}

type MemberEntityDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// ErrorResponse is the generic error body for auth endpoints.
type ErrorResponse struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	ConflictReason string `json:"conflictReason,omitempty"`
}
