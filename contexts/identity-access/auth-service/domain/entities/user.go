package entities

// User is the authenticated caller identity. It is produced by the credential
// verifier, immutable for the request lifetime, and never persisted by the
// pipeline itself.
type User struct {
	ID           int    `json:"id"`
	Domain       string `json:"domain"`
	UserName     string `json:"userName"`
	EmailAddress string `json:"emailAddress"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Revoked      bool   `json:"-"`
	Expired      bool   `json:"-"`
}
