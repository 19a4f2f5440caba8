package domain

// Credentials is the single admin credential record for a deployment. It is
// immutable at runtime; there is no change-password flow.
type Credentials struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

// Configured reports whether a verifiable hash is present. An empty hash must
// fail every login attempt rather than crash the verifier.
func (c Credentials) Configured() bool {
	return c.PasswordHash != ""
}
