package ports

import "context"

// VerifyResult is the outcome of a session check. It never carries an error:
// absent, invalid, or expired tokens all yield Authenticated == false.
type VerifyResult struct {
	Authenticated bool
	Username      string
}

// AuthService manages the login/verify/logout lifecycle of the single admin.
type AuthService interface {
	// Login verifies the credentials and, on success, returns a token the
	// client presents on subsequent requests. Wrong username and wrong
	// password are indistinguishable to the caller.
	Login(ctx context.Context, username, password string) (string, error)

	Verify(ctx context.Context, token string) VerifyResult

	// Logout destroys the session referenced by token, if any. Logging out
	// a nonexistent session is not an error.
	Logout(ctx context.Context, token string) error
}
