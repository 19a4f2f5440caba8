package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/yonyossef/yiftach-sign/internal/core/domain"
	"github.com/yonyossef/yiftach-sign/internal/core/ports"
)

// AuthService implements login, session verification, and logout for the
// single admin account.
type AuthService struct {
	creds    ports.CredentialSource
	sessions ports.SessionStore
	codec    tokenCodec
	ttl      time.Duration
	log      zerolog.Logger
}

func NewAuthService(creds ports.CredentialSource, sessions ports.SessionStore, secret string, ttl time.Duration, log zerolog.Logger) *AuthService {
	if ttl <= 0 {
		ttl = sessionTTL
	}
	return &AuthService{
		creds:    creds,
		sessions: sessions,
		codec:    tokenCodec{secret: []byte(secret)},
		ttl:      ttl,
		log:      log,
	}
}

// Login verifies the supplied credentials and mints a new session on success.
// A wrong username and a wrong password both come back as
// domain.ErrInvalidCredentials so callers cannot enumerate the username.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	rec := s.creds.Load()
	if !rec.Configured() {
		s.log.Error().Msg("login attempted with no password hash configured")
		return "", domain.ErrServerMisconfigured
	}

	// Run the hash comparison even on a username mismatch so both failure
	// paths take comparable time.
	hashErr := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password))
	if username != rec.Username || hashErr != nil {
		return "", domain.ErrInvalidCredentials
	}

	id, err := newSessionID()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	session := domain.Session{
		ID:        id,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}

	return s.codec.encode(session)
}

// Verify resolves a client-held token to its session. It never fails: any
// absent, malformed, unknown, or expired token yields an anonymous result.
func (s *AuthService) Verify(ctx context.Context, token string) ports.VerifyResult {
	if token == "" {
		return ports.VerifyResult{}
	}

	sid, err := s.codec.decode(token)
	if err != nil {
		return ports.VerifyResult{}
	}

	session, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return ports.VerifyResult{}
	}

	// Expiry is evaluated lazily here, not by a timer. The store should
	// have dropped expired records already; this is the contract check.
	if session.Expired(time.Now().UTC()) {
		_ = s.sessions.Delete(ctx, sid)
		return ports.VerifyResult{}
	}

	return ports.VerifyResult{Authenticated: true, Username: session.Username}
}

// Logout destroys the referenced session. Unknown and malformed tokens are
// ignored: logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	sid, err := s.codec.decode(token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, sid)
}
