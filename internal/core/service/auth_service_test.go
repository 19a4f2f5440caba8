package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/yonyossef/yiftach-sign/internal/core/domain"
)

type stubCredentials struct {
	rec domain.Credentials
}

func (s *stubCredentials) Load() domain.Credentials { return s.rec }

type stubSessionStore struct {
	sessions map[string]domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, session domain.Session) error {
	s.sessions[session.ID] = session
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (domain.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func newTestAuthService(t *testing.T, creds domain.Credentials, store *stubSessionStore) *AuthService {
	t.Helper()
	return NewAuthService(&stubCredentials{rec: creds}, store, "test-secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Login_Success(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestAuthService(t, domain.Credentials{
		Username:     "admin",
		PasswordHash: mustHash(t, "s3cret"),
	}, store)

	token, err := svc.Login(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if len(store.sessions) != 1 {
		t.Fatalf("expected one stored session, got %d", len(store.sessions))
	}

	result := svc.Verify(context.Background(), token)
	if !result.Authenticated {
		t.Fatalf("expected authenticated verify after login")
	}
	if result.Username != "admin" {
		t.Fatalf("expected username admin, got %q", result.Username)
	}
}

func TestAuthService_Login_WrongPasswordAndWrongUsernameIndistinguishable(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestAuthService(t, domain.Credentials{
		Username:     "admin",
		PasswordHash: mustHash(t, "s3cret"),
	}, store)

	_, errPass := svc.Login(context.Background(), "admin", "wrong")
	_, errUser := svc.Login(context.Background(), "ghost", "s3cret")

	if errPass != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errPass)
	}
	if errUser != domain.ErrInvalidCredentials {
		t.Fatalf("wrong username: expected ErrInvalidCredentials, got %v", errUser)
	}
	if errPass != errUser {
		t.Fatalf("failure paths must be indistinguishable: %v vs %v", errPass, errUser)
	}
	if len(store.sessions) != 0 {
		t.Fatalf("failed login must not create a session")
	}
}

func TestAuthService_Login_NoHashConfigured(t *testing.T) {
	svc := newTestAuthService(t, domain.Credentials{Username: "admin"}, newStubSessionStore())

	if _, err := svc.Login(context.Background(), "admin", "anything"); err != domain.ErrServerMisconfigured {
		t.Fatalf("expected ErrServerMisconfigured, got %v", err)
	}
}

func TestAuthService_Verify_GarbageToken(t *testing.T) {
	svc := newTestAuthService(t, domain.Credentials{Username: "admin", PasswordHash: "x"}, newStubSessionStore())

	for _, token := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if result := svc.Verify(context.Background(), token); result.Authenticated {
			t.Fatalf("token %q must not verify", token)
		}
	}
}

func TestAuthService_Verify_ExpiredSession(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestAuthService(t, domain.Credentials{
		Username:     "admin",
		PasswordHash: mustHash(t, "s3cret"),
	}, store)

	token, err := svc.Login(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Age the stored record past its TTL; the stub store does not expire
	// on its own, so this exercises the service's own lazy check.
	for id, session := range store.sessions {
		session.ExpiresAt = time.Now().UTC().Add(-time.Minute)
		store.sessions[id] = session
	}

	if result := svc.Verify(context.Background(), token); result.Authenticated {
		t.Fatalf("expired session must not verify")
	}
	if len(store.sessions) != 0 {
		t.Fatalf("expired session should be dropped on verify")
	}
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestAuthService(t, domain.Credentials{
		Username:     "admin",
		PasswordHash: mustHash(t, "s3cret"),
	}, store)

	// Logout without any prior login.
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout without session: %v", err)
	}
	if err := svc.Logout(context.Background(), "garbage"); err != nil {
		t.Fatalf("logout with garbage token: %v", err)
	}

	token, err := svc.Login(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if result := svc.Verify(context.Background(), token); result.Authenticated {
		t.Fatalf("token must not verify after logout")
	}

	// Logging out the same token again is still fine.
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("repeated logout: %v", err)
	}
}

func TestTokenCodec_RejectsForeignSignature(t *testing.T) {
	a := tokenCodec{secret: []byte("secret-a")}
	b := tokenCodec{secret: []byte("secret-b")}

	token, err := a.encode(domain.Session{ID: "sid", Username: "admin", ExpiresAt: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, err := b.decode(token); err == nil {
		t.Fatalf("token signed with another secret must not decode")
	}
	if sid, err := a.decode(token); err != nil || sid != "sid" {
		t.Fatalf("expected sid back, got %q %v", sid, err)
	}
}
