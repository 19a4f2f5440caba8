package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yonyossef/yiftach-sign/internal/core/domain"
)

// tokenCodec wraps the server-side session id in an HS256-signed envelope.
// The client treats the result as opaque; the authoritative session record
// (and its TTL) always lives in the session store.
type tokenCodec struct {
	secret []byte
}

var errBadToken = errors.New("malformed session token")

func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func (tc tokenCodec) encode(s domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":      s.ID,
		"username": s.Username,
		"exp":      s.ExpiresAt.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(tc.secret)
}

// decode validates the signature and returns the embedded session id.
func (tc tokenCodec) decode(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return tc.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", errBadToken
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errBadToken
	}
	return sid, nil
}

// sessionTTL is the fixed lifetime granted at login when no override is set.
const sessionTTL = 24 * time.Hour
