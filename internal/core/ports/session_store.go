package ports

import (
	"context"

	"github.com/yonyossef/yiftach-sign/internal/core/domain"
)

// SessionStore maps opaque session ids to server-held session records.
// Implementations own expiry: Get must never return an expired session.
type SessionStore interface {
	Create(ctx context.Context, s domain.Session) error

	// Get returns domain.ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (domain.Session, error)

	// Delete is idempotent; deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}
