package ports

import (
	"context"

	"github.com/yonyossef/yiftach-sign/internal/core/domain"
)

// PanelRepository persists the panel collection as one full document.
type PanelRepository interface {
	// Load reads the persisted collection. Missing or unparsable storage
	// degrades to an empty collection, never an error for the caller.
	Load(ctx context.Context) (domain.Collection, error)

	// Save overwrites the entire stored document. On failure the prior
	// on-disk state must be left intact (no torn writes).
	Save(ctx context.Context, c domain.Collection) error
}
