package ports

import (
	"context"

	"github.com/yonyossef/yiftach-sign/internal/core/domain"
)

// PanelService defines use-case operations over the panel collection.
type PanelService interface {
	// List returns the full stored collection, hidden panels included.
	List(ctx context.Context) (domain.Collection, error)

	// Replace overwrites the stored collection after structural checks.
	// There is no partial write: a rejected input leaves storage untouched.
	Replace(ctx context.Context, c domain.Collection) error

	// Display returns only visible panels, partitioned by column in stored
	// relative order.
	Display(ctx context.Context) (map[int][]domain.Panel, error)
}
