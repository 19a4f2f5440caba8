package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yonyossef/yiftach-sign/internal/core/domain"
	"github.com/yonyossef/yiftach-sign/internal/core/ports"
)

// PanelService implements reads and full-replacement writes over the panel
// repository.
type PanelService struct {
	repo ports.PanelRepository
	log  zerolog.Logger
}

func NewPanelService(repo ports.PanelRepository, log zerolog.Logger) *PanelService {
	return &PanelService{repo: repo, log: log}
}

// List returns the stored collection verbatim, hidden panels included.
// Filtering for public display is the renderer's concern, not the API's.
// A failed read degrades to an empty collection so the caller never errors.
func (s *PanelService) List(ctx context.Context) (domain.Collection, error) {
	c, err := s.repo.Load(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("panel load failed, serving empty collection")
		return domain.Collection{Panels: []domain.Panel{}}, nil
	}
	if c.Panels == nil {
		c.Panels = []domain.Panel{}
	}
	return c, nil
}

// Replace overwrites the entire stored collection. Structural violations
// (duplicate ids, unknown columns) are rejected before anything is written;
// last completed write wins, by design.
func (s *PanelService) Replace(ctx context.Context, c domain.Collection) error {
	if c.Panels == nil {
		return domain.ErrInvalidPanels
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return fmt.Errorf("save panels: %w", err)
	}
	return nil
}

// Display returns the visible panels partitioned by column, in stored
// relative order. This is the server-side counterpart of the public page's
// filter-then-partition pass.
func (s *PanelService) Display(ctx context.Context) (map[int][]domain.Panel, error) {
	c, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return c.VisibleByColumn(), nil
}
