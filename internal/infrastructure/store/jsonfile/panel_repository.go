// Package jsonfile persists the panel collection as a single flat JSON
// document on local disk.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/yonyossef/yiftach-sign/internal/core/domain"
)

// PanelRepository reads and writes the full {panels: [...]} document.
//
// Saves are write-then-rename: the new document lands in a temp file in the
// same directory and replaces the old one atomically, so a failed save never
// leaves a half-written file behind and a concurrent reader never observes a
// torn document.
type PanelRepository struct {
	path string
	log  zerolog.Logger
}

func NewPanelRepository(path string, log zerolog.Logger) *PanelRepository {
	return &PanelRepository{path: path, log: log}
}

// Load reads the stored collection. A missing or unparsable file degrades to
// an empty collection; the caller never sees an error for that.
func (r *PanelRepository) Load(_ context.Context) (domain.Collection, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.Warn().Err(err).Str("path", r.path).Msg("panel file unreadable")
		}
		return domain.Collection{Panels: []domain.Panel{}}, nil
	}

	var c domain.Collection
	if err := json.Unmarshal(raw, &c); err != nil {
		r.log.Warn().Err(err).Str("path", r.path).Msg("panel file unparsable")
		return domain.Collection{Panels: []domain.Panel{}}, nil
	}
	if c.Panels == nil {
		c.Panels = []domain.Panel{}
	}
	return c, nil
}

// Save performs a full-document overwrite of the stored collection.
func (r *PanelRepository) Save(_ context.Context, c domain.Collection) error {
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal panels: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write panels: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync panels: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace panel file: %w", err)
	}
	return nil
}
