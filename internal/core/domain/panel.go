package domain

import (
	"errors"
	"fmt"
	"sort"
)

// Display columns of the physical sign.
const (
	ColumnLeft  = 1
	ColumnRight = 2
)

var ErrInvalidPanels = errors.New("invalid panel data")
var ErrDuplicatePanelID = errors.New("duplicate panel id")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrServerMisconfigured = errors.New("server configuration error")
var ErrUnauthorized = errors.New("unauthorized")
var ErrSessionNotFound = errors.New("session not found")

// Panel is one unit of displayable sign content.
type Panel struct {
	ID      int    `json:"id"`
	Column  int    `json:"column"`
	Visible bool   `json:"visible"`
	Text    string `json:"text"`
	URL     string `json:"url"`
}

// Interactive reports whether the rendered panel links somewhere.
func (p Panel) Interactive() bool {
	return p.URL != ""
}

// Collection is the full persisted panel set. Storage order is not display
// order; display order is computed by the helpers below.
type Collection struct {
	Panels []Panel `json:"panels"`
}

// Validate checks the collection's structural invariants: ids unique, columns
// drawn from the fixed set. Content is deliberately unchecked.
func (c Collection) Validate() error {
	seen := make(map[int]struct{}, len(c.Panels))
	for _, p := range c.Panels {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: id %d", ErrDuplicatePanelID, p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Column != ColumnLeft && p.Column != ColumnRight {
			return fmt.Errorf("%w: panel %d has column %d", ErrInvalidPanels, p.ID, p.Column)
		}
	}
	return nil
}

// VisibleByColumn partitions the visible panels by column, preserving the
// stored relative order within each column. Hidden panels never appear.
func (c Collection) VisibleByColumn() map[int][]Panel {
	cols := map[int][]Panel{
		ColumnLeft:  {},
		ColumnRight: {},
	}
	for _, p := range c.Panels {
		if !p.Visible {
			continue
		}
		cols[p.Column] = append(cols[p.Column], p)
	}
	return cols
}

// SortedForEditing returns a copy ordered by (column, id) so the admin editor
// presents panels in a stable, predictable order.
func (c Collection) SortedForEditing() []Panel {
	out := make([]Panel, len(c.Panels))
	copy(out, c.Panels)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Column != out[j].Column {
			return out[i].Column < out[j].Column
		}
		return out[i].ID < out[j].ID
	})
	return out
}
