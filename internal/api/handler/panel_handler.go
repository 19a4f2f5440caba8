package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yonyossef/yiftach-sign/internal/api/metrics"
	"github.com/yonyossef/yiftach-sign/internal/core/domain"
	"github.com/yonyossef/yiftach-sign/internal/core/ports"
)

// PanelHandler exposes reads and the full-replacement write over the panel
// collection.
type PanelHandler struct {
	service ports.PanelService
}

func NewPanelHandler(service ports.PanelService) *PanelHandler {
	return &PanelHandler{service: service}
}

type panelPayload struct {
	ID      int    `json:"id" validate:"min=1"`
	Column  int    `json:"column" validate:"oneof=1 2"`
	Visible bool   `json:"visible"`
	Text    string `json:"text"`
	URL     string `json:"url"`
}

type updatePanelsRequest struct {
	Panels []panelPayload `json:"panels" validate:"required,dive"`
}

type panelsResponse struct {
	Panels []domain.Panel `json:"panels"`
}

// displayPanel decorates a panel with the rendering hints the display feed
// promises its consumers.
type displayPanel struct {
	domain.Panel
	Interactive bool `json:"interactive"`
}

type displayResponse struct {
	Columns map[int][]displayPanel `json:"columns"`
}

// orderEditor requests (column, id) ordering on reads, matching the layout
// of the admin editor.
const orderEditor = "editor"

// Get returns the full stored collection, hidden panels included. One read
// contract serves both the public page and the admin editor; the editor asks
// for its ordering with ?order=editor.
//
// @Summary      Get all panels
// @Tags         panels
// @Produce      json
// @Param        order  query     string  false  "Set to editor for (column, id) ordering"
// @Success      200  {object}  panelsResponse
// @Router       /api/data [get]
func (h *PanelHandler) Get(c echo.Context) error {
	collection, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	panels := collection.Panels
	if c.QueryParam("order") == orderEditor {
		panels = collection.SortedForEditing()
	}
	return c.JSON(http.StatusOK, panelsResponse{Panels: panels})
}

// Update replaces the entire stored collection.
//
// @Summary      Replace all panels
// @Tags         panels
// @Accept       json
// @Produce      json
// @Param        body  body      updatePanelsRequest  true  "Full panel set"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/data [post]
func (h *PanelHandler) Update(c echo.Context) error {
	var req updatePanelsRequest
	if err := c.Bind(&req); err != nil {
		metrics.PanelSavesTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid data format"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.PanelSavesTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	collection := domain.Collection{Panels: make([]domain.Panel, 0, len(req.Panels))}
	for _, p := range req.Panels {
		collection.Panels = append(collection.Panels, domain.Panel{
			ID:      p.ID,
			Column:  p.Column,
			Visible: p.Visible,
			Text:    p.Text,
			URL:     p.URL,
		})
	}

	if err := h.service.Replace(c.Request().Context(), collection); err != nil {
		if errors.Is(err, domain.ErrInvalidPanels) || errors.Is(err, domain.ErrDuplicatePanelID) {
			metrics.PanelSavesTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		metrics.PanelSavesTotal.WithLabelValues("error").Inc()
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update data"})
	}

	metrics.PanelSavesTotal.WithLabelValues("success").Inc()
	visible := 0
	for _, p := range collection.Panels {
		if p.Visible {
			visible++
		}
	}
	metrics.PanelsVisible.Set(float64(visible))

	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Data updated successfully"})
}

// Display returns only the visible panels, grouped by column in stored
// order. Consumers that must never see hidden content read this instead of
// /api/data.
//
// @Summary      Get the public display feed
// @Tags         panels
// @Produce      json
// @Success      200  {object}  displayResponse
// @Router       /api/display [get]
func (h *PanelHandler) Display(c echo.Context) error {
	columns, err := h.service.Display(c.Request().Context())
	if err != nil {
		return err
	}
	out := make(map[int][]displayPanel, len(columns))
	for col, panels := range columns {
		items := make([]displayPanel, 0, len(panels))
		for _, p := range panels {
			items = append(items, displayPanel{Panel: p, Interactive: p.Interactive()})
		}
		out[col] = items
	}
	return c.JSON(http.StatusOK, displayResponse{Columns: out})
}
