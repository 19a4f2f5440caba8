package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/yonyossef/yiftach-sign/internal/core/domain"
)

type stubPanelService struct {
	collection domain.Collection
	replaceErr error
	replaced   *domain.Collection
}

func (s *stubPanelService) List(_ context.Context) (domain.Collection, error) {
	return s.collection, nil
}

func (s *stubPanelService) Replace(_ context.Context, c domain.Collection) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.replaced = &c
	return nil
}

func (s *stubPanelService) Display(_ context.Context) (map[int][]domain.Panel, error) {
	return s.collection.VisibleByColumn(), nil
}

func newPanelTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestPanelHandler_Get_ReturnsFullCollection(t *testing.T) {
	stub := &stubPanelService{collection: domain.Collection{Panels: []domain.Panel{
		{ID: 1, Column: 1, Visible: true, Text: "A"},
		{ID: 2, Column: 2, Visible: false, Text: "B", URL: "http://x"},
	}}}
	handler := NewPanelHandler(stub)

	c, rec := newPanelTestContext(t, http.MethodGet, "/api/data", "")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Panels []domain.Panel `json:"panels"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	// The read contract is unfiltered: hidden panels are included.
	if len(resp.Panels) != 2 {
		t.Fatalf("expected both panels, got %+v", resp.Panels)
	}
}

func TestPanelHandler_Get_EditorOrder(t *testing.T) {
	stub := &stubPanelService{collection: domain.Collection{Panels: []domain.Panel{
		{ID: 4, Column: 2, Text: "D"},
		{ID: 3, Column: 1, Text: "C"},
		{ID: 1, Column: 2, Text: "A"},
	}}}
	handler := NewPanelHandler(stub)

	c, rec := newPanelTestContext(t, http.MethodGet, "/api/data?order=editor", "")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Panels []domain.Panel `json:"panels"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	ids := make([]int, 0, len(resp.Panels))
	for _, p := range resp.Panels {
		ids = append(ids, p.ID)
	}
	if len(ids) != 3 || ids[0] != 3 || ids[1] != 1 || ids[2] != 4 {
		t.Fatalf("expected column-then-id order [3 1 4], got %v", ids)
	}
}

func TestPanelHandler_Update_Success(t *testing.T) {
	stub := &stubPanelService{}
	handler := NewPanelHandler(stub)

	body := `{"panels":[{"id":1,"column":1,"visible":true,"text":"A","url":""}]}`
	c, rec := newPanelTestContext(t, http.MethodPost, "/api/data", body)
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.replaced == nil || len(stub.replaced.Panels) != 1 {
		t.Fatalf("expected service to receive one panel, got %+v", stub.replaced)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("expected success envelope, got %s", rec.Body.String())
	}
}

func TestPanelHandler_Update_MissingPanels(t *testing.T) {
	stub := &stubPanelService{}
	handler := NewPanelHandler(stub)

	c, rec := newPanelTestContext(t, http.MethodPost, "/api/data", `{}`)
	_ = handler.Update(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing panels, got %d", rec.Code)
	}
	if stub.replaced != nil {
		t.Fatalf("rejected input must not reach the service")
	}
}

func TestPanelHandler_Update_BadColumn(t *testing.T) {
	stub := &stubPanelService{}
	handler := NewPanelHandler(stub)

	body := `{"panels":[{"id":1,"column":5,"visible":true,"text":"A","url":""}]}`
	c, rec := newPanelTestContext(t, http.MethodPost, "/api/data", body)
	_ = handler.Update(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown column, got %d", rec.Code)
	}
}

func TestPanelHandler_Update_DuplicateIDs(t *testing.T) {
	stub := &stubPanelService{replaceErr: domain.ErrDuplicatePanelID}
	handler := NewPanelHandler(stub)

	body := `{"panels":[{"id":1,"column":1},{"id":1,"column":2}]}`
	c, rec := newPanelTestContext(t, http.MethodPost, "/api/data", body)
	_ = handler.Update(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate ids, got %d", rec.Code)
	}
}

func TestPanelHandler_Update_StorageFailure(t *testing.T) {
	stub := &stubPanelService{replaceErr: context.DeadlineExceeded}
	handler := NewPanelHandler(stub)

	body := `{"panels":[{"id":1,"column":1,"visible":true,"text":"A","url":""}]}`
	c, rec := newPanelTestContext(t, http.MethodPost, "/api/data", body)
	_ = handler.Update(c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for storage failure, got %d", rec.Code)
	}
}

func TestPanelHandler_Display_FiltersHidden(t *testing.T) {
	stub := &stubPanelService{collection: domain.Collection{Panels: []domain.Panel{
		{ID: 1, Column: 1, Visible: true, Text: "A", URL: "http://example.com"},
		{ID: 2, Column: 2, Visible: false, Text: "B"},
		{ID: 3, Column: 1, Visible: true, Text: "C"},
	}}}
	handler := NewPanelHandler(stub)

	c, rec := newPanelTestContext(t, http.MethodGet, "/api/display", "")
	if err := handler.Display(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	type feedPanel struct {
		ID          int    `json:"id"`
		Interactive bool   `json:"interactive"`
		URL         string `json:"url"`
	}
	var resp struct {
		Columns map[string][]feedPanel `json:"columns"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Columns["1"]) != 2 || resp.Columns["1"][0].ID != 1 {
		t.Fatalf("expected panels 1 and 3 in column 1, got %+v", resp.Columns)
	}
	if len(resp.Columns["2"]) != 0 {
		t.Fatalf("hidden panel leaked into the display feed: %+v", resp.Columns)
	}
	// Panels with a link are flagged interactive, the rest are not.
	if !resp.Columns["1"][0].Interactive || resp.Columns["1"][1].Interactive {
		t.Fatalf("wrong interactive flags: %+v", resp.Columns["1"])
	}
}
