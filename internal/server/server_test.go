package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"dropship_manager/internal/catalog"
	"dropship_manager/internal/selection"
	"dropship_manager/internal/table"

	"github.com/gin-gonic/gin"
)

func testRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reconciled := &table.Table{
		Header: []string{"Handle", "Variant SKU", "Title", "Available Quantity"},
		Rows: []table.Row{
			{"Handle": "h1", "Variant SKU": "ABC-100", "Title": "Widget", "Available Quantity": "5"},
			{"Handle": "h2", "Variant SKU": "ABC-200", "Title": "Gadget", "Available Quantity": "1"},
		},
	}
	dir := t.TempDir()
	store, err := selection.Open(filepath.Join(dir, "selection.json"))
	if err != nil {
		t.Fatalf("selection.Open: %v", err)
	}
	productCols := map[string]struct{}{"Handle": {}, "Variant SKU": {}, "Title": {}}
	inventoryCols := map[string]struct{}{"Variant SKU": {}, "Available Quantity": {}}
	session := catalog.NewSession(reconciled, productCols, inventoryCols, store)
	return NewRouter(session, dir), dir
}

func doRequest(t *testing.T, r *gin.Engine, method, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decoding %s %s response: %v", method, path, err)
		}
	}
	return w, body
}

func TestGetGroups(t *testing.T) {
	r, _ := testRouter(t)

	w, body := doRequest(t, r, http.MethodGet, "/api/groups")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body["count"].(float64) != 2 {
		t.Errorf("expected 2 groups, got %v", body["count"])
	}
}

func TestGetGroupsFiltered(t *testing.T) {
	r, _ := testRouter(t)

	_, body := doRequest(t, r, http.MethodGet, "/api/groups?q=widget")
	if body["count"].(float64) != 1 {
		t.Errorf("expected 1 group for q=widget, got %v", body["count"])
	}

	_, body = doRequest(t, r, http.MethodGet, "/api/groups?min=2")
	if body["count"].(float64) != 1 {
		t.Errorf("expected 1 group for min=2, got %v", body["count"])
	}

	w, _ := doRequest(t, r, http.MethodGet, "/api/groups?min=abc")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad min, got %d", w.Code)
	}
}

func TestSelectionLifecycle(t *testing.T) {
	r, _ := testRouter(t)

	w, _ := doRequest(t, r, http.MethodPut, "/api/selection/h1")
	if w.Code != http.StatusOK {
		t.Fatalf("select: expected 200, got %d", w.Code)
	}

	_, body := doRequest(t, r, http.MethodGet, "/api/selection")
	handles := body["handles"].([]any)
	if len(handles) != 1 || handles[0] != "h1" {
		t.Errorf("expected [h1], got %v", handles)
	}

	// Selected flag surfaces in the group listing.
	_, body = doRequest(t, r, http.MethodGet, "/api/groups?q=widget")
	group := body["groups"].([]any)[0].(map[string]any)
	if group["selected"] != true {
		t.Errorf("expected h1 marked selected, got %v", group)
	}

	doRequest(t, r, http.MethodDelete, "/api/selection/h1")
	_, body = doRequest(t, r, http.MethodGet, "/api/selection")
	if len(body["handles"].([]any)) != 0 {
		t.Errorf("expected empty selection, got %v", body["handles"])
	}
}

func TestClearSelection(t *testing.T) {
	r, _ := testRouter(t)
	doRequest(t, r, http.MethodPut, "/api/selection/h1")
	doRequest(t, r, http.MethodPut, "/api/selection/h2")

	w, _ := doRequest(t, r, http.MethodDelete, "/api/selection")
	if w.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", w.Code)
	}
	_, body := doRequest(t, r, http.MethodGet, "/api/selection")
	if len(body["handles"].([]any)) != 0 {
		t.Errorf("expected empty selection after clear, got %v", body["handles"])
	}
}

func TestExportEndpoint(t *testing.T) {
	r, _ := testRouter(t)
	doRequest(t, r, http.MethodPut, "/api/selection/h1")

	w, body := doRequest(t, r, http.MethodPost, "/api/export")
	if w.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", w.Code)
	}
	if body["productFile"] == "" || body["inventoryFile"] == "" {
		t.Errorf("expected file paths in response, got %v", body)
	}
}
