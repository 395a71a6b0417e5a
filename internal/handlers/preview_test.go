package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTotalsEndpoint(t *testing.T) {
	h := NewPreviewHandler()

	draft := map[string]any{
		"items": []map[string]any{
			{"name": "Design", "quantity": 2, "unit_cost": 10},
			{"name": "Hosting", "quantity": 1, "unit_cost": 5},
		},
		"showTax":    true,
		"taxType":    "percent",
		"taxPercent": 10,
	}
	raw, _ := json.Marshal(draft)
	req := httptest.NewRequest(http.MethodPost, "/invoices/preview", bytes.NewReader(raw))
	rr := httptest.NewRecorder()
	h.Totals(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d: %s", rr.Code, rr.Body.String())
	}
	var body struct {
		Totals struct {
			Subtotal float64 `json:"subtotal"`
			Tax      float64 `json:"tax"`
			Total    float64 `json:"total"`
		} `json:"totals"`
		Formatted map[string]string `json:"formatted"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Totals.Subtotal != 25 || body.Totals.Tax != 2.5 || body.Totals.Total != 27.5 {
		t.Errorf("totals = %+v", body.Totals)
	}
	if body.Formatted["total"] != "27.50" || body.Formatted["discount"] != "0.00" {
		t.Errorf("formatted = %v", body.Formatted)
	}
}

func TestTotalsRejectsGarbage(t *testing.T) {
	h := NewPreviewHandler()
	req := httptest.NewRequest(http.MethodPost, "/invoices/preview", strings.NewReader("{nope"))
	rr := httptest.NewRecorder()
	h.Totals(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want 400", rr.Code)
	}
}

func TestPDFEndpoint(t *testing.T) {
	h := NewPreviewHandler()

	raw, _ := json.Marshal(map[string]any{
		"invoiceNumber": "INV-7",
		"from":          "Acme Corp",
		"to":            "Globex",
		"items":         []map[string]any{{"name": "Work", "quantity": 1, "unit_cost": 100}},
	})
	req := httptest.NewRequest(http.MethodPost, "/invoices/preview.pdf", bytes.NewReader(raw))
	rr := httptest.NewRecorder()
	h.PDF(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content-type = %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "inline") {
		t.Errorf("content-disposition = %q", cd)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")) {
		t.Error("body should be a PDF document")
	}
}

func TestComposeRequiresIdentity(t *testing.T) {
	h := NewPreviewHandler()

	req := httptest.NewRequest(http.MethodGet, "/invoices/new", nil)
	rr := httptest.NewRecorder()
	h.Compose(rr, req)

	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/" {
		t.Errorf("code = %d location = %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestComposeRenders(t *testing.T) {
	h := NewPreviewHandler()

	req := asUser(httptest.NewRequest(http.MethodGet, "/invoices/new", nil), "u1")
	rr := httptest.NewRecorder()
	h.Compose(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d: %s", rr.Code, rr.Body.String())
	}
	html := rr.Body.String()
	for _, want := range []string{`data-selector="businesses"`, `data-selector="clients"`, "Preview PDF"} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}
