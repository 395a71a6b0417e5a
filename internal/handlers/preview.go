package handlers

import (
	"net/http"
	"strconv"

	"github.com/invoza/webapp/internal/httpx"
	"github.com/invoza/webapp/internal/invoice"
	"github.com/invoza/webapp/internal/logger"
	"github.com/invoza/webapp/internal/middleware"
	"github.com/invoza/webapp/internal/view"
	"go.uber.org/zap"
)

// PreviewHandler serves the invoice compose screen's sidebar: live totals
// recomputed from the draft on every change, and the rendered PDF preview.
type PreviewHandler struct{}

func NewPreviewHandler() *PreviewHandler { return &PreviewHandler{} }

// Compose renders the invoice screen hosting the selector widgets and the
// preview sidebar.
func (h *PreviewHandler) Compose(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	data := map[string]any{
		"Flash": PopFlash(w, r),
	}
	if err := view.Render(w, r, "invoice_new.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}

// Totals recomputes the derived charges for a draft. Values come back both
// raw and formatted to two decimals so the sidebar renders them directly.
func (h *PreviewHandler) Totals(w http.ResponseWriter, r *http.Request) {
	var d invoice.Draft
	if err := httpx.Decode(r, &d); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid draft", nil)
		return
	}
	t := invoice.Compute(d)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"totals": t,
		"formatted": map[string]string{
			"subtotal": invoice.Money(t.Subtotal),
			"tax":      invoice.Money(t.Tax),
			"discount": invoice.Money(t.Discount),
			"shipping": invoice.Money(t.Shipping),
			"total":    invoice.Money(t.Total),
		},
	})
}

// PDF renders the draft as the preview document embedded by the sidebar's
// frame.
func (h *PreviewHandler) PDF(w http.ResponseWriter, r *http.Request) {
	var d invoice.Draft
	if err := httpx.Decode(r, &d); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid draft", nil)
		return
	}
	b, err := invoice.RenderPDF(d)
	if err != nil {
		logger.FromContext(r.Context()).Error("pdf render failed", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "failed to render preview", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="invoice-preview.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	_, _ = w.Write(b)
}
