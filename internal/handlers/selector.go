package handlers

import (
	"net/http"

	"github.com/invoza/webapp/internal/api"
	"github.com/invoza/webapp/internal/httpx"
	"github.com/invoza/webapp/internal/logger"
	"github.com/invoza/webapp/internal/middleware"
	"github.com/invoza/webapp/internal/selector"
	"go.uber.org/zap"
)

// SelectorHandler feeds the picker widgets on the invoice compose screen.
// A focus event fetches the user's full entity list in one shot — the
// widget never filters server-side, it is purely a picker once open.
type SelectorHandler struct {
	clients map[string]*api.Client
}

func NewSelectorHandler(business, client *api.Client) *SelectorHandler {
	return &SelectorHandler{clients: map[string]*api.Client{
		api.KindBusiness.Plural(): business,
		api.KindClient.Plural():   client,
	}}
}

type selectorItem struct {
	api.Entity
	Label string `json:"label"`
}

// Feed returns the dropdown payload: items with their selection labels,
// plus the plan usage for the footer and where "create new" should go.
func (h *SelectorHandler) Feed(w http.ResponseWriter, r *http.Request) {
	client, ok := h.clients[r.PathValue("kind")]
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "unknown selector kind", nil)
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	res, err := client.List(r.Context(), userID, api.ListParams{})
	if err != nil {
		logger.FromContext(r.Context()).Error("selector fetch failed",
			zap.String("kind", string(client.Kind())), zap.Error(err))
		httpx.JSONError(w, http.StatusBadGateway, "failed to fetch "+client.Kind().Plural(), nil)
		return
	}

	items := make([]selectorItem, 0, len(res.Items))
	for _, e := range res.Items {
		items = append(items, selectorItem{Entity: e, Label: selector.Label(e)})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":         items,
		"current_count": res.Limit.CurrentCount,
		"limit":         res.Limit.Limit,
		"limit_reached": res.Limit.Reached(),
		"create_url":    "/" + client.Kind().Plural(),
	})
}
