package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/invoza/webapp/internal/api"
	"github.com/invoza/webapp/internal/directory"
	"github.com/invoza/webapp/internal/httpx"
	"github.com/invoza/webapp/internal/logger"
	"github.com/invoza/webapp/internal/middleware"
	"github.com/invoza/webapp/internal/validation"
	"github.com/invoza/webapp/internal/view"
	"go.uber.org/zap"
)

// DirectoryHandler serves the management pages for one entity directory
// (businesses or clients): searchable paginated table, row selection with
// bulk delete, and the create/edit forms.
type DirectoryHandler struct {
	api *api.Client
}

func NewDirectoryHandler(client *api.Client) *DirectoryHandler {
	return &DirectoryHandler{api: client}
}

func (h *DirectoryHandler) kind() api.Kind   { return h.api.Kind() }
func (h *DirectoryHandler) basePath() string { return "/" + h.kind().Plural() }

// pageState gathers everything a directory render needs beyond the listing
// itself: open modal, form contents, errors, selection.
type pageState struct {
	Search   string
	Page     int
	Selected []string
	Modal    string // "", "create" or "edit"
	EditID   string
	Form     directory.Form
	Errors   validation.Violations
	Flash    *Flash
}

// List renders the directory page, or its JSON shape for API consumers.
func (h *DirectoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.unauthenticated(w, r)
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	st := pageState{
		Search:   q.Get("search"),
		Page:     directory.ClampPage(page, 0),
		Selected: q["selected"],
		Modal:    q.Get("modal"),
		EditID:   q.Get("id"),
	}

	if httpx.WantsJSON(r) {
		res, err := h.fetch(r, userID, &st)
		if err != nil {
			httpx.JSONError(w, http.StatusBadGateway, "failed to fetch "+h.kind().Plural(), nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{
			"items":      res.Items,
			"pagination": res.Pagination,
			"limit":      res.Limit,
		})
		return
	}

	st.Flash = PopFlash(w, r)
	h.render(w, r, userID, st)
}

// Create handles the create-form submission. Local validation runs first
// and blocks the upstream call entirely when it fails.
func (h *DirectoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.unauthenticated(w, r)
		return
	}
	st := h.formState(r, "create", "")

	if v := st.Form.Validate(); !v.Empty() {
		h.rejectForm(w, r, userID, st, v, nil)
		return
	}

	entity, err := h.api.Create(r.Context(), userID, st.Form.Fields())
	if err != nil {
		h.mutationFailed(w, r, userID, st, err)
		return
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, entity)
		return
	}
	SetFlash(w, "success", h.kind().Label()+" created successfully")
	h.redirectBack(w, r, st)
}

// Update handles the edit-form submission for one entity.
func (h *DirectoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.unauthenticated(w, r)
		return
	}
	id := r.PathValue("id")
	st := h.formState(r, "edit", id)

	if v := st.Form.Validate(); !v.Empty() {
		h.rejectForm(w, r, userID, st, v, nil)
		return
	}

	entity, err := h.api.Update(r.Context(), id, st.Form.Fields())
	if err != nil {
		h.mutationFailed(w, r, userID, st, err)
		return
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, entity)
		return
	}
	SetFlash(w, "success", h.kind().Label()+" updated successfully")
	h.redirectBack(w, r, st)
}

// Delete removes a single entity. Failures are non-fatal notices; the page
// stays usable and a retry is the user repeating the action.
func (h *DirectoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.unauthenticated(w, r)
		return
	}
	_ = userID
	id := r.PathValue("id")
	st := h.formState(r, "", "")

	if err := h.api.Remove(r.Context(), id); err != nil {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadGateway, toastForError(err), nil)
			return
		}
		SetFlash(w, "error", toastForError(err))
		h.redirectBack(w, r, st)
		return
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"deleted": true})
		return
	}
	SetFlash(w, "success", h.kind().Label()+" deleted successfully")
	h.redirectBack(w, r, st)
}

// BulkDelete removes the selected rows and reports the count the backend
// actually deleted.
func (h *DirectoryHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.unauthenticated(w, r)
		return
	}
	_ = userID
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	st := h.formState(r, "", "")
	ids := r.Form["ids"]
	if len(ids) == 0 {
		SetFlash(w, "error", "No "+h.kind().Plural()+" selected")
		h.redirectBack(w, r, st)
		return
	}

	deleted, err := h.api.RemoveMany(r.Context(), ids)
	if err != nil {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadGateway, toastForError(err), nil)
			return
		}
		SetFlash(w, "error", toastForError(err))
		h.redirectBack(w, r, st)
		return
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"deleted_count": deleted})
		return
	}
	SetFlash(w, "success", directory.BulkDeletedMessage(h.kind(), deleted))
	st.Selected = nil
	h.redirectBack(w, r, st)
}

// Selection is the no-script fallback for the header checkbox: it toggles
// between the full current-page selection and none, then returns to the
// listing.
func (h *DirectoryHandler) Selection(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		h.unauthenticated(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	st := h.formState(r, "", "")
	st.Selected = directory.ToggleAll(r.Form["ids"], r.Form["page_ids"])
	h.redirectBack(w, r, st)
}

// ─────────────────────────────────────────────────────────────────────────
// internals
// ─────────────────────────────────────────────────────────────────────────

// fetch lists the current page, clamping the requested page into the range
// the backend reports.
func (h *DirectoryHandler) fetch(r *http.Request, userID string, st *pageState) (api.ListResult, error) {
	params := api.ListParams{Page: st.Page, PerPage: directory.PerPage, Search: st.Search}
	res, err := h.api.List(r.Context(), userID, params)
	if err != nil {
		return api.ListResult{}, err
	}
	if clamped := directory.ClampPage(st.Page, res.Pagination.Pages); clamped != st.Page {
		st.Page = clamped
		params.Page = clamped
		res, err = h.api.List(r.Context(), userID, params)
		if err != nil {
			return api.ListResult{}, err
		}
	}
	if !res.Pagination.Consistent() {
		logger.FromContext(r.Context()).Warn("inconsistent pagination from upstream",
			zap.String("kind", string(h.kind())),
			zap.Int("page", res.Pagination.CurrentPage),
			zap.Int("total", res.Pagination.Total))
	}
	return res, nil
}

// render draws the directory page. A listing failure degrades to an empty
// table plus an error toast; the page itself stays interactive.
func (h *DirectoryHandler) render(w http.ResponseWriter, r *http.Request, userID string, st pageState) {
	res, err := h.fetch(r, userID, &st)
	if err != nil {
		logger.FromContext(r.Context()).Error("directory fetch failed",
			zap.String("kind", string(h.kind())), zap.Error(err))
		if st.Flash == nil {
			st.Flash = &Flash{Kind: "error", Message: "Failed to fetch " + h.kind().Plural()}
		}
	}

	pageIDs := make([]string, 0, len(res.Items))
	selectedSet := make(map[string]bool, len(st.Selected))
	for _, it := range res.Items {
		pageIDs = append(pageIDs, it.ID)
	}
	for _, id := range st.Selected {
		selectedSet[id] = true
	}
	from, to := directory.Window(st.Page, directory.PerPage, res.Pagination.Total)

	if st.Modal == "edit" && st.Form == (directory.Form{}) {
		for _, it := range res.Items {
			if it.ID == st.EditID {
				st.Form = directory.FormFromEntity(it)
				break
			}
		}
	}

	data := map[string]any{
		"Kind":        string(h.kind()),
		"KindLabel":   h.kind().Label(),
		"KindPlural":  h.kind().Plural(),
		"BasePath":    h.basePath(),
		"Items":       res.Items,
		"Pagination":  res.Pagination,
		"Limit":       res.Limit,
		"IsBusiness":  h.kind() == api.KindBusiness,
		"Search":      st.Search,
		"Page":        st.Page,
		"Selected":    selectedSet,
		"SelectedIDs": st.Selected,
		"AllSelected": directory.AllSelected(st.Selected, pageIDs),
		"From":        from,
		"To":          to,
		"Modal":       st.Modal,
		"EditID":      st.EditID,
		"Form":        st.Form,
		"Errors":      st.Errors,
		"Flash":       st.Flash,
	}
	if err := view.Render(w, r, "directory.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}

// formState rebuilds the page context a form submission carries along
// (search, page, selection) plus the submitted fields.
func (h *DirectoryHandler) formState(r *http.Request, modal, editID string) pageState {
	_ = r.ParseForm()
	page, _ := strconv.Atoi(r.FormValue("page"))
	return pageState{
		Search:   r.FormValue("search"),
		Page:     directory.ClampPage(page, 0),
		Selected: r.Form["ids"],
		Modal:    modal,
		EditID:   editID,
		Form: directory.Form{
			Name:    r.FormValue("name"),
			Email:   r.FormValue("email"),
			Phone:   r.FormValue("phone"),
			Address: r.FormValue("address"),
			Website: r.FormValue("website"),
			LogoURL: r.FormValue("logo_url"),
			TaxID:   r.FormValue("tax_id"),
		},
	}
}

// rejectForm re-renders the open modal with field annotations. No upstream
// call has been made when this runs for local validation.
func (h *DirectoryHandler) rejectForm(w http.ResponseWriter, r *http.Request, userID string, st pageState, v validation.Violations, flash *Flash) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation failed", v)
		return
	}
	st.Errors = v
	st.Flash = flash
	h.render(w, r, userID, st)
}

// mutationFailed maps an upstream error to the right surface: field
// annotations when messages can be pinned to fields, a toast otherwise.
func (h *DirectoryHandler) mutationFailed(w http.ResponseWriter, r *http.Request, userID string, st pageState, err error) {
	var ve *api.ValidationError
	if errors.As(err, &ve) {
		fields, unmatched := directory.MapServerErrors(ve.Messages)
		var flash *Flash
		if len(unmatched) > 0 {
			flash = &Flash{Kind: "error", Message: unmatched[0]}
		}
		if !fields.Empty() || flash != nil {
			h.rejectForm(w, r, userID, st, fields, flash)
			return
		}
	}
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusBadGateway, toastForError(err), nil)
		return
	}
	SetFlash(w, "error", toastForError(err))
	h.redirectBack(w, r, st)
}

// redirectBack returns to the listing, preserving search, page and
// selection.
func (h *DirectoryHandler) redirectBack(w http.ResponseWriter, r *http.Request, st pageState) {
	q := url.Values{}
	if st.Search != "" {
		q.Set("search", st.Search)
	}
	if st.Page > 1 {
		q.Set("page", strconv.Itoa(st.Page))
	}
	for _, id := range st.Selected {
		q.Add("selected", id)
	}
	dest := h.basePath()
	if len(q) > 0 {
		dest += "?" + q.Encode()
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *DirectoryHandler) unauthenticated(w http.ResponseWriter, r *http.Request) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// toastForError picks the toast text for an upstream failure. Backend
// refusals are surfaced verbatim (including plan-limit messages); anything
// transport-shaped becomes the generic network notice.
func toastForError(err error) string {
	var ae *api.APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	var nfe *api.NotFoundError
	if errors.As(err, &nfe) {
		return nfe.Error()
	}
	var ve *api.ValidationError
	if errors.As(err, &ve) && len(ve.Messages) > 0 {
		return ve.Messages[0]
	}
	return "Network error occurred"
}
