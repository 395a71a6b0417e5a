// Package api implements the typed client for the upstream invoicing REST
// API. The app does not own that API; it only lists, creates, updates and
// deletes business/client records on behalf of the signed-in user.
package api

// Kind selects which entity directory a client talks to.
type Kind string

const (
	KindBusiness Kind = "business"
	KindClient   Kind = "client"
)

// Plural returns the URL/collection segment for the kind.
func (k Kind) Plural() string {
	if k == KindBusiness {
		return "businesses"
	}
	return "clients"
}

// Label returns the human singular name.
func (k Kind) Label() string {
	if k == KindBusiness {
		return "Business"
	}
	return "Client"
}

// bulkIDsField is the request key the bulk-delete endpoint expects.
func (k Kind) bulkIDsField() string {
	if k == KindBusiness {
		return "business_ids"
	}
	return "client_ids"
}

// DefaultLimit is the plan limit assumed when the backend response does not
// carry one. Observed plan defaults: two businesses, ten clients.
func (k Kind) DefaultLimit() int {
	if k == KindBusiness {
		return 2
	}
	return 10
}

// Entity is a business or client record. Website, LogoURL and TaxID are
// only populated for businesses.
type Entity struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id,omitempty"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	Website      string `json:"website,omitempty"`
	LogoURL      string `json:"logo_url,omitempty"`
	TaxID        string `json:"tax_id,omitempty"`
	InvoiceCount int    `json:"invoice_count"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// Fields carries the writable attributes for create/update calls.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Website string `json:"website,omitempty"`
	LogoURL string `json:"logo_url,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
}

// Pagination mirrors the backend's listing metadata.
type Pagination struct {
	Total       int  `json:"total"`
	Pages       int  `json:"pages"`
	PerPage     int  `json:"per_page"`
	CurrentPage int  `json:"current_page"`
	HasPrev     bool `json:"has_prev"`
	HasNext     bool `json:"has_next"`
}

// Consistent checks the pagination invariants the backend promises:
// has_prev == page>1 and has_next == page*per_page < total.
func (p Pagination) Consistent() bool {
	return p.HasPrev == (p.CurrentPage > 1) &&
		p.HasNext == (p.CurrentPage*p.PerPage < p.Total)
}

// PlanLimit tells the UI how close the user is to their plan's entity cap.
// The backend stays the authority on enforcement.
type PlanLimit struct {
	CurrentCount int `json:"current_count"`
	Limit        int `json:"limit"`
}

// Reached reports whether creating another entity should be gated behind an
// upgrade path.
func (l PlanLimit) Reached() bool {
	return l.Limit > 0 && l.CurrentCount >= l.Limit
}

// ListParams narrows a directory listing. The zero value requests the
// backend's unpaginated default, which is what the selector widget wants.
type ListParams struct {
	Page    int
	PerPage int
	Search  string
}

// ListResult is one page of a directory listing.
type ListResult struct {
	Items      []Entity
	Pagination Pagination
	Limit      PlanLimit
}
