package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client talks to one entity directory (businesses or clients) of the
// upstream API. Every call is single-shot: no retries, no caching; the
// caller decides whether repeating a failed action makes sense.
type Client struct {
	kind Kind
	base string
	hc   *http.Client
}

// New builds a directory client. baseURL must end with a slash
// (config.Load normalizes it).
func New(kind Kind, baseURL string, timeout time.Duration) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	return &Client{
		kind: kind,
		base: baseURL,
		hc:   &http.Client{Timeout: timeout},
	}, nil
}

// Kind returns the directory this client is bound to.
func (c *Client) Kind() Kind { return c.kind }

// envelope is the upstream response shape: every body carries a success
// flag plus operation-specific payloads.
type envelope struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`

	Businesses []Entity `json:"businesses"`
	Clients    []Entity `json:"clients"`
	Business   *Entity  `json:"business"`
	Client     *Entity  `json:"client"`

	Pagination   Pagination `json:"pagination"`
	DeletedCount *int       `json:"deleted_count"`

	BusinessLimit *int `json:"business_limit"`
	ClientLimit   *int `json:"client_limit"`
	CurrentCount  *int `json:"current_count"`
}

// call performs one request and decodes the envelope. Transport and decode
// failures come back as *NetworkError; interpreting success=false is left
// to the operation.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body any) (*envelope, int, error) {
	op := method + " " + path

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, 0, &NetworkError{Op: op, Err: err}
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, 0, &NetworkError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, 0, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, resp.StatusCode, &NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &env, resp.StatusCode, nil
}

// message picks the most specific refusal text from an envelope.
func (e *envelope) message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// List fetches one page of the directory. The zero ListParams omits the
// paging parameters entirely, which the backend treats as its unfiltered
// default; the selector widget uses that mode to load the full list.
func (c *Client) List(ctx context.Context, userID string, params ListParams) (ListResult, error) {
	q := url.Values{}
	q.Set("user_id", userID)
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(params.PerPage))
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}

	env, status, err := c.call(ctx, http.MethodGet, "api/"+c.kind.Plural(), q, nil)
	if err != nil {
		return ListResult{}, err
	}
	if !env.Success {
		return ListResult{}, &APIError{Status: status, Message: env.message()}
	}

	items := env.Businesses
	if c.kind == KindClient {
		items = env.Clients
	}

	return ListResult{
		Items:      items,
		Pagination: env.Pagination,
		Limit:      c.planLimit(env),
	}, nil
}

// planLimit resolves the plan usage from the response, falling back to the
// observed plan defaults when the backend omits the limit. The fallback
// count only makes sense for unfiltered listings; callers gating creation
// should list without a search term first.
func (c *Client) planLimit(env *envelope) PlanLimit {
	limit := c.kind.DefaultLimit()
	switch c.kind {
	case KindBusiness:
		if env.BusinessLimit != nil {
			limit = *env.BusinessLimit
		}
	case KindClient:
		if env.ClientLimit != nil {
			limit = *env.ClientLimit
		}
	}
	count := env.Pagination.Total
	if env.CurrentCount != nil {
		count = *env.CurrentCount
	}
	return PlanLimit{CurrentCount: count, Limit: limit}
}

// createPayload adds the owning user to the writable fields.
type createPayload struct {
	Fields
	UserID string `json:"user_id"`
}

// Create submits a new entity for the user. Field-level rejections come
// back as *ValidationError, everything else as *APIError or *NetworkError.
func (c *Client) Create(ctx context.Context, userID string, fields Fields) (Entity, error) {
	env, status, err := c.call(ctx, http.MethodPost, "api/"+c.kind.Plural(), nil, createPayload{Fields: fields, UserID: userID})
	if err != nil {
		return Entity{}, err
	}
	if !env.Success {
		if len(env.Errors) > 0 {
			return Entity{}, &ValidationError{Messages: env.Errors}
		}
		return Entity{}, &APIError{Status: status, Message: env.message()}
	}
	return env.entity(c.kind), nil
}

// Update rewrites an existing entity. A vanished id maps to *NotFoundError.
func (c *Client) Update(ctx context.Context, id string, fields Fields) (Entity, error) {
	env, status, err := c.call(ctx, http.MethodPut, "api/"+c.kind.Plural()+"/"+url.PathEscape(id), nil, fields)
	if err != nil {
		return Entity{}, err
	}
	if !env.Success {
		if len(env.Errors) > 0 {
			return Entity{}, &ValidationError{Messages: env.Errors}
		}
		if status == http.StatusNotFound {
			return Entity{}, &NotFoundError{Kind: c.kind, ID: id}
		}
		return Entity{}, &APIError{Status: status, Message: env.message()}
	}
	return env.entity(c.kind), nil
}

// Remove deletes one entity. Deleting an id that is already gone is
// reported as an *APIError; callers surface it as a non-fatal notice and
// never retry automatically.
func (c *Client) Remove(ctx context.Context, id string) error {
	env, status, err := c.call(ctx, http.MethodDelete, "api/"+c.kind.Plural()+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	if !env.Success {
		return &APIError{Status: status, Message: env.message()}
	}
	return nil
}

// RemoveMany bulk-deletes and returns the count the backend actually
// deleted, which may be lower than the number of ids requested.
func (c *Client) RemoveMany(ctx context.Context, ids []string) (int, error) {
	payload := map[string][]string{c.kind.bulkIDsField(): ids}
	env, status, err := c.call(ctx, http.MethodDelete, "api/"+c.kind.Plural()+"/bulk-delete", nil, payload)
	if err != nil {
		return 0, err
	}
	if !env.Success {
		return 0, &APIError{Status: status, Message: env.message()}
	}
	if env.DeletedCount != nil {
		return *env.DeletedCount, nil
	}
	return len(ids), nil
}

// entity extracts the single-entity payload for the kind.
func (e *envelope) entity(kind Kind) Entity {
	if kind == KindClient {
		if e.Client != nil {
			return *e.Client
		}
		return Entity{}
	}
	if e.Business != nil {
		return *e.Business
	}
	return Entity{}
}
