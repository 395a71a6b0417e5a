package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, kind Kind, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(kind, srv.URL+"/", 5*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, srv
}

func TestListSendsPagingAndSearch(t *testing.T) {
	var gotQuery map[string]string
	c, _ := newTestClient(t, KindBusiness, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/businesses" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":    true,
			"businesses": []Entity{{ID: "b1", Name: "Acme"}},
			"pagination": Pagination{Total: 1, Pages: 1, PerPage: 10, CurrentPage: 1},
		})
	})

	res, err := c.List(context.Background(), "u1", ListParams{Page: 2, PerPage: 10, Search: "ac"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotQuery["user_id"] != "u1" || gotQuery["page"] != "2" || gotQuery["per_page"] != "10" || gotQuery["search"] != "ac" {
		t.Errorf("query = %v", gotQuery)
	}
	if len(res.Items) != 1 || res.Items[0].ID != "b1" {
		t.Errorf("items = %+v", res.Items)
	}
}

func TestListZeroParamsOmitPaging(t *testing.T) {
	c, _ := newTestClient(t, KindClient, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Has("page") || q.Has("per_page") || q.Has("search") {
			t.Errorf("zero params must omit paging, got %v", q)
		}
		if q.Get("user_id") != "u1" {
			t.Errorf("user_id = %q", q.Get("user_id"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"clients": []Entity{{ID: "c1"}, {ID: "c2"}},
		})
	})

	res, err := c.List(context.Background(), "u1", ListParams{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(res.Items) != 2 {
		t.Errorf("items = %d", len(res.Items))
	}
}

func TestListPlanLimitFromResponse(t *testing.T) {
	c, _ := newTestClient(t, KindBusiness, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":        true,
			"businesses":     []Entity{},
			"business_limit": 5,
			"current_count":  4,
		})
	})

	res, err := c.List(context.Background(), "u1", ListParams{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Limit.Limit != 5 || res.Limit.CurrentCount != 4 {
		t.Errorf("limit = %+v", res.Limit)
	}
	if res.Limit.Reached() {
		t.Error("4/5 should not be reached")
	}
}

func TestListPlanLimitFallback(t *testing.T) {
	c, _ := newTestClient(t, KindBusiness, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":    true,
			"businesses": []Entity{{ID: "1"}, {ID: "2"}},
			"pagination": Pagination{Total: 2, Pages: 1, PerPage: 10, CurrentPage: 1},
		})
	})

	res, err := c.List(context.Background(), "u1", ListParams{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	// No limit fields in the response: the observed plan default applies and
	// the count falls back to the pagination total.
	if res.Limit.Limit != 2 || res.Limit.CurrentCount != 2 {
		t.Errorf("limit = %+v", res.Limit)
	}
	if !res.Limit.Reached() {
		t.Error("2/2 should be reached")
	}
}

func TestListRefusal(t *testing.T) {
	c, _ := newTestClient(t, KindClient, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "nope"})
	})

	_, err := c.List(context.Background(), "u1", ListParams{})
	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if ae.Status != http.StatusForbidden || ae.Message != "nope" {
		t.Errorf("APIError = %+v", ae)
	}
}

func TestCreateValidationError(t *testing.T) {
	c, _ := newTestClient(t, KindClient, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["user_id"] != "u1" {
			t.Errorf("user_id = %v", body["user_id"])
		}
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"errors":  []string{"Name is required", "Invalid email format"},
		})
	})

	_, err := c.Create(context.Background(), "u1", Fields{Email: "bad"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if len(ve.Messages) != 2 || ve.Messages[0] != "Name is required" {
		t.Errorf("messages = %v", ve.Messages)
	}
}

func TestCreateReturnsEntity(t *testing.T) {
	c, _ := newTestClient(t, KindClient, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"client":  Entity{ID: "c9", Name: "Globex"},
		})
	})

	e, err := c.Create(context.Background(), "u1", Fields{Name: "Globex"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.ID != "c9" {
		t.Errorf("entity = %+v", e)
	}
}

func TestUpdateNotFound(t *testing.T) {
	c, _ := newTestClient(t, KindBusiness, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Business not found"})
	})

	_, err := c.Update(context.Background(), "gone", Fields{Name: "Acme"})
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("err = %v, want *NotFoundError", err)
	}
	if nfe.ID != "gone" {
		t.Errorf("NotFoundError = %+v", nfe)
	}
}

func TestRemoveMissingIDIsAPIError(t *testing.T) {
	c, _ := newTestClient(t, KindClient, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Client not found"})
	})

	err := c.Remove(context.Background(), "gone")
	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("err = %v, want *APIError", err)
	}
}

func TestRemoveManyReportsBackendCount(t *testing.T) {
	c, _ := newTestClient(t, KindClient, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/clients/bulk-delete" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body map[string][]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body["client_ids"]) != 3 {
			t.Errorf("body = %v", body)
		}
		// One of the three ids was already gone.
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "deleted_count": 2})
	})

	deleted, err := c.RemoveMany(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("RemoveMany: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want the backend's count, not the requested one", deleted)
	}
}

func TestRemoveManyCountFallback(t *testing.T) {
	c, _ := newTestClient(t, KindBusiness, func(w http.ResponseWriter, r *http.Request) {
		var body map[string][]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body["business_ids"]) != 2 {
			t.Errorf("body = %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	deleted, err := c.RemoveMany(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("RemoveMany: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d", deleted)
	}
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c, err := New(KindClient, srv.URL+"/", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.List(context.Background(), "u1", ListParams{})
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("err = %v, want *NetworkError", err)
	}
}

func TestMalformedBodyIsNetworkError(t *testing.T) {
	c, _ := newTestClient(t, KindClient, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := c.List(context.Background(), "u1", ListParams{})
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("err = %v, want *NetworkError", err)
	}
}

func TestPaginationConsistent(t *testing.T) {
	good := Pagination{Total: 45, Pages: 5, PerPage: 10, CurrentPage: 3, HasPrev: true, HasNext: true}
	if !good.Consistent() {
		t.Error("expected consistent")
	}
	bad := Pagination{Total: 45, Pages: 5, PerPage: 10, CurrentPage: 1, HasPrev: true, HasNext: true}
	if bad.Consistent() {
		t.Error("has_prev on page 1 must be inconsistent")
	}
}
