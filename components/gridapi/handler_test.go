package gridapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-showcase/pkg/grid"
)

func fixture() []grid.DataItem {
	return []grid.DataItem{
		{ID: 1, Name: "Ada Lovelace", Email: "ada@example.com", Department: "Engineering", Salary: 120000, StartDate: "2016-01-04", Status: grid.StatusActive},
		{ID: 2, Name: "Grace Hopper", Email: "grace@example.com", Department: "Engineering", Salary: 150000, StartDate: "2015-03-02", Status: grid.StatusActive},
		{ID: 3, Name: "Alan Turing", Email: "alan@example.com", Department: "Sales", Salary: 90000, StartDate: "2019-07-15", Status: grid.StatusPending},
		{ID: 4, Name: "Linus Torvalds", Email: "linus@example.com", Department: "Engineering", Salary: 60000, StartDate: "2021-11-30", Status: grid.StatusInactive},
		{ID: 5, Name: "Hedy Lamarr", Email: "hedy@example.com", Department: "Marketing", Salary: 110000, StartDate: "2018-05-21", Status: grid.StatusActive},
	}
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var payload Response
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return payload
}

func ids(items []grid.DataItem) []int {
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestNewHandler_FiltersSortsAndPaginates(t *testing.T) {
	h := NewHandler(WithRecords(fixture()))

	rec := serve(t, h, http.MethodGet, "/api/records?department=Engineering&status=active&sort=salary&direction=desc&page_size=1&page=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}

	payload := decode(t, rec)
	if diff := cmp.Diff([]int{1}, ids(payload.Data)); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	wantSort := &grid.SortConfig{Key: grid.SortSalary, Direction: grid.Desc}
	want := Meta{
		Page:       2,
		PageSize:   1,
		TotalPages: 2,
		TotalItems: 2,
		AllItems:   5,
		Filter:     grid.FilterConfig{Department: "Engineering", Status: grid.StatusActive},
		Sort:       wantSort,
	}
	if diff := cmp.Diff(want, payload.Meta); diff != "" {
		t.Fatalf("meta mismatch (-want +got):\n%s", diff)
	}
}

func TestNewHandler_SalaryBoundsAndSearch(t *testing.T) {
	h := NewHandler(WithRecords(fixture()))

	payload := decode(t, serve(t, h, http.MethodGet, "/api/records?min_salary=100000&max_salary=150000&sort=id"))
	if diff := cmp.Diff([]int{1, 2, 5}, ids(payload.Data)); diff != "" {
		t.Fatalf("bounded data mismatch (-want +got):\n%s", diff)
	}

	payload = decode(t, serve(t, h, http.MethodGet, "/api/records?q=HOPPER"))
	if diff := cmp.Diff([]int{2}, ids(payload.Data)); diff != "" {
		t.Fatalf("search data mismatch (-want +got):\n%s", diff)
	}
}

func TestNewHandler_PageAndSizeClamped(t *testing.T) {
	h := NewHandler(WithRecords(fixture()), WithMaxPageSize(2))

	payload := decode(t, serve(t, h, http.MethodGet, "/api/records?page=99&page_size=50"))
	if payload.Meta.PageSize != 2 || payload.Meta.TotalPages != 3 || payload.Meta.Page != 3 {
		t.Fatalf("unexpected meta: %+v", payload.Meta)
	}
	if diff := cmp.Diff([]int{5}, ids(payload.Data)); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}

	payload = decode(t, serve(t, h, http.MethodGet, "/api/records?page=-3&page_size=-1"))
	if payload.Meta.Page != 1 || payload.Meta.PageSize != 2 {
		t.Fatalf("unexpected meta: %+v", payload.Meta)
	}
}

func TestNewHandler_EmptyResultReturnsEmptyDataArray(t *testing.T) {
	h := NewHandler(WithRecords(fixture()))

	rec := serve(t, h, http.MethodGet, "/api/records?q=nobody")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw["data"]) != "[]" {
		t.Fatalf("expected empty data array, got %s", raw["data"])
	}

	var meta Meta
	if err := json.Unmarshal(raw["meta"], &meta); err != nil {
		t.Fatalf("decode meta: %v", err)
	}
	if meta.Page != 1 || meta.TotalPages != 0 || meta.TotalItems != 0 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestNewHandler_CustomQueryParams(t *testing.T) {
	h := NewHandler(
		WithRecords(fixture()),
		WithParams(Params{Search: "search", PageSize: "limit"}),
	)

	payload := decode(t, serve(t, h, http.MethodGet, "/api/records?search=example.com&limit=2&department=Sales"))
	if diff := cmp.Diff([]int{3}, ids(payload.Data)); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if payload.Meta.PageSize != 2 {
		t.Fatalf("expected custom page size param, got %d", payload.Meta.PageSize)
	}
}

func TestNewHandler_RejectsInvalidQuery(t *testing.T) {
	h := NewHandler(WithRecords(fixture()))

	for _, target := range []string{
		"/api/records?status=retired",
		"/api/records?sort=salary&direction=sideways",
		"/api/records?sort=age",
		"/api/records?min_salary=lots",
	} {
		rec := serve(t, h, http.MethodGet, target)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", target, rec.Code)
		}
	}
}

func TestNewHandler_GuardRejects(t *testing.T) {
	h := NewHandler(
		WithRecords(fixture()),
		WithGuard(func(r *http.Request) error {
			return StatusError{Code: http.StatusUnauthorized}
		}),
	)

	if rec := serve(t, h, http.MethodGet, "/api/records"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestNewHandler_MethodNotAllowed(t *testing.T) {
	h := NewHandler(WithRecords(fixture()))

	rec := serve(t, h, http.MethodPost, "/api/records")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}

func TestNewHandler_HeadHasNoBody(t *testing.T) {
	h := NewHandler(WithRecords(fixture()))

	rec := serve(t, h, http.MethodHead, "/api/records")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}

func TestNewHandler_SourceErrorIsInternal(t *testing.T) {
	h := NewHandler(WithSource(grid.SourceFunc(func(context.Context) ([]grid.DataItem, error) {
		return nil, errors.New("backend down")
	})))

	rec := serve(t, h, http.MethodGet, "/api/records")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "backend down") {
		t.Fatalf("internal error leaked to client: %q", rec.Body.String())
	}
}

func TestNewHandler_DefaultRecords(t *testing.T) {
	payload := decode(t, serve(t, NewHandler(), http.MethodGet, "/api/records"))
	if payload.Meta.AllItems != 100 || len(payload.Data) != 10 {
		t.Fatalf("unexpected default page: %+v (%d rows)", payload.Meta, len(payload.Data))
	}
}

func TestComponent_Fetch(t *testing.T) {
	c := New(WithRecords(fixture()), WithMaxPageSize(3))

	resp, err := c.Fetch(context.Background(), Query{
		Sort:     grid.SortConfig{Key: grid.SortName, Direction: grid.Asc},
		Page:     1,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if diff := cmp.Diff([]int{1, 3, 2}, ids(resp.Data)); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if resp.Meta.PageSize != 3 {
		t.Fatalf("expected clamped page size 3, got %d", resp.Meta.PageSize)
	}
}
