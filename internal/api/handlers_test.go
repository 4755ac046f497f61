package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/holawaleh/dreamspacefrontend/internal/store"
	"github.com/holawaleh/dreamspacefrontend/internal/types"
)

// --- Test doubles ---

var errBackend = errors.New("connection refused")

// failingStore wraps a real store and fails selected operations.
type failingStore struct {
	store.Store
	failList   bool
	failGet    bool
	failCreate bool
	failDelete bool
	failNote   bool
	failPing   bool
	calls      int
}

func (f *failingStore) ListTechPosts(ctx context.Context) ([]types.TechPost, error) {
	f.calls++
	if f.failList {
		return nil, errBackend
	}
	return f.Store.ListTechPosts(ctx)
}

func (f *failingStore) GetTutorial(ctx context.Context, id int64) (*types.Tutorial, error) {
	f.calls++
	if f.failGet {
		return nil, errBackend
	}
	return f.Store.GetTutorial(ctx, id)
}

func (f *failingStore) CreateSoftware(ctx context.Context, soft types.NewSoftware) (*types.Software, error) {
	f.calls++
	if f.failCreate {
		return nil, errBackend
	}
	return f.Store.CreateSoftware(ctx, soft)
}

func (f *failingStore) UpdateProduct(ctx context.Context, id int64, patch types.ProductPatch) (*types.Product, error) {
	f.calls++
	return f.Store.UpdateProduct(ctx, id, patch)
}

func (f *failingStore) DeleteProduct(ctx context.Context, id int64) error {
	f.calls++
	if f.failDelete {
		return errBackend
	}
	return f.Store.DeleteProduct(ctx, id)
}

func (f *failingStore) GetAdminNote(ctx context.Context) (*types.AdminNote, error) {
	if f.failNote {
		return nil, errBackend
	}
	return f.Store.GetAdminNote(ctx)
}

func (f *failingStore) SaveAdminNote(ctx context.Context, content string) (*types.AdminNote, error) {
	if f.failNote {
		return nil, errBackend
	}
	return f.Store.SaveAdminNote(ctx, content)
}

func (f *failingStore) Ping(ctx context.Context) error {
	if f.failPing {
		return errBackend
	}
	return nil
}

// --- Helpers ---

func newTestServer(t *testing.T, s store.Store) http.Handler {
	t.Helper()
	return NewRouter(NewHandler(s, store.BackendMemory, "1.2.3"))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return v
}

func assertProblem(t *testing.T, w *httptest.ResponseRecorder, status int, detail string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
	p := decodeBody[Problem](t, w)
	if p.Status != status {
		t.Errorf("problem status = %d, want %d", p.Status, status)
	}
	if detail != "" && p.Detail != detail {
		t.Errorf("detail = %q, want %q", p.Detail, detail)
	}
}

// --- Health ---

func TestHealth_OK(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore())

	w := do(t, h, http.MethodGet, "/api/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decodeBody[types.HealthResponse](t, w)
	if resp.Status != "healthy" || resp.Backend != "memory" || resp.Version != "1.2.3" {
		t.Errorf("health = %+v", resp)
	}
}

func TestHealth_PingFailure(t *testing.T) {
	h := newTestServer(t, &failingStore{Store: store.NewMemoryStore(), failPing: true})

	w := do(t, h, http.MethodGet, "/api/health", "")

	assertProblem(t, w, http.StatusServiceUnavailable, "")
}

// --- Catalog CRUD ---

func TestTechPosts_CRUD(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore())

	w := do(t, h, http.MethodPost, "/api/tech-posts",
		`{"title":"Go 1.23","category":"Programming","excerpt":"Iterators","date":"2024-08-13"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d (body %s)", w.Code, w.Body.String())
	}
	created := decodeBody[types.TechPost](t, w)
	if created.ID != 1 || created.Title != "Go 1.23" {
		t.Errorf("created = %+v", created)
	}
	if got := created.Date.Format("2006-01-02"); got != "2024-08-13" {
		t.Errorf("date = %s", got)
	}

	w = do(t, h, http.MethodGet, "/api/tech-posts/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	w = do(t, h, http.MethodPatch, "/api/tech-posts/1", `{"excerpt":"Range over func","imageUrl":"/go.png"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("patch status = %d (body %s)", w.Code, w.Body.String())
	}
	patched := decodeBody[types.TechPost](t, w)
	if patched.Excerpt != "Range over func" || patched.Title != "Go 1.23" || patched.ImageURL == nil {
		t.Errorf("patched = %+v", patched)
	}

	w = do(t, h, http.MethodGet, "/api/tech-posts", "")
	list := decodeBody[[]types.TechPost](t, w)
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}

	w = do(t, h, http.MethodDelete, "/api/tech-posts/1", "")
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Errorf("delete status = %d body %q", w.Code, w.Body.String())
	}

	w = do(t, h, http.MethodGet, "/api/tech-posts/1", "")
	assertProblem(t, w, http.StatusNotFound, "Post not found")
}

func TestList_EmptyIsJSONArray(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore())

	for _, path := range []string{"/api/tech-posts", "/api/tutorials", "/api/software", "/api/products"} {
		w := do(t, h, http.MethodGet, path, "")
		if w.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, w.Code)
		}
		if body := strings.TrimSpace(w.Body.String()); body != "[]" {
			t.Errorf("%s body = %q, want []", path, body)
		}
	}
}

func TestList_NewestFirst(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore())
	for _, d := range []string{"2024-01-01", "2024-06-01", "2024-03-01"} {
		w := do(t, h, http.MethodPost, "/api/tutorials",
			`{"title":"t","level":"Beginner","duration":"1h","description":"d","date":"`+d+`"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("create status = %d", w.Code)
		}
	}

	list := decodeBody[[]types.Tutorial](t, do(t, h, http.MethodGet, "/api/tutorials", ""))
	var ids []int64
	for _, tu := range list {
		ids = append(ids, tu.ID)
	}
	if len(ids) != 3 || ids[0] != 2 || ids[1] != 3 || ids[2] != 1 {
		t.Errorf("order = %v, want [2 3 1]", ids)
	}
}

func TestCreate_ValidationFailureCreatesNothing(t *testing.T) {
	s := store.NewMemoryStore()
	h := newTestServer(t, s)

	w := do(t, h, http.MethodPost, "/api/tech-posts", `{"category":"AI","excerpt":"no title"}`)

	body := w.Body.String()
	assertProblem(t, w, http.StatusBadRequest, "Invalid post data")
	if strings.Contains(body, "is required") || strings.Contains(body, "title:") {
		t.Errorf("field detail leaked: %s", body)
	}
	list, _ := s.ListTechPosts(context.Background())
	if len(list) != 0 {
		t.Errorf("len(list) = %d, want 0", len(list))
	}
}

func TestCreate_MalformedJSON(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore())

	tests := []struct {
		path, body, detail string
	}{
		{"/api/tutorials", `{"title":`, "Invalid tutorial data"},
		{"/api/software", `not json`, "Invalid software data"},
		{"/api/products", `{"name":"Mouse","price":40}`, "Invalid product data"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, h, http.MethodPost, tt.path, tt.body)
			assertProblem(t, w, http.StatusBadRequest, tt.detail)
		})
	}
}

func TestCreate_BodyTooLarge(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore())
	big := `{"name":"` + strings.Repeat("x", MaxBodyBytes) + `"}`

	w := do(t, h, http.MethodPost, "/api/products", big)

	assertProblem(t, w, http.StatusRequestEntityTooLarge, "")
}

func TestCreate_StorageFailure(t *testing.T) {
	h := newTestServer(t, &failingStore{Store: store.NewMemoryStore(), failCreate: true})

	w := do(t, h, http.MethodPost, "/api/software", `{"name":"DevKit"}`)

	assertProblem(t, w, http.StatusInternalServerError, "Failed to create software")
	if strings.Contains(w.Body.String(), errBackend.Error()) {
		t.Errorf("internal error leaked: %s", w.Body.String())
	}
}

func TestList_StorageFailure(t *testing.T) {
	h := newTestServer(t, &failingStore{Store: store.NewMemoryStore(), failList: true})

	w := do(t, h, http.MethodGet, "/api/tech-posts", "")

	assertProblem(t, w, http.StatusInternalServerError, "Failed to fetch tech posts")
}

func TestGet_StorageFailure(t *testing.T) {
	h := newTestServer(t, &failingStore{Store: store.NewMemoryStore(), failGet: true})

	w := do(t, h, http.MethodGet, "/api/tutorials/1", "")

	assertProblem(t, w, http.StatusInternalServerError, "Failed to fetch tutorial")
}

func TestNonNumericID(t *testing.T) {
	fs := &failingStore{Store: store.NewMemoryStore()}
	h := newTestServer(t, fs)

	assertProblem(t, do(t, h, http.MethodGet, "/api/tutorials/abc", ""), http.StatusNotFound, "Tutorial not found")
	assertProblem(t, do(t, h, http.MethodPatch, "/api/products/abc", `{"name":"x"}`), http.StatusNotFound, "Product not found")

	w := do(t, h, http.MethodDelete, "/api/products/abc", "")
	if w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", w.Code)
	}
	if fs.calls != 0 {
		t.Errorf("store called %d times for non-numeric ids", fs.calls)
	}
}

func TestPatch_UnknownIDDoesNotCreate(t *testing.T) {
	s := store.NewMemoryStore()
	h := newTestServer(t, s)

	w := do(t, h, http.MethodPatch, "/api/products/42", `{"name":"Ghost"}`)

	assertProblem(t, w, http.StatusNotFound, "Product not found")
	list, _ := s.ListProducts(context.Background())
	if len(list) != 0 {
		t.Errorf("len(list) = %d, want 0", len(list))
	}
}

func TestPatch_NullClearsOptionalField(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore())
	do(t, h, http.MethodPost, "/api/products", `{"name":"Desk","badge":"Sale","price":"$300"}`)

	w := do(t, h, http.MethodPatch, "/api/products/1", `{"badge":null}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"badge":null`) {
		t.Errorf("badge not cleared: %s", w.Body.String())
	}
	got := decodeBody[types.Product](t, w)
	if got.Price == nil || *got.Price != "$300" {
		t.Errorf("price = %v, want unchanged", got.Price)
	}
}

func TestPatch_NullOnRequiredFieldRejected(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore())
	do(t, h, http.MethodPost, "/api/software", `{"name":"Tool"}`)

	w := do(t, h, http.MethodPatch, "/api/software/1", `{"name":null}`)

	assertProblem(t, w, http.StatusBadRequest, "Invalid software data")
}

func TestPatch_MalformedJSON(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore())
	do(t, h, http.MethodPost, "/api/tutorials", `{"title":"t","level":"l","duration":"d","description":"x"}`)

	w := do(t, h, http.MethodPatch, "/api/tutorials/1", `{"title":`)

	assertProblem(t, w, http.StatusBadRequest, "Invalid tutorial data")
}

func TestDelete_Idempotent(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore())
	do(t, h, http.MethodPost, "/api/products", `{"name":"Lamp"}`)

	for i := 0; i < 2; i++ {
		if w := do(t, h, http.MethodDelete, "/api/products/1", ""); w.Code != http.StatusNoContent {
			t.Errorf("delete #%d status = %d", i+1, w.Code)
		}
	}
	if w := do(t, h, http.MethodDelete, "/api/products/999", ""); w.Code != http.StatusNoContent {
		t.Errorf("delete unknown status = %d", w.Code)
	}
}

func TestDelete_StorageFailure(t *testing.T) {
	h := newTestServer(t, &failingStore{Store: store.NewMemoryStore(), failDelete: true})

	w := do(t, h, http.MethodDelete, "/api/products/1", "")

	assertProblem(t, w, http.StatusInternalServerError, "Failed to delete product")
}

// --- Admin note ---

func TestAdminNote_EmptyByDefault(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore())

	w := do(t, h, http.MethodGet, "/api/admin/note", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != `{"content":""}` {
		t.Errorf("body = %s", body)
	}
}

func TestAdminNote_SaveThenGet(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore())

	w := do(t, h, http.MethodPost, "/api/admin/note", `{"content":"Restock keyboards"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d (body %s)", w.Code, w.Body.String())
	}
	first := decodeBody[types.AdminNote](t, w)

	w = do(t, h, http.MethodPost, "/api/admin/note", `{"content":""}`)
	if w.Code != http.StatusOK {
		t.Fatalf("save empty status = %d", w.Code)
	}

	got := decodeBody[types.AdminNote](t, do(t, h, http.MethodGet, "/api/admin/note", ""))
	if got.ID != first.ID || got.Content != "" {
		t.Errorf("note = %+v, want id %d with empty content", got, first.ID)
	}
}

func TestAdminNote_InvalidPayload(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore())

	for _, body := range []string{`{}`, `{"content":null}`, `{"content":42}`, `{`} {
		t.Run(body, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/api/admin/note", body)
			assertProblem(t, w, http.StatusBadRequest, "Invalid note data")
		})
	}
}

func TestAdminNote_StorageFailure(t *testing.T) {
	h := newTestServer(t, &failingStore{Store: store.NewMemoryStore(), failNote: true})

	assertProblem(t, do(t, h, http.MethodGet, "/api/admin/note", ""), http.StatusInternalServerError, "Failed to fetch note")
	assertProblem(t, do(t, h, http.MethodPost, "/api/admin/note", `{"content":"x"}`), http.StatusInternalServerError, "Failed to save note")
}

// --- Backends through HTTP ---

func TestRouter_SQLiteBackend(t *testing.T) {
	s, backend, err := store.Open(context.Background(), store.Options{URL: "sqlite://:memory:"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	h := NewRouter(NewHandler(s, backend, "test"))

	w := do(t, h, http.MethodPost, "/api/products", `{"name":"Chair","badge":null}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d (body %s)", w.Code, w.Body.String())
	}
	w = do(t, h, http.MethodGet, "/api/products/1", "")
	if !strings.Contains(w.Body.String(), `"badge":null`) {
		t.Errorf("body = %s", w.Body.String())
	}

	health := decodeBody[types.HealthResponse](t, do(t, h, http.MethodGet, "/api/health", ""))
	if health.Backend != "sqlite" {
		t.Errorf("backend = %q", health.Backend)
	}
}
