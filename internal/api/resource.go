package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/holawaleh/dreamspacefrontend/internal/validation"
)

// resource serves the five CRUD routes of one catalog. T is the stored
// record, N the insert payload and P the partial update.
type resource[T, N, P any] struct {
	// noun names one record in client messages ("post").
	noun string
	// singular and plural name the catalog in logs and fetch failures.
	singular, plural string

	list   func(ctx context.Context) ([]T, error)
	get    func(ctx context.Context, id int64) (*T, error)
	create func(ctx context.Context, in N) (*T, error)
	update func(ctx context.Context, id int64, patch P) (*T, error)
	remove func(ctx context.Context, id int64) error

	validateNew   func(N) []validation.ValidationError
	validatePatch func(P) []validation.ValidationError
}

func (res resource[T, N, P]) routes(r chi.Router) {
	r.Get("/", res.handleList)
	r.Post("/", res.handleCreate)
	r.Get("/{id}", res.handleGet)
	r.Patch("/{id}", res.handlePatch)
	r.Delete("/{id}", res.handleDelete)
}

func (res resource[T, N, P]) notFound() string {
	return strings.ToUpper(res.noun[:1]) + res.noun[1:] + " not found"
}

func (res resource[T, N, P]) invalid() string {
	return "Invalid " + res.noun + " data"
}

// pathID parses the {id} parameter. A non-numeric id can never match a
// record, so callers treat it as absent.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (res resource[T, N, P]) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := res.list(r.Context())
	if err != nil {
		MapStoreError(w, r, err, "list "+res.plural, res.notFound(), "Failed to fetch "+res.plural)
		return
	}
	writeJSON(w, r, http.StatusOK, items)
}

func (res resource[T, N, P]) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		WriteProblem(w, r, http.StatusNotFound, res.notFound())
		return
	}

	item, err := res.get(r.Context(), id)
	if err != nil {
		MapStoreError(w, r, err, "get "+res.singular, res.notFound(), "Failed to fetch "+res.singular)
		return
	}
	writeJSON(w, r, http.StatusOK, item)
}

func (res resource[T, N, P]) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in N
	if !decodeJSON(w, r, &in, res.invalid()) {
		return
	}
	if errs := res.validateNew(in); len(errs) > 0 {
		rejectInvalid(w, r, res.invalid(), errs)
		return
	}

	item, err := res.create(r.Context(), in)
	if err != nil {
		MapStoreError(w, r, err, "create "+res.singular, res.notFound(), "Failed to create "+res.noun)
		return
	}
	writeJSON(w, r, http.StatusCreated, item)
}

func (res resource[T, N, P]) handlePatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		WriteProblem(w, r, http.StatusNotFound, res.notFound())
		return
	}

	var patch P
	if !decodeJSON(w, r, &patch, res.invalid()) {
		return
	}
	if errs := res.validatePatch(patch); len(errs) > 0 {
		rejectInvalid(w, r, res.invalid(), errs)
		return
	}

	item, err := res.update(r.Context(), id, patch)
	if err != nil {
		MapStoreError(w, r, err, "update "+res.singular, res.notFound(), "Failed to update "+res.noun)
		return
	}
	writeJSON(w, r, http.StatusOK, item)
}

func (res resource[T, N, P]) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := res.remove(r.Context(), id); err != nil {
		MapStoreError(w, r, err, "delete "+res.singular, res.notFound(), "Failed to delete "+res.noun)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
