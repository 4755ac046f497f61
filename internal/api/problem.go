package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/holawaleh/dreamspacefrontend/internal/store"
)

// Problem represents an RFC 7807 Problem Details response.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
}

// problemTypes maps HTTP status codes to RFC 7807 type URIs and titles.
var problemTypes = map[int]struct {
	typeURI string
	title   string
}{
	http.StatusBadRequest: {
		typeURI: "https://dreamspace.dev/errors/bad-request",
		title:   "Bad Request",
	},
	http.StatusNotFound: {
		typeURI: "https://dreamspace.dev/errors/not-found",
		title:   "Not Found",
	},
	http.StatusRequestEntityTooLarge: {
		typeURI: "https://dreamspace.dev/errors/payload-too-large",
		title:   "Payload Too Large",
	},
	http.StatusInternalServerError: {
		typeURI: "https://dreamspace.dev/errors/internal-error",
		title:   "Internal Server Error",
	},
	http.StatusServiceUnavailable: {
		typeURI: "https://dreamspace.dev/errors/service-unavailable",
		title:   "Service Unavailable",
	},
}

// WriteProblem writes an RFC 7807 Problem Details response.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	pt, ok := problemTypes[status]
	if !ok {
		pt = struct {
			typeURI string
			title   string
		}{
			typeURI: "https://dreamspace.dev/errors/unknown",
			title:   http.StatusText(status),
		}
	}

	p := Problem{
		Type:     pt.typeURI,
		Title:    pt.title,
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		LoggerFromContext(r.Context()).Error("failed to encode problem response", "error", err)
	}
}

// MapStoreError converts storage errors to Problem Details responses.
// notFound is the detail for a missing record; failure is the detail for
// everything else, whose cause is logged under op and never sent.
func MapStoreError(w http.ResponseWriter, r *http.Request, err error, op, notFound, failure string) {
	if errors.Is(err, store.ErrNotFound) {
		WriteProblem(w, r, http.StatusNotFound, notFound)
		return
	}

	LoggerFromContext(r.Context()).Error("storage operation failed",
		slog.String("op", op),
		slog.Any("error", err),
	)
	WriteProblem(w, r, http.StatusInternalServerError, failure)
}
