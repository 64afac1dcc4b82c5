package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"bookcatalog/internal/catalog"
	"bookcatalog/internal/entity"
)

// CatalogService is the slice of the catalog core the transport needs.
type CatalogService interface {
	Query(ctx context.Context, q catalog.Query) (catalog.Page, error)
	Get(ctx context.Context, id int64) (entity.Record, error)
	Create(ctx context.Context, fields map[string]any) (entity.Record, error)
	Update(ctx context.Context, id int64, fields map[string]any) (entity.Record, error)
	Delete(ctx context.Context, id int64) error
}

type BookHandler struct {
	svc CatalogService
}

func NewBookHandler(svc CatalogService) *BookHandler {
	return &BookHandler{svc: svc}
}

// Collection dispatches /books.
func (h *BookHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

// Item dispatches /books/{id}.
func (h *BookHandler) Item(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r.URL.Path)
	if !ok {
		JSONError(w, http.StatusBadRequest, "invalid_id", "book id must be an integer")
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut, http.MethodPatch:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func (h *BookHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.Query(r.Context(), catalog.ParseQuery(r.URL.Query()))
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "storage_error", "could not load the catalog")
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

func (h *BookHandler) get(w http.ResponseWriter, r *http.Request, id int64) {
	rec, err := h.svc.Get(r.Context(), id)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		JSONError(w, http.StatusNotFound, "not_found", "book not found")
	case err != nil:
		JSONError(w, http.StatusInternalServerError, "storage_error", "could not load the catalog")
	default:
		WriteJSON(w, http.StatusOK, rec)
	}
}

func (h *BookHandler) create(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r.Body)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_json", "request body must be a JSON object")
		return
	}
	rec, err := h.svc.Create(r.Context(), fields)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "storage_error", "could not persist the catalog")
		return
	}
	WriteJSON(w, http.StatusCreated, rec)
}

func (h *BookHandler) update(w http.ResponseWriter, r *http.Request, id int64) {
	fields, err := decodeFields(r.Body)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_json", "request body must be a JSON object")
		return
	}
	rec, err := h.svc.Update(r.Context(), id, fields)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		JSONError(w, http.StatusNotFound, "not_found", "book not found")
	case err != nil:
		JSONError(w, http.StatusInternalServerError, "storage_error", "could not persist the catalog")
	default:
		WriteJSON(w, http.StatusOK, rec)
	}
}

func (h *BookHandler) delete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.svc.Delete(r.Context(), id); err != nil {
		JSONError(w, http.StatusInternalServerError, "storage_error", "could not persist the catalog")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// itemID extracts the integer id from /books/{id}.
func itemID(path string) (int64, bool) {
	const prefix = "/books/"
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// decodeFields reads the request body as one JSON object. UseNumber keeps
// caller-supplied numbers intact through the save/load round trip.
func decodeFields(body io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}
