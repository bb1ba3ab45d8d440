package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/export"
	"github.com/starford/othala/internal/homeservice"
	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/scoring"
	"github.com/starford/othala/internal/sse"
	"github.com/starford/othala/internal/store"
)

// Handler holds API route handlers.
type Handler struct {
	svc        *homeservice.Service
	broker     *sse.Broker
	exportName string
}

// NewHandler creates a new Handler. broker may be nil when no event feed is
// wanted (tests).
func NewHandler(svc *homeservice.Service, broker *sse.Broker, exportName string) *Handler {
	if exportName == "" {
		exportName = "home_summary.csv"
	}
	return &Handler{svc: svc, broker: broker, exportName: exportName}
}

// homeID extracts and parses the {id} URL parameter.
func homeID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func (h *Handler) publish(kind string, id int64) {
	if h.broker != nil {
		h.broker.PublishHomeEvent(kind, id)
	}
}

// listFilter reads the shared query parameters for list-shaped endpoints.
func listFilter(r *http.Request) store.Filter {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	return store.Filter{
		City:    q.Get("city"),
		Builder: q.Get("builder"),
		Limit:   limit,
		Offset:  offset,
	}
}

// ListHomes handles GET /api/homes.
//
//	@Summary		List homes with optional pagination and filtering
//	@Tags			homes
//	@Produce		json
//	@Param			limit	query		int		false	"Page size"
//	@Param			offset	query		int		false	"Page offset"
//	@Param			city	query		string	false	"Filter by city"
//	@Param			builder	query		string	false	"Filter by builder"
//	@Success		200		{object}	HomeListResponse
//	@Security		BearerAuth
//	@Router			/homes [get]
func (h *Handler) ListHomes(w http.ResponseWriter, r *http.Request) {
	homes, total, err := h.svc.List(r.Context(), listFilter(r))
	if err != nil {
		slog.Error("list homes failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, HomeListResponse{Homes: homes, Total: total})
}

// GetHome handles GET /api/homes/{id}.
//
//	@Summary		Get a single home by id
//	@Tags			homes
//	@Produce		json
//	@Param			id	path		int	true	"Home id"
//	@Success		200	{object}	HomeDetail
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/homes/{id} [get]
func (h *Handler) GetHome(w http.ResponseWriter, r *http.Request) {
	id, err := homeID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get home failed", slog.Int64("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// CreateHome handles POST /api/homes.
//
//	@Summary		Create a new home record
//	@Tags			homes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		HomeDraftRequest	true	"Home draft"
//	@Success		201		{object}	HomeDetail
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/homes [post]
func (h *Handler) CreateHome(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var draft models.HomeDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	rec, err := h.svc.Create(r.Context(), draft)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		} else {
			slog.Error("create home failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.publish("created", rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

// UpdateHome handles PUT /api/homes/{id}.
//
// The body is the full merged draft: info, photos, and scores replace the
// stored record wholesale, there is no field-level merge.
//
//	@Summary		Replace a home record
//	@Tags			homes
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Home id"
//	@Param			body	body		HomeDraftRequest	true	"Full replacement draft"
//	@Success		200		{object}	HomeDetail
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/homes/{id} [put]
func (h *Handler) UpdateHome(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	id, err := homeID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	var draft models.HomeDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	rec, err := h.svc.Update(r.Context(), id, draft)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrValidation):
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		default:
			slog.Error("update home failed", slog.Int64("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.publish("updated", rec.ID)
	writeJSON(w, http.StatusOK, rec)
}

// DeleteHome handles DELETE /api/homes/{id}.
//
//	@Summary		Delete a home record
//	@Tags			homes
//	@Param			id	path	int	true	"Home id"
//	@Success		204	"Home deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/homes/{id} [delete]
func (h *Handler) DeleteHome(w http.ResponseWriter, r *http.Request) {
	id, err := homeID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("delete home failed", slog.Int64("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.publish("deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// Summary handles GET /api/homes/summary.
//
//	@Summary		Derived summary rows for every home
//	@Tags			scoring
//	@Produce		json
//	@Param			city	query		string	false	"Filter by city"
//	@Param			builder	query		string	false	"Filter by builder"
//	@Success		200		{object}	SummaryResponse
//	@Security		BearerAuth
//	@Router			/homes/summary [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	rows, total, err := h.svc.Summaries(r.Context(), listFilter(r))
	if err != nil {
		slog.Error("summary failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{Rows: rows, Total: total})
}

// Rubric handles GET /api/rubric.
//
//	@Summary		Get the loaded scoring rubric
//	@Tags			scoring
//	@Produce		json
//	@Success		200	{object}	RubricResponse
//	@Security		BearerAuth
//	@Router			/rubric [get]
func (h *Handler) Rubric(w http.ResponseWriter, _ *http.Request) {
	r := h.svc.Rubric()
	writeJSON(w, http.StatusOK, RubricResponse{
		Criteria:    r.Criteria(),
		Categories:  r.Categories(),
		MaxPossible: scoring.MaxPossibleScore(r),
	})
}

// Export handles GET /api/export.
//
//	@Summary		Download the collection summary as CSV
//	@Tags			export
//	@Produce		text/csv
//	@Success		200	{string}	string	"CSV table"
//	@Security		BearerAuth
//	@Router			/export [get]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	homes, _, err := h.svc.List(r.Context(), store.Filter{})
	if err != nil {
		slog.Error("export failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	// Buffer first so a late serialization failure cannot corrupt a
	// partially written download.
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, h.svc.Rubric(), homes); err != nil {
		slog.Error("export failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.exportName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
