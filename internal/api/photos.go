package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/models"
)

const maxUploadBytes = 50 << 20 // 50 MB

// UploadPhoto handles POST /api/homes/{id}/photos (multipart/form-data,
// field "file"). The upload is stored as an owned blob appended to the
// record's photo list.
//
//	@Summary		Attach an uploaded photo to a home
//	@Tags			photos
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		int		true	"Home id"
//	@Param			file	formData	file	true	"Photo file"
//	@Success		201		{object}	PhotoUploadResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/homes/{id}/photos [post]
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := homeID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read file"))
		return
	}

	photo := models.PhotoRef{
		Name:     header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Bytes:    data,
	}
	rec, err := h.svc.AttachPhoto(r.Context(), id, photo)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("attach photo failed", slog.Int64("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.publish("updated", id)

	writeJSON(w, http.StatusCreated, PhotoUploadResponse{
		ID:     id,
		Name:   header.Filename,
		Size:   int64(len(data)),
		Photos: len(rec.Photos),
	})
}

// ServePhoto handles GET /api/homes/{id}/photos/{idx}. URL references
// redirect to their source; owned blobs are served back with the MIME type
// supplied at upload, bytes untouched.
//
//	@Summary		Serve one of a home's photos
//	@Tags			photos
//	@Param			id	path	int	true	"Home id"
//	@Param			idx	path	int	true	"Photo index (0 = primary)"
//	@Success		200	"Photo bytes"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/homes/{id}/photos/{idx} [get]
func (h *Handler) ServePhoto(w http.ResponseWriter, r *http.Request) {
	id, err := homeID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil || idx < 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid photo index"))
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("serve photo failed", slog.Int64("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	if idx >= len(rec.Photos) {
		writeJSON(w, http.StatusNotFound, errorBody("no such photo"))
		return
	}

	photo := rec.Photos[idx]
	if photo.URL != "" {
		http.Redirect(w, r, photo.URL, http.StatusFound)
		return
	}
	mime := photo.MimeType
	if mime == "" {
		mime = "application/octet-stream"
	}
	w.Header().Set("Content-Type", mime)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(photo.Bytes)
}
