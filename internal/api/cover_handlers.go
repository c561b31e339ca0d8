package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/literahq/litera-server/internal/http/response"
)

// handleGetCover serves the stored cover image with an ETag so clients can
// cache it.
func (s *Server) handleGetCover(w http.ResponseWriter, r *http.Request) {
	data, hash, err := s.services.Covers.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	etag := `"` + hash + `"`
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(data); err != nil {
		s.logger.Error("failed to write cover response", "error", err)
	}
}

type fetchCoverRequest struct {
	URL string `json:"url"`
}

// handleFetchCover downloads a cover for the book and records its
// BlurHash. With no URL in the body, the book's stored cover URL is used.
func (s *Server) handleFetchCover(w http.ResponseWriter, r *http.Request) {
	var req fetchCoverRequest
	if r.ContentLength > 0 && !s.decodeBody(w, r, &req) {
		return
	}

	result, err := s.services.Covers.Fetch(r.Context(), chi.URLParam(r, "id"), req.URL)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, result, s.logger)
}

// handleDeleteCover removes the book's stored cover.
func (s *Server) handleDeleteCover(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Covers.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
