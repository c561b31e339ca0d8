package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/literahq/litera-server/internal/http/response"
)

type viewRequest struct {
	DurationMs int64 `json:"duration_ms"`
}

type ratingRequest struct {
	Rating float64 `json:"rating"`
}

// handleRecordView records a book detail view for the recommendation
// engine.
func (s *Server) handleRecordView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	inter, err := s.services.Interactions.RecordView(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req.DurationMs)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, inter, s.logger)
}

// handleRecordRating records a 0-5 star rating.
func (s *Server) handleRecordRating(w http.ResponseWriter, r *http.Request) {
	var req ratingRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	inter, err := s.services.Interactions.RecordRating(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req.Rating)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, inter, s.logger)
}

// handleRecordFavorite records a favorite.
func (s *Server) handleRecordFavorite(w http.ResponseWriter, r *http.Request) {
	inter, err := s.services.Interactions.RecordFavorite(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, inter, s.logger)
}

// handleRecordSearchHit records that the user opened this book from search
// results.
func (s *Server) handleRecordSearchHit(w http.ResponseWriter, r *http.Request) {
	inter, err := s.services.Interactions.RecordSearchHit(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, inter, s.logger)
}
