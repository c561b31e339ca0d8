package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/literahq/litera-server/internal/http/response"
	"github.com/literahq/litera-server/internal/service"
)

// handleListBooks returns the catalog, optionally filtered by genre.
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	genre := r.URL.Query().Get("genre")

	books, err := s.services.Books.ListBooks(r.Context(), genre)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, books, s.logger)
}

// handleGetBook returns a single catalog entry.
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	book, err := s.services.Books.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, book, s.logger)
}

// handleCreateBook adds a book to the catalog.
func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBookRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	book, err := s.services.Books.CreateBook(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, book, s.logger)
}

// handleUpdateBook applies a partial edit to a catalog entry.
func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateBookRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	book, err := s.services.Books.UpdateBook(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, book, s.logger)
}

// handleDeleteBook removes a book from the catalog.
func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Books.DeleteBook(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
