package api

import (
	"net/http"
	"strconv"

	"github.com/literahq/litera-server/internal/http/response"
	"github.com/literahq/litera-server/internal/search"
)

// handleSearch runs a full-text catalog search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := parseSearchParams(r)

	result, err := s.services.Search.Search(r.Context(), params)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, result, s.logger)
}

// parseSearchParams builds search parameters from the query string.
func parseSearchParams(r *http.Request) search.Params {
	q := r.URL.Query()
	params := search.DefaultParams()

	params.Query = q.Get("q")
	params.Genre = q.Get("genre")
	params.OnlyAvailable = q.Get("available") == "true"

	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			params.Limit = limit
		}
	}
	if offsetStr := q.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			params.Offset = offset
		}
	}

	if sortBy := q.Get("sort"); sortBy != "" {
		params.SortBy = sortBy
	}
	if order := q.Get("order"); order != "" {
		params.SortOrder = order
	}

	return params
}
