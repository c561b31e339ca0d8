package api

import (
	"net/http"
	"strconv"

	"github.com/literahq/litera-server/internal/http/response"
)

// handleRecommendations returns scored book suggestions for the
// authenticated user. The type query parameter selects the strategy:
// collaborative, content, popular, or hybrid (default).
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("type")

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	recs := s.services.Recommendations.Recommend(r.Context(), getUserID(r.Context()), kind, limit)
	response.Success(w, recs, s.logger)
}
