package api

import (
	"net/http"

	"github.com/literahq/litera-server/internal/http/response"
)

// handleRunReminders kicks off an immediate reminder scan instead of
// waiting for the daily schedule.
func (s *Server) handleRunReminders(w http.ResponseWriter, _ *http.Request) {
	if s.reminders == nil {
		response.Error(w, http.StatusServiceUnavailable, "reminder scheduler is not running", s.logger)
		return
	}

	s.reminders.TriggerNow()
	response.Success(w, map[string]string{"status": "triggered"}, s.logger)
}

// handleReindex rebuilds the search index from the catalog.
func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	count, err := s.services.Search.Reindex(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]int{"indexed": count}, s.logger)
}
