package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/literahq/litera-server/internal/http/response"
)

// handleListNotifications returns the user's notifications, newest first.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifs, err := s.services.Notifications.List(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, notifs, s.logger)
}

// handleUnreadCount returns the number of unread notifications.
func (s *Server) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := s.services.Notifications.UnreadCount(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]int{"unread": count}, s.logger)
}

// handleMarkRead marks one notification as read.
func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	notif, err := s.services.Notifications.MarkRead(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, notif, s.logger)
}

// handleMarkAllRead marks every unread notification as read.
func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	marked, err := s.services.Notifications.MarkAllRead(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]int{"marked": marked}, s.logger)
}

type deviceTokenRequest struct {
	Token string `json:"token"`
}

// handleRegisterDevice registers a push device token for the user.
func (s *Server) handleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	var req deviceTokenRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	if err := s.services.Notifications.RegisterDeviceToken(r.Context(), getUserID(r.Context()), req.Token); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleRemoveDevice removes a push device token.
func (s *Server) handleRemoveDevice(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Notifications.RemoveDeviceToken(r.Context(), getUserID(r.Context()), chi.URLParam(r, "token")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
