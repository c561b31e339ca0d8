package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/literahq/litera-server/internal/domain"
	"github.com/literahq/litera-server/internal/http/response"
)

// handleRequestBorrow opens a loan for the authenticated user. The copy is
// reserved immediately; the loan starts when a librarian confirms handover.
func (s *Server) handleRequestBorrow(w http.ResponseWriter, r *http.Request) {
	loan, err := s.services.Loans.RequestBorrow(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, loan, s.logger)
}

// handleConfirmBorrow marks the handover complete and starts the loan period.
func (s *Server) handleConfirmBorrow(w http.ResponseWriter, r *http.Request) {
	loan, err := s.services.Loans.ConfirmBorrow(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, loan, s.logger)
}

// handleRequestReturn flags a borrowed loan as awaiting return confirmation.
func (s *Server) handleRequestReturn(w http.ResponseWriter, r *http.Request) {
	loan, err := s.services.Loans.RequestReturn(r.Context(), chi.URLParam(r, "id"), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, loan, s.logger)
}

// handleConfirmReturn closes the loan and restores the copy to the shelf.
func (s *Server) handleConfirmReturn(w http.ResponseWriter, r *http.Request) {
	loan, err := s.services.Loans.ConfirmReturn(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, loan, s.logger)
}

// handleListMyLoans returns the authenticated user's loans, newest first.
func (s *Server) handleListMyLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := s.services.Loans.ListUserLoans(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, loans, s.logger)
}

// handleGetLoan returns a single loan. Members can only see their own.
func (s *Server) handleGetLoan(w http.ResponseWriter, r *http.Request) {
	loan, err := s.services.Loans.GetLoan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	ctx := r.Context()
	if loan.UserID != getUserID(ctx) && getRole(ctx) != domain.RoleAdmin {
		response.Forbidden(w, "Not your loan", s.logger)
		return
	}

	response.Success(w, loan, s.logger)
}

// handleListLoansByStatus returns loans filtered by lifecycle state.
func (s *Server) handleListLoansByStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.LoanStatus(r.URL.Query().Get("status"))
	if status == "" {
		response.BadRequest(w, "status query parameter is required", s.logger)
		return
	}

	loans, err := s.services.Loans.ListLoansByStatus(r.Context(), status)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, loans, s.logger)
}
