package http

import (
	"log/slog"
	"net/http"
	"strings"

	"paycycle/internal/core"
	"paycycle/internal/services"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Income int64  `json:"income"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.svc.Signup(r.Context(), strings.TrimSpace(req.Name), strings.TrimSpace(req.Email), req.Income)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"name":    user.Name,
		"income":  user.Income,
	})
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req services.AddExpenseInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.svc.AddExpense(r.Context(), req); err != nil {
		slog.WarnContext(r.Context(), "Add expense rejected",
			"error", err,
			"email", req.Email,
			"category", req.Category)
		writeEngineError(w, err)
		return
	}

	s.userDataCache.Delete(req.Email)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "id and email are required")
		return
	}

	if err := s.svc.DeleteExpense(r.Context(), req.ID, req.Email); err != nil {
		writeEngineError(w, err)
		return
	}

	s.userDataCache.Delete(req.Email)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handlePayday(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req struct {
		Email     string `json:"email"`
		NewIncome int64  `json:"newIncome"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	income, err := s.svc.Payday(r.Context(), req.Email, req.NewIncome)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	s.userDataCache.Delete(req.Email)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"income":  income,
	})
}

func (s *Server) handleUserData(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeEngineError(w, core.ErrEmptyEmail)
		return
	}

	if data, ok := s.userDataCache.Get(req.Email); ok {
		writeJSON(w, http.StatusOK, data)
		return
	}

	data, err := s.svc.UserData(r.Context(), req.Email)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	s.userDataCache.Set(req.Email, data)
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleDeleteNotification(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "id and email are required")
		return
	}

	if err := s.svc.DeleteNotification(r.Context(), req.ID, req.Email); err != nil {
		writeEngineError(w, err)
		return
	}

	s.userDataCache.Delete(req.Email)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
