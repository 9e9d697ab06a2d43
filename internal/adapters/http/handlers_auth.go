package web

import (
	"errors"
	"net/http"

	"bizkit/internal/adapters/http/middleware"
	"bizkit/internal/application/orchestrators"
)

// handleLogin handles POST /api/auth/login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	}, orchestrators.LoginDeps{AccountStore: stores.AccountStore})
	if err != nil {
		if errors.Is(err, orchestrators.ErrInvalidCredentials) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		internalError(w, err)
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Name, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]any{
		"user": map[string]string{
			"id":    result.AccountID,
			"email": result.Email,
			"name":  result.Name,
			"role":  result.Role,
		},
	})
}

// handleLogout handles POST /api/auth/logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if cookie, err := middleware.SessionCookie(r); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleMe handles GET /api/auth/me
func handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user": map[string]string{
			"id":    sess.AccountID,
			"email": sess.Email,
			"name":  sess.Name,
			"role":  sess.Role,
		},
	})
}
