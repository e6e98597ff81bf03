package httpadapter

import (
	"encoding/json"
	"net/http"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (rt *Router) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	user, err := rt.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeFailure(w, mapErrorToHTTPStatus(err), clientMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful.",
		"email":   user.Email,
	})
}

func (rt *Router) signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	user, err := rt.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeFailure(w, mapErrorToHTTPStatus(err), clientMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Account created.",
		"email":   user.Email,
	})
}

// logout is stateless; there is no server-side session to tear down.
func (rt *Router) logout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out.",
	})
}
