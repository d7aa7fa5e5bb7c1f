package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"wishfund/middleware"
	"wishfund/models"
)

// Register creates a new account and issues a session cookie.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	existing, err := h.userRepo.GetUserByEmail(req.Email)
	if err != nil {
		log.Printf("Failed to look up user: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}
	if existing != nil {
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := h.auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	user, err := h.userRepo.CreateUser(req.Name, strings.ToLower(req.Email), hash)
	if err != nil {
		log.Printf("Failed to create user: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	h.issueSession(w, user.ID)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login verifies credentials and issues a session cookie.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.userRepo.GetUserByEmail(strings.ToLower(req.Email))
	if err != nil {
		log.Printf("Failed to look up user: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}
	if user == nil || !h.auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	h.issueSession(w, user.ID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Logged in successfully",
		"user":    user,
	})
}

// Logout clears the session cookie.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the authenticated user's profile.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.userRepo.GetUserByID(userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// UpdateProfile changes the authenticated user's display name.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	user, err := h.userRepo.UpdateUserName(userID, strings.TrimSpace(req.Name))
	if err != nil {
		log.Printf("Failed to update user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User data updated successfully",
		"user":    user,
	})
}

// DeleteAccount removes the authenticated user's account along with all
// goals and contributions, and clears the session cookie.
func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	deleted, err := h.userRepo.DeleteUser(userID)
	if err != nil {
		log.Printf("Failed to delete user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "User account deleted successfully"})
}

func (h *Handlers) issueSession(w http.ResponseWriter, userID int) {
	token, err := h.auth.GenerateToken(userID)
	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
	})
}
