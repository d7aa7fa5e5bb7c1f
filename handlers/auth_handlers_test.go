package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wishfund/middleware"

	"github.com/stretchr/testify/assert"
)

// The validation paths below reject the request before any repository is
// touched, so a zero-value Handlers is enough.
func newTestHandlers() *Handlers {
	return NewHandlers(nil, nil, nil, nil, nil)
}

func authed(r *http.Request, userID int) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
	return r.WithContext(ctx)
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	h := newTestHandlers()

	r := httptest.NewRequest(http.MethodPut, "/api/user/me", strings.NewReader(`{"name":"New Name"}`))
	w := httptest.NewRecorder()
	h.UpdateProfile(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfileRejectsBlankName(t *testing.T) {
	h := newTestHandlers()

	r := authed(httptest.NewRequest(http.MethodPut, "/api/user/me", strings.NewReader(`{"name":"   "}`)), 1)
	w := httptest.NewRecorder()
	h.UpdateProfile(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Name is required")
}

func TestUpdateProfileRejectsInvalidBody(t *testing.T) {
	h := newTestHandlers()

	r := authed(httptest.NewRequest(http.MethodPut, "/api/user/me", strings.NewReader(`not json`)), 1)
	w := httptest.NewRecorder()
	h.UpdateProfile(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAccountRequiresSession(t *testing.T) {
	h := newTestHandlers()

	r := httptest.NewRequest(http.MethodDelete, "/api/user/me", nil)
	w := httptest.NewRecorder()
	h.DeleteAccount(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
