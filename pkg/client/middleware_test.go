package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithAuthUser(roles ...string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	authUser := &AuthUser{
		UserID:      uuid.NewString(),
		ExtraClaims: ExtraClaims{Username: "tester", Roles: roles},
	}
	ctx := context.WithValue(req.Context(), AuthUserKey, authUser)
	return req.WithContext(ctx)
}

func TestRequireRoleAllowed(t *testing.T) {
	handler := RequireRole("ROLE_ADMIN")(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithAuthUser("ROLE_ADMIN", "ROLE_USER"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleForbidden(t *testing.T) {
	handler := RequireRole("ROLE_ADMIN")(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithAuthUser("ROLE_USER"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleUnauthenticated(t *testing.T) {
	handler := RequireRole("ROLE_ADMIN")(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHasRole(t *testing.T) {
	u := AuthUser{ExtraClaims: ExtraClaims{Roles: []string{"ROLE_USER"}}}
	assert.True(t, u.HasRole("ROLE_USER"))
	assert.False(t, u.HasRole("ROLE_ADMIN"))
}
