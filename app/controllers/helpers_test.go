package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/rasoi/app/models"
	"github.com/shashiranjanraj/rasoi/app/services"
	"github.com/shashiranjanraj/rasoi/pkg/middleware"
)

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestFailMapsTaxonomyErrors(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{services.Invalid("Invalid status. Use 'approved' or 'rejected'"), http.StatusBadRequest, "Invalid status. Use 'approved' or 'rejected'"},
		{services.Unauthenticated("Invalid email or password"), http.StatusUnauthorized, "Invalid email or password"},
		{services.Forbidden("Access denied"), http.StatusForbidden, "Access denied"},
		{services.NotFound("Catering Service Not Found"), http.StatusNotFound, "Catering Service Not Found"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		fail(rec, req, tc.err)

		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, tc.message, messageOf(t, rec))
	}
}

func TestFailHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	fail(rec, req, fmt.Errorf("dial tcp 10.0.0.1:27017: %w", errors.New("connection refused")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", messageOf(t, rec))
	assert.NotContains(t, rec.Body.String(), "27017")
}

func TestFailWrappedTaxonomyError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	fail(rec, req, fmt.Errorf("set status: %w", services.NotFound("Booking not found")))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Booking not found", messageOf(t, rec))
}

func TestCallerFromPrincipal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := middleware.WithPrincipal(req.Context(), middleware.Principal{
		ID:   "abc123",
		Role: "manager",
	})

	got := caller(req.WithContext(ctx))
	assert.Equal(t, "abc123", got.ID)
	assert.Equal(t, models.RoleManager, got.Role)
}
