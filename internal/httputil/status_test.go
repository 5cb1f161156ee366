// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorFrom(t *testing.T, handler http.HandlerFunc) error {
	t.Helper()

	ts := httptest.NewServer(handler)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	return ResponseError(resp)
}

func TestResponseError_ServicePayload(t *testing.T) {
	err := errorFrom(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"name":"AuthenticationError","message":"Invalid username or password","status":401}`)
	})

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "AuthenticationError", se.Name)
	assert.Equal(t, "Invalid username or password", se.Message)
	assert.Contains(t, err.Error(), "Invalid username or password")
}

func TestResponseError_PlainTextBody(t *testing.T) {
	err := errorFrom(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprintln(w, "upstream unavailable")
	})

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Empty(t, se.Name)
	assert.Equal(t, "upstream unavailable", se.Message)
}

func TestResponseError_EmptyBody(t *testing.T) {
	err := errorFrom(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, se.Status, err.Error())
}

func TestStatusError_SurvivesWrapping(t *testing.T) {
	err := errorFrom(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"name":"ForbiddenError","message":"Access denied"}`)
	})

	wrapped := fmt.Errorf("fetching notes: %w", err)

	var se *StatusError
	require.True(t, errors.As(wrapped, &se))
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.Equal(t, "ForbiddenError", se.Name)
}
