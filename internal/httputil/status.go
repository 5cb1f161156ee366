// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the API client.
package httputil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of an error response body is read when
// building a StatusError. Service error payloads are small JSON objects;
// anything larger is almost certainly an HTML error page.
const maxErrorBody = 64 << 10

// StatusError describes a non-2xx response from the review service. Name
// and Message carry the service's own error payload when the body is the
// usual {"name": ..., "message": ..., "status": ...} JSON object; for
// other bodies Message holds the raw text.
type StatusError struct {
	StatusCode int
	Status     string
	Name       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Status, e.Message)
	}
	return e.Status
}

// ResponseError builds a StatusError from a non-2xx response. It reads
// and discards up to maxErrorBody bytes of the body so the underlying
// connection can be reused; the caller still owns closing the body.
func ResponseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	se := &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}

	var payload struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		se.Name = payload.Name
		se.Message = payload.Message
	}
	if se.Message == "" {
		se.Message = strings.TrimSpace(string(body))
	}
	return se
}
