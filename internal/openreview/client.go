// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openreview is a minimal client for the OpenReview API v2. It
// covers the handful of endpoints the downloader needs: login, note
// queries and invitation lookups. One Client is one authenticated
// session; the bearer token lives in memory only.
package openreview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/review-fetch/internal/httputil"
	"github.com/pdiddy/review-fetch/pkg/types"
)

// DefaultBaseURL is the production OpenReview API v2 endpoint.
const DefaultBaseURL = "https://api2.openreview.net"

var (
	// ErrAuthentication reports rejected credentials or an expired
	// session. It is never retried.
	ErrAuthentication = errors.New("authentication failed")

	// ErrNotFound reports a lookup for an id the service does not know.
	ErrNotFound = errors.New("not found")
)

// Client is an authenticated OpenReview session. Construct one with
// Login; the zero value is not usable.
type Client struct {
	base      string
	hc        *http.Client
	userAgent string
	token     string
	user      string
}

// Login authenticates against the service and returns a session client.
// A 401 or 403 response reports ErrAuthentication with the service's own
// message attached.
func Login(ctx context.Context, cfg types.APIConfig, email, password string) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		base:      base,
		hc:        &http.Client{Timeout: timeout},
		userAgent: cfg.UserAgent,
	}

	body, err := json.Marshal(map[string]string{"id": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("encoding credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, httputil.ResponseError(resp))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("login: %w", httputil.ResponseError(resp))
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("parsing login response: %w", err)
	}
	if lr.Token == "" {
		return nil, fmt.Errorf("%w: login response carried no token", ErrAuthentication)
	}
	c.token = lr.Token
	c.user = lr.User.ID
	if c.user == "" {
		c.user = email
	}
	return c, nil
}

// User returns the account id the session was opened for.
func (c *Client) User() string { return c.user }

// Notes fetches every note on a forum, optionally filtered by invitation.
// Notes come back in the service's own response order, which is
// preserved all the way to the rendered output.
func (c *Client) Notes(ctx context.Context, forum, invitation string) ([]Note, error) {
	params := url.Values{"forum": {forum}}
	if invitation != "" {
		params.Set("invitation", invitation)
	}

	var nr notesResponse
	if err := c.get(ctx, "/notes", params, &nr); err != nil {
		return nil, err
	}
	return nr.Notes, nil
}

// Note fetches a single note by id. An unknown id reports ErrNotFound.
func (c *Client) Note(ctx context.Context, id string) (*Note, error) {
	var nr notesResponse
	err := c.get(ctx, "/notes", url.Values{"id": {id}}, &nr)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("note %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if len(nr.Notes) == 0 {
		return nil, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	return &nr.Notes[0], nil
}

// Invitation fetches an invitation definition by id. An unknown id
// reports ErrNotFound; callers use that to tell a wrong venue apart from
// a venue with no reviews yet.
func (c *Client) Invitation(ctx context.Context, id string) (*Invitation, error) {
	var ir invitationsResponse
	err := c.get(ctx, "/invitations", url.Values{"id": {id}}, &ir)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("invitation %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if len(ir.Invitations) == 0 {
		return nil, fmt.Errorf("invitation %s: %w", id, ErrNotFound)
	}
	return &ir.Invitations[0], nil
}

// get performs one authenticated GET and decodes the JSON body into out.
// Requests are sequential and never retried.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := c.base + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrAuthentication, httputil.ResponseError(resp))
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("GET %s: %w", path, httputil.ResponseError(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing %s response: %w", path, err)
	}
	return nil
}

// notFound reports whether err carries a service 404.
func notFound(err error) bool {
	var se *httputil.StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// OpenReview API JSON envelopes.
type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID string `json:"id"`
	} `json:"user"`
}

type notesResponse struct {
	Notes []Note `json:"notes"`
	Count int    `json:"count"`
}

type invitationsResponse struct {
	Invitations []Invitation `json:"invitations"`
	Count       int          `json:"count"`
}
