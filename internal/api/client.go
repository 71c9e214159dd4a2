// Package api is the HTTP client for the tinqs REST API.
//
// Every call takes a context so in-flight requests can be canceled when the
// initiating view goes away. When a bearer token is available it is attached
// as an Authorization header; the server decides whether it is still valid.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	base  string
	http  *http.Client
	token func() string
}

// New returns a client for the API at baseURL. token is consulted on every
// request; it may return "" while logged out.
func New(baseURL string, token func() string) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		base:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:  &http.Client{Timeout: defaultTimeout},
		token: token,
	}
}

// BaseURL reports the configured API root.
func (c *Client) BaseURL() string { return c.base }

// do issues one request and decodes the response into out (when non-nil).
// Non-2xx responses become *Error values carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := strings.TrimSpace(c.token()); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// Error is a structured error payload from the server.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("api: server returned %d", e.Status)
	}
	return e.Message
}

func decodeError(status int, raw []byte) error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(raw, &payload)
	msg := strings.TrimSpace(payload.Message)
	if msg == "" {
		msg = strings.TrimSpace(payload.Error)
	}
	return &Error{Status: status, Message: msg}
}

// IsConflict reports a duplicate-name rejection (409).
func IsConflict(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == http.StatusConflict
}

// IsUnauthorized reports a rejected or expired session (401).
func IsUnauthorized(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == http.StatusUnauthorized
}

// UserMessage maps an error to what a view should display: the server's
// validation message verbatim when there is one, otherwise the generic
// fallback. Transport failures get the fallback too.
func UserMessage(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) && strings.TrimSpace(ae.Message) != "" {
		return ae.Message
	}
	return fallback
}
