package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// do issues one request against the platform and decodes the response into
// out (when out is non-nil and the body is non-empty). All failures come back
// as *Error: this is the single place raw transport errors are caught.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.BaseURL()
	endpoint.Path = strings.TrimRight(endpoint.Path, "/") + path
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return transportError(err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return transportError(err)
	}
	req.Header.Set("apikey", c.anonKey)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}
	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return transportError(err)
	}
	return nil
}

// decodeError turns an error response body into *Error. Backend errors carry
// {message, code, details}; anything else falls back to the HTTP status text.
func decodeError(status int, data []byte) *Error {
	var parsed Error
	if err := json.Unmarshal(data, &parsed); err == nil && (parsed.Message != "" || parsed.Code != "") {
		parsed.Status = status
		if parsed.Message == "" {
			parsed.Message = "Unknown error"
		}
		return &parsed
	}
	return &Error{Message: http.StatusText(status), Status: status}
}

// Rpc invokes a named remote procedure under /rest/v1/rpc.
func (c *Client) Rpc(ctx context.Context, fn string, params, out any) error {
	if params == nil {
		params = map[string]any{}
	}
	return c.do(ctx, http.MethodPost, "/rest/v1/rpc/"+fn, nil, params, out)
}

// Select reads rows from a table under /rest/v1. Filtering and ordering are
// expressed as query parameters and executed remotely.
func (c *Client) Select(ctx context.Context, table string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, "/rest/v1/"+table, query, nil, out)
}

// Post issues a JSON POST against an arbitrary platform path. Used by the
// auth endpoints, which do not live under /rest/v1.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

// GetJSON issues a GET against an arbitrary platform path.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}
