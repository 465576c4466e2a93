package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client talks to the billing backend. Every request attaches the
// current bearer token; list/detail responses are unwrapped from the
// {data: ...} envelope uniformly.
//
// Requests are independent and not coalesced: two rapid edits to the
// same entity issue two requests in flight, and the backend's simple
// overwrite semantics decide the winner (last write wins). No request
// timeouts are enforced here.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  *TokenStore
}

// New creates an API client for the given base URL
func New(baseURL string, tokens *TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		tokens:  tokens,
	}
}

// envelope is the {data: ...} wrapper on list/detail responses
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// errorBody covers both error payload shapes the backend uses
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Get issues a GET and decodes the enveloped response into out
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.json(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.json(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.json(ctx, http.MethodPut, path, body, out)
}

// Patch issues a PATCH with a JSON body
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.json(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE, discarding any response body
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.json(ctx, http.MethodDelete, path, nil, nil)
}

// Download streams a binary response (e.g. a rendered PDF) into w
func (c *Client) Download(ctx context.Context, path string, w io.Writer) error {
	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, nil); err != nil {
		// Error responses still carry a JSON body worth surfacing
		raw, _ := io.ReadAll(resp.Body)
		return checkStatus(resp.StatusCode, raw)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to read document stream: %w", err)
	}
	return nil
}

// json sends a request and decodes the response. When the body is
// enveloped the payload under "data" is decoded into out; bare bodies
// (auth responses) are decoded directly.
func (c *Client) json(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if err := checkStatus(resp.StatusCode, raw); err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		raw = env.Data
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	return resp, nil
}

// checkStatus maps a response status onto the error taxonomy
func checkStatus(status int, raw []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	var eb errorBody
	_ = json.Unmarshal(raw, &eb)
	msg := eb.Error
	if msg == "" {
		msg = eb.Message
	}

	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrNotFound, msg)
		}
		return ErrNotFound
	}
	return &ServerError{StatusCode: status, Message: msg}
}
