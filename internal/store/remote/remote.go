// Package remote implements the Store against the CollabCloud REST
// backend. The client issues one request per operation, carries the
// session's bearer token, and maps backend statuses onto the data layer's
// sentinel errors so callers cannot tell it apart from the local store.
// There is no automatic retry; a failed request surfaces as a
// TransportError carrying the backend's message.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/collabcloud/collab/internal/collab"
	"github.com/collabcloud/collab/internal/session"
)

// Store implements collab.Store over HTTP.
type Store struct {
	baseURL string
	session *session.Session
	client  *http.Client
}

// New creates a remote Store for the backend at baseURL. The session
// supplies the bearer token for authenticated calls and is updated by the
// caller, not by this store.
func New(baseURL string, sess *session.Session, timeout time.Duration) *Store {
	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: sess,
		client:  &http.Client{Timeout: timeout},
	}
}

// Close is a no-op; the HTTP client holds no resources needing shutdown.
func (s *Store) Close() error { return nil }

// errorBody is the backend's error response shape.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// doJSON sends a JSON request and decodes a JSON response into out when
// out is non-nil. conflict is the sentinel reported for a 409 status,
// since its meaning depends on the endpoint.
func (s *Store) doJSON(ctx context.Context, method, path string, body, out any, conflict error) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.send(req, method, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := s.checkStatus(resp, method, path, conflict); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// send attaches auth and executes the request.
func (s *Store) send(req *http.Request, method, path string) (*http.Response, error) {
	if s.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.session.Token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &collab.TransportError{Op: method + " " + path, Err: err}
	}
	return resp, nil
}

// checkStatus maps a non-2xx response onto the data layer's error
// taxonomy. The response body is consumed on failure.
func (s *Store) checkStatus(resp *http.Response, method, path string, conflict error) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg := readErrorMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusNotFound:
		return collab.ErrNotFound
	case http.StatusUnauthorized:
		return collab.ErrInvalidCredentials
	case http.StatusBadRequest:
		if msg != "" {
			return fmt.Errorf("%w: %s", collab.ErrValidation, msg)
		}
		return collab.ErrValidation
	case http.StatusConflict:
		if conflict != nil {
			return conflict
		}
	}

	if msg == "" {
		msg = resp.Status
	}
	return &collab.TransportError{Op: method + " " + path, Message: msg}
}

// readErrorMessage extracts the backend's message from an error body.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return strings.TrimSpace(string(data))
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// decodeJSON decodes a successful response body.
func decodeJSON(r io.Reader, out any) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// query builds a path with URL-encoded query parameters, skipping empty
// values.
func query(path string, params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// Compile-time check that Store implements the data layer's contract.
var _ collab.Store = (*Store)(nil)
