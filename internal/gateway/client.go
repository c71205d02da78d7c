package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// pingTimeout bounds the best-effort liveness probe.
const pingTimeout = 3 * time.Second

// Doer is the transport adapter boundary: issue one HTTP request, get a
// response or a transport failure. *http.Client satisfies it; tests inject
// stubs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// CredentialSource is the narrow capability the gateway needs from the
// session layer: read the current persisted credential, if any. Keeping the
// dependency this small is what breaks the session/gateway cycle.
type CredentialSource interface {
	Token() (string, bool)
}

// Options configures a single gateway request.
type Options struct {
	Method       string            // defaults to GET
	Body         interface{}       // marshaled to JSON when set
	RawBody      io.Reader         // pre-encoded body (multipart); caller sets Content-Type
	Headers      map[string]string // merged over defaults
	RequiresAuth bool
}

// Client is the sole component issuing API calls and classifying their
// outcomes. All typed endpoint groups go through Request.
type Client struct {
	baseURL    string
	httpClient Doer
	creds      CredentialSource
	onExpired  func()
}

// NewClient creates a new gateway Client. A nil transport falls back to a
// default http.Client with sane timeouts.
func NewClient(baseURL string, creds CredentialSource, transport Doer) *Client {
	if transport == nil {
		transport = &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: transport,
		creds:      creds,
	}
}

// OnSessionExpired registers the hook invoked when an authenticated request
// comes back 401: the hook performs logout and forces navigation to the login
// route before the caller sees SessionExpiredError.
func (c *Client) OnSessionExpired(fn func()) {
	c.onExpired = fn
}

// Request issues one API call and classifies the response per the error
// taxonomy. It returns the raw JSON body on success. A single failed call is
// never retried; callers decide.
func (c *Client) Request(ctx context.Context, endpoint string, opts Options) (json.RawMessage, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	switch {
	case opts.RawBody != nil:
		bodyReader = opts.RawBody
	case opts.Body != nil:
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}
	// Default to JSON unless the caller brought a pre-encoded body, in which
	// case the content type (multipart boundary included) is theirs to set.
	if req.Header.Get("Content-Type") == "" && opts.RawBody == nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	// Attach the bearer credential if required. A missing credential is not
	// an error at this layer; the backend will answer 401 if it matters.
	if opts.RequiresAuth {
		if token, ok := c.creds.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	// 401 on an authenticated call invalidates the whole session: logout,
	// hard redirect to login, and a rejected call for whoever was in flight.
	if resp.StatusCode == http.StatusUnauthorized && opts.RequiresAuth {
		if c.onExpired != nil {
			c.onExpired()
		}
		return nil, &SessionExpiredError{}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Message: "failed to read response body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: backendMessage(body)}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &NetworkError{Message: "failed to parse response body", Err: err}
	}
	return raw, nil
}

// RequestJSON issues a request and decodes the successful response into out.
// A nil out discards the body.
func (c *Client) RequestJSON(ctx context.Context, endpoint string, opts Options, out interface{}) error {
	raw, err := c.Request(ctx, endpoint, opts)
	if err != nil {
		return err
	}
	if out == nil || raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &NetworkError{Message: "failed to decode response body", Err: err}
	}
	return nil
}

// Ping probes the backend root to warm it up. Best effort: it is bounded by a
// hard timeout and failures are logged, never surfaced.
func (c *Client) Ping(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		log.Printf("Backend ping failed: %v", err)
		return
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("Backend ping failed: %v", err)
		return
	}
	resp.Body.Close()
}

// backendMessage extracts the error message from a failure body, if the
// backend supplied one.
func backendMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return "an error occurred"
}
