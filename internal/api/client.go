package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/iancoleman/strcase"
)

const (
	apiPrefix      = "/api/v1"
	defaultTimeout = 30 * time.Second
)

// Connection is the transport surface the DAOs operate against.
type Connection interface {
	Config() *ClientConfig
	ConnectionOK() bool
	CheckConnectivity(ctx context.Context) bool
	ActiveServer() string
	BaseURL() string

	List(ctx context.Context, resource string) ([]map[string]any, error)
	Get(ctx context.Context, resource, id string) (map[string]any, error)
	Create(ctx context.Context, resource string, doc map[string]any, files []FilePart) (map[string]any, error)
	Update(ctx context.Context, resource, id string, doc map[string]any, files []FilePart) (map[string]any, error)
	Patch(ctx context.Context, resource, id string, ops []byte) error
	Delete(ctx context.Context, resource, id string) error
	Dashboard(ctx context.Context) (map[string]any, error)
}

// ClientConfig holds connection settings.
type ClientConfig struct {
	Server  string
	BaseURL string
	Timeout time.Duration
}

// FilePart is one file attached to a multipart create/update.
type FilePart struct {
	Field    string
	Filename string
	Content  []byte
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client is the authenticated HTTP transport. Credentials come from the
// injected TokenProvider on every call; a missing session fails before any
// network I/O.
type Client struct {
	config *ClientConfig
	tokens TokenProvider
	http   *http.Client
	connOK bool
	mx     sync.RWMutex
}

// NewClient creates a new API client.
func NewClient(cfg *ClientConfig, tokens TokenProvider) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.BaseURL == "" {
		return nil, ErrInvalidServer
	}
	if tokens == nil {
		return nil, errors.New("token provider cannot be nil")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		config: cfg,
		tokens: tokens,
		http:   &http.Client{Timeout: timeout},
	}, nil
}

// Config returns the client configuration.
func (c *Client) Config() *ClientConfig {
	return c.config
}

// ActiveServer returns the server profile name.
func (c *Client) ActiveServer() string {
	return c.config.Server
}

// BaseURL returns the server base URL.
func (c *Client) BaseURL() string {
	return strings.TrimRight(c.config.BaseURL, "/")
}

// ConnectionOK reports the last connectivity probe result.
func (c *Client) ConnectionOK() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.connOK
}

// CheckConnectivity probes the health endpoint.
func (c *Client) CheckConnectivity(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL()+apiPrefix+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	ok := err == nil && resp.StatusCode < 500
	if resp != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}

	c.mx.Lock()
	c.connOK = ok
	c.mx.Unlock()
	return ok
}

// List fetches the full collection for a resource.
func (c *Client) List(ctx context.Context, resource string) ([]map[string]any, error) {
	raw, err := c.call(ctx, http.MethodGet, c.resourceURL(resource, ""), nil, "")
	if err != nil {
		return nil, err
	}

	var docs []map[string]any
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("unexpected list payload for %s: %w", resource, err)
	}

	out := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		out = append(out, Decode(d))
	}
	return out, nil
}

// Get fetches a single record.
func (c *Client) Get(ctx context.Context, resource, id string) (map[string]any, error) {
	raw, err := c.call(ctx, http.MethodGet, c.resourceURL(resource, id), nil, "")
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unexpected payload for %s/%s: %w", resource, id, err)
	}
	return Decode(doc), nil
}

// Create posts a new record, as multipart when files are attached.
func (c *Client) Create(ctx context.Context, resource string, doc map[string]any, files []FilePart) (map[string]any, error) {
	return c.send(ctx, http.MethodPost, c.resourceURL(resource, ""), doc, files)
}

// Update modifies an existing record, as multipart when files are attached.
func (c *Client) Update(ctx context.Context, resource, id string, doc map[string]any, files []FilePart) (map[string]any, error) {
	return c.send(ctx, http.MethodPatch, c.resourceURL(resource, id), doc, files)
}

// Patch applies an RFC 6902 patch document to a record. Patch op paths use
// camelCase keys and are re-encoded to the wire convention here.
func (c *Client) Patch(ctx context.Context, resource, id string, ops []byte) error {
	encoded, err := encodePatchOps(ops)
	if err != nil {
		return err
	}
	_, err = c.call(ctx, http.MethodPatch, c.resourceURL(resource, id), bytes.NewReader(encoded), "application/json-patch+json")
	return err
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, resource, id string) error {
	_, err := c.call(ctx, http.MethodDelete, c.resourceURL(resource, id), nil, "")
	return err
}

// Dashboard fetches aggregate counts per record type.
func (c *Client) Dashboard(ctx context.Context) (map[string]any, error) {
	raw, err := c.call(ctx, http.MethodGet, c.BaseURL()+apiPrefix+"/dashboard", nil, "")
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unexpected dashboard payload: %w", err)
	}
	return Decode(doc), nil
}

// Login authenticates and returns the bearer token plus the user document.
// It is the one unauthenticated call the client makes.
func (c *Client) Login(ctx context.Context, email, password string) (string, map[string]any, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+apiPrefix+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	raw, err := c.do(req)
	if err != nil {
		return "", nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", nil, fmt.Errorf("unexpected login payload: %w", err)
	}
	doc = Decode(doc)

	token, _ := doc["token"].(string)
	if token == "" {
		return "", nil, ErrNoToken
	}
	return token, doc, nil
}

// send encodes doc (and optional files) and issues the request.
func (c *Client) send(ctx context.Context, method, url string, doc map[string]any, files []FilePart) (map[string]any, error) {
	var (
		body        io.Reader
		contentType string
	)

	wire := Encode(doc)
	if len(files) > 0 {
		buf, ct, err := multipartBody(wire, files)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	} else {
		b, err := json.Marshal(wire)
		if err != nil {
			return nil, err
		}
		body, contentType = bytes.NewReader(b), "application/json"
	}

	raw, err := c.call(ctx, method, url, body, contentType)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unexpected payload: %w", err)
	}
	return Decode(out), nil
}

// call attaches credentials and executes one request. The token check runs
// before any network I/O.
func (c *Client) call(ctx context.Context, method, url string, body io.Reader, contentType string) (json.RawMessage, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return c.do(req)
}

// do executes the request and unwraps the response envelope.
func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("request failed", "method", req.Method, "url", req.URL.String(), "error", err)
		return nil, fmt.Errorf("%w: %v", ErrNoConnection, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if len(raw) > 0 {
		// Non-JSON bodies (proxies, gateways) fall through with an empty envelope.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		slog.Debug("request unauthorized", "method", req.Method, "url", req.URL.String())
		return nil, ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Debug("request rejected", "method", req.Method, "url", req.URL.String(), "status", resp.StatusCode)
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	return env.Data, nil
}

func (c *Client) resourceURL(resource, id string) string {
	url := c.BaseURL() + apiPrefix + "/" + strings.Trim(resource, "/")
	if id != "" {
		url += "/" + id
	}
	return url
}

// multipartBody builds a multipart form: document fields as form values,
// files as file parts.
func multipartBody(doc map[string]any, files []FilePart) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range doc {
		var val string
		switch t := v.(type) {
		case string:
			val = t
		default:
			b, err := json.Marshal(t)
			if err != nil {
				return nil, "", err
			}
			val = string(b)
		}
		if err := w.WriteField(k, val); err != nil {
			return nil, "", err
		}
	}

	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// encodePatchOps rewrites RFC 6902 op paths from camelCase to snake_case.
func encodePatchOps(ops []byte) ([]byte, error) {
	var parsed []map[string]any
	if err := json.Unmarshal(ops, &parsed); err != nil {
		return nil, fmt.Errorf("invalid patch document: %w", err)
	}

	for _, op := range parsed {
		for _, key := range []string{"path", "from"} {
			p, ok := op[key].(string)
			if !ok {
				continue
			}
			segs := strings.Split(p, "/")
			for i, s := range segs {
				if s == "" || isDigits(s) {
					continue
				}
				segs[i] = strcase.ToSnake(s)
			}
			op[key] = strings.Join(segs, "/")
		}
		if v, ok := op["value"].(map[string]any); ok {
			op["value"] = Encode(v)
		}
	}

	return json.Marshal(parsed)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
