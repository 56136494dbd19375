package pressingapi

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
)

// Client клиент REST API маркетплейса
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   SessionHandler
	metrics    MetricsRecorder
	log        Logger
}

// Option настройка клиента
type Option func(*Client)

// WithMetrics включает счетчик ответов 401
func WithMetrics(m MetricsRecorder) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithHTTPClient подменяет http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient создает новый экземпляр клиента; sessions может быть nil
func NewClient(baseURL string, timeout time.Duration, sessions SessionHandler, log Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		sessions: sessions,
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorBody тело ошибки API: встречаются оба поля
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do выполняет запрос и декодирует data-часть ответа в out (если out != nil)
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request body: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request %s %s: %v", ErrInternal, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", ErrInvalidResponse, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(ctx, method, path, resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := json.Unmarshal(unwrapData(raw), out); err != nil {
		return fmt.Errorf("%w: failed to decode response of %s %s: %v", ErrInvalidResponse, method, path, err)
	}
	return nil
}

func (c *Client) handleErrorResponse(ctx context.Context, method, path string, status int, raw []byte) error {
	apiErr := &APIError{
		StatusCode: status,
		Method:     method,
		Path:       path,
	}

	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil {
		apiErr.Message = eb.Message
		if apiErr.Message == "" {
			apiErr.Message = eb.Error
		}
	}

	if status == http.StatusUnauthorized {
		if c.metrics != nil {
			c.metrics.IncUpstreamUnauthorized()
		}
		if !IsPublicEndpoint(method, path) {
			apiErr.sessionExpired = true
			c.log.Warn("pressingapi: 401 on %s %s, clearing session", method, path)
			if c.sessions != nil {
				c.sessions.OnUnauthorized(ctx)
			}
		}
		return apiErr
	}

	if status >= 500 {
		c.log.Error("pressingapi: %s %s failed with status %d: %s", method, path, status, apiErr.Message)
	} else {
		c.log.Warn("pressingapi: %s %s returned status %d: %s", method, path, status, apiErr.Message)
	}
	return apiErr
}

// unwrapData достает поле data из конверта {success, data, message}, если оно есть
func unwrapData(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil || len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return trimmed
	}
	return envelope.Data
}

// extractList достает массив из ответа: массив целиком или поле с одним из ключей
func extractList(raw json.RawMessage, keys ...string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return json.RawMessage("[]"), nil
	}
	if trimmed[0] == '[' {
		return trimmed, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: expected array or object: %v", ErrInvalidResponse, err)
	}
	for _, key := range keys {
		if list, ok := fields[key]; ok && len(list) > 0 && list[0] == '[' {
			return list, nil
		}
	}
	return nil, fmt.Errorf("%w: no list under keys %v", ErrInvalidResponse, keys)
}

// IsPublicEndpoint пути, на которых 401 не сбрасывает сессию
func IsPublicEndpoint(method, path string) bool {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")

	if len(segments) == 2 && segments[0] == "auth" {
		switch segments[1] {
		case "login", "register", "refresh":
			return true
		}
		return false
	}

	if segments[0] != "pressings" {
		return false
	}

	switch len(segments) {
	case 1, 2:
		return method == http.MethodGet
	case 3:
		return segments[2] == "available-slots"
	}
	return false
}
