package kernel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// APIError is a kernel response with a non-zero code.
type APIError struct {
	Path string
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kernel %s returned code %d: %s", e.Path, e.Code, e.Msg)
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// Client talks to the SiYuan kernel.
type Client struct {
	baseURL       string
	token         string
	notifyTimeout int
	http          *http.Client
}

// NewClient creates a kernel client.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	notify := cfg.NotifyTimeoutMs
	if notify <= 0 {
		notify = 7000
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		token:         cfg.Token,
		notifyTimeout: notify,
		http:          &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// Version returns the running kernel version.
func (c *Client) Version(ctx context.Context) (string, error) {
	var v string
	if err := c.post(ctx, "/api/system/version", nil, &v); err != nil {
		return "", err
	}
	return v, nil
}

// PushMsg shows an informational notification.
func (c *Client) PushMsg(ctx context.Context, msg string) error {
	return c.post(ctx, "/api/notification/pushMsg", map[string]any{"msg": msg, "timeout": c.notifyTimeout}, nil)
}

// PushErrMsg shows an error notification.
func (c *Client) PushErrMsg(ctx context.Context, msg string) error {
	return c.post(ctx, "/api/notification/pushErrMsg", map[string]any{"msg": msg, "timeout": c.notifyTimeout}, nil)
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body := []byte("{}")
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", path, err)
		}
		body = b
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("kernel %s request failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("kernel %s returned status %d", path, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	if env.Code != 0 {
		return &APIError{Path: path, Code: env.Code, Msg: env.Msg}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode %s data: %w", path, err)
		}
	}
	return nil
}
