package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charbel291291291/election2026/internal/client/models"
	"github.com/charbel291291291/election2026/internal/common"
	"github.com/sethvargo/go-retry"
)

const apiPrefix = "/api/v1"

// HTTPClient implements Client over the backend's JSON API.
type HTTPClient struct {
	baseURL string
	hc      *http.Client

	mu    sync.Mutex
	token string
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 15 * time.Second},
	}
}

// Token returns the retained session token.
func (c *HTTPClient) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// SetToken replaces the retained session token.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// mapStatus converts an HTTP status plus error body into the client's
// sentinel error taxonomy.
func mapStatus(status int, body []byte) error {
	var er errorResponse
	_ = json.Unmarshal(body, &er)
	msg := er.Error
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch {
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, msg)
	case status == http.StatusForbidden:
		if er.Code == "root_expired" {
			return fmt.Errorf("%w: %s", common.ErrAuthorizationExpired, msg)
		}
		return fmt.Errorf("%w: %s", common.ErrAuthorizationDenied, msg)
	case status >= 500:
		return fmt.Errorf("%w: server returned %d", common.ErrNetworkUnavailable, status)
	default:
		return fmt.Errorf("%w: %s", common.ErrRemoteRejected, msg)
	}
}

// doJSON performs one request/response cycle. Transport-level failures are
// reported as ErrNetworkUnavailable with the cause preserved in the chain.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrNetworkUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/healthz", nil, nil)
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number"`
	PIN         string `json:"pin"`
}

func (c *HTTPClient) Login(ctx context.Context, phone, pin string) (*Session, error) {
	var session Session
	err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/auth/login", loginRequest{PhoneNumber: phone, PIN: pin}, &session)
	if err != nil {
		return nil, err
	}
	c.SetToken(session.Token)
	return &session, nil
}

type escalateRequest struct {
	PIN string `json:"pin"`
}

type escalateResponse struct {
	Token string `json:"token"`
}

// EscalateRoot never sends the agent's identity: the server derives it from
// the presented session token.
func (c *HTTPClient) EscalateRoot(ctx context.Context, pin string) error {
	var resp escalateResponse
	if err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/auth/root", escalateRequest{PIN: pin}, &resp); err != nil {
		return err
	}
	c.SetToken(resp.Token)
	return nil
}

// SubmitReport retries transient failures with backoff. Safe because the
// server upserts by the client-assigned id.
func (c *HTTPClient) SubmitReport(ctx context.Context, report *models.FieldReport) error {
	backoff := retry.WithMaxRetries(2, retry.NewExponential(200*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/reports", report, nil)
		if errors.Is(err, common.ErrNetworkUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
}

type listReportsResponse struct {
	Reports []models.FieldReport `json:"reports"`
}

func (c *HTTPClient) ListReports(ctx context.Context) ([]models.FieldReport, error) {
	var resp listReportsResponse
	if err := c.doJSON(ctx, http.MethodGet, apiPrefix+"/reports", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Reports, nil
}

func (c *HTTPClient) PresignPhoto(ctx context.Context) (*PresignGrant, error) {
	var grant PresignGrant
	if err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/reports/presign", struct{}{}, &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

type rootActionRequest struct {
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload,omitempty"`
}

type rootActionResponse struct {
	Result json.RawMessage `json:"result,omitempty"`
}

func (c *HTTPClient) InvokeRootAction(ctx context.Context, action string, payload map[string]any) (json.RawMessage, error) {
	var resp rootActionResponse
	if err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/root/action", rootActionRequest{Action: action, Payload: payload}, &resp); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}
