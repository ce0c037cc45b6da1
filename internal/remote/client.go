// Package remote implements the RemoteDirectory port against the upstream HR
// REST backend. All transport and protocol failures are classified into
// *domain.Failure so callers never see raw net/http errors.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"hrdesk/internal/config"
	"hrdesk/internal/domain"
)

// Client talks JSON to the upstream HR backend.
type Client struct {
	baseURL   string
	authPath  string
	authToken string
	http      *http.Client
}

// NewClient creates a Client from config.
func NewClient(cfg *config.RemoteConfig) (*Client, error) {
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid remote base URL: %w", err)
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		authPath:  cfg.AuthPath,
		authToken: cfg.AuthToken,
		http:      &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// envelope is the upstream response wrapper. The backend is inconsistent about
// wrapping, so decoding tolerates both bare payloads and {"data": ...}.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, domain.NewFailure(domain.FailureUnknown, "encoding request: "+err.Error())
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, domain.NewFailure(domain.FailureUnknown, err.Error())
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, domain.NewFailure(domain.FailureNetwork, "reading response: "+err.Error())
	}

	if resp.StatusCode >= 400 {
		return nil, classifyStatus(resp.StatusCode, data)
	}
	return unwrap(data), nil
}

func classifyTransport(err error) *domain.Failure {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return domain.NewFailure(domain.FailureTimeout, "remote backend timed out")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewFailure(domain.FailureTimeout, "remote backend timed out")
	}
	return domain.NewFailure(domain.FailureNetwork, "remote backend unreachable: "+err.Error())
}

// classifyStatus maps an upstream error status to a Failure kind. 401 and 403
// count as remote validation: the upstream treats bad credentials as a
// rejected request, and VerifyCredentials folds that kind into
// ErrInvalidCredentials.
func classifyStatus(status int, body []byte) *domain.Failure {
	reason := remoteReason(body)
	switch status {
	case http.StatusNotFound:
		if reason == "" {
			reason = "resource not found"
		}
		return domain.NewFailure(domain.FailureNotFound, reason)
	case http.StatusBadRequest, http.StatusUnprocessableEntity,
		http.StatusUnauthorized, http.StatusForbidden:
		if reason == "" {
			reason = "request rejected by remote backend"
		}
		return domain.NewFailure(domain.FailureRemoteValidation, reason)
	default:
		if status >= 500 {
			if reason == "" {
				reason = fmt.Sprintf("remote backend error (status %d)", status)
			}
			return domain.NewFailure(domain.FailureServer, reason)
		}
		if reason == "" {
			reason = fmt.Sprintf("unexpected remote status %d", status)
		}
		return domain.NewFailure(domain.FailureUnknown, reason)
	}
}

// remoteReason pulls a human-readable message out of an error body.
func remoteReason(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if env.Error != "" {
		return env.Error
	}
	return env.Message
}

// unwrap peels the {"data": ...} envelope when present.
func unwrap(body []byte) json.RawMessage {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		return env.Data
	}
	return body
}

func decodeRecords(raw json.RawMessage) ([]domain.Record, error) {
	var records []domain.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, domain.NewFailure(domain.FailureUnknown, "malformed collection payload")
	}
	return records, nil
}

func decodeRecord(raw json.RawMessage) (domain.Record, error) {
	var rec domain.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, domain.NewFailure(domain.FailureUnknown, "malformed record payload")
	}
	return rec, nil
}

// FetchAll retrieves the full collection for a resource kind.
func (c *Client) FetchAll(ctx context.Context, kind domain.ResourceKind) ([]domain.Record, error) {
	raw, err := c.do(ctx, http.MethodGet, "/"+string(kind), nil)
	if err != nil {
		return nil, err
	}
	return decodeRecords(raw)
}

// Create posts a new record and returns the stored version.
func (c *Client) Create(ctx context.Context, kind domain.ResourceKind, record domain.Record) (domain.Record, error) {
	raw, err := c.do(ctx, http.MethodPost, "/"+string(kind), record)
	if err != nil {
		return nil, err
	}
	return decodeRecord(raw)
}

// Update patches a record and returns the stored version.
func (c *Client) Update(ctx context.Context, kind domain.ResourceKind, id string, partial domain.Record) (domain.Record, error) {
	raw, err := c.do(ctx, http.MethodPatch, "/"+string(kind)+"/"+url.PathEscape(id), partial)
	if err != nil {
		return nil, err
	}
	return decodeRecord(raw)
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, kind domain.ResourceKind, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/"+string(kind)+"/"+url.PathEscape(id), nil)
	return err
}

// VerifyCredentials checks a username/password pair against the backend's
// login endpoint and resolves the acting user.
func (c *Client) VerifyCredentials(ctx context.Context, username, password string) (*domain.ActingUser, error) {
	raw, err := c.do(ctx, http.MethodPost, c.authPath, map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		f := domain.FailureOf(err)
		if f.Kind == domain.FailureRemoteValidation || f.Kind == domain.FailureNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	var payload struct {
		Username   string `json:"username"`
		EmployeeID string `json:"employee_id"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, domain.NewFailure(domain.FailureUnknown, "malformed login payload")
	}
	if payload.Username == "" {
		payload.Username = username
	}
	return &domain.ActingUser{IdentityKey: payload.Username, EmployeeID: payload.EmployeeID}, nil
}
