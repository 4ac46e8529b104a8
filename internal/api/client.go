// Package api implements the REST client for the portfolio tracker backend.
// The backend owns pricing, aggregation and persistence; this client only
// speaks its HTTP contract.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"github.com/haoyun/fundwatch/internal/portfolio"
)

// StatusError reports a non-2xx backend response. When the body carried a
// structured detail it is preferred verbatim over the generic message.
type StatusError struct {
	Status int
	Detail string
	msg    string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	msg := e.msg
	if msg == "" {
		msg = "请求失败"
	}
	return fmt.Sprintf("%s: %d", msg, e.Status)
}

// ImportItem is one fund in a bulk import request.
type ImportItem struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
	Name   string  `json:"name,omitempty"`
}

// ImportResultItem is the backend's outcome for a single imported fund.
type ImportResultItem struct {
	Status string  `json:"status"`
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
	Units  float64 `json:"units"`
	Error  string  `json:"error,omitempty"`
}

// Import item statuses returned by the backend.
const (
	ImportAdded  = "added"
	ImportMerged = "merged"
	ImportFailed = "failed"
)

// CreatePositionRequest is the payload for creating a new position.
type CreatePositionRequest struct {
	AssetType string  `json:"asset_type"`
	Code      string  `json:"code"`
	Name      *string `json:"name"`
	Units     float64 `json:"units"`
	CostPrice float64 `json:"cost_price"`
}

// UpdatePositionRequest is the partial-update payload. The identity is
// carried in the URL, never in the body.
type UpdatePositionRequest struct {
	Name      *string `json:"name"`
	Units     float64 `json:"units"`
	CostPrice float64 `json:"cost_price"`
}

// Client is the REST client for the portfolio tracker backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given API root, e.g. "http://localhost:8000".
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetSnapshot fetches the current portfolio snapshot, bypassing caches.
func (c *Client) GetSnapshot(ctx context.Context) (*portfolio.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/portfolio", nil)
	if err != nil {
		return nil, errors.Wrap(err, "build snapshot request")
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch snapshot")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot body")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, msg: "接口请求失败"}
	}

	return portfolio.DecodeSnapshot(body)
}

// ImportFunds submits a batch fund import and returns the per-item results.
// Item-level failures are reported in the result, not as an error.
func (c *Client) ImportFunds(ctx context.Context, items []ImportItem) ([]ImportResultItem, error) {
	payload := struct {
		Items []ImportItem `json:"items"`
	}{Items: items}

	body, err := c.doJSON(ctx, http.MethodPost, "/api/portfolio/import-funds", payload, "导入失败")
	if err != nil {
		return nil, err
	}

	var result struct {
		Items []ImportResultItem `json:"items"`
	}
	if err := sonic.Unmarshal(body, &result); err != nil {
		return nil, errors.Wrap(err, "decode import result")
	}
	return result.Items, nil
}

// CreatePosition creates a new position and returns the backend's message.
func (c *Client) CreatePosition(ctx context.Context, req CreatePositionRequest) (string, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/api/positions", req, "请求失败")
	if err != nil {
		return "", err
	}
	return decodeMessage(body)
}

// UpdatePosition applies a partial update to the position with the given
// identity and returns the backend's message.
func (c *Client) UpdatePosition(ctx context.Context, id portfolio.Identity, req UpdatePositionRequest) (string, error) {
	body, err := c.doJSON(ctx, http.MethodPatch, positionPath(id), req, "请求失败")
	if err != nil {
		return "", err
	}
	return decodeMessage(body)
}

// DeletePosition removes the position with the given identity. The response
// body is ignored on success.
func (c *Client) DeletePosition(ctx context.Context, id portfolio.Identity) error {
	_, err := c.doJSON(ctx, http.MethodDelete, positionPath(id), nil, "删除失败")
	return err
}

func positionPath(id portfolio.Identity) string {
	return "/api/positions/" + url.PathEscape(id.AssetType) + "/" + url.PathEscape(id.Code)
}

func decodeMessage(body []byte) (string, error) {
	var result struct {
		Message string `json:"message"`
	}
	if err := sonic.Unmarshal(body, &result); err != nil {
		return "", errors.Wrap(err, "decode response message")
	}
	return result.Message, nil
}

// doJSON executes a request with an optional JSON payload and returns the
// response body. Non-2xx responses become a StatusError carrying the backend
// detail when one can be parsed.
func (c *Client) doJSON(ctx context.Context, method, path string, payload interface{}, failMsg string) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := sonic.Marshal(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "marshal %s %s", method, path)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s %s", method, path)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s %s response", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Status: resp.StatusCode,
			Detail: parseDetail(body),
			msg:    failMsg,
		}
	}
	return body, nil
}

// parseDetail extracts the backend's structured error detail, if any.
func parseDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}
