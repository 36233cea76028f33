// Package client talks to the quotation store over its REST resources:
//
//	GET /quotations
//	GET /items/{quotation_number}
//	PUT /items/{quotation_number}/{item_code}/{tier}
//	GET /items/{quotation_number}/pdf
//
// and subscribes to item updates over the websocket feed (see Watch).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"quotation-backend/internal/models"
)

// StatusError is returned for any non-2xx response
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d", e.Method, e.Path, e.StatusCode)
}

// Unwrap lets errors.Is(err, models.ErrNotFound) match 404 responses
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return models.ErrNotFound
	}
	return nil
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a client for the store at baseURL. A nil httpClient uses
// http.DefaultClient, which has no timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: httpClient,
	}
}

// ListQuotations returns every quotation number with its date
func (c *Client) ListQuotations(ctx context.Context) ([]models.QuotationSummary, error) {
	var out []models.QuotationSummary
	if err := c.do(ctx, http.MethodGet, "/quotations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchQuotation returns the quotation with all of its items
func (c *Client) FetchQuotation(ctx context.Context, number string) (*models.Quotation, error) {
	var q models.Quotation
	if err := c.do(ctx, http.MethodGet, "/items/"+url.PathEscape(number), nil, &q); err != nil {
		return nil, err
	}
	if q.QuotationNumber == "" {
		q.QuotationNumber = number
	}
	return &q, nil
}

// UpdateTier stores one tier of one item and returns the row as the store sees it
func (c *Client) UpdateTier(ctx context.Context, number, itemCode string, tier models.Tier, values models.TierValues) (*models.Item, error) {
	path := fmt.Sprintf("/items/%s/%s/%s", url.PathEscape(number), url.PathEscape(itemCode), url.PathEscape(string(tier)))
	var item models.Item
	if err := c.do(ctx, http.MethodPut, path, values, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DownloadPDF returns the rendered PDF of a quotation
func (c *Client) DownloadPDF(ctx context.Context, number string) ([]byte, error) {
	path := "/items/" + url.PathEscape(number) + "/pdf"
	var data []byte
	err := c.send(ctx, http.MethodGet, path, nil, func(r io.Reader) error {
		var err error
		data, err = io.ReadAll(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	return c.send(ctx, method, path, body, func(r io.Reader) error {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(r).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
		return nil
	})
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}, read func(io.Reader) error) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
	}

	return read(resp.Body)
}

// readErrorMessage extracts {"error": "..."} or {"detail": "..."} from an error
// body, falling back to the raw text
func readErrorMessage(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, 4096))
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal(data, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Detail != "" {
			return payload.Detail
		}
	}
	return strings.TrimSpace(string(data))
}
