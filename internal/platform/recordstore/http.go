package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// HTTPClient talks to the remote record platform over JSON/REST. Auth is a
// static API key; every request carries the caller's context and the shared
// timeout.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	log     zerolog.Logger
}

// NewHTTPClient builds a client for the platform at baseURL.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, log zerolog.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		log:     log.With().Str("component", "recordstore").Logger(),
	}
}

func (c *HTTPClient) FetchRecords(ctx context.Context, table string, q Query) (*FetchResponse, error) {
	var out FetchResponse
	url := fmt.Sprintf("%s/tables/%s/fetch", c.baseURL, table)
	if err := c.do(ctx, http.MethodPost, url, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetRecordByID(ctx context.Context, table string, id int, q Query) (*GetResponse, error) {
	var out GetResponse
	url := fmt.Sprintf("%s/tables/%s/records/%d", c.baseURL, table, id)
	if len(q.Fields) > 0 {
		url += "?fields=" + strings.Join(q.Fields, ",")
	}
	if err := c.do(ctx, http.MethodGet, url, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateRecords(ctx context.Context, table string, records []Fields) (*BatchResponse, error) {
	var out BatchResponse
	url := fmt.Sprintf("%s/tables/%s/records", c.baseURL, table)
	body := map[string]any{"records": records}
	if err := c.do(ctx, http.MethodPost, url, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateRecords(ctx context.Context, table string, records []Fields) (*BatchResponse, error) {
	var out BatchResponse
	url := fmt.Sprintf("%s/tables/%s/records", c.baseURL, table)
	body := map[string]any{"records": records}
	if err := c.do(ctx, http.MethodPatch, url, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteRecords(ctx context.Context, table string, ids []int) (*BatchResponse, error) {
	var out BatchResponse
	url := fmt.Sprintf("%s/tables/%s/records", c.baseURL, table)
	body := map[string]any{"RecordIds": ids}
	if err := c.do(ctx, http.MethodDelete, url, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) do(ctx context.Context, method, url string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("url", url).Msg("request failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Error().Int("status", resp.StatusCode).Str("method", method).Str("url", url).Msg("unexpected status")
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Error().Err(err).Str("url", url).Msg("decode response failed")
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
