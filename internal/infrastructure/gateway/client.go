package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mc-parking-api/internal/domain"
)

// Client implements the generic item verbs over the API Gateway proxy.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Scan(ctx context.Context, table string, filter domain.Filter) ([]domain.Item, error) {
	resp, err := c.do(ctx, http.MethodPost, PathScan, Request{TableName: table, Filter: filter})
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) Query(ctx context.Context, table string, q domain.Query) ([]domain.Item, error) {
	resp, err := c.do(ctx, http.MethodPost, PathQuery, Request{
		TableName: table,
		IndexName: q.IndexName,
		KeyName:   q.KeyName,
		KeyValue:  q.KeyValue,
	})
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) GetItem(ctx context.Context, table string, key domain.Item) (domain.Item, error) {
	resp, err := c.do(ctx, http.MethodPost, PathGetItem, Request{TableName: table, Key: key})
	if err != nil {
		return nil, err
	}
	if resp.Item == nil {
		return nil, fmt.Errorf("item not found in %s: %w", table, domain.ErrNotFound)
	}
	return resp.Item, nil
}

func (c *Client) PutItem(ctx context.Context, table string, item domain.Item) error {
	_, err := c.do(ctx, http.MethodPost, PathPutItem, Request{TableName: table, Item: item})
	return err
}

func (c *Client) UpdateItem(ctx context.Context, table string, key domain.Item, updates map[string]interface{}) (domain.Item, error) {
	resp, err := c.do(ctx, http.MethodPost, PathUpdateItem, Request{TableName: table, Key: key, Updates: updates})
	if err != nil {
		return nil, err
	}
	if resp.Item == nil {
		return nil, fmt.Errorf("gateway %s: response for %s carries no item", PathUpdateItem, table)
	}
	return resp.Item, nil
}

func (c *Client) DeleteItem(ctx context.Context, table string, key domain.Item) error {
	_, err := c.do(ctx, http.MethodDelete, PathDeleteItem, Request{TableName: table, Key: key})
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body Request) (*Response, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway %s: %v: %w", path, err, domain.ErrUnavailable)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}
	var out Response
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil && res.StatusCode < 300 {
			return nil, fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	if res.StatusCode >= 300 {
		return nil, statusError(path, res.StatusCode, out.Error)
	}
	return &out, nil
}

func statusError(path string, code int, msg string) error {
	if msg == "" {
		msg = http.StatusText(code)
	}
	var kind error
	switch code {
	case http.StatusNotFound:
		kind = domain.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		kind = domain.ErrBadRequest
	case http.StatusUnauthorized:
		kind = domain.ErrUnauthorized
	case http.StatusForbidden:
		kind = domain.ErrForbidden
	case http.StatusConflict:
		kind = domain.ErrConflict
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("gateway %s: status %d: %s: %w", path, code, msg, domain.ErrUnavailable)
	default:
		return fmt.Errorf("gateway %s: status %d: %s", path, code, msg)
	}
	return fmt.Errorf("gateway %s: %s: %w", path, msg, kind)
}
