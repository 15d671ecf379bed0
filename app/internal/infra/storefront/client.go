// Package storefront talks to the catalog and stock HTTP endpoints.
package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domproduct "example.com/storefront-cart/app/internal/domain/product"
)

type Client struct {
	baseURL string
	http    *http.Client
}

var (
	_ domproduct.Catalog     = (*Client)(nil)
	_ domproduct.StockSource = (*Client)(nil)
)

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// StatusError is returned for non-2xx responses other than 404.
type StatusError struct {
	Path   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.Path, e.Status)
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domproduct.Product, error) {
	var p domproduct.Product
	if err := c.get(ctx, fmt.Sprintf("/products/%d", id), domproduct.ErrProductNotFound, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) GetStock(ctx context.Context, id int64) (*domproduct.Stock, error) {
	var s domproduct.Stock
	if err := c.get(ctx, fmt.Sprintf("/stock/%d", id), domproduct.ErrStockNotFound, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) get(ctx context.Context, path string, notFound error, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("GET %s: %w", path, notFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Path: path, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
