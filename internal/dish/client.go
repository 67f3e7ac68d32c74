package dish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client talks to the bitemap data service, a PostgREST-style API keyed by a
// project API key.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
	}
}

// ListDishes fetches the full pre-ordered feed collection. The service owns
// ordering; the client never paginates or merges partial results.
func (c *Client) ListDishes(ctx context.Context, limit int) ([]Dish, error) {
	if limit < 1 {
		limit = 50
	}

	q := make(url.Values)
	q.Set("limit", strconv.Itoa(limit))

	req, err := c.newRequest(ctx, http.MethodGet, "/dishes?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list dishes request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError("list dishes", resp)
	}

	var dishes []Dish
	if err := json.NewDecoder(resp.Body).Decode(&dishes); err != nil {
		return nil, fmt.Errorf("decode dishes response: %w", err)
	}
	return dishes, nil
}

// RecordLike records a like for the dish. Best-effort: callers fire it after
// the local flag has already flipped and only log a failure.
func (c *Client) RecordLike(ctx context.Context, dishID string) error {
	return c.insert(ctx, "/likes", "record like", map[string]string{"dish_id": dishID})
}

// DeleteLike removes a previously recorded like. Same contract as RecordLike.
func (c *Client) DeleteLike(ctx context.Context, dishID string) error {
	q := make(url.Values)
	q.Set("dish_id", "eq."+dishID)

	req, err := c.newRequest(ctx, http.MethodDelete, "/likes?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete like request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return responseError("delete like", resp)
	}
	return nil
}

// RecordBookmark records a bookmark for the dish. Same contract as RecordLike.
func (c *Client) RecordBookmark(ctx context.Context, dishID string) error {
	return c.insert(ctx, "/bookmarks", "record bookmark", map[string]string{"dish_id": dishID})
}

// CreateOrder enqueues an order for the dish and returns the client-generated
// order reference.
func (c *Client) CreateOrder(ctx context.Context, dishID string) (string, error) {
	orderID := uuid.NewString()
	err := c.insert(ctx, "/orders", "create order", map[string]string{
		"id":      orderID,
		"dish_id": dishID,
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}

func (c *Client) insert(ctx context.Context, path, action string, row map[string]string) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", action, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return responseError(action, resp)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	fullURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func responseError(action string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("%s failed with status %d: %s", action, resp.StatusCode, strings.TrimSpace(string(body)))
}
