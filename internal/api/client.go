package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/odii/audio-guide/internal/model"
)

// ErrBadStatus is wrapped by client errors for non-200 responses
var ErrBadStatus = errors.New("unexpected response status")

const maxBodyBytes = 1 << 20

// Client reads the listings API
type Client struct {
	mu      sync.RWMutex
	baseURL string
	http    *http.Client
}

// NewClient creates a client for baseURL. httpClient may be nil.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL points later requests at another API root
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	c.baseURL = strings.TrimRight(baseURL, "/")
	c.mu.Unlock()
}

// Exhibitions fetches the exhibition listings
func (c *Client) Exhibitions(ctx context.Context) ([]model.Listing, error) {
	var listings []model.Listing
	if err := c.getJSON(ctx, "/api/exhibitions", &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// Status fetches the service health payload
func (c *Client) Status(ctx context.Context) (model.ServiceStatus, error) {
	var st model.ServiceStatus
	err := c.getJSON(ctx, "/api/status", &st)
	return st, err
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL()+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return fmt.Errorf("GET %s: %w: %d", path, ErrBadStatus, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
