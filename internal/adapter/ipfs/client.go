// Package ipfs stores and retrieves content blobs through the IPFS HTTP API.
// It speaks the /api/v0 RPC surface, so any Kubo-compatible node or pinning
// gateway works, including authenticated ones.
package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/docuchain/docuchain-backend/internal/config"
	"github.com/docuchain/docuchain-backend/internal/domain"
)

// Client talks to an IPFS node over its HTTP API.
type Client struct {
	endpoint      string
	projectID     string
	projectSecret string
	httpClient    *http.Client
	log           *slog.Logger
}

// NewClient creates a Client from config. When ProjectID is set, requests
// carry basic auth credentials the way hosted gateways expect.
func NewClient(cfg config.IPFSConfig, logger *slog.Logger) *Client {
	return &Client{
		endpoint:      cfg.Endpoint,
		projectID:     cfg.ProjectID,
		projectSecret: cfg.ProjectSecret,
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		log:           logger.With("adapter", "ipfs"),
	}
}

type addResponse struct {
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}

// Add uploads data to the node and returns its content address (CID).
func (c *Client) Add(ctx context.Context, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "blob")
	if err != nil {
		return "", fmt.Errorf("ipfs: build multipart: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("ipfs: build multipart: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("ipfs: build multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/v0/add", &body)
	if err != nil {
		return "", fmt.Errorf("ipfs: create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "ipfs add failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: add: %v", domain.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.ErrorContext(ctx, "ipfs add unexpected status", slog.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%w: add: status %d", domain.ErrStoreUnavailable, resp.StatusCode)
	}

	var parsed addResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: add: decode response: %v", domain.ErrStoreUnavailable, err)
	}
	if parsed.Hash == "" {
		return "", fmt.Errorf("%w: add: empty hash in response", domain.ErrStoreUnavailable)
	}

	c.log.DebugContext(ctx, "ipfs add",
		slog.String("cid", parsed.Hash),
		slog.Int("bytes", len(data)),
	)
	return parsed.Hash, nil
}

// Cat downloads the blob stored under the given content address.
func (c *Client) Cat(ctx context.Context, address string) ([]byte, error) {
	reqURL := c.endpoint + "/api/v0/cat?arg=" + url.QueryEscape(address)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ipfs: create request: %w", err)
	}
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "ipfs cat failed",
			slog.String("cid", address), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: cat: %v", domain.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("content %s: %w", address, domain.ErrNotFound)
	default:
		c.log.ErrorContext(ctx, "ipfs cat unexpected status",
			slog.String("cid", address), slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: cat: status %d", domain.ErrStoreUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: cat: read body: %v", domain.ErrStoreUnavailable, err)
	}
	return data, nil
}

// Ping checks that the node answers its version endpoint. Used by health
// checks.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/v0/version", nil)
	if err != nil {
		return fmt.Errorf("ipfs: create request: %w", err)
	}
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: version: %v", domain.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: version: status %d", domain.ErrStoreUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *Client) setAuth(req *http.Request) {
	if c.projectID != "" {
		req.SetBasicAuth(c.projectID, c.projectSecret)
	}
}
