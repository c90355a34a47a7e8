// Package ledger mirrors vault state onto an append-only ledger through a
// relay gateway. The gateway holds the signing keys and submits contract
// transactions on our behalf; this client only speaks its HTTP API.
//
// Every call is best effort from the vault's point of view: callers treat
// ErrLedgerTimeout and ErrLedgerFailure as a degraded mirror, never as a
// reason to fail the local operation.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/docuchain/docuchain-backend/internal/config"
	"github.com/docuchain/docuchain-backend/internal/domain"
)

// Client submits mirror transactions through a relay gateway.
type Client struct {
	relayURL   string
	contract   string
	timeout    time.Duration
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client from config.
func NewClient(cfg config.LedgerConfig, logger *slog.Logger) *Client {
	return &Client{
		relayURL: cfg.RelayURL,
		contract: cfg.ContractAddress,
		timeout:  cfg.Timeout,
		// per-call deadlines come from the context, the transport timeout
		// is a backstop
		httpClient: &http.Client{Timeout: cfg.Timeout + 5*time.Second},
		log:        logger.With("adapter", "ledger"),
	}
}

// Receipt describes a submitted ledger transaction.
type Receipt struct {
	TxHash      string `json:"txHash"`
	BlockNumber int64  `json:"blockNumber"`
}

type txRequest struct {
	Contract string `json:"contract"`
	Method   string `json:"method"`
	Params   []any  `json:"params"`
}

type callResponse struct {
	Result bool `json:"result"`
}

// RegisterDocument records a new document's content address under the
// owner's wallet.
func (c *Client) RegisterDocument(ctx context.Context, contentAddress, ownerWallet string) (Receipt, error) {
	return c.submit(ctx, "registerDocument", []any{contentAddress, ownerWallet})
}

// GrantAccess mirrors a time-bounded access grant.
func (c *Client) GrantAccess(ctx context.Context, contentAddress, granteeWallet string, expiresAt time.Time) (Receipt, error) {
	return c.submit(ctx, "grantAccess", []any{contentAddress, granteeWallet, expiresAt.Unix()})
}

// RevokeAccess mirrors a grant revocation.
func (c *Client) RevokeAccess(ctx context.Context, contentAddress, granteeWallet string) (Receipt, error) {
	return c.submit(ctx, "revokeAccess", []any{contentAddress, granteeWallet})
}

// HasAccess reads the on-ledger access flag for a wallet. This is a view
// call, no transaction is submitted.
func (c *Client) HasAccess(ctx context.Context, contentAddress, wallet string) (bool, error) {
	body, err := c.post(ctx, "/v1/calls", txRequest{
		Contract: c.contract,
		Method:   "hasAccess",
		Params:   []any{contentAddress, wallet},
	})
	if err != nil {
		return false, err
	}

	var parsed callResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return false, fmt.Errorf("%w: decode call response: %v", domain.ErrLedgerFailure, err)
	}
	return parsed.Result, nil
}

func (c *Client) submit(ctx context.Context, method string, params []any) (Receipt, error) {
	body, err := c.post(ctx, "/v1/transactions", txRequest{
		Contract: c.contract,
		Method:   method,
		Params:   params,
	})
	if err != nil {
		return Receipt{}, err
	}

	var receipt Receipt
	if err := json.Unmarshal(body, &receipt); err != nil {
		return Receipt{}, fmt.Errorf("%w: decode receipt: %v", domain.ErrLedgerFailure, err)
	}
	if receipt.TxHash == "" {
		return Receipt{}, fmt.Errorf("%w: %s: empty tx hash in receipt", domain.ErrLedgerFailure, method)
	}

	c.log.DebugContext(ctx, "ledger tx submitted",
		slog.String("method", method),
		slog.String("tx_hash", receipt.TxHash),
	)
	return receipt, nil
}

func (c *Client) post(ctx context.Context, path string, payload txRequest) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ledger: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.relayURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("ledger: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.log.WarnContext(ctx, "ledger relay timeout", slog.String("method", payload.Method))
			return nil, fmt.Errorf("%w: %s", domain.ErrLedgerTimeout, payload.Method)
		}
		c.log.ErrorContext(ctx, "ledger relay unreachable",
			slog.String("method", payload.Method), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrLedgerFailure, payload.Method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.ErrorContext(ctx, "ledger relay error",
			slog.String("method", payload.Method), slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: %s: status %d", domain.ErrLedgerFailure, payload.Method, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %v", domain.ErrLedgerFailure, payload.Method, err)
	}
	return body, nil
}
