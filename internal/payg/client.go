// Package payg talks to the external payment gateway that settles card and
// transfer payments. The gateway owns the authoritative transaction state;
// this client only verifies references quoted on receipts.
package payg

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/guonaihong/gout"
	"github.com/hotelworks/hotelops/config"
	"github.com/pkg/errors"
)

// VerifyResult is the gateway's view of one transaction.
type VerifyResult struct {
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"` // success/pending/failed
	Channel   string  `json:"channel"`
	PaidAt    string  `json:"paid_at"`
}

type verifyEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    VerifyResult `json:"data"`
}

// Client is a thin wrapper over the gateway verification endpoint.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
}

func NewClient(cfg config.GatewayConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.ApiKey,
		timeout: timeout,
	}
}

// Enabled reports whether a gateway is configured at all.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// VerifyTransaction checks a gateway reference and returns the settled
// amount and status. Each call carries a fresh correlation id so gateway
// support can trace individual lookups.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*VerifyResult, error) {
	if !c.Enabled() {
		return nil, errors.New("payment gateway is not configured")
	}
	if reference == "" {
		return nil, errors.New("transaction reference is required")
	}

	var (
		rsp  verifyEnvelope
		code int
	)
	err := gout.GET(c.baseURL+"/transactions/verify/"+reference).
		WithContext(ctx).
		SetTimeout(c.timeout).
		SetHeader(gout.H{
			"Authorization":    "Bearer " + c.apiKey,
			"X-Correlation-Id": uuid.NewString(),
		}).
		BindJSON(&rsp).
		Code(&code).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "gateway verify request failed")
	}
	if code != 200 {
		return nil, errors.Errorf("gateway verify returned status %d", code)
	}
	if !rsp.Success {
		return nil, errors.Errorf("gateway rejected reference: %s", rsp.Message)
	}
	return &rsp.Data, nil
}
