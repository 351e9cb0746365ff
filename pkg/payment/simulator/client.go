// Package simulator stands in for a real payment gateway. It mimics the
// latency of a remote acquirer and approves every well-formed charge,
// which is exactly what the checkout flow needs in an environment with
// no acquiring contract.
package simulator

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pedefood/pedefood-backend/pkg/logger"
)

var (
	ErrInvalidMethod      = errors.New("invalid payment method")
	ErrMissingCardDetails = errors.New("missing card details")
	ErrInvalidAmount      = errors.New("invalid charge amount")
)

type Client struct {
	processingDelay time.Duration
}

// NewClient creates a simulated gateway client. The delay imitates the
// round trip to an acquirer so the flow behaves realistically.
func NewClient(processingDelay time.Duration) *Client {
	return &Client{processingDelay: processingDelay}
}

// Charge validates and "processes" a payment. Card payments require all
// four card fields to be present; the charge itself always succeeds.
func (c *Client) Charge(ctx context.Context, req ChargeRequest) (*ChargeResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	logger.Debug("Processing simulated charge", map[string]interface{}{
		"order_number": req.OrderNumber,
		"method":       req.Method,
		"amount":       req.Amount,
	})

	select {
	case <-time.After(c.processingDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	resp := &ChargeResponse{
		TransactionID: uuid.New().String(),
		Approved:      true,
		Amount:        req.Amount,
	}

	logger.Info("Simulated charge approved", map[string]interface{}{
		"order_number":   req.OrderNumber,
		"transaction_id": resp.TransactionID,
	})
	return resp, nil
}

func validate(req ChargeRequest) error {
	if req.Method != MethodCard && req.Method != MethodPix {
		return ErrInvalidMethod
	}
	if req.Amount <= 0 {
		return ErrInvalidAmount
	}
	if req.Method == MethodCard {
		if req.Card == nil ||
			req.Card.Number == "" ||
			req.Card.HolderName == "" ||
			req.Card.Expiry == "" ||
			req.Card.CVV == "" {
			return ErrMissingCardDetails
		}
	}
	return nil
}
