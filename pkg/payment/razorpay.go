// Package payment is the boundary to the Razorpay gateway: outbound
// payment-intent creation and verification of inbound confirmations.
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
)

// ErrGateway wraps upstream gateway failures. Calls are not retried here; the
// caller owns the retry policy.
var ErrGateway = errors.New("payment gateway error")

// Gateway creates remote payment intents.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency, receipt string) (string, error)
}

type Client struct {
	rz      *razorpay.Client
	timeout time.Duration
}

func NewClient(keyID, keySecret string) *Client {
	return &Client{
		rz:      razorpay.NewClient(keyID, keySecret),
		timeout: 10 * time.Second,
	}
}

// CreateIntent opens a Razorpay order for the given amount in paise and
// returns its id. The SDK call does not take a context, so it runs under a
// deadline goroutine; expiry surfaces as ErrGateway.
func (c *Client) CreateIntent(ctx context.Context, amount int64, currency, receipt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type result struct {
		id  string
		err error
	}
	ch := make(chan result, 1)

	go func() {
		body, err := c.rz.Order.Create(map[string]interface{}{
			"amount":          amount,
			"currency":        currency,
			"receipt":         receipt,
			"payment_capture": 1,
		}, nil)
		if err != nil {
			ch <- result{err: err}
			return
		}
		id, _ := body["id"].(string)
		ch <- result{id: id}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ErrGateway, ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return "", fmt.Errorf("%w: %v", ErrGateway, res.err)
		}
		if res.id == "" {
			return "", fmt.Errorf("%w: order id missing from response", ErrGateway)
		}
		return res.id, nil
	}
}
