package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/MikeRez0/inarashop/internal/adapter/config"
	"github.com/MikeRez0/inarashop/internal/core/domain"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Client opens orders through the Razorpay Orders API.
type Client struct {
	logger    *zap.Logger
	host      string
	keyID     string
	keySecret string
	http      *http.Client
}

func NewClient(cfg *config.Gateway, log *zap.Logger) (*Client, error) {
	return &Client{
		host:      strings.TrimRight(cfg.Address, "/"),
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		logger:    log,
		http:      &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type orderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *Client) KeyID() string {
	return c.keyID
}

func (c *Client) CreateOrder(ctx context.Context, req domain.GatewayOrderRequest) (*domain.GatewayOrder, error) {
	if c.keyID == "" || c.keySecret == "" {
		return nil, domain.ErrConfiguration
	}

	body, err := json.Marshal(orderRequest{
		Amount:         req.AmountMinor,
		Currency:       req.Currency,
		Receipt:        req.Receipt,
		PaymentCapture: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("error encoding order request: %w", err)
	}

	requestStr := c.host + "/v1/orders"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, requestStr, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error on %s : %w", requestStr, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.keyID, c.keySecret)

	c.logger.Debug("Fire request for gateway order",
		zap.String("receipt", req.Receipt), zap.Int64("amount", req.AmountMinor))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request error %s : %w", requestStr, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		if json.Unmarshal(respBytes, &e) == nil && e.Error.Description != "" {
			return nil, fmt.Errorf("gateway rejected order (HTTP %d, %s): %s",
				resp.StatusCode, e.Error.Code, e.Error.Description)
		}
		c.logger.Error("unexpected status for request",
			zap.String("receipt", req.Receipt), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("bad response %v for request %s", resp.StatusCode, requestStr)
	}

	var result orderResponse
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return nil, fmt.Errorf("error on response decode: %w", err)
	}
	if result.ID == "" {
		return nil, fmt.Errorf("gateway response has no order id")
	}

	return &domain.GatewayOrder{
		ID:       result.ID,
		Amount:   result.Amount,
		Currency: result.Currency,
		Receipt:  result.Receipt,
		Status:   result.Status,
	}, nil
}

func (c *Client) ParseEvent(body []byte) (*domain.GatewayEvent, error) {
	return ParseEvent(body)
}
