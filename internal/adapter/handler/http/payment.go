package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/MikeRez0/inarashop/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

const idempotencyHeaderKey = "Idempotency-Key"
const webhookSignatureHeaderKey = "X-Razorpay-Signature"

const maxWebhookBody = 1 << 20

var defaultShippingFee = decimal.MustParse("40")

type PaymentHandler struct {
	Handler
	service port.Service
}

func NewPaymentHandler(service port.Service, logger *zap.Logger) (*PaymentHandler, error) {
	return &PaymentHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type CheckoutItemRequest struct {
	ProductID string      `json:"productId"`
	Title     string      `json:"title"`
	Quantity  int         `json:"quantity"`
	Price     json.Number `json:"price"`
}

// CheckoutRequest carries money as json.Number so both numbers and numeric
// strings are accepted and parsed without float rounding.
type CheckoutRequest struct {
	Items         []CheckoutItemRequest `json:"items"`
	CustomerName  string                `json:"customerName"`
	CustomerEmail string                `json:"customerEmail"`
	Phone         string                `json:"phone"`
	Address       string                `json:"address"`
	Pincode       string                `json:"pincode"`
	ShippingFee   json.Number           `json:"shippingFee"`
	Subtotal      json.Number           `json:"subtotal"`
	Total         json.Number           `json:"total"`
	Amount        json.Number           `json:"amount"`
	PaymentMethod string                `json:"paymentMethod"`
}

func parseMoney(field string, n json.Number, def decimal.Decimal) (decimal.Decimal, error) {
	if n == "" {
		return def, nil
	}
	d, err := decimal.Parse(strings.TrimSpace(n.String()))
	if err != nil {
		return decimal.Decimal{}, domain.FieldError(field, "must be a number")
	}
	return d, nil
}

func (r *CheckoutRequest) toCheckout() (*domain.Checkout, error) {
	checkout := &domain.Checkout{
		Items: make([]domain.OrderItem, 0, len(r.Items)),
		Customer: domain.Customer{
			Name:    r.CustomerName,
			Email:   r.CustomerEmail,
			Phone:   r.Phone,
			Address: r.Address,
			Pincode: r.Pincode,
		},
		Amount:        r.Amount.String(),
		PaymentMethod: domain.PaymentMethod(strings.ToUpper(r.PaymentMethod)),
	}

	for i, it := range r.Items {
		price, err := parseMoney(fmt.Sprintf("items[%d].price", i), it.Price, decimal.Decimal{})
		if err != nil {
			return nil, err
		}
		checkout.Items = append(checkout.Items, domain.OrderItem{
			ProductID: it.ProductID,
			Title:     it.Title,
			Quantity:  it.Quantity,
			Price:     price,
		})
	}

	var err error
	if checkout.ShippingFee, err = parseMoney("shippingFee", r.ShippingFee, defaultShippingFee); err != nil {
		return nil, err
	}
	if checkout.Subtotal, err = parseMoney("subtotal", r.Subtotal, decimal.Decimal{}); err != nil {
		return nil, err
	}
	if checkout.Total, err = parseMoney("total", r.Total, decimal.Decimal{}); err != nil {
		return nil, err
	}
	return checkout, nil
}

type CheckoutResponse struct {
	Success bool                 `json:"success"`
	OrderID domain.OrderID       `json:"orderId"`
	Order   *domain.GatewayOrder `json:"order"`
	KeyID   string               `json:"key_id"`
}

// CreateOrder godoc
//
//	@Summary	Create a pending order and its gateway order
//	@Tags		payment
//	@Accept		json
//	@Produce	json
//	@Param		Idempotency-Key	header		string			false	"checkout idempotency key"
//	@Param		request			body		CheckoutRequest	true	"checkout"
//	@Success	200				{object}	CheckoutResponse
//	@Failure	400				{object}	errorResponse
//	@Failure	409				{object}	errorResponse
//	@Failure	500				{object}	errorResponse
//	@Router		/api/payment/order [post]
func (ph *PaymentHandler) CreateOrder(ctx *gin.Context) {
	req := CheckoutRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	checkout, err := req.toCheckout()
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	result, err := ph.service.CreateCheckoutOrder(ctx, checkout, ctx.GetHeader(idempotencyHeaderKey))
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, CheckoutResponse{
		Success: true,
		OrderID: result.OrderID,
		Order:   result.GatewayOrder,
		KeyID:   result.KeyID,
	})
}

// VerifyRequest also accepts the field names of the gateway checkout widget.
type VerifyRequest struct {
	RemoteOrderID   string `json:"remoteOrderId"`
	RemotePaymentID string `json:"remotePaymentId"`
	Signature       string `json:"signature"`

	GatewayOrderID   string `json:"razorpay_order_id"`
	GatewayPaymentID string `json:"razorpay_payment_id"`
	GatewaySignature string `json:"razorpay_signature"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

type VerifyResponse struct {
	OK      bool           `json:"ok"`
	OrderID domain.OrderID `json:"orderId,omitempty"`
	Error   string         `json:"error,omitempty"`
	Kind    string         `json:"kind,omitempty"`
}

func (ph *PaymentHandler) verifyError(ctx *gin.Context, err error) {
	k := classify(err)
	ph.logUnexpected(ctx, k, err)
	ctx.JSON(k.status, VerifyResponse{OK: false, Error: k.message(err), Kind: k.kind})
}

// VerifyPayment godoc
//
//	@Summary	Verify a gateway payment signature and mark the order paid
//	@Tags		payment
//	@Accept		json
//	@Produce	json
//	@Param		request	body		VerifyRequest	true	"gateway payment"
//	@Success	200		{object}	VerifyResponse
//	@Failure	400		{object}	VerifyResponse
//	@Failure	404		{object}	VerifyResponse
//	@Failure	500		{object}	VerifyResponse
//	@Router		/api/payment/verify [post]
func (ph *PaymentHandler) VerifyPayment(ctx *gin.Context) {
	req := VerifyRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ph.verifyError(ctx, fmt.Errorf("%w: %w", domain.ErrValidation, err))
		return
	}

	orderID, err := ph.service.VerifyPayment(ctx,
		firstNonEmpty(req.RemoteOrderID, req.GatewayOrderID),
		firstNonEmpty(req.RemotePaymentID, req.GatewayPaymentID),
		firstNonEmpty(req.Signature, req.GatewaySignature))
	if err != nil {
		ph.verifyError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, VerifyResponse{OK: true, OrderID: orderID})
}

// Webhook godoc
//
//	@Summary	Gateway callback
//	@Tags		payment
//	@Accept		json
//	@Param		X-Razorpay-Signature	header	string	true	"body signature"
//	@Success	200
//	@Failure	400	{object}	errorResponse
//	@Router		/api/payment/webhook [post]
func (ph *PaymentHandler) Webhook(ctx *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxWebhookBody))
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}
	defer ctx.Request.Body.Close()

	err = ph.service.HandleGatewayEvent(ctx, body, ctx.GetHeader(webhookSignatureHeaderKey))
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccessWithStatus(ctx, gin.H{"status": "ok"}, http.StatusOK)
}
