package http

import (
	"strings"
	"time"

	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/MikeRez0/inarashop/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type OrderItemResp struct {
	ProductID string      `json:"productId"`
	Title     string      `json:"title"`
	Quantity  int         `json:"quantity"`
	Price     jsonDecimal `json:"price"`
}

// OrderResp never exposes the stored payment signature.
type OrderResp struct {
	ID             domain.OrderID       `json:"id"`
	Items          []OrderItemResp      `json:"items"`
	CustomerName   string               `json:"customerName"`
	CustomerEmail  string               `json:"customerEmail,omitempty"`
	Phone          string               `json:"phone"`
	Address        string               `json:"address"`
	Pincode        string               `json:"pincode"`
	ShippingFee    jsonDecimal          `json:"shippingFee"`
	Subtotal       jsonDecimal          `json:"subtotal"`
	Total          jsonDecimal          `json:"total"`
	AmountMinor    int64                `json:"amountMinor"`
	Currency       string               `json:"currency"`
	PaymentMethod  domain.PaymentMethod `json:"paymentMethod"`
	PaymentStatus  domain.PaymentStatus `json:"paymentStatus"`
	PaymentOrderID string               `json:"paymentOrderId,omitempty"`
	PaymentID      string               `json:"paymentId,omitempty"`
	Status         domain.OrderStatus   `json:"status"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

func newOrderResp(o *domain.Order) OrderResp {
	items := make([]OrderItemResp, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResp{
			ProductID: it.ProductID,
			Title:     it.Title,
			Quantity:  it.Quantity,
			Price:     jsonDecimal(it.Price),
		})
	}
	return OrderResp{
		ID:             o.ID,
		Items:          items,
		CustomerName:   o.Customer.Name,
		CustomerEmail:  o.Customer.Email,
		Phone:          o.Customer.Phone,
		Address:        o.Customer.Address,
		Pincode:        o.Customer.Pincode,
		ShippingFee:    jsonDecimal(o.ShippingFee),
		Subtotal:       jsonDecimal(o.Subtotal),
		Total:          jsonDecimal(o.Total),
		AmountMinor:    o.AmountMinor,
		Currency:       o.Currency,
		PaymentMethod:  o.PaymentMethod,
		PaymentStatus:  o.PaymentStatus,
		PaymentOrderID: o.PaymentOrderID,
		PaymentID:      o.PaymentID,
		Status:         o.Status,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func (oh *OrderHandler) ListOrders(ctx *gin.Context) {
	list, err := oh.service.ListOrders(ctx)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]OrderResp, 0, len(list))
	for _, o := range list {
		result = append(result, newOrderResp(o))
	}

	oh.handleSuccess(ctx, result)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	order, err := oh.service.GetOrder(ctx, domain.OrderID(ctx.Param("id")))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResp(order))
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (oh *OrderHandler) UpdateOrderStatus(ctx *gin.Context) {
	req := StatusRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	order, err := oh.service.UpdateOrderStatus(ctx,
		domain.OrderID(ctx.Param("id")), domain.OrderStatus(strings.ToUpper(req.Status)))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResp(order))
}
