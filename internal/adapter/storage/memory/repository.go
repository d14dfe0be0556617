// Package memory keeps orders, products and checkout keys in process memory.
// It backs development runs without a database and the end-to-end tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/MikeRez0/inarashop/internal/core/port"
)

var _ port.Repository = (*Repository)(nil)

type Repository struct {
	mu             sync.RWMutex
	orders         map[domain.OrderID]domain.Order
	byPaymentOrder map[string]domain.OrderID
	products       map[domain.ProductID]domain.Product
	now            func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		orders:         make(map[domain.OrderID]domain.Order),
		byPaymentOrder: make(map[string]domain.OrderID),
		products:       make(map[domain.ProductID]domain.Product),
		now:            time.Now,
	}
}

// copyOrder detaches the items slice from the stored value.
func copyOrder(o domain.Order) *domain.Order {
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	return &o
}

func (r *Repository) CreatePendingOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; ok {
		return nil, domain.ErrConflictingData
	}
	if order.PaymentOrderID != "" {
		if _, ok := r.byPaymentOrder[order.PaymentOrderID]; ok {
			return nil, domain.ErrConflictingData
		}
		r.byPaymentOrder[order.PaymentOrderID] = order.ID
	}
	stored := copyOrder(*order)
	r.orders[order.ID] = *stored

	return copyOrder(*stored), nil
}

// updateByPaymentOrder applies fn to the order under the write lock when cond
// holds, otherwise reports domain.ErrNoUpdatedData.
func (r *Repository) updateByPaymentOrder(ctx context.Context, paymentOrderID string,
	cond func(*domain.Order) bool, fn func(*domain.Order)) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byPaymentOrder[paymentOrderID]
	if !ok {
		return nil, domain.ErrNoUpdatedData
	}
	order := r.orders[id]
	if !cond(&order) {
		return nil, domain.ErrNoUpdatedData
	}
	fn(&order)
	order.UpdatedAt = r.now()
	r.orders[id] = order

	return copyOrder(order), nil
}

func (r *Repository) MarkOrderPaidIfPending(ctx context.Context,
	paymentOrderID string, payment domain.PaymentConfirmation) (*domain.Order, error) {
	return r.updateByPaymentOrder(ctx, paymentOrderID,
		func(o *domain.Order) bool { return o.PaymentStatus != domain.PaymentStatusPaid },
		func(o *domain.Order) {
			o.PaymentStatus = domain.PaymentStatusPaid
			o.Status = domain.OrderStatusConfirmed
			o.PaymentID = payment.PaymentID
			o.PaymentSignature = payment.Signature
		})
}

func (r *Repository) MarkOrderFailedIfPending(ctx context.Context, paymentOrderID string) (*domain.Order, error) {
	return r.updateByPaymentOrder(ctx, paymentOrderID,
		func(o *domain.Order) bool { return o.PaymentStatus == domain.PaymentStatusPending },
		func(o *domain.Order) { o.PaymentStatus = domain.PaymentStatusFailed })
}

func (r *Repository) ReadOrderByPaymentOrderID(ctx context.Context, paymentOrderID string) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPaymentOrder[paymentOrderID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return copyOrder(r.orders[id]), nil
}

func (r *Repository) ReadOrder(ctx context.Context, orderID domain.OrderID) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return copyOrder(order), nil
}

func (r *Repository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		list = append(list, copyOrder(o))
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *Repository) UpdateOrderStatus(ctx context.Context,
	orderID domain.OrderID, from domain.OrderStatus, to domain.OrderStatus) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok || order.Status != from {
		return nil, domain.ErrNoUpdatedData
	}
	order.Status = to
	order.UpdatedAt = r.now()
	r.orders[orderID] = order

	return copyOrder(order), nil
}

func (r *Repository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; ok {
		return nil, domain.ErrConflictingData
	}
	r.products[product.ID] = *product
	p := *product
	return &p, nil
}

func (r *Repository) ReadProduct(ctx context.Context, productID domain.ProductID) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[productID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return &p, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.products[product.ID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	p := *product
	p.CreatedAt = current.CreatedAt
	r.products[product.ID] = p
	return &p, nil
}

func (r *Repository) DeleteProduct(ctx context.Context, productID domain.ProductID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[productID]; !ok {
		return domain.ErrDataNotFound
	}
	delete(r.products, productID)
	return nil
}
