package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/inarashop/internal/adapter/storage"
	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/MikeRez0/inarashop/internal/core/port"
	"github.com/govalues/decimal"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ port.Repository = (*Repository)(nil)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

var orderColumns = []string{
	"id", "items",
	"customer_name", "COALESCE(customer_email, '')", "customer_phone", "customer_address", "customer_pincode",
	"shipping_fee", "subtotal", "total", "amount_minor", "currency",
	"payment_method", "payment_status",
	"COALESCE(payment_order_id, '')", "COALESCE(payment_id, '')", "COALESCE(payment_signature, '')",
	"status", "created_at", "updated_at",
}

var productColumns = []string{
	"id", "title", "price", "description", "image_url", "category",
	"in_stock", "is_top_selling", "is_offer_product", "created_at", "updated_at",
}

// itemRow keeps money as text inside the items jsonb column.
type itemRow struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

func encodeItems(items []domain.OrderItem) ([]byte, error) {
	rows := make([]itemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, itemRow{
			ProductID: it.ProductID,
			Title:     it.Title,
			Quantity:  it.Quantity,
			Price:     it.Price.String(),
		})
	}
	return json.Marshal(rows)
}

func decodeItems(data []byte) ([]domain.OrderItem, error) {
	var rows []itemRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("error on items decode: %w", err)
	}
	items := make([]domain.OrderItem, 0, len(rows))
	for _, r := range rows {
		price, err := decimal.Parse(r.Price)
		if err != nil {
			return nil, fmt.Errorf("error on item price decode: %w", err)
		}
		items = append(items, domain.OrderItem{
			ProductID: r.ProductID,
			Title:     r.Title,
			Quantity:  r.Quantity,
			Price:     price,
		})
	}
	return items, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	order := domain.Order{}
	var items []byte

	err := row.Scan(
		&order.ID,
		&items,
		&order.Customer.Name,
		&order.Customer.Email,
		&order.Customer.Phone,
		&order.Customer.Address,
		&order.Customer.Pincode,
		&order.ShippingFee,
		&order.Subtotal,
		&order.Total,
		&order.AmountMinor,
		&order.Currency,
		&order.PaymentMethod,
		&order.PaymentStatus,
		&order.PaymentOrderID,
		&order.PaymentID,
		&order.PaymentSignature,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Items, err = decodeItems(items)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	product := domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Title,
		&product.Price,
		&product.Description,
		&product.ImageURL,
		&product.Category,
		&product.InStock,
		&product.IsTopSelling,
		&product.IsOfferProduct,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// queryOrder runs a statement returning a single order row; noRows replaces
// pgx.ErrNoRows.
func (r *Repository) queryOrder(ctx context.Context, statement sq.Sqlizer, noRows error) (*domain.Order, error) {
	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, noRows
		}
		return nil, err
	}
	return order, nil
}

func (r *Repository) CreatePendingOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	items, err := encodeItems(order.Items)
	if err != nil {
		return nil, err
	}

	statement := r.db.QueryBuilder.Insert("orders").
		Columns("id", "items",
			"customer_name", "customer_email", "customer_phone", "customer_address", "customer_pincode",
			"shipping_fee", "subtotal", "total", "amount_minor", "currency",
			"payment_method", "payment_status", "payment_order_id",
			"status", "created_at", "updated_at").
		Values(order.ID, items,
			order.Customer.Name, nullable(order.Customer.Email), order.Customer.Phone,
			order.Customer.Address, order.Customer.Pincode,
			order.ShippingFee, order.Subtotal, order.Total, order.AmountMinor, order.Currency,
			order.PaymentMethod, order.PaymentStatus, nullable(order.PaymentOrderID),
			order.Status, order.CreatedAt, order.UpdatedAt).
		Suffix("RETURNING " + strings.Join(orderColumns, ", "))

	created, err := r.queryOrder(ctx, statement, domain.ErrInternal)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}
	return created, nil
}

func (r *Repository) MarkOrderPaidIfPending(ctx context.Context,
	paymentOrderID string, payment domain.PaymentConfirmation) (*domain.Order, error) {
	statement := r.db.QueryBuilder.Update("orders").
		Set("payment_status", domain.PaymentStatusPaid).
		Set("status", domain.OrderStatusConfirmed).
		Set("payment_id", payment.PaymentID).
		Set("payment_signature", payment.Signature).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"payment_order_id": paymentOrderID}).
		Where(sq.NotEq{"payment_status": domain.PaymentStatusPaid}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", "))

	return r.queryOrder(ctx, statement, domain.ErrNoUpdatedData)
}

func (r *Repository) MarkOrderFailedIfPending(ctx context.Context, paymentOrderID string) (*domain.Order, error) {
	statement := r.db.QueryBuilder.Update("orders").
		Set("payment_status", domain.PaymentStatusFailed).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"payment_order_id": paymentOrderID}).
		Where(sq.Eq{"payment_status": domain.PaymentStatusPending}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", "))

	return r.queryOrder(ctx, statement, domain.ErrNoUpdatedData)
}

func (r *Repository) ReadOrderByPaymentOrderID(ctx context.Context, paymentOrderID string) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"payment_order_id": paymentOrderID})

	return r.queryOrder(ctx, statement, domain.ErrDataNotFound)
}

func (r *Repository) ReadOrder(ctx context.Context, orderID domain.OrderID) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID})

	return r.queryOrder(ctx, statement, domain.ErrDataNotFound)
}

func (r *Repository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *Repository) UpdateOrderStatus(ctx context.Context,
	orderID domain.OrderID, from domain.OrderStatus, to domain.OrderStatus) (*domain.Order, error) {
	statement := r.db.QueryBuilder.Update("orders").
		Set("status", to).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": orderID, "status": from}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", "))

	return r.queryOrder(ctx, statement, domain.ErrNoUpdatedData)
}

func (r *Repository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	statement := r.db.QueryBuilder.Insert("products").
		Columns(productColumns...).
		Values(product.ID, product.Title, product.Price, product.Description, product.ImageURL,
			product.Category, product.InStock, product.IsTopSelling, product.IsOfferProduct,
			product.CreatedAt, product.UpdatedAt)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}
	return product, nil
}

func (r *Repository) ReadProduct(ctx context.Context, productID domain.ProductID) (*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": productID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	product, err := scanProduct(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	statement := r.db.QueryBuilder.Update("products").
		SetMap(map[string]any{
			"title":            product.Title,
			"price":            product.Price,
			"description":      product.Description,
			"image_url":        product.ImageURL,
			"category":         product.Category,
			"in_stock":         product.InStock,
			"is_top_selling":   product.IsTopSelling,
			"is_offer_product": product.IsOfferProduct,
			"updated_at":       product.UpdatedAt,
		}).
		Where(sq.Eq{"id": product.ID}).
		Suffix("RETURNING " + strings.Join(productColumns, ", "))

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	updated, err := scanProduct(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *Repository) DeleteProduct(ctx context.Context, productID domain.ProductID) error {
	statement := r.db.QueryBuilder.Delete("products").
		Where(sq.Eq{"id": productID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}
