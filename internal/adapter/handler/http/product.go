package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/MikeRez0/inarashop/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type ProductHandler struct {
	Handler
	service port.Service
}

func NewProductHandler(service port.Service, logger *zap.Logger) (*ProductHandler, error) {
	return &ProductHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type ProductRequest struct {
	Title          string      `json:"title"`
	Price          json.Number `json:"price"`
	Description    string      `json:"description"`
	ImageURL       string      `json:"imageUrl"`
	Category       string      `json:"category"`
	InStock        *bool       `json:"inStock"`
	IsTopSelling   bool        `json:"isTopSelling"`
	IsOfferProduct bool        `json:"isOfferProduct"`
}

func (r *ProductRequest) toProduct(id domain.ProductID) (*domain.Product, error) {
	price, err := parseMoney("price", r.Price, decimal.Decimal{})
	if err != nil {
		return nil, err
	}
	inStock := true
	if r.InStock != nil {
		inStock = *r.InStock
	}
	return &domain.Product{
		ID:             id,
		Title:          r.Title,
		Price:          price,
		Description:    r.Description,
		ImageURL:       r.ImageURL,
		Category:       r.Category,
		InStock:        inStock,
		IsTopSelling:   r.IsTopSelling,
		IsOfferProduct: r.IsOfferProduct,
	}, nil
}

type ProductResp struct {
	ID             domain.ProductID `json:"id"`
	Title          string           `json:"title"`
	Price          jsonDecimal      `json:"price"`
	Description    string           `json:"description"`
	ImageURL       string           `json:"imageUrl"`
	Category       string           `json:"category"`
	InStock        bool             `json:"inStock"`
	IsTopSelling   bool             `json:"isTopSelling"`
	IsOfferProduct bool             `json:"isOfferProduct"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

func newProductResp(p *domain.Product) ProductResp {
	return ProductResp{
		ID:             p.ID,
		Title:          p.Title,
		Price:          jsonDecimal(p.Price),
		Description:    p.Description,
		ImageURL:       p.ImageURL,
		Category:       p.Category,
		InStock:        p.InStock,
		IsTopSelling:   p.IsTopSelling,
		IsOfferProduct: p.IsOfferProduct,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (ph *ProductHandler) bindProduct(ctx *gin.Context, id domain.ProductID) (*domain.Product, bool) {
	req := ProductRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return nil, false
	}
	product, err := req.toProduct(id)
	if err != nil {
		ph.handleError(ctx, err)
		return nil, false
	}
	return product, true
}

func (ph *ProductHandler) CreateProduct(ctx *gin.Context) {
	product, ok := ph.bindProduct(ctx, "")
	if !ok {
		return
	}

	created, err := ph.service.CreateProduct(ctx, product)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccessWithStatus(ctx, newProductResp(created), http.StatusCreated)
}

func (ph *ProductHandler) GetProduct(ctx *gin.Context) {
	product, err := ph.service.GetProduct(ctx, domain.ProductID(ctx.Param("id")))
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, newProductResp(product))
}

func (ph *ProductHandler) UpdateProduct(ctx *gin.Context) {
	product, ok := ph.bindProduct(ctx, domain.ProductID(ctx.Param("id")))
	if !ok {
		return
	}

	updated, err := ph.service.UpdateProduct(ctx, product)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, newProductResp(updated))
}

func (ph *ProductHandler) DeleteProduct(ctx *gin.Context) {
	err := ph.service.DeleteProduct(ctx, domain.ProductID(ctx.Param("id")))
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccessWithStatus(ctx, nil, http.StatusNoContent)
}
