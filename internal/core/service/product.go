package service

import (
	"context"
	"time"

	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/google/uuid"
)

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}
	product.ID = domain.ProductID(uuid.NewString())
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	created, err := s.repo.CreateProduct(storeCtx, product)
	if err != nil {
		return nil, s.repoError("Create product", err)
	}
	return created, nil
}

func (s *Service) GetProduct(ctx context.Context, productID domain.ProductID) (*domain.Product, error) {
	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	product, err := s.repo.ReadProduct(storeCtx, productID)
	if err != nil {
		return nil, s.repoError("Read product", err)
	}
	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	updated, err := s.repo.UpdateProduct(storeCtx, product)
	if err != nil {
		return nil, s.repoError("Update product", err)
	}
	return updated, nil
}

func (s *Service) DeleteProduct(ctx context.Context, productID domain.ProductID) error {
	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	if err := s.repo.DeleteProduct(storeCtx, productID); err != nil {
		return s.repoError("Delete product", err)
	}
	return nil
}
