package qkart

import (
	"context"
	"errors"

	"github.com/talkincode/qkart/internal/domain"
	"github.com/talkincode/qkart/pkg/apierrors"
	"gorm.io/gorm"
)

// ProductService serves the read-only catalog
type ProductService struct {
	productRepo ProductRepository
}

func NewProductService(productRepo ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, apierrors.Internal("Failed to query products")
	}
	return products, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.NotFound("Product not found")
	}
	if err != nil {
		return nil, apierrors.Internal("Failed to query product")
	}
	return product, nil
}
