package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/khoirulmuhlisin/unitproduksi/internal/models"
	"github.com/khoirulmuhlisin/unitproduksi/internal/store"
	"github.com/khoirulmuhlisin/unitproduksi/pkg/utils"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPricing  = errors.New("sell price must be greater than buy price")
)

// ProductRequest is used for creating or updating a catalog product.
type ProductRequest struct {
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category"`
	BuyPrice     int64  `json:"buyPrice" binding:"gte=0"`
	SellPrice    int64  `json:"sellPrice" binding:"gte=0"`
	CurrentStock int    `json:"currentStock" binding:"gte=0"`
	MinimumStock int    `json:"minimumStock" binding:"gte=0"`
}

// ProductService manages the product catalog. Stock mutations from sales
// go through the stock ledger, not through here; this service only covers
// catalog entry and maintenance.
type ProductService interface {
	CreateProduct(ctx context.Context, req ProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
}

type productService struct {
	store store.RecordStore
}

// NewProductService creates a new instance of ProductService.
func NewProductService(st store.RecordStore) ProductService {
	return &productService{store: st}
}

func (s *productService) CreateProduct(ctx context.Context, req ProductRequest) (*models.Product, error) {
	if err := validatePricing(req); err != nil {
		return nil, err
	}

	// Held across the read-modify-write cycle so concurrent catalog
	// writes cannot drop each other's entries.
	s.store.Lock()
	defer s.store.Unlock()

	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}

	product := models.Product{
		ID:           utils.NewProductID(),
		Name:         req.Name,
		Category:     req.Category,
		BuyPrice:     req.BuyPrice,
		SellPrice:    req.SellPrice,
		CurrentStock: req.CurrentStock,
		MinimumStock: req.MinimumStock,
	}

	if err := s.store.SaveProducts(ctx, append(products, product)); err != nil {
		return nil, fmt.Errorf("persisting product: %w", err)
	}
	return &product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*models.Product, error) {
	if err := validatePricing(req); err != nil {
		return nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}

	idx := findProduct(products, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}

	products[idx] = models.Product{
		ID:           id,
		Name:         req.Name,
		Category:     req.Category,
		BuyPrice:     req.BuyPrice,
		SellPrice:    req.SellPrice,
		CurrentStock: req.CurrentStock,
		MinimumStock: req.MinimumStock,
	}

	if err := s.store.SaveProducts(ctx, products); err != nil {
		return nil, fmt.Errorf("persisting product update: %w", err)
	}
	return &products[idx], nil
}

// DeleteProduct removes a product from the catalog. Historic transactions
// keep their snapshots; their productId references simply start dangling.
func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	s.store.Lock()
	defer s.store.Unlock()

	products, err := s.store.Products(ctx)
	if err != nil {
		return fmt.Errorf("loading products: %w", err)
	}

	idx := findProduct(products, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}

	remaining := append(products[:idx:idx], products[idx+1:]...)
	if err := s.store.SaveProducts(ctx, remaining); err != nil {
		return fmt.Errorf("persisting product delete: %w", err)
	}
	return nil
}

func (s *productService) GetProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}
	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}
	idx := findProduct(products, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return &products[idx], nil
}

func validatePricing(req ProductRequest) error {
	if req.SellPrice <= req.BuyPrice {
		return fmt.Errorf("%w: buy %d, sell %d", ErrInvalidPricing, req.BuyPrice, req.SellPrice)
	}
	return nil
}

func findProduct(products []models.Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
