package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// PageSize is the fixed number of products per list page.
const PageSize = 6

var (
	ErrNameRequired  = errors.New("name is required")
	ErrNegativePrice = errors.New("price must not be negative")
)

// ProductInput carries the fields an administrator supplies when
// creating or updating a product.
type ProductInput struct {
	Name             string
	Description      string
	Price            decimal.Decimal
	CategoryID       uuid.UUID
	Quantity         int
	Shipping         bool
	Photo            []byte
	PhotoContentType string
}

// CatalogService defines category and product business logic, including
// the read path used by the storefront.
type CatalogService interface {
	CreateCategory(ctx context.Context, name, description string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name, description string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategoryBySlug(ctx context.Context, s string) (*domain.Category, error)

	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProductBySlug(ctx context.Context, s string) (*domain.Product, error)
	ProductPhoto(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	ListProducts(ctx context.Context, page int) ([]*domain.Product, error)
	CountProducts(ctx context.Context) (int, error)
	FilterProducts(ctx context.Context, checked []uuid.UUID, radio []*decimal.Decimal) ([]*domain.Product, error)
	RelatedProducts(ctx context.Context, productID, categoryID uuid.UUID) ([]*domain.Product, error)
	SearchProducts(ctx context.Context, keyword string) ([]*domain.Product, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// BuildFilter translates a filter selection into a storage predicate.
// checked is a set of category ids (empty means no category filter);
// radio is a [min, max] price bound where an empty slice means no price
// filter and a nil upper bound means no upper bound. Construction is
// pure; the repository executes the predicate.
func BuildFilter(checked []uuid.UUID, radio []*decimal.Decimal) repository.ProductFilter {
	filter := repository.ProductFilter{CategoryIDs: checked}

	if len(radio) > 0 && radio[0] != nil {
		min := *radio[0]
		filter.MinPrice = &min
	}
	if len(radio) > 1 && radio[1] != nil {
		max := *radio[1]
		filter.MaxPrice = &max
	}

	return filter
}

// CreateCategory creates a category with a derived slug
func (s *catalogService) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	category := &domain.Category{
		ID:          uuid.New(),
		Name:        name,
		Slug:        slug.Make(name),
		Description: description,
		CreatedAt:   time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// UpdateCategory renames a category, re-deriving its slug
func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, name, description string) (*domain.Category, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Slug = slug.Make(name)
	if description != "" {
		category.Description = description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a category
func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.categoryRepo.Delete(ctx, id)
}

// ListCategories returns all categories
func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetCategoryBySlug returns a single category by its URL slug
func (s *catalogService) GetCategoryBySlug(ctx context.Context, categorySlug string) (*domain.Category, error) {
	return s.categoryRepo.FindBySlug(ctx, categorySlug)
}

// CreateProduct creates a product with a derived slug
func (s *catalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if input.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	now := time.Now()
	product := &domain.Product{
		ID:               uuid.New(),
		Name:             input.Name,
		Slug:             slug.Make(input.Name),
		Description:      input.Description,
		Price:            input.Price,
		CategoryID:       input.CategoryID,
		Quantity:         input.Quantity,
		Shipping:         input.Shipping,
		Photo:            input.Photo,
		PhotoContentType: input.PhotoContentType,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateProduct applies new attributes to an existing product
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if input.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Slug = slug.Make(input.Name)
	product.Description = input.Description
	product.Price = input.Price
	product.CategoryID = input.CategoryID
	product.Quantity = input.Quantity
	product.Shipping = input.Shipping
	product.Photo = input.Photo
	product.PhotoContentType = input.PhotoContentType
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a product
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}

// GetProductBySlug returns a single product with its category resolved
func (s *catalogService) GetProductBySlug(ctx context.Context, productSlug string) (*domain.Product, error) {
	return s.productRepo.FindBySlug(ctx, productSlug)
}

// ProductPhoto returns the photo bytes and content type for a product
func (s *catalogService) ProductPhoto(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	return s.productRepo.PhotoByID(ctx, id)
}

// ListProducts returns one page of products, newest first
func (s *catalogService) ListProducts(ctx context.Context, page int) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx, page, PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// CountProducts returns the total product count via the dedicated count
// query; it must stay separate from ListProducts.
func (s *catalogService) CountProducts(ctx context.Context) (int, error) {
	return s.productRepo.Count(ctx)
}

// FilterProducts builds the predicate and executes it
func (s *catalogService) FilterProducts(ctx context.Context, checked []uuid.UUID, radio []*decimal.Decimal) ([]*domain.Product, error) {
	products, err := s.productRepo.Filter(ctx, BuildFilter(checked, radio))
	if err != nil {
		return nil, fmt.Errorf("failed to filter products: %w", err)
	}
	return products, nil
}

// RelatedProducts returns up to three same-category alternatives
func (s *catalogService) RelatedProducts(ctx context.Context, productID, categoryID uuid.UUID) ([]*domain.Product, error) {
	return s.productRepo.Related(ctx, productID, categoryID)
}

// SearchProducts returns products matching the keyword
func (s *catalogService) SearchProducts(ctx context.Context, keyword string) ([]*domain.Product, error) {
	return s.productRepo.Search(ctx, keyword)
}
