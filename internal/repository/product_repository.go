package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductAlreadyExists = errors.New("product with this name already exists")
)

// RelatedLimit caps the number of same-category alternatives returned
// for a product. The cap is a hard contract, not a suggestion.
const RelatedLimit = 3

// ProductFilter is the storage predicate produced by the filter query
// builder. Empty CategoryIDs means no category filter; nil price bounds
// mean no price filter. Bounds are inclusive on both ends.
type ProductFilter struct {
	CategoryIDs []uuid.UUID
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
}

// ProductRepository defines the interface for product data access. List,
// Filter, Related and Search are summary views and never select the
// photo column.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	PhotoByID(ctx context.Context, id uuid.UUID) (photo []byte, contentType string, err error)
	List(ctx context.Context, page, pageSize int) ([]*domain.Product, error)
	Count(ctx context.Context) (int, error)
	Filter(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	Related(ctx context.Context, productID, categoryID uuid.UUID) ([]*domain.Product, error)
	Search(ctx context.Context, keyword string) ([]*domain.Product, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// summaryColumns are the columns selected for list views. The photo
// column is deliberately absent.
const summaryColumns = "id, name, slug, description, price, category_id, quantity, shipping, created_at, updated_at"

// Create inserts a new product into the database using parameterized queries
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, slug, description, price, category_id, quantity, shipping, photo, photo_content_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Slug,
		product.Description,
		product.Price,
		product.CategoryID,
		product.Quantity,
		product.Shipping,
		product.Photo,
		product.PhotoContentType,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrProductAlreadyExists
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update updates an existing product in the database using parameterized queries
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, slug = $3, description = $4, price = $5, category_id = $6,
		    quantity = $7, shipping = $8, updated_at = $9
	`
	args := []interface{}{
		product.ID,
		product.Name,
		product.Slug,
		product.Description,
		product.Price,
		product.CategoryID,
		product.Quantity,
		product.Shipping,
		product.UpdatedAt,
	}

	// Only replace the stored photo when a new one was uploaded.
	if len(product.Photo) > 0 {
		query += ", photo = $10, photo_content_type = $11"
		args = append(args, product.Photo, product.PhotoContentType)
	}
	query += " WHERE id = $1"

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrProductAlreadyExists
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product from the database using parameterized queries
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product by ID, photo excluded
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, summaryColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// FindBySlug retrieves a product by slug with its category resolved,
// photo excluded
func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.slug, p.description, p.price, p.category_id, p.quantity, p.shipping, p.created_at, p.updated_at,
		       c.id, c.name, c.slug, c.description, c.created_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.slug = $1
	`

	product := &domain.Product{}
	category := &domain.Category{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&product.Description,
		&product.Price,
		&product.CategoryID,
		&product.Quantity,
		&product.Shipping,
		&product.CreatedAt,
		&product.UpdatedAt,
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by slug: %w", err)
	}

	product.Category = category
	return product, nil
}

// PhotoByID loads only the photo bytes and content type for a product
func (r *productRepository) PhotoByID(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	query := `SELECT photo, photo_content_type FROM products WHERE id = $1`

	var photo []byte
	var contentType string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&photo, &contentType)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", ErrProductNotFound
		}
		return nil, "", fmt.Errorf("failed to load product photo: %w", err)
	}

	return photo, contentType, nil
}

// List retrieves a page of products, newest first, photo excluded. Page
// numbers are 1-based.
func (r *productRepository) List(ctx context.Context, page, pageSize int) ([]*domain.Product, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, summaryColumns)

	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// Count returns the total number of products. This is deliberately a
// separate, cheaper query than fetching full rows.
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// Filter retrieves products matching the given predicate, photo
// excluded. An empty predicate matches every product.
func (r *productRepository) Filter(ctx context.Context, filter ProductFilter) ([]*domain.Product, error) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if len(filter.CategoryIDs) > 0 {
		placeholders := make([]string, len(filter.CategoryIDs))
		for i, id := range filter.CategoryIDs {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, id)
			argIndex++
		}
		conditions = append(conditions, fmt.Sprintf("category_id IN (%s)", strings.Join(placeholders, ", ")))
	}

	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *filter.MinPrice)
		argIndex++
	}

	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *filter.MaxPrice)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		%s
		ORDER BY created_at DESC
	`, summaryColumns, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter products: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// Related retrieves up to RelatedLimit products in the same category,
// excluding the given product, with the category resolved onto each row
func (r *productRepository) Related(ctx context.Context, productID, categoryID uuid.UUID) ([]*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.slug, p.description, p.price, p.category_id, p.quantity, p.shipping, p.created_at, p.updated_at,
		       c.id, c.name, c.slug, c.description, c.created_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.category_id = $1 AND p.id != $2
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, query, categoryID, productID, RelatedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to find related products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		category := &domain.Category{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Slug,
			&product.Description,
			&product.Price,
			&product.CategoryID,
			&product.Quantity,
			&product.Shipping,
			&product.CreatedAt,
			&product.UpdatedAt,
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.Description,
			&category.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan related product: %w", err)
		}
		product.Category = category
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating related products: %w", err)
	}

	return products, nil
}

// Search retrieves products whose name or description contains the
// keyword, case-insensitive, photo excluded
func (r *productRepository) Search(ctx context.Context, keyword string) ([]*domain.Product, error) {
	pattern := "%" + keyword + "%"

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE name ILIKE $1 OR description ILIKE $1
		ORDER BY created_at DESC
	`, summaryColumns)

	rows, err := r.db.QueryContext(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *productRepository) scanOne(row *sql.Row) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&product.Description,
		&product.Price,
		&product.CategoryID,
		&product.Quantity,
		&product.Shipping,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

func (r *productRepository) scanAll(rows *sql.Rows) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Slug,
			&product.Description,
			&product.Price,
			&product.CategoryID,
			&product.Quantity,
			&product.Shipping,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
