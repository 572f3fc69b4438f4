package service

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/payment"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories for testing

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; !exists {
		return repository.ErrUserNotFound
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(m.users))
	for _, user := range m.users {
		out = append(out, user)
	}
	return out, nil
}

type mockRefreshTokenRepository struct {
	tokens map[string]*domain.RefreshToken
}

func newMockRefreshTokenRepository() *mockRefreshTokenRepository {
	return &mockRefreshTokenRepository{
		tokens: make(map[string]*domain.RefreshToken),
	}
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.tokens[token.Token] = token
	return nil
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if refreshToken.Revoked {
		return nil, repository.ErrRefreshTokenRevoked
	}
	return refreshToken, nil
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return repository.ErrRefreshTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}

type mockCategoryRepository struct {
	categories map[uuid.UUID]*domain.Category
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{
		categories: make(map[uuid.UUID]*domain.Category),
	}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	for _, existing := range m.categories {
		if existing.Name == category.Name {
			return repository.ErrCategoryAlreadyExists
		}
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if _, exists := m.categories[category.ID]; !exists {
		return repository.ErrCategoryNotFound
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.categories[id]; !exists {
		return repository.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(m.categories))
	for _, category := range m.categories {
		out = append(out, category)
	}
	return out, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, exists := m.categories[id]
	if !exists {
		return nil, repository.ErrCategoryNotFound
	}
	return category, nil
}

func (m *mockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	for _, category := range m.categories {
		if category.Slug == slug {
			return category, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

type mockProductRepository struct {
	products map[uuid.UUID]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[uuid.UUID]*domain.Product),
	}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	for _, existing := range m.products {
		if existing.Name == product.Name {
			return repository.ErrProductAlreadyExists
		}
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, exists := m.products[product.ID]; !exists {
		return repository.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.products[id]; !exists {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	for _, product := range m.products {
		if product.Slug == slug {
			return product, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepository) PhotoByID(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, "", repository.ErrProductNotFound
	}
	return product.Photo, product.PhotoContentType, nil
}

func (m *mockProductRepository) List(ctx context.Context, page, pageSize int) ([]*domain.Product, error) {
	all, _ := m.Filter(ctx, repository.ProductFilter{})
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (m *mockProductRepository) Count(ctx context.Context) (int, error) {
	return len(m.products), nil
}

func (m *mockProductRepository) Filter(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(m.products))
	for _, product := range m.products {
		if len(filter.CategoryIDs) > 0 {
			match := false
			for _, cid := range filter.CategoryIDs {
				if product.CategoryID == cid {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		if filter.MinPrice != nil && product.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && product.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		out = append(out, product)
	}
	return out, nil
}

func (m *mockProductRepository) Related(ctx context.Context, productID, categoryID uuid.UUID) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, repository.RelatedLimit)
	for _, product := range m.products {
		if product.ID == productID || product.CategoryID != categoryID {
			continue
		}
		out = append(out, product)
		if len(out) == repository.RelatedLimit {
			break
		}
	}
	return out, nil
}

func (m *mockProductRepository) Search(ctx context.Context, keyword string) ([]*domain.Product, error) {
	lowered := strings.ToLower(keyword)
	var out []*domain.Product
	for _, product := range m.products {
		if strings.Contains(strings.ToLower(product.Name), lowered) ||
			strings.Contains(strings.ToLower(product.Description), lowered) {
			out = append(out, product)
		}
	}
	return out, nil
}

type mockOrderRepository struct {
	orders    map[uuid.UUID]*domain.Order
	createErr error

	statusCalls int
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{
		orders: make(map[uuid.UUID]*domain.Order),
	}
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, exists := m.orders[id]
	if !exists {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	m.statusCalls++
	order, exists := m.orders[id]
	if !exists {
		return repository.ErrOrderNotFound
	}
	order.Status = status
	return nil
}

func (m *mockOrderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, order := range m.orders {
		if order.BuyerID == buyerID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (m *mockOrderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	out := make([]*domain.Order, 0, len(m.orders))
	for _, order := range m.orders {
		out = append(out, order)
	}
	return out, nil
}

// mockGateway records sale requests and replies with canned results
type mockGateway struct {
	token    string
	tokenErr error

	saleResult payment.SaleResult
	saleErr    error

	saleCalls []payment.SaleRequest
}

func (m *mockGateway) ClientToken(ctx context.Context) (string, error) {
	if m.tokenErr != nil {
		return "", m.tokenErr
	}
	return m.token, nil
}

func (m *mockGateway) Sale(ctx context.Context, req payment.SaleRequest) (*payment.SaleResult, error) {
	m.saleCalls = append(m.saleCalls, req)
	if m.saleErr != nil {
		return nil, m.saleErr
	}
	return &m.saleResult, nil
}

var errMockFailure = errors.New("mock failure")
