package transport

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxPhotoSize caps uploaded product photos at 1MB.
const maxPhotoSize = 1 << 20

// ProductFiltersRequest represents the filter selection payload.
// Checked is a set of category ids; Radio is a [min, max] price bound
// where a null entry means the bound is absent.
type ProductFiltersRequest struct {
	Checked []uuid.UUID        `json:"checked"`
	Radio   []*decimal.Decimal `json:"radio"`
}

// PaymentRequest represents the checkout submission payload
type PaymentRequest struct {
	Nonce string            `json:"nonce" validate:"required"`
	Cart  []domain.CartItem `json:"cart"`
}

// ProductListResponse wraps a product listing
type ProductListResponse struct {
	middleware.Response
	Products []*domain.Product `json:"products"`
}

// ProductResponse wraps a single product; Product is null when the slug
// does not match anything.
type ProductResponse struct {
	middleware.Response
	Product *domain.Product `json:"product"`
}

// ProductCountResponse carries the total for client-side paging
type ProductCountResponse struct {
	middleware.Response
	Total int `json:"total"`
}

// ProductHandler handles HTTP requests for the product catalog and the
// checkout endpoints
type ProductHandler struct {
	catalog  service.CatalogService
	checkout service.CheckoutService
	logger   *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalog service.CatalogService, checkout service.CheckoutService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog:  catalog,
		checkout: checkout,
		logger:   logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware, paymentLimiter func(http.Handler) http.Handler) {
	r.Route("/api/v1/product", func(r chi.Router) {
		// Public read path
		r.Get("/get-product", h.ListAll)
		r.Get("/get-product/{slug}", h.GetBySlug)
		r.Get("/product-photo/{id}", h.Photo)
		r.Get("/product-list/{page}", h.ListPage)
		r.Get("/product-count", h.Count)
		r.Post("/product-filters", h.Filter)
		r.Get("/related-product/{pid}/{cid}", h.Related)
		r.Get("/search/{keyword}", h.Search)

		// Checkout: authenticated, rate limited
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			if paymentLimiter != nil {
				r.Use(paymentLimiter)
			}
			r.Get("/braintree/token", h.BraintreeToken)
			r.Post("/braintree/payment", h.BraintreePayment)
		})

		// Admin mutations
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			r.Post("/create-product", h.Create)
			r.Put("/update-product/{id}", h.Update)
			r.Delete("/delete-product/{id}", h.Delete)
		})
	})
}

// Create handles product creation from a multipart form
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeProductForm(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), input)
	if err != nil {
		if err == repository.ErrProductAlreadyExists {
			middleware.RespondWithError(w, http.StatusConflict, "Product with this name already exists")
			return
		}
		h.logger.Error("Product create failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Error in creating product")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, ProductResponse{
		Response: middleware.Response{Success: true, Message: "Product Created Successfully"},
		Product:  product,
	})
}

// Update handles product updates from a multipart form
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	input, ok := h.decodeProductForm(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), id, input)
	if err != nil {
		switch err {
		case repository.ErrProductNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
		case repository.ErrProductAlreadyExists:
			middleware.RespondWithError(w, http.StatusConflict, "Product with this name already exists")
		default:
			h.logger.Error("Product update failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "Error in updating product")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, ProductResponse{
		Response: middleware.Response{Success: true, Message: "Product Updated Successfully"},
		Product:  product,
	})
}

// Delete handles product removal
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.Error("Product delete failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Error while deleting product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, middleware.Response{
		Success: true,
		Message: "Product Deleted successfully",
	})
}

// ListAll handles the admin-facing full listing, newest first
func (h *ProductHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.FilterProducts(r.Context(), nil, nil)
	if err != nil {
		h.logger.Error("Product list failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Error While Getting products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Response: middleware.Response{Success: true, Message: "All Products"},
		Products: products,
	})
}

// GetBySlug handles single-product fetches. A missing slug yields a
// null product, not an error.
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil && err != repository.ErrProductNotFound {
		h.logger.Error("Product fetch failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Error while getting single product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductResponse{
		Response: middleware.Response{Success: true, Message: "Single Product Fetched"},
		Product:  product,
	})
}

// Photo streams the stored photo bytes with their content type
func (h *ProductHandler) Photo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusInternalServerError, "Error while getting photo")
		return
	}

	photo, contentType, err := h.catalog.ProductPhoto(r.Context(), id)
	if err != nil || len(photo) == 0 {
		h.logger.Debug("Product photo unavailable", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Error while getting photo")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(photo)
}

// ListPage handles one page of the storefront listing
func (h *ProductHandler) ListPage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil || page < 1 {
		page = 1
	}

	products, err := h.catalog.ListProducts(r.Context(), page)
	if err != nil {
		h.logger.Error("Product page failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "error in per page ctrl")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Response: middleware.Response{Success: true},
		Products: products,
	})
}

// Count handles the total-count query used for client-side paging
func (h *ProductHandler) Count(w http.ResponseWriter, r *http.Request) {
	total, err := h.catalog.CountProducts(r.Context())
	if err != nil {
		h.logger.Error("Product count failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "Error in product count")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductCountResponse{
		Response: middleware.Response{Success: true},
		Total:    total,
	})
}

// Filter handles the category and price-range filter selection
func (h *ProductHandler) Filter(w http.ResponseWriter, r *http.Request) {
	var req ProductFiltersRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Filter decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "Error While Filtering Products")
		return
	}

	products, err := h.catalog.FilterProducts(r.Context(), req.Checked, req.Radio)
	if err != nil {
		h.logger.Error("Filter failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "Error While Filtering Products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Response: middleware.Response{Success: true},
		Products: products,
	})
}

// Related handles the same-category alternatives lookup
func (h *ProductHandler) Related(w http.ResponseWriter, r *http.Request) {
	pid, err := uuid.Parse(chi.URLParam(r, "pid"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "error while getting related product")
		return
	}
	cid, err := uuid.Parse(chi.URLParam(r, "cid"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "error while getting related product")
		return
	}

	products, err := h.catalog.RelatedProducts(r.Context(), pid, cid)
	if err != nil {
		h.logger.Error("Related products failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "error while getting related product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Response: middleware.Response{Success: true},
		Products: products,
	})
}

// Search handles keyword search; the response is a bare array
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.SearchProducts(r.Context(), chi.URLParam(r, "keyword"))
	if err != nil {
		h.logger.Error("Search failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "Error In Search Product API")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// BraintreeToken issues a gateway client token for the payment UI
func (h *ProductHandler) BraintreeToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.checkout.ClientToken(r.Context())
	if err != nil {
		h.logger.Error("Token generation failed", zap.Error(err))
		middleware.RespondWithJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Failed to generate token",
		})
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"clientToken": token})
}

// BraintreePayment submits the cart for payment and records the order
func (h *ProductHandler) BraintreePayment(w http.ResponseWriter, r *http.Request) {
	userIDStr, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, middleware.MsgInvalidToken)
		return
	}
	buyerID, err := uuid.Parse(userIDStr)
	if err != nil {
		middleware.RespondWithError(w, http.StatusUnauthorized, middleware.MsgInvalidToken)
		return
	}

	var req PaymentRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Payment decode failed", zap.Error(err))
		middleware.RespondWithJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
		return
	}

	order, err := h.checkout.SubmitPayment(r.Context(), buyerID, req.Nonce, req.Cart)
	if err != nil {
		switch {
		case err == service.ErrCartEmpty:
			middleware.RespondWithJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "Cart is empty",
			})
		case errors.Is(err, service.ErrOrderNotRecorded):
			// The charge went through but the order insert failed. This
			// must surface distinctly; the buyer was charged.
			h.logger.Error("Order not recorded after successful charge", zap.Error(err))
			middleware.RespondWithJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "Payment received but order could not be recorded",
			})
		default:
			h.logger.Error("Payment processing failed", zap.Error(err))
			middleware.RespondWithJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "Payment processing failed",
			})
		}
		return
	}

	h.logger.Info("Order recorded",
		zap.String("order_id", order.ID.String()),
		zap.String("buyer_id", buyerID.String()),
		zap.String("total", order.Total.String()),
	)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// decodeProductForm reads the multipart product form shared by Create
// and Update. It writes the error response itself when a field is
// missing or malformed.
func (h *ProductHandler) decodeProductForm(w http.ResponseWriter, r *http.Request) (service.ProductInput, bool) {
	var input service.ProductInput

	if err := r.ParseMultipartForm(maxPhotoSize * 2); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return input, false
	}

	input.Name = r.FormValue("name")
	input.Description = r.FormValue("description")

	switch {
	case input.Name == "":
		middleware.RespondWithError(w, http.StatusInternalServerError, "Name is Required")
		return input, false
	case input.Description == "":
		middleware.RespondWithError(w, http.StatusInternalServerError, "Description is Required")
		return input, false
	case r.FormValue("price") == "":
		middleware.RespondWithError(w, http.StatusInternalServerError, "Price is Required")
		return input, false
	case r.FormValue("category") == "":
		middleware.RespondWithError(w, http.StatusInternalServerError, "Category is Required")
		return input, false
	case r.FormValue("quantity") == "":
		middleware.RespondWithError(w, http.StatusInternalServerError, "Quantity is Required")
		return input, false
	}

	price, err := decimal.NewFromString(r.FormValue("price"))
	if err != nil || price.IsNegative() {
		middleware.RespondWithError(w, http.StatusInternalServerError, "Price is Required")
		return input, false
	}
	input.Price = price

	categoryID, err := uuid.Parse(r.FormValue("category"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusInternalServerError, "Category is Required")
		return input, false
	}
	input.CategoryID = categoryID

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || quantity < 0 {
		middleware.RespondWithError(w, http.StatusInternalServerError, "Quantity is Required")
		return input, false
	}
	input.Quantity = quantity

	input.Shipping = r.FormValue("shipping") == "1" || r.FormValue("shipping") == "true"

	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		if header.Size > maxPhotoSize {
			middleware.RespondWithError(w, http.StatusInternalServerError, "photo is Required and should be less then 1mb")
			return input, false
		}
		photo, err := io.ReadAll(file)
		if err != nil {
			middleware.RespondWithError(w, http.StatusInternalServerError, "Error while reading photo")
			return input, false
		}
		input.Photo = photo
		input.PhotoContentType = header.Header.Get("Content-Type")
	}

	return input, true
}
