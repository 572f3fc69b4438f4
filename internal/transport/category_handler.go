package transport

import (
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateCategoryRequest represents the category creation payload
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse wraps a single category in the response envelope
type CategoryResponse struct {
	middleware.Response
	Category *domain.Category `json:"category"`
}

// CategoryListResponse wraps the category listing
type CategoryListResponse struct {
	middleware.Response
	Category []*domain.Category `json:"category"`
}

// CategoryHandler handles HTTP requests for category operations
type CategoryHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(catalog service.CatalogService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers all category routes
func (h *CategoryHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/v1/category", func(r chi.Router) {
		// Public routes
		r.Get("/get-category", h.List)
		r.Get("/single-category/{slug}", h.GetBySlug)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			r.Post("/create-category", h.Create)
			r.Put("/update-category/{id}", h.Update)
			r.Delete("/delete-category/{id}", h.Delete)
		})
	})
}

// Create handles category creation
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Category create decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), req.Name, req.Description)
	if err != nil {
		switch err {
		case service.ErrNameRequired:
			middleware.RespondWithError(w, http.StatusBadRequest, "Name is required")
		case repository.ErrCategoryAlreadyExists:
			middleware.RespondWithError(w, http.StatusConflict, "Category already exists")
		default:
			h.logger.Error("Category create failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "Error in category creation")
		}
		return
	}

	h.logger.Info("Category created", zap.String("category_id", category.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, CategoryResponse{
		Response: middleware.Response{Success: true, Message: "New category created"},
		Category: category,
	})
}

// Update handles category renaming
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}

	var req CreateCategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Category update decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.catalog.UpdateCategory(r.Context(), id, req.Name, req.Description)
	if err != nil {
		switch err {
		case service.ErrNameRequired:
			// The original API reports a missing name on update as a
			// server error; clients depend on the status.
			middleware.RespondWithError(w, http.StatusInternalServerError, "Category name is required")
		case repository.ErrCategoryNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "Category not found")
		case repository.ErrCategoryAlreadyExists:
			middleware.RespondWithError(w, http.StatusConflict, "Category already exists")
		default:
			h.logger.Error("Category update failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "Error while updating category")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CategoryResponse{
		Response: middleware.Response{Success: true, Message: "Category Updated Successfully"},
		Category: category,
	})
}

// Delete handles category removal
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}

	if err := h.catalog.DeleteCategory(r.Context(), id); err != nil {
		if err == repository.ErrCategoryNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "Category not found")
			return
		}
		h.logger.Error("Category delete failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "error while deleting category")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, middleware.Response{
		Success: true,
		Message: "Category Deleted Successfully",
	})
}

// List handles the public category listing
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("Category list failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Error while getting all categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CategoryListResponse{
		Response: middleware.Response{Success: true, Message: "All Categories List"},
		Category: categories,
	})
}

// GetBySlug handles fetching one category by slug
func (h *CategoryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	category, err := h.catalog.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if err == repository.ErrCategoryNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "Category not found")
			return
		}
		h.logger.Error("Category fetch failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Error While getting Single Category")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CategoryResponse{
		Response: middleware.Response{Success: true, Message: "Get Single Category Successfully"},
		Category: category,
	})
}
