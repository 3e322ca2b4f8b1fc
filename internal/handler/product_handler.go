package handler

import (
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProductHandler handles catalogue HTTP requests.
type ProductHandler struct {
	products service.ProductService
	admin    service.AdminService
	logger   zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products service.ProductService, admin service.AdminService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		admin:    admin,
		logger:   logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	products, err := h.products.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Similar handles GET /api/products/similar/{id}.
func (h *ProductHandler) Similar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	products, err := h.products.Similar(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// BestSeller handles GET /api/products/best-seller.
func (h *ProductHandler) BestSeller(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.BestSeller(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// NewArrivals handles GET /api/products/new-arrivals.
func (h *ProductHandler) NewArrivals(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.NewArrivals(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := caller(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	var in model.ProductInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	product, err := h.admin.CreateProduct(r.Context(), identity, &in)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, err := caller(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	var in model.ProductInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	product, err := h.admin.UpdateProduct(r.Context(), identity, id, &in)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := caller(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if err := h.admin.DeleteProduct(r.Context(), identity, id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Product removed"})
}

// parseProductFilter reads the listing query. "all" for collection or category
// means no constraint.
func parseProductFilter(r *http.Request) (model.ProductFilter, error) {
	q := r.URL.Query()

	filter := model.ProductFilter{
		Collection: q.Get("collection"),
		Category:   q.Get("category"),
		Materials:  splitCSV(q.Get("material")),
		Brands:     splitCSV(q.Get("brand")),
		Sizes:      splitCSV(q.Get("size")),
		Color:      q.Get("color"),
		Gender:     q.Get("gender"),
		Search:     q.Get("search"),
		SortBy:     q.Get("sortBy"),
	}
	if strings.EqualFold(filter.Collection, "all") {
		filter.Collection = ""
	}
	if strings.EqualFold(filter.Category, "all") {
		filter.Category = ""
	}

	if v := q.Get("minPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return filter, model.InvalidInput("invalid minPrice parameter")
		}
		filter.MinPrice = &d
	}
	if v := q.Get("maxPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return filter, model.InvalidInput("invalid maxPrice parameter")
		}
		filter.MaxPrice = &d
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, model.InvalidInput("invalid limit parameter")
		}
		filter.Limit = n
	}

	return filter, nil
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
