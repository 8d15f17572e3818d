package http

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fjod/go_storefront/internal/catalog"
	d "github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/metrics"
	"github.com/go-chi/chi/v5"
)

type CatalogService interface {
	Products() ([]d.Product, error)
	Product(id int64) (d.Product, error)
	Reload(ctx context.Context) error
}

type ProductHandler struct {
	catalog CatalogService
	metrics *metrics.Metrics
	timeout time.Duration
}

func NewProductHandler(catalog CatalogService, m *metrics.Metrics, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		metrics: m,
		timeout: timeout,
	}
}

// List serves the filtered and sorted product grid.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_price", err.Error())
		return
	}

	all, err := h.catalog.Products()
	if err != nil {
		handleServiceError(r.Context(), w, err)
		return
	}

	view := catalog.View(all, criteria, r.URL.Query().Get("sort"))
	products := make([]ProductResponse, len(view))
	for i, p := range view {
		products[i] = newProductResponse(p)
	}

	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products, Count: len(products)})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	p, err := h.catalog.Product(productID)
	if err != nil {
		handleServiceError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, &ProductDetailResponse{
		ProductResponse: newProductResponse(p),
		Description:     p.Description,
		Features:        p.FeatureList(),
		Highlights:      p.HighlightList(),
		CategoryInfo:    d.CategoryInfoFor(p.Category),
	})
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	all, err := h.catalog.Products()
	if err != nil {
		handleServiceError(r.Context(), w, err)
		return
	}

	keys := catalog.Categories(all)
	categories := make([]CategoryResponse, len(keys))
	for i, key := range keys {
		categories[i] = CategoryResponse{
			CategoryInfo: d.CategoryInfoFor(key),
			Count:        len(catalog.Filter(all, catalog.AnyPrice(key))),
		}
	}

	respondJSON(w, http.StatusOK, &CategoriesResponse{Categories: categories, Total: len(all)})
}

// Reload is the manual retry after the catalog failed to load.
func (h *ProductHandler) Reload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	err := h.catalog.Reload(ctx)
	h.metrics.CatalogLoaded(err)
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	all, err := h.catalog.Products()
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "ready", "count": len(all)})
}

func parseCriteria(q url.Values) (catalog.Criteria, error) {
	criteria := catalog.AnyPrice(q.Get("category"))

	if v := q.Get("min_price"); v != "" {
		f, err := parsePrice("min_price", v)
		if err != nil {
			return criteria, err
		}
		criteria.MinPrice = f
	}
	if v := q.Get("max_price"); v != "" {
		f, err := parsePrice("max_price", v)
		if err != nil {
			return criteria, err
		}
		criteria.MaxPrice = f
	}
	return criteria, nil
}

func parsePrice(name, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || f < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number", name)
	}
	return f, nil
}
