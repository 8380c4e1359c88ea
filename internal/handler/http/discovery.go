package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/utafrali/discovery/internal/domain"
	"github.com/utafrali/discovery/internal/service"
	"github.com/utafrali/discovery/pkg/httputil"
	"github.com/utafrali/discovery/pkg/validator"
)

// DiscoveryHandler handles HTTP requests for the discovery endpoints.
type DiscoveryHandler struct {
	service *service.DiscoveryService
	logger  *slog.Logger
}

// NewDiscoveryHandler creates a discovery HTTP handler.
func NewDiscoveryHandler(svc *service.DiscoveryService, logger *slog.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// QueryRequest is the JSON body of the advanced-search endpoint. It mirrors
// the form controls of the advanced search screen.
type QueryRequest struct {
	Query        string             `json:"query"`
	Categories   []string           `json:"categories" validate:"max=50"`
	PriceRange   *domain.PriceRange `json:"price_range"`
	MinRating    float64            `json:"min_rating" validate:"gte=0,lte=5"`
	Availability string             `json:"availability" validate:"omitempty,oneof=all in_stock out_of_stock"`
	Shipping     string             `json:"shipping" validate:"omitempty,oneof=all free paid"`
	OnSale       bool               `json:"on_sale"`
	NewArrivals  bool               `json:"new_arrivals"`
	HighRated    bool               `json:"high_rated"`
	Sort         string             `json:"sort" validate:"omitempty,oneof=relevance date price amount rating popularity"`
	Order        string             `json:"order" validate:"omitempty,oneof=asc desc"`
}

// --- Handlers ---

// SearchProducts handles GET /api/v1/discovery/products
func (h *DiscoveryHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	criteria, spec, ok := h.parseQueryParams(w, r)
	if !ok {
		return
	}

	result, err := h.service.SearchProducts(r.Context(), criteria, spec)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// QueryProducts handles POST /api/v1/discovery/products/query
func (h *DiscoveryHandler) QueryProducts(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req QueryRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	criteria := domain.NewCriteria()
	criteria.Query = domain.NormalizeQuery(req.Query)
	criteria.Categories = req.Categories
	if req.PriceRange != nil {
		criteria.PriceRange = *req.PriceRange
		if criteria.PriceRange.Max == 0 {
			criteria.PriceRange.Max = math.Inf(1)
		}
	}
	criteria.MinRating = req.MinRating
	if req.Availability != "" {
		criteria.Availability = req.Availability
	}
	if req.Shipping != "" {
		criteria.Shipping = req.Shipping
	}
	criteria.OnSale = req.OnSale
	criteria.NewArrivals = req.NewArrivals
	criteria.HighRated = req.HighRated

	spec := domain.SortSpec{Field: req.Sort, Direction: req.Order}

	result, err := h.service.SearchProducts(r.Context(), criteria, spec)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// SearchOrders handles GET /api/v1/discovery/orders
func (h *DiscoveryHandler) SearchOrders(w http.ResponseWriter, r *http.Request) {
	criteria := domain.NewCriteria()
	criteria.Query = domain.NormalizeQuery(r.URL.Query().Get("q"))
	criteria.Statuses = r.URL.Query()["status"]

	spec, ok := parseSort(w, r)
	if !ok {
		return
	}

	result, err := h.service.SearchOrders(r.Context(), criteria, spec)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// History handles GET /api/v1/discovery/history
func (h *DiscoveryHandler) History(w http.ResponseWriter, r *http.Request) {
	entries := h.service.History(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: entries})
}

// ClearHistory handles DELETE /api/v1/discovery/history
func (h *DiscoveryHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.service.ClearHistory(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "cleared"}})
}

// Popular handles GET /api/v1/discovery/popular
func (h *DiscoveryHandler) Popular(w http.ResponseWriter, r *http.Request) {
	entries := h.service.PopularSearches(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: entries})
}

// --- Param parsing ---

func (h *DiscoveryHandler) parseQueryParams(w http.ResponseWriter, r *http.Request) (domain.Criteria, domain.SortSpec, bool) {
	criteria := domain.NewCriteria()
	criteria.Query = domain.NormalizeQuery(r.URL.Query().Get("q"))
	criteria.Categories = r.URL.Query()["category"]

	if v := r.URL.Query().Get("min_price"); v != "" {
		price, ok := parsePrice(w, "min_price", v)
		if !ok {
			return criteria, domain.SortSpec{}, false
		}
		criteria.PriceRange.Min = price
	}
	if v := r.URL.Query().Get("max_price"); v != "" {
		price, ok := parsePrice(w, "max_price", v)
		if !ok {
			return criteria, domain.SortSpec{}, false
		}
		criteria.PriceRange.Max = price
	}
	if !math.IsInf(criteria.PriceRange.Max, 1) && criteria.PriceRange.Min > criteria.PriceRange.Max {
		writeParamError(w, "min_price must not exceed max_price")
		return criteria, domain.SortSpec{}, false
	}

	if v := r.URL.Query().Get("min_rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil || rating < 0 {
			writeParamError(w, "min_rating must be a non-negative number")
			return criteria, domain.SortSpec{}, false
		}
		criteria.MinRating = rating
	}

	if v := r.URL.Query().Get("availability"); v != "" {
		if !containsValue(domain.ValidAvailabilities(), v) {
			writeParamError(w, "availability must be one of: "+strings.Join(domain.ValidAvailabilities(), ", "))
			return criteria, domain.SortSpec{}, false
		}
		criteria.Availability = v
	}

	if v := r.URL.Query().Get("shipping"); v != "" {
		if !containsValue(domain.ValidShippings(), v) {
			writeParamError(w, "shipping must be one of: "+strings.Join(domain.ValidShippings(), ", "))
			return criteria, domain.SortSpec{}, false
		}
		criteria.Shipping = v
	}

	criteria.OnSale = boolParam(r, "on_sale")
	criteria.NewArrivals = boolParam(r, "new_arrivals")
	criteria.HighRated = boolParam(r, "high_rated")

	spec, ok := parseSort(w, r)
	if !ok {
		return criteria, domain.SortSpec{}, false
	}

	return criteria, spec, true
}

func parseSort(w http.ResponseWriter, r *http.Request) (domain.SortSpec, bool) {
	spec := domain.SortSpec{
		Field:     r.URL.Query().Get("sort"),
		Direction: r.URL.Query().Get("order"),
	}

	if spec.Field != "" && !domain.IsValidSortField(spec.Field) {
		writeParamError(w, "sort must be one of: "+strings.Join(domain.ValidSortFields(), ", "))
		return spec, false
	}
	switch spec.Direction {
	case "", domain.SortAsc, domain.SortDesc:
	default:
		writeParamError(w, "order must be asc or desc")
		return spec, false
	}

	return spec, true
}

func parsePrice(w http.ResponseWriter, name, raw string) (float64, bool) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeParamError(w, name+" must be a valid number")
		return 0, false
	}
	if price < 0 {
		writeParamError(w, name+" must not be negative")
		return 0, false
	}
	return price, true
}

func boolParam(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}

func containsValue(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func writeParamError(w http.ResponseWriter, message string) {
	httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
		Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: message},
	})
}
