package transport

import (
	"net/http"

	"boardcamp/internal/middleware"
	"boardcamp/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CustomerHandler handles HTTP requests for customers
type CustomerHandler struct {
	customerService service.CustomerService
	logger          *zap.Logger
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// RegisterRoutes registers all customer routes
func (h *CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Route("/customers", func(r chi.Router) {
		r.Get("/", h.ListCustomers)
		r.Post("/", h.CreateCustomer)
		r.Get("/{id}", h.GetCustomer)
		r.Put("/{id}", h.UpdateCustomer)
	})
}

// ListCustomers handles listing customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerService.List(r.Context(), r.URL.Query())
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, customers)
}

// GetCustomer handles fetching a single customer
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customerService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, customer)
}

// CreateCustomer handles customer creation
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	record, err := middleware.DecodeRecord(w, r)
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	customer, err := h.customerService.Create(r.Context(), record)
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Customer created", zap.Int64("customer_id", customer.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, customer)
}

// UpdateCustomer handles replacing a customer's fields
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	record, err := middleware.DecodeRecord(w, r)
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	customer, err := h.customerService.Update(r.Context(), chi.URLParam(r, "id"), record)
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Customer updated", zap.Int64("customer_id", customer.ID))
	middleware.RespondWithJSON(w, http.StatusOK, customer)
}
