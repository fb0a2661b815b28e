package transport

import (
	"net/http"

	"boardcamp/internal/middleware"
	"boardcamp/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RentalHandler handles HTTP requests for the rental lifecycle
type RentalHandler struct {
	rentalService service.RentalService
	logger        *zap.Logger
}

// NewRentalHandler creates a new RentalHandler
func NewRentalHandler(rentalService service.RentalService, logger *zap.Logger) *RentalHandler {
	return &RentalHandler{
		rentalService: rentalService,
		logger:        logger,
	}
}

// RegisterRoutes registers all rental routes
func (h *RentalHandler) RegisterRoutes(r chi.Router) {
	r.Route("/rentals", func(r chi.Router) {
		r.Get("/", h.ListRentals)
		r.Post("/", h.CreateRental)
		r.Get("/metrics", h.GetMetrics)
		r.Post("/{id}/return", h.ReturnRental)
		r.Delete("/{id}", h.DeleteRental)
	})
}

// ListRentals handles listing rentals with their customer and game
func (h *RentalHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.rentalService.List(r.Context(), r.URL.Query())
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, rentals)
}

// CreateRental handles opening a rental
func (h *RentalHandler) CreateRental(w http.ResponseWriter, r *http.Request) {
	record, err := middleware.DecodeRecord(w, r)
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	rental, err := h.rentalService.Create(r.Context(), record)
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Rental created",
		zap.Int64("rental_id", rental.ID),
		zap.Int64("customer_id", rental.CustomerID),
		zap.Int64("game_id", rental.GameID),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, rental)
}

// ReturnRental handles closing a rental and charging any delay fee
func (h *RentalHandler) ReturnRental(w http.ResponseWriter, r *http.Request) {
	rental, err := h.rentalService.Return(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	fields := []zap.Field{zap.Int64("rental_id", rental.ID)}
	if rental.DelayFee != nil {
		fields = append(fields, zap.Int64("delay_fee", *rental.DelayFee))
	}
	h.logger.Info("Rental returned", fields...)
	middleware.RespondWithJSON(w, http.StatusOK, rental)
}

// DeleteRental handles removing an open rental
func (h *RentalHandler) DeleteRental(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.rentalService.Delete(r.Context(), id); err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Rental deleted", zap.String("rental_id", id))
	w.WriteHeader(http.StatusOK)
}

// GetMetrics handles revenue metrics over an optional rent date range
func (h *RentalHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.rentalService.Metrics(r.Context(), r.URL.Query())
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, metrics)
}
