package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sidibe/caisse/internal/adapter/http/dto"
	"github.com/sidibe/caisse/internal/domain"
	"github.com/sidibe/caisse/internal/usecase"
)

// StockHandler handles stock movement HTTP requests.
type StockHandler struct {
	stockUC *usecase.StockUseCase
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockUC *usecase.StockUseCase) *StockHandler {
	return &StockHandler{stockUC: stockUC}
}

// Record applies a new stock movement.
func (h *StockHandler) Record(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.RecordMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.stockUC.RecordMovement(r.Context(), usecase.RecordMovementInput{
		ProductID: req.ProductID,
		ActorID:   actor.ID,
		ShopID:    req.ShopID,
		Quantity:  req.Quantity,
		Direction: domain.StockDirection(req.Direction),
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to record movement", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromDomain(movement))
}

// List lists movements for a product.
func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing product_id", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	movements, err := h.stockUC.ListMovements(r.Context(), productID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementsFromDomain(movements))
}

// Update corrects the quantity of an applied movement.
func (h *StockHandler) Update(w http.ResponseWriter, r *http.Request) {
	movementID := chi.URLParam(r, "id")
	if movementID == "" {
		writeError(w, http.StatusBadRequest, "missing movement ID", "")
		return
	}

	var req dto.UpdateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.stockUC.UpdateMovement(r.Context(), movementID, req.Quantity)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update movement", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// Cancel voids a movement and reverses its stock and valuation effects.
func (h *StockHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	movementID := chi.URLParam(r, "id")
	if movementID == "" {
		writeError(w, http.StatusBadRequest, "missing movement ID", "")
		return
	}

	movement, err := h.stockUC.CancelMovement(r.Context(), movementID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to cancel movement", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}
