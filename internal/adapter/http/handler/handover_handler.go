package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sidibe/caisse/internal/adapter/http/dto"
	"github.com/sidibe/caisse/internal/usecase"
)

// HandoverHandler handles deposit and cash refill HTTP requests.
type HandoverHandler struct {
	handoverUC *usecase.HandoverUseCase
}

// NewHandoverHandler creates a new HandoverHandler.
func NewHandoverHandler(handoverUC *usecase.HandoverUseCase) *HandoverHandler {
	return &HandoverHandler{handoverUC: handoverUC}
}

// CreateDeposit declares a pending versement by the authenticated staff.
func (h *HandoverHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.CreateDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	deposit, err := h.handoverUC.CreateDeposit(r.Context(), usecase.CreateDepositInput{
		StaffID: actor.ID,
		ShopID:  req.ShopID,
		Amount:  req.Amount,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create deposit", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.DepositFromDomain(deposit))
}

// ListDeposits lists deposits for a shop.
func (h *HandoverHandler) ListDeposits(w http.ResponseWriter, r *http.Request) {
	shopID := r.URL.Query().Get("shop_id")
	if shopID == "" {
		writeError(w, http.StatusBadRequest, "missing shop_id", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	deposits, err := h.handoverUC.ListDeposits(r.Context(), shopID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list deposits", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DepositsFromDomain(deposits))
}

// ValidateDeposit confirms a versement and moves the staff balance.
func (h *HandoverHandler) ValidateDeposit(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	depositID := chi.URLParam(r, "id")
	if depositID == "" {
		writeError(w, http.StatusBadRequest, "missing deposit ID", "")
		return
	}

	deposit, err := h.handoverUC.ValidateDeposit(r.Context(), depositID, actor)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to validate deposit", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DepositFromDomain(deposit))
}

// RejectDeposit refuses a versement, restoring the balance if it had
// already been validated.
func (h *HandoverHandler) RejectDeposit(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	depositID := chi.URLParam(r, "id")
	if depositID == "" {
		writeError(w, http.StatusBadRequest, "missing deposit ID", "")
		return
	}

	deposit, err := h.handoverUC.RejectDeposit(r.Context(), depositID, actor)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reject deposit", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DepositFromDomain(deposit))
}

// RequestRefill declares a pending rechargement by the authenticated admin.
func (h *HandoverHandler) RequestRefill(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.RequestRefillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	refill, err := h.handoverUC.RequestRefill(r.Context(), usecase.RequestRefillInput{
		AdminID: actor.ID,
		ShopID:  req.ShopID,
		Amount:  req.Amount,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to request refill", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.RefillFromDomain(refill))
}

// ListRefills lists cash refills for a shop.
func (h *HandoverHandler) ListRefills(w http.ResponseWriter, r *http.Request) {
	shopID := r.URL.Query().Get("shop_id")
	if shopID == "" {
		writeError(w, http.StatusBadRequest, "missing shop_id", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	refills, err := h.handoverUC.ListRefills(r.Context(), shopID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list refills", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RefillsFromDomain(refills))
}

// ValidateRefill confirms a rechargement and credits the staff balances.
func (h *HandoverHandler) ValidateRefill(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	refillID := chi.URLParam(r, "id")
	if refillID == "" {
		writeError(w, http.StatusBadRequest, "missing refill ID", "")
		return
	}

	refill, err := h.handoverUC.ValidateRefill(r.Context(), refillID, actor)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to validate refill", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.RefillFromDomain(refill))
}

// RejectRefill refuses a pending rechargement.
func (h *HandoverHandler) RejectRefill(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	refillID := chi.URLParam(r, "id")
	if refillID == "" {
		writeError(w, http.StatusBadRequest, "missing refill ID", "")
		return
	}

	refill, err := h.handoverUC.RejectRefill(r.Context(), refillID, actor)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reject refill", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.RefillFromDomain(refill))
}
