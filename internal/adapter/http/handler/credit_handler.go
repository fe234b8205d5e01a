package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sidibe/caisse/internal/adapter/http/dto"
	"github.com/sidibe/caisse/internal/domain"
	"github.com/sidibe/caisse/internal/usecase"
)

// CreditHandler handles credit-related HTTP requests.
type CreditHandler struct {
	creditUC *usecase.CreditUseCase
}

// NewCreditHandler creates a new CreditHandler.
func NewCreditHandler(creditUC *usecase.CreditUseCase) *CreditHandler {
	return &CreditHandler{creditUC: creditUC}
}

// Issue creates a new credit.
func (h *CreditHandler) Issue(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.IssueCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	credit, err := h.creditUC.IssueCredit(r.Context(), usecase.IssueCreditInput{
		ActorID:   actor.ID,
		ShopID:    req.ShopID,
		ClientID:  req.ClientID,
		Direction: domain.CreditDirection(req.Direction),
		Kind:      domain.CreditKind(req.Kind),
		Amount:    req.Amount,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to issue credit", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.CreditFromDomain(credit))
}

// Get retrieves a credit with its payments.
func (h *CreditHandler) Get(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "missing credit reference", "")
		return
	}

	credit, payments, err := h.creditUC.GetCredit(r.Context(), reference)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get credit", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.CreditDetailResponse{
		Credit:   dto.CreditFromDomain(credit),
		Payments: dto.PaymentsFromDomain(payments),
	})
}

// List lists credits for a shop.
func (h *CreditHandler) List(w http.ResponseWriter, r *http.Request) {
	shopID := r.URL.Query().Get("shop_id")
	if shopID == "" {
		writeError(w, http.StatusBadRequest, "missing shop_id", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	credits, err := h.creditUC.ListCredits(r.Context(), shopID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list credits", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CreditsFromDomain(credits))
}

// Pay applies a payment against a credit.
func (h *CreditHandler) Pay(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	reference := chi.URLParam(r, "reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "missing credit reference", "")
		return
	}

	var req dto.PayCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	payment, err := h.creditUC.PayCredit(r.Context(), usecase.PayCreditInput{
		Reference: reference,
		ActorID:   actor.ID,
		Amount:    req.Amount,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to pay credit", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentFromDomain(payment))
}

// Cancel voids a credit and reverses its ledger trail.
func (h *CreditHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "missing credit reference", "")
		return
	}

	credit, err := h.creditUC.CancelCredit(r.Context(), reference)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to cancel credit", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.CreditFromDomain(credit))
}

// CancelPayment voids a single payment and restores the credit.
func (h *CreditHandler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "id")
	if paymentID == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	payment, err := h.creditUC.CancelPayment(r.Context(), paymentID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to cancel payment", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}
