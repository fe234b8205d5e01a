package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sidibe/caisse/internal/adapter/http/dto"
	"github.com/sidibe/caisse/internal/usecase"
)

// AccountHandler handles balance lookup HTTP requests.
type AccountHandler struct {
	accountUC *usecase.AccountUseCase
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// OwnerBalances lists the accounts of a single owner.
func (h *AccountHandler) OwnerBalances(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "missing owner ID", "")
		return
	}

	accounts, err := h.accountUC.OwnerBalances(r.Context(), ownerID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get balances", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// ShopBalances lists the accounts of every member of a shop.
func (h *AccountHandler) ShopBalances(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopID")
	if shopID == "" {
		writeError(w, http.StatusBadRequest, "missing shop ID", "")
		return
	}

	accounts, err := h.accountUC.ShopBalances(r.Context(), shopID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get balances", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}
