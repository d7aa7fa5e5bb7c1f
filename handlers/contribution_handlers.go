package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"wishfund/middleware"
	"wishfund/models"

	"github.com/gorilla/mux"
)

// AddContribution records a payment toward a goal. A single contribution
// must stay below the product price, and the running total can never exceed
// it.
func (h *Handlers) AddContribution(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.AddContributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if vars := mux.Vars(r); vars["productId"] != "" {
		if id, err := strconv.Atoi(vars["productId"]); err == nil {
			req.ProductID = id
		}
	}

	if req.ProductID == 0 {
		writeError(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	product, err := h.productRepo.GetProductByID(req.ProductID, userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	contribution, err := h.contribRepo.GetByUserAndProduct(userID, req.ProductID)
	if err != nil {
		log.Printf("Failed to load contribution: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to add contribution")
		return
	}

	contributed := 0.0
	if contribution != nil {
		contributed = contribution.TotalAmount
	}
	if err := models.ValidateContributionAmount(product.Price, contributed, req.Amount); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if contribution != nil {
		contribution, err = h.contribRepo.AddEntry(contribution, req.Amount)
	} else {
		contribution, err = h.contribRepo.Create(userID, product, req.Amount)
	}
	if err != nil {
		log.Printf("Failed to save contribution: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to add contribution")
		return
	}

	if err := h.productRepo.UpdateSavedAmount(product.ID, contribution.TotalAmount); err != nil {
		log.Printf("Failed to update saved amount for product %d: %v", product.ID, err)
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":      "Contribution added successfully",
		"contribution": contribution,
	})
}

// GetUserContributions returns all ledgers for the authenticated user.
func (h *Handlers) GetUserContributions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	contributions, err := h.contribRepo.ListByUser(userID)
	if err != nil {
		log.Printf("Failed to list contributions: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch contributions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"contributions": contributions})
}

// DeleteContribution removes one ledger by ID.
func (h *Handlers) DeleteContribution(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid contribution ID")
		return
	}

	deleted, err := h.contribRepo.Delete(id)
	if err != nil {
		log.Printf("Failed to delete contribution: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete contribution")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Contribution not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Contribution deleted successfully"})
}
