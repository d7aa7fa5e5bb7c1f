package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"wishfund/extractor"
	"wishfund/middleware"
	"wishfund/models"
)

// AddProduct extracts a product record from the submitted link and stores it
// as a new savings goal. An extraction record carrying an error means the
// link could not be turned into a trackable goal; that is a client-visible
// condition, not a server failure.
func (h *Handlers) AddProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.AddProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Link == "" || req.TargetDate == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.ContributionType != "monthly" && req.ContributionType != "daily" {
		writeError(w, http.StatusBadRequest, "Contribution type must be 'monthly' or 'daily'")
		return
	}

	targetDate, err := time.Parse("2006-01-02", req.TargetDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Target date must be in YYYY-MM-DD format")
		return
	}

	record, err := h.extractor.FetchProduct(r.Context(), req.Link)
	if err != nil {
		if errors.Is(err, extractor.ErrPageUnreachable) {
			writeError(w, http.StatusBadGateway, "Cannot access the webpage")
			return
		}
		log.Printf("Failed to extract product from %s: %v", req.Link, err)
		writeError(w, http.StatusInternalServerError, "Failed to extract product information")
		return
	}

	if record.Error != "" {
		writeError(w, http.StatusUnprocessableEntity, "Could not create a trackable goal from this link")
		return
	}

	product := &models.Product{
		UserID:             userID,
		Name:               record.Name,
		Price:              record.Price,
		Image:              record.Image,
		Category:           record.Category,
		URL:                req.Link,
		TargetDate:         targetDate,
		ContributionType:   req.ContributionType,
		ContributionAmount: req.ContributionAmount,
	}

	saved, err := h.productRepo.AddProduct(product)
	if err != nil {
		log.Printf("Failed to save product: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save product")
		return
	}

	response := map[string]interface{}{
		"message": "Product saved successfully",
		"product": saved,
	}
	if record.Note != "" {
		response["note"] = record.Note
	}
	writeJSON(w, http.StatusCreated, response)
}

// GetUserProducts returns all goals for the authenticated user.
func (h *Handlers) GetUserProducts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	products, err := h.productRepo.GetProductsByUser(userID)
	if err != nil {
		log.Printf("Failed to fetch products: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// DeleteProducts removes the submitted goal IDs owned by the user.
func (h *Handlers) DeleteProducts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.DeleteProductsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "Product IDs are required")
		return
	}

	deleted, err := h.productRepo.DeleteProducts(req.IDs, userID)
	if err != nil {
		log.Printf("Failed to delete products: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete products")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Products deleted",
		"deleted": deleted,
	})
}
