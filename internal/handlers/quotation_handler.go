package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"quotation-backend/internal/models"
	"quotation-backend/internal/services"
	"quotation-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// generatePDF renders the PDF export
var generatePDF = services.GenerateQuotationPDF

type QuotationHandler struct {
	Service *services.QuotationService
}

func NewQuotationHandler(s *services.QuotationService) *QuotationHandler {
	return &QuotationHandler{Service: s}
}

// ListQuotations handles GET /quotations
func (h *QuotationHandler) ListQuotations(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListQuotations(r.Context())
	if err != nil {
		log.Printf("[Quotation] list failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Failed to list quotations")
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// GetItems handles GET /items/{quotation_number}
func (h *QuotationHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["quotation_number"]

	q, err := h.Service.GetQuotation(r.Context(), number)
	if errors.Is(err, models.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "Quotation not found")
		return
	}
	if err != nil {
		log.Printf("[Quotation] get %s failed: %v", number, err)
		utils.Error(w, http.StatusInternalServerError, "Failed to load quotation")
		return
	}
	utils.JSON(w, http.StatusOK, q)
}

// UpdateTier handles PUT /items/{quotation_number}/{item_code}/{tier}
func (h *QuotationHandler) UpdateTier(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	number, itemCode, tier := vars["quotation_number"], vars["item_code"], vars["tier"]

	var req models.TierUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.Service.UpdateTier(r.Context(), number, itemCode, tier, req)
	switch {
	case errors.Is(err, models.ErrInvalidTier):
		utils.Error(w, http.StatusBadRequest, "Invalid category")
		return
	case errors.Is(err, models.ErrInvalidAmount):
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, models.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "Item not found")
		return
	case err != nil:
		log.Printf("[Quotation] update %s/%s/%s failed: %v", number, itemCode, tier, err)
		utils.Error(w, http.StatusInternalServerError, "Failed to update item")
		return
	}
	utils.JSON(w, http.StatusOK, item)
}

// ExportPDF handles GET /items/{quotation_number}/pdf
func (h *QuotationHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["quotation_number"]

	q, err := h.Service.GetQuotation(r.Context(), number)
	if errors.Is(err, models.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "Quotation not found")
		return
	}
	if err != nil {
		log.Printf("[Quotation] get %s failed: %v", number, err)
		utils.Error(w, http.StatusInternalServerError, "Failed to load quotation")
		return
	}

	pdfData, err := generatePDF(q)
	if err != nil {
		log.Printf("[Quotation] PDF for %s failed: %v", number, err)
		utils.Error(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=quotation_%s.pdf", number))
	w.Write(pdfData)
}
