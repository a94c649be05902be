package handler

import (
	"credable/internal/service"
	"net/http"
)

// BrainHandler serves the AI brain visualization data
type BrainHandler struct {
	brainSvc *service.BrainService
}

// NewBrainHandler creates a new brain handler
func NewBrainHandler(brainSvc *service.BrainService) *BrainHandler {
	return &BrainHandler{brainSvc: brainSvc}
}

// Layout handles GET /v1/brain/layout
func (h *BrainHandler) Layout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.brainSvc.Layout())
}

// Tour handles GET /v1/brain/tour
func (h *BrainHandler) Tour(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"steps": h.brainSvc.Tour(),
	})
}
