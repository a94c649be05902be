package handler

import (
	"credable/internal/service"
	"net/http"
)

// DecisionHandler handles the decision engine endpoints
type DecisionHandler struct {
	demoSvc *service.DemoService
}

// NewDecisionHandler creates a new decision handler
func NewDecisionHandler(demoSvc *service.DemoService) *DecisionHandler {
	return &DecisionHandler{demoSvc: demoSvc}
}

// EvaluateRequest is the request body for evaluating a company
type EvaluateRequest struct {
	Company string `json:"company"`
}

// Evaluate handles POST /v1/decisions
func (h *DecisionHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	// An empty body falls back to the sample company
	if !decodeJSON(w, r, &req, true) {
		return
	}

	writeJSON(w, http.StatusOK, h.demoSvc.Evaluate(req.Company))
}

// Preview handles GET /v1/decisions/preview?q=
func (h *DecisionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.demoSvc.Preview(r.URL.Query().Get("q")))
}
