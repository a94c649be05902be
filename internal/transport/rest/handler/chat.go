package handler

import (
	"credable/internal/model"
	"credable/internal/service"
	"credable/internal/transport/rest/middleware"
	"errors"
	"net/http"
)

// ChatHandler proxies the chat widget
type ChatHandler struct {
	chatSvc *service.ChatService
	proxies *middleware.TrustedProxies
}

// NewChatHandler creates a new chat handler. proxies decides which peers may
// name the client through X-Forwarded-For; nil trusts none.
func NewChatHandler(chatSvc *service.ChatService, proxies *middleware.TrustedProxies) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc, proxies: proxies}
}

// Send handles POST /v1/chat
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	reply, err := h.chatSvc.Send(r.Context(), h.proxies.ClientIP(r), req)
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "message is required")
		return
	case errors.Is(err, service.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "too many messages, try again shortly")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	status := http.StatusOK
	if reply.Degraded {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, reply)
}
