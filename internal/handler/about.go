package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/portfolio-cms/internal/service"
)

type AboutHandler struct {
	svc    *service.AboutService
	logger *slog.Logger
}

func NewAboutHandler(svc *service.AboutService, logger *slog.Logger) *AboutHandler {
	return &AboutHandler{svc: svc, logger: logger}
}

// HandleGet returns the about block, or null before it is first saved.
//
// HTTP: GET /api/about
func (h *AboutHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.Get(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// HTTP: PUT /api/about
func (h *AboutHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in service.AboutInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	info, err := h.svc.Save(r.Context(), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
