package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/portfolio-cms/internal/service"
)

type TestimonialHandler struct {
	svc    *service.TestimonialService
	logger *slog.Logger
}

func NewTestimonialHandler(svc *service.TestimonialService, logger *slog.Logger) *TestimonialHandler {
	return &TestimonialHandler{svc: svc, logger: logger}
}

// HandleListVisible is the public listing.
//
// HTTP: GET /api/testimonials
func (h *TestimonialHandler) HandleListVisible(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// HandleListAll includes hidden testimonials, for the admin UI.
//
// HTTP: GET /api/testimonials/all
func (h *TestimonialHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *TestimonialHandler) list(w http.ResponseWriter, r *http.Request, visibleOnly bool) {
	list, err := h.svc.List(r.Context(), visibleOnly)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HTTP: POST /api/testimonials
func (h *TestimonialHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.TestimonialInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	t, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// HTTP: PUT /api/testimonials/{id}
func (h *TestimonialHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in service.TestimonialInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	t, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// HTTP: DELETE /api/testimonials/{id}
func (h *TestimonialHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Testimonial deleted successfully")
}

// HTTP: POST /api/testimonials/reorder  {"testimonials":[{"id":"...","order":0}]}
func (h *TestimonialHandler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Testimonials []reorderEntry `json:"testimonials"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.svc.Reorder(r.Context(), toOrderEntries(req.Testimonials)); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Testimonials reordered successfully")
}
