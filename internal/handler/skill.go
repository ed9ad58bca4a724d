package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/portfolio-cms/internal/service"
)

type SkillHandler struct {
	svc    *service.SkillService
	logger *slog.Logger
}

func NewSkillHandler(svc *service.SkillService, logger *slog.Logger) *SkillHandler {
	return &SkillHandler{svc: svc, logger: logger}
}

// HTTP: GET /api/skills[?category=Frontend]
func (h *SkillHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	skills, err := h.svc.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

// HTTP: GET /api/skills/categories
func (h *SkillHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Categories(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// HTTP: GET /api/skills/{id}
func (h *SkillHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sk, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sk)
}

// HTTP: POST /api/skills
func (h *SkillHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.SkillInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	sk, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, sk)
}

// HTTP: PUT /api/skills/{id}
func (h *SkillHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in service.SkillInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	sk, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sk)
}

// HTTP: DELETE /api/skills/{id}
func (h *SkillHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Skill deleted successfully")
}

// HandleReorder applies a drag-and-drop result. Each entry names the
// category the skill should end up in and its position there.
//
// HTTP: POST /api/skills/reorder  {"skills":[{"id":"...","category":"Frontend","order":0}]}
func (h *SkillHandler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Skills []reorderEntry `json:"skills"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.svc.Reorder(r.Context(), toOrderEntries(req.Skills)); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Skills reordered successfully")
}
