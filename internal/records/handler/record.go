package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"medreg/internal/records/service"
	httputil "medreg/pkg/http"
	"medreg/pkg/logger"
	"medreg/pkg/model"
)

type RecordHandler struct {
	service service.RecordService
	log     *logger.Logger
}

func NewRecordHandler(service service.RecordService, log *logger.Logger) *RecordHandler {
	return &RecordHandler{
		service: service,
		log:     log,
	}
}

// --- Treatments ---

func (h *RecordHandler) AddTreatment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var treatment model.Treatment
	if err := json.NewDecoder(r.Body).Decode(&treatment); err != nil {
		h.writeBadBody(w, "AddTreatment")
		return
	}

	if err := h.service.AddTreatment(r.Context(), &treatment); err != nil {
		h.writeError(w, "AddTreatment", err)
		return
	}

	if err := httputil.WriteCreated(w, treatment); err != nil {
		h.log.Error("failed to write created response", "handler", "AddTreatment", "error", err)
	}
}

func (h *RecordHandler) GetTreatment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	treatment, err := h.service.GetTreatment(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetTreatment", err)
		return
	}

	if err := httputil.WriteSuccess(w, treatment); err != nil {
		h.log.Error("failed to write success response", "handler", "GetTreatment", "error", err)
	}
}

func (h *RecordHandler) ListTreatments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "ListTreatments", err)
		return
	}

	treatments, total, err := h.service.ListTreatments(r.Context(), ps.ByName("patientId"), limit, offset)
	if err != nil {
		h.writeError(w, "ListTreatments", err)
		return
	}

	if err := httputil.WritePaginated(w, treatments, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListTreatments", "error", err)
	}
}

func (h *RecordHandler) UpdateTreatment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.TreatmentUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		h.writeBadBody(w, "UpdateTreatment")
		return
	}

	if err := h.service.UpdateTreatment(r.Context(), ps.ByName("id"), &updates); err != nil {
		h.writeError(w, "UpdateTreatment", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RecordHandler) DeleteTreatment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeleteTreatment(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "DeleteTreatment", err)
		return
	}

	httputil.WriteNoContent(w)
}

// --- Investigations ---

func (h *RecordHandler) AddInvestigation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var investigation model.Investigation
	if err := json.NewDecoder(r.Body).Decode(&investigation); err != nil {
		h.writeBadBody(w, "AddInvestigation")
		return
	}

	if err := h.service.AddInvestigation(r.Context(), &investigation); err != nil {
		h.writeError(w, "AddInvestigation", err)
		return
	}

	if err := httputil.WriteCreated(w, investigation); err != nil {
		h.log.Error("failed to write created response", "handler", "AddInvestigation", "error", err)
	}
}

func (h *RecordHandler) GetInvestigation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	investigation, err := h.service.GetInvestigation(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetInvestigation", err)
		return
	}

	if err := httputil.WriteSuccess(w, investigation); err != nil {
		h.log.Error("failed to write success response", "handler", "GetInvestigation", "error", err)
	}
}

func (h *RecordHandler) ListInvestigations(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "ListInvestigations", err)
		return
	}

	investigations, total, err := h.service.ListInvestigations(r.Context(), ps.ByName("patientId"), limit, offset)
	if err != nil {
		h.writeError(w, "ListInvestigations", err)
		return
	}

	if err := httputil.WritePaginated(w, investigations, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListInvestigations", "error", err)
	}
}

func (h *RecordHandler) UpdateInvestigation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.InvestigationUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		h.writeBadBody(w, "UpdateInvestigation")
		return
	}

	if err := h.service.UpdateInvestigation(r.Context(), ps.ByName("id"), &updates); err != nil {
		h.writeError(w, "UpdateInvestigation", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RecordHandler) DeleteInvestigation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeleteInvestigation(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "DeleteInvestigation", err)
		return
	}

	httputil.WriteNoContent(w)
}

// --- Helpers ---

func (h *RecordHandler) writeBadBody(w http.ResponseWriter, handler string) {
	if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
		Error: "Invalid request body",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", handler, "error", err)
	}
}

func (h *RecordHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *RecordHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/treatments", h.AddTreatment)
	router.GET("/api/v1/treatments/id/:id", h.GetTreatment)
	router.PATCH("/api/v1/treatments/id/:id", h.UpdateTreatment)
	router.DELETE("/api/v1/treatments/id/:id", h.DeleteTreatment)
	router.GET("/api/v1/patients/:patientId/treatments", h.ListTreatments)

	router.POST("/api/v1/investigations", h.AddInvestigation)
	router.GET("/api/v1/investigations/id/:id", h.GetInvestigation)
	router.PATCH("/api/v1/investigations/id/:id", h.UpdateInvestigation)
	router.DELETE("/api/v1/investigations/id/:id", h.DeleteInvestigation)
	router.GET("/api/v1/patients/:patientId/investigations", h.ListInvestigations)
}
