package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"medreg/internal/patients/service"
	httputil "medreg/pkg/http"
	"medreg/pkg/logger"
	"medreg/pkg/model"
)

type PatientHandler struct {
	service service.PatientService
	log     *logger.Logger
}

func NewPatientHandler(service service.PatientService, log *logger.Logger) *PatientHandler {
	return &PatientHandler{
		service: service,
		log:     log,
	}
}

func (h *PatientHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var patient model.Patient
	if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Register", "error", writeErr)
		}
		return
	}

	if err := h.service.Register(r.Context(), &patient); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Register", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, patient); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "error", err)
	}
}

func (h *PatientHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	patient, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, patient); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *PatientHandler) GetByMRN(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	patient, err := h.service.GetByMRN(r.Context(), ps.ByName("mrn"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByMRN", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, patient); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByMRN", "error", err)
	}
}

func (h *PatientHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	patients, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, patients, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.PatientUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "error", writeErr)
		}
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *PatientHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	phone := query.Get("phone")
	city := query.Get("city")

	if phone == "" && city == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Either 'phone' or 'city' query parameter is required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Search", "error", writeErr)
		}
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Search", "error", writeErr)
		}
		return
	}

	var patients []*model.Patient
	var total int64
	if phone != "" {
		patients, total, err = h.service.SearchByPhone(r.Context(), phone, limit, offset)
	} else {
		patients, total, err = h.service.SearchByCity(r.Context(), city, limit, offset)
	}
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Search", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, patients, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "Search", "error", err)
	}
}

func (h *PatientHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/patients", h.Register)
	router.GET("/api/v1/patients", h.GetAll)
	router.GET("/api/v1/patients/id/:id", h.GetByID)
	router.GET("/api/v1/patients/mrn/:mrn", h.GetByMRN)
	router.PATCH("/api/v1/patients/id/:id", h.Update)
	router.DELETE("/api/v1/patients/id/:id", h.Delete)
	router.GET("/api/v1/patients/search", h.Search)
}
