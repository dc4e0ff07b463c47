package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"clinica-salud-api/internal/models"
	"clinica-salud-api/internal/store"
	"clinica-salud-api/internal/utils"
)

type AppointmentHandler struct {
	store *store.Store
}

type createCitaReq struct {
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido"`
	ServiceID string `json:"serviceId"`
	StartTime string `json:"startTime"`
	Status    string `json:"status"`
}

// Create books an appointment. When no patient matches the given name pair
// one is created on the fly with just the two name fields; the booking never
// asks for confirmation. A patient created here is not rolled back if a later
// step fails.
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCitaReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Nombre == "" || req.Apellido == "" || req.ServiceID == "" || req.StartTime == "" {
		utils.JSONError(w, http.StatusBadRequest, "Nombre, apellido, ID de servicio y hora de inicio de cita son obligatorios.")
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Hora de inicio inválida")
		return
	}

	patient, err := h.store.FindOrCreatePatient(r.Context(), req.Nombre, req.Apellido)
	if err != nil {
		internalError(w, "create cita: resolve patient", err)
		return
	}

	svc, err := h.store.ServiceByID(r.Context(), req.ServiceID)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Servicio no encontrado.")
		return
	}
	if err != nil {
		internalError(w, "create cita: service", err)
		return
	}

	status := req.Status
	if status == "" {
		status = "pending"
	}

	apt := &models.Appointment{
		PatientID: patient.ID,
		ServiceID: svc.ID,
		StartTime: start,
		EndTime:   start.Add(time.Duration(svc.Duration) * time.Minute),
		Status:    status,
	}

	if err := h.store.CreateAppointment(r.Context(), apt); err != nil {
		// a reference can go stale between lookup and insert
		h.referenceError(w, "create cita", err)
		return
	}

	detail, err := h.store.AppointmentDetail(r.Context(), apt.ID)
	if err != nil {
		internalError(w, "create cita: detail", err)
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"mensaje": "Cita creada exitosamente",
		"cita":    detail,
	})
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	citas, err := h.store.ListAppointments(r.Context())
	if err != nil {
		internalError(w, "list citas", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"mensaje": "Citas obtenidas exitosamente",
		"citas":   citas,
	})
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.store.AppointmentDetail(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Cita no encontrada.")
		return
	}
	if err != nil {
		internalError(w, "get cita", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"mensaje": "Cita obtenida exitosamente",
		"cita":    detail,
	})
}

type updateCitaReq struct {
	PatientFirstName *string `json:"patientFirstName"`
	PatientLastName  *string `json:"patientLastName"`
	ServiceID        *string `json:"serviceId"`
	StartTime        *string `json:"startTime"`
	Status           *string `json:"status"`
}

// Update applies a sparse update. Both name fields together rebind the
// patient (lookup-or-create); one alone is ignored. End time is recomputed
// from the effective service and start time whenever either changes, except
// when the effective service no longer exists: the recompute is skipped and
// the stored end time kept.
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateCitaReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	apt, err := h.store.AppointmentByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Cita no encontrada para actualizar.")
		return
	}
	if err != nil {
		internalError(w, "update cita", err)
		return
	}

	if req.PatientFirstName != nil && *req.PatientFirstName != "" &&
		req.PatientLastName != nil && *req.PatientLastName != "" {
		patient, err := h.store.FindOrCreatePatient(r.Context(), *req.PatientFirstName, *req.PatientLastName)
		if err != nil {
			internalError(w, "update cita: resolve patient", err)
			return
		}
		apt.PatientID = patient.ID
	}

	if req.ServiceID != nil {
		apt.ServiceID = *req.ServiceID
	}
	if req.StartTime != nil {
		start, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			utils.JSONError(w, http.StatusBadRequest, "Hora de inicio inválida")
			return
		}
		apt.StartTime = start
	}
	if req.Status != nil {
		apt.Status = *req.Status
	}

	if req.ServiceID != nil || req.StartTime != nil {
		svc, err := h.store.ServiceByID(r.Context(), apt.ServiceID)
		switch {
		case err == nil:
			apt.EndTime = apt.StartTime.Add(time.Duration(svc.Duration) * time.Minute)
		case errors.Is(err, store.ErrNotFound):
			// effective service gone: leave end_time as stored
		default:
			internalError(w, "update cita: service", err)
			return
		}
	}

	if err := h.store.UpdateAppointment(r.Context(), apt); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.JSONError(w, http.StatusNotFound, "Cita no encontrada para actualizar.")
			return
		}
		h.referenceError(w, "update cita", err)
		return
	}

	detail, err := h.store.AppointmentDetail(r.Context(), apt.ID)
	if err != nil {
		internalError(w, "update cita: detail", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"mensaje": "Cita actualizada exitosamente",
		"cita":    detail,
	})
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	apt, err := h.store.DeleteAppointment(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Cita no encontrada para eliminar.")
		return
	}
	if err != nil {
		internalError(w, "delete cita", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"mensaje": "Cita eliminada exitosamente",
		"cita":    apt,
	})
}

// referenceError maps foreign key failures onto 400s that say which
// reference was at fault.
func (h *AppointmentHandler) referenceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, store.ErrPatientRef):
		utils.JSONError(w, http.StatusBadRequest, "Error de clave foránea. Verifique que el nombre del paciente sea válido.")
	case errors.Is(err, store.ErrServiceRef):
		utils.JSONError(w, http.StatusBadRequest, "Error de clave foránea. Verifique que el ID del servicio sea válido.")
	default:
		internalError(w, op, err)
	}
}
