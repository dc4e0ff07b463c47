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

type PatientHandler struct {
	store *store.Store
}

// parseDate accepts the two formats the frontend sends for birth dates.
func parseDate(s string) (*time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("invalid date")
}

type patientReq struct {
	PrimerNombre    string  `json:"primerNombre"`
	Apellido        string  `json:"apellido"`
	FechaNacimiento *string `json:"fechaNacimiento"`
	Genero          *string `json:"genero"`
	Telefono        *string `json:"telefono"`
	Direccion       *string `json:"direccion"`
	HistorialMedico *string `json:"historialMedico"`
}

func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req patientReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.PrimerNombre == "" || req.Apellido == "" {
		utils.JSONError(w, http.StatusBadRequest, "El nombre y apellido del paciente son obligatorios")
		return
	}

	p := &models.Patient{
		PrimerNombre:    req.PrimerNombre,
		Apellido:        req.Apellido,
		Genero:          req.Genero,
		Telefono:        req.Telefono,
		Direccion:       req.Direccion,
		HistorialMedico: req.HistorialMedico,
	}
	if req.FechaNacimiento != nil {
		t, err := parseDate(*req.FechaNacimiento)
		if err != nil {
			utils.JSONError(w, http.StatusBadRequest, "Fecha de nacimiento inválida")
			return
		}
		p.FechaNacimiento = t
	}

	if err := h.store.CreatePatient(r.Context(), p); err != nil {
		internalError(w, "create patient", err)
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"mensaje":  "Paciente creado exitosamente",
		"paciente": p,
	})
}

// List answers GET /api/pacientes, optionally filtered with ?search= over
// either name field, case-insensitive.
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.store.ListPatients(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		internalError(w, "list patients", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"mensaje":   "Pacientes obtenidos exitosamente",
		"pacientes": patients,
	})
}

func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.PatientByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Paciente no encontrado")
		return
	}
	if err != nil {
		internalError(w, "get patient", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"mensaje":  "Paciente obtenido exitosamente",
		"paciente": p,
	})
}

type updatePatientReq struct {
	PrimerNombre    *string `json:"primerNombre"`
	Apellido        *string `json:"apellido"`
	FechaNacimiento *string `json:"fechaNacimiento"`
	Genero          *string `json:"genero"`
	Telefono        *string `json:"telefono"`
	Direccion       *string `json:"direccion"`
	HistorialMedico *string `json:"historialMedico"`
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updatePatientReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	in := store.PatientUpdate{
		PrimerNombre:    req.PrimerNombre,
		Apellido:        req.Apellido,
		Genero:          req.Genero,
		Telefono:        req.Telefono,
		Direccion:       req.Direccion,
		HistorialMedico: req.HistorialMedico,
	}
	if req.FechaNacimiento != nil {
		t, err := parseDate(*req.FechaNacimiento)
		if err != nil {
			utils.JSONError(w, http.StatusBadRequest, "Fecha de nacimiento inválida")
			return
		}
		in.FechaNacimiento = t
	}

	p, err := h.store.UpdatePatient(r.Context(), chi.URLParam(r, "id"), in)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Paciente no encontrado para actualizar")
		return
	}
	if err != nil {
		internalError(w, "update patient", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"mensaje":  "Paciente actualizado exitosamente",
		"paciente": p,
	})
}

func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.DeletePatient(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Paciente no encontrado para eliminar")
		return
	}
	if errors.Is(err, store.ErrPatientRef) {
		utils.JSONError(w, http.StatusConflict, "No se puede eliminar: el paciente tiene citas asociadas")
		return
	}
	if err != nil {
		internalError(w, "delete patient", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"mensaje":  "Paciente eliminado exitosamente",
		"paciente": p,
	})
}
