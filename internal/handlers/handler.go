package handlers

import (
	"log"
	"net/http"

	"clinica-salud-api/internal/store"
	"clinica-salud-api/internal/utils"
)

type Handler struct {
	Auth         *AuthHandler
	Patients     *PatientHandler
	Services     *ServiceHandler
	Appointments *AppointmentHandler
}

func New(st *store.Store, secret string) *Handler {
	return &Handler{
		Auth:         &AuthHandler{store: st, secret: secret},
		Patients:     &PatientHandler{store: st},
		Services:     &ServiceHandler{store: st},
		Appointments: &AppointmentHandler{store: st},
	}
}

// internalError logs the real cause and answers with a generic 500 body;
// store failures never leak details to the client.
func internalError(w http.ResponseWriter, op string, err error) {
	log.Printf("%s: %v", op, err)
	utils.JSONError(w, http.StatusInternalServerError, "Error interno del servidor")
}
