package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"clinica-salud-api/internal/models"
	"clinica-salud-api/internal/store"
	"clinica-salud-api/internal/utils"
)

type ServiceHandler struct {
	store *store.Store
}

type serviceReq struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Duration    *int     `json:"duration"`
	Price       *float64 `json:"price"`
}

func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req serviceReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Name == "" || req.Duration == nil || req.Price == nil {
		utils.JSONError(w, http.StatusBadRequest, "El nombre, la duración y el precio del servicio son obligatorios")
		return
	}
	if *req.Duration <= 0 {
		utils.JSONError(w, http.StatusBadRequest, "La duración debe ser un número entero de minutos mayor a cero")
		return
	}

	svc := &models.Service{
		Name:        req.Name,
		Description: req.Description,
		Duration:    *req.Duration,
		Price:       *req.Price,
	}

	if err := h.store.CreateService(r.Context(), svc); err != nil {
		internalError(w, "create service", err)
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"mensaje":  "Servicio creado exitosamente",
		"servicio": svc,
	})
}

func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.store.ListServices(r.Context())
	if err != nil {
		internalError(w, "list services", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"mensaje":   "Servicios obtenidos exitosamente",
		"servicios": services,
	})
}

func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	svc, err := h.store.ServiceByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Servicio no encontrado")
		return
	}
	if err != nil {
		internalError(w, "get service", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"mensaje":  "Servicio obtenido exitosamente",
		"servicio": svc,
	})
}

type updateServiceReq struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Duration    *int     `json:"duration"`
	Price       *float64 `json:"price"`
}

func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateServiceReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Duration != nil && *req.Duration <= 0 {
		utils.JSONError(w, http.StatusBadRequest, "La duración debe ser un número entero de minutos mayor a cero")
		return
	}

	svc, err := h.store.UpdateService(r.Context(), chi.URLParam(r, "id"), store.ServiceUpdate{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
	})
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Servicio no encontrado para actualizar")
		return
	}
	if err != nil {
		internalError(w, "update service", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"mensaje":  "Servicio actualizado exitosamente",
		"servicio": svc,
	})
}

func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	svc, err := h.store.DeleteService(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Servicio no encontrado para eliminar")
		return
	}
	if errors.Is(err, store.ErrServiceRef) {
		utils.JSONError(w, http.StatusConflict, "No se puede eliminar: el servicio tiene citas asociadas")
		return
	}
	if err != nil {
		internalError(w, "delete service", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"mensaje":  "Servicio eliminado exitosamente",
		"servicio": svc,
	})
}
