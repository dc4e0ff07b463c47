package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"clinica-salud-api/internal/models"
	"clinica-salud-api/internal/store"
	"clinica-salud-api/internal/utils"
)

type AuthHandler struct {
	store  *store.Store
	secret string
}

type registerReq struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      string  `json:"role"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login answers POST /api/auth/login. The only public endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "Email y contraseña son obligatorios")
		return
	}

	u, err := h.store.UserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}
	if err != nil {
		internalError(w, "login", err)
		return
	}

	if !utils.CheckPassword(u.Password, req.Password) {
		utils.JSONError(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}

	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, h.secret)
	if err != nil {
		internalError(w, "login token", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"mensaje": "Inicio de sesión exitoso",
		"token":   token,
	})
}

// Register answers POST /api/auth/register. Admin only: new accounts are
// provisioned by staff, not self-service.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "Email y contraseña son obligatorios")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		internalError(w, "register hash", err)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RolePatient
	}

	u := &models.User{
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	}

	err = h.store.CreateUser(r.Context(), u)
	if errors.Is(err, store.ErrDuplicateEmail) {
		utils.JSONError(w, http.StatusConflict, "El email ya está en uso")
		return
	}
	if err != nil {
		internalError(w, "register", err)
		return
	}

	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, h.secret)
	if err != nil {
		internalError(w, "register token", err)
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"mensaje": "Usuario registrado exitosamente",
		"token":   token,
		"usuario": u,
	})
}

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		internalError(w, "list users", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{"usuarios": users})
}

func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.UserByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	if err != nil {
		internalError(w, "get user", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{"usuario": u})
}

type updateUserReq struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      *string `json:"role"`
}

func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	u, err := h.store.UpdateUser(r.Context(), chi.URLParam(r, "id"), store.UserUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Usuario no encontrado para actualizar")
		return
	}
	if errors.Is(err, store.ErrDuplicateEmail) {
		utils.JSONError(w, http.StatusConflict, "El email ya está en uso")
		return
	}
	if err != nil {
		internalError(w, "update user", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"mensaje": "Usuario actualizado exitosamente",
		"usuario": u,
	})
}

func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.DeleteUser(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Usuario no encontrado para eliminar")
		return
	}
	if err != nil {
		internalError(w, "delete user", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"mensaje": "Usuario eliminado exitosamente",
		"usuario": map[string]string{"id": u.ID, "email": u.Email},
	})
}
