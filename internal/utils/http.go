package utils

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON response with status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// JSONError writes {"mensaje": "..."} with a given status. The frontend
// reads the mensaje field on every error path.
func JSONError(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"mensaje": msg})
}

// DecodeJSON parses the JSON body into v and answers 400 on invalid input.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil {
		JSONError(w, http.StatusBadRequest, "Cuerpo de la solicitud vacío")
		return http.ErrBodyNotAllowed
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		JSONError(w, http.StatusBadRequest, "JSON inválido")
		return err
	}

	return nil
}
