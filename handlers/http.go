package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/JoelBarbosa07/nomina-variable/httperr"
)

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return httperr.Validation("cuerpo de la petición inválido")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
