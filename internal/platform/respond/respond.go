// Package respond junta los helpers JSON compartidos por los handlers.
package respond

import (
	"encoding/json"
	"net/http"
)

type ErrorBody struct {
	Error string `json:"error"`
}

type SuccessBody struct {
	ID      string `json:"id,omitempty"`
	Success bool   `json:"success"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorBody{Error: msg})
}

func OK(w http.ResponseWriter) {
	JSON(w, http.StatusOK, SuccessBody{Success: true})
}

func Created(w http.ResponseWriter, id string) {
	JSON(w, http.StatusCreated, SuccessBody{ID: id, Success: true})
}

// DecodeRaw decodifica el body a un mapa crudo para poder distinguir
// "campo ausente" de "campo en null" en updates parciales.
func DecodeRaw(r *http.Request) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Present indica si key vino en el body, y si vino en null.
func Present(raw map[string]json.RawMessage, key string) (present bool, isNull bool) {
	v, ok := raw[key]
	if !ok {
		return false, false
	}
	return true, string(v) == "null"
}

// Into re-decodifica el mapa crudo sobre un struct para reutilizar los tags json.
func Into(raw map[string]json.RawMessage, v any) error {
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
