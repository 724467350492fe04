// Package httpx holds the JSON helpers shared by every HTTP handler in
// trackd. Successful responses are plain JSON; errors go out as RFC 7807
// problem documents via errors.go.
package httpx

import (
	"encoding/json"
	"net/http"
)

// maxBodyBytes caps request bodies; every request struct in this API is
// a handful of short fields.
const maxBodyBytes = 1 << 20

// ProblemDetail is the RFC 7807 body used for every error response.
type ProblemDetail struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// JSON writes data as a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Problem writes an RFC 7807 problem document.
func Problem(w http.ResponseWriter, status int, title, detail string) {
	JSON(w, status, ProblemDetail{
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

// DecodeJSON reads the request body into target. Unknown fields and
// oversized bodies are rejected so a body matches its request struct
// exactly.
func DecodeJSON(r *http.Request, target any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}
