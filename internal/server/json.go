package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

func errorBody(err error) errorResponse {
	return errorResponse{Error: err.Error()}
}

// writeJSON encodes body before writing any header. If encoding fails the
// client gets a 500 with an error body instead, and writeJSON returns the
// status actually sent together with the encoding error.
func writeJSON(w http.ResponseWriter, code int, body any) (int, error) {
	var buf bytes.Buffer
	encErr := json.NewEncoder(&buf).Encode(body)
	if encErr != nil {
		encErr = fmt.Errorf("server: encode response: %w", encErr)
		code = http.StatusInternalServerError
		buf.Reset()
		if err := json.NewEncoder(&buf).Encode(errorBody(encErr)); err != nil {
			return code, err
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(buf.Bytes()); err != nil && encErr == nil {
		return code, err
	}

	return code, encErr
}

// nullable converts values for JSON, which has no encoding for NaN or
// infinities.
func nullable(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		if math.IsNaN(values[i]) || math.IsInf(values[i], 0) {
			continue
		}
		out[i] = &values[i]
	}
	return out
}
