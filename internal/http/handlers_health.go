package httpx

import (
	"io"
	"net/http"
)

// healthHandler answers readiness and liveness probes. HEAD gets headers
// only.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, `{"status":"ok"}`); err != nil {
		// Client connection is gone.
		return
	}
}
