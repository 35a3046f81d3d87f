package httpx

import (
	"net/http"
	"strconv"
)

// handleConsume implements GET <prefix><id>: destructively reads and returns
// the ciphertext stored under id.
func (h *Handler) handleConsume(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	log := h.logger().With("domain", "http", "action", "consume")

	data, err := h.Service.Consume(id)
	if err != nil {
		h.mapServiceError(ctx, w, err)
		return
	}

	log.Info("consumed")
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
