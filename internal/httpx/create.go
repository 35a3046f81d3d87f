package httpx

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/haukened/gone/internal/domain"
)

// readTimeout bounds how long a create request may take to read its body.
const readTimeout = 10 * time.Second

var errReadTimeout = errors.New("read timeout")

// readBodyWithTimeout reads exactly size bytes from r.Body, failing with
// errReadTimeout if that takes longer than timeout. The store lock is never
// held across this read: it happens entirely before the service is called.
func readBodyWithTimeout(body io.Reader, size int64, timeout time.Duration) ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		buf := make([]byte, size)
		_, err := io.ReadFull(body, buf)
		done <- result{data: buf, err: err}
	}()
	select {
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		return res.data, nil
	case <-time.After(timeout):
		return nil, errReadTimeout
	}
}

// handleCreate implements POST <prefix>: stores the raw ciphertext body under
// a fresh id and returns it as plain text.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.logger().With("domain", "http", "action", "create")

	ttl, err := domain.ParseTTL(r.URL.Query().Get("ttl"))
	if err != nil {
		log.Info("rejected", "reason", "bad_ttl")
		h.writeError(ctx, w, http.StatusBadRequest, "bad ttl")
		return
	}

	clHeader := r.Header.Get("Content-Length")
	if clHeader == "" {
		log.Info("rejected", "reason", "content_length_missing")
		h.writeError(ctx, w, http.StatusLengthRequired, "content length required")
		return
	}
	cl, err := strconv.ParseInt(clHeader, 10, 64)
	if err != nil || cl < 0 {
		log.Info("rejected", "reason", "content_length_invalid")
		h.writeError(ctx, w, http.StatusBadRequest, "invalid content length")
		return
	}
	if cl == 0 {
		log.Info("rejected", "reason", "nothing_to_insert")
		h.writeError(ctx, w, http.StatusUnprocessableEntity, "nothing to insert")
		return
	}
	if h.MaxBody > 0 && cl > h.MaxBody {
		log.Info("rejected", "reason", "payload_too_large")
		h.writeError(ctx, w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}

	data, err := readBodyWithTimeout(r.Body, cl, readTimeout)
	if err != nil {
		if errors.Is(err, errReadTimeout) {
			log.Warn("rejected", "reason", "read_timeout")
			h.writeError(ctx, w, http.StatusRequestTimeout, "read timeout")
			return
		}
		log.Info("rejected", "reason", "body_read_error")
		h.writeError(ctx, w, http.StatusBadRequest, "bad request")
		return
	}
	if len(data) == 0 {
		log.Info("rejected", "reason", "nothing_to_insert")
		h.writeError(ctx, w, http.StatusUnprocessableEntity, "nothing to insert")
		return
	}

	id, _, err := h.Service.CreateSecret(data, ttl)
	if err != nil {
		h.mapServiceError(ctx, w, err)
		return
	}

	log.Info("created")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte(id.String()))
}
