package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/haukened/gone/internal/app"
	"github.com/haukened/gone/internal/domain"
	"github.com/haukened/gone/internal/store"
)

// writeError writes an empty-body error response. Per the error handling
// design, the status code alone carries the meaning; bodies are never
// populated so a consumption attempt can't be used to distinguish "wrong id"
// from "server fault" by content.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, code int, msg string) {
	w.WriteHeader(code)
	if cid, ok := GetCorrelationID(ctx); ok {
		h.logger().Debug("error response", "cid", cid, "status", code, "msg", msg)
	}
}

// mapServiceError maps domain/store/service errors to HTTP responses. The
// log level is chosen by class: client mistakes log at info, transient
// capacity issues at warn, and everything else (an unhandled or internal
// fault) at error.
func (h *Handler) mapServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	cid, _ := GetCorrelationID(ctx)
	log := h.logger().With("domain", "http", "cid", cid)
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		log.Info("rejected", "reason", "invalid_id")
		h.writeError(ctx, w, http.StatusBadRequest, "invalid id")
	case errors.Is(err, app.ErrSizeExceeded), errors.Is(err, store.ErrTooLarge):
		log.Info("rejected", "reason", "too_large")
		h.writeError(ctx, w, http.StatusRequestEntityTooLarge, "too large")
	case errors.Is(err, store.ErrStoreFull):
		log.Warn("rejected", "reason", "store_full")
		h.writeError(ctx, w, http.StatusConflict, "store full")
	case errors.Is(err, store.ErrSecretNotFound):
		log.Info("rejected", "reason", "not_found")
		h.writeError(ctx, w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrFailedToAcquireStore), errors.Is(err, store.ErrGeneric):
		log.Error("service error", "reason", "store_unavailable")
		h.writeError(ctx, w, http.StatusInternalServerError, "internal error")
	default:
		log.Error("unhandled service error")
		h.writeError(ctx, w, http.StatusInternalServerError, "internal error")
	}
}
