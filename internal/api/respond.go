package api

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/orgball2608/joynme/pkg/errors"
)

const codeRateLimited = "rate_limited"

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(err error) int {
	switch {
	case errors.IsSubmitInFlight(err):
		return http.StatusConflict
	case errors.IsPrecondition(err):
		return http.StatusPreconditionFailed
	case errors.IsPermissionDenied(err):
		return http.StatusForbidden
	case errors.IsVerificationRejected(err):
		return http.StatusUnprocessableEntity
	case errors.IsTransport(err):
		return http.StatusBadGateway
	case errors.Is(err, errors.ErrClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", "error", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = "internal"
	}
	writeJSON(w, status, errorBody{Code: code, Message: errors.GetMessage(err)})
}

func (h *Handler) limited(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.limiter.Allow(clientKey(r)) {
			h.logger.Warn("Rate limit exceeded", "client", clientKey(r), "path", r.URL.Path)
			writeJSON(w, http.StatusTooManyRequests, errorBody{
				Code:    codeRateLimited,
				Message: "Too many attempts. Please wait a moment and try again.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debug("Request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start).String())
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
