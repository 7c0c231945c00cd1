package notifier

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/NordCoder/tsreturn/internal/domain/returns"
	"github.com/NordCoder/tsreturn/internal/obs"
	kafkax "github.com/NordCoder/tsreturn/internal/repository/kafka"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPHandler serves POST /v1/returns/notify.
func NewHTTPHandler(uc Processor, log *zap.Logger) http.Handler {
	log = obs.Component(log, "return-notifier.http")

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/returns/notify", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "read body"})
			return
		}
		payload, err := kafkax.DecodeJSONObject(body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		out, err := uc.ProcessReturnNotification(r.Context(), payload)
		if err != nil {
			code := statusFor(err)
			if code >= http.StatusInternalServerError {
				obs.WithTrace(r.Context(), log).Error("process return notification", zap.Error(err))
			}
			writeJSON(w, code, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, out)
	})

	return obs.HTTPHandler(mux, "return-notifier.http")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, returns.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, returns.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, returns.ErrNotCustomer), errors.Is(err, returns.ErrInvalidDifferences):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
