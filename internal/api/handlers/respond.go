package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/migillett/TranscodeTycoonGame/internal/models"
	"github.com/migillett/TranscodeTycoonGame/internal/services"
	"github.com/migillett/TranscodeTycoonGame/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		lg := logger.WithComponent("api")
		lg.Error().Err(err).Msg("Response encoding failed")
	}
}

// writeGameError translates engine errors to status codes. The resources code
// differs by operation: funds shortfalls are 402, queue capacity is 406, so
// callers pass the code their operation maps to.
func writeGameError(w http.ResponseWriter, err error, resourcesCode int) {
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrInsufficientResources):
		http.Error(w, err.Error(), resourcesCode)
	case errors.Is(err, models.ErrMaxUpgradesReached):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrUsernameTooLong), errors.Is(err, models.ErrUnknownHardwareType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrUnsupportedFormat):
		// data-integrity fault, not a user error
		lg := logger.WithComponent("api")
		lg.Error().Err(err).Msg("Unsupported format in live job data")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
