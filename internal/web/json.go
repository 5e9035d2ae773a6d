package web

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/trastiendahq/trastienda/internal/guard"
	apperrors "github.com/trastiendahq/trastienda/internal/platform/errors"
	errmsg "github.com/trastiendahq/trastienda/internal/platform/errors/i18n"
)

// maxBodyBytes caps request body reads.
const maxBodyBytes = 1 << 20

// errorPayload is the JSON shape of one rendered error.
type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// decodeJSON reads a JSON request body into target.
func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.New(apperrors.CodeRequestInvalid, "request body is required")
		}
		return apperrors.Wrap(apperrors.CodeRequestInvalid, "decode request body", err)
	}
	return nil
}

// writeJSON renders a success payload.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// writeError renders a domain error with a localized message and the
// HTTP status its code maps to.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.CodeOf(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, map[string]errorPayload{
		"error": renderError(r, code, apperrors.MetadataOf(err)),
	})
}

// writeOutcome renders a guard confirmation result: field-level
// validation failures as 422, a dialog-level failure with its own
// status, and nothing on success.
func writeOutcome(w http.ResponseWriter, r *http.Request, outcome guard.Outcome) bool {
	if outcome.Done {
		return false
	}
	if len(outcome.FieldErrors) > 0 {
		fields := make(map[string]errorPayload, len(outcome.FieldErrors))
		for field, fieldErr := range outcome.FieldErrors {
			fields[field] = renderError(r, fieldErr.Code, fieldErr.Metadata)
		}
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"fieldErrors": fields})
		return true
	}
	if outcome.Err != nil {
		writeError(w, r, outcome.Err)
		return true
	}
	// Confirmation never reached its final stage.
	writeError(w, r, apperrors.New(apperrors.CodeUnknown, "confirmation is incomplete"))
	return true
}

func renderError(r *http.Request, code apperrors.Code, metadata map[string]string) errorPayload {
	catalog := errmsg.GetCatalog(requestLocale(r).tag.String())
	return errorPayload{
		Code:    string(code),
		Message: catalog.Format(string(code), metadata),
	}
}
