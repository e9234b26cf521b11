package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/nara/thaiquest/internal/errors"
)

// maxAudioBytes bounds a single voice submission (raw 16kHz mono for a few
// seconds fits comfortably).
const maxAudioBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body")
	}
	return nil
}
