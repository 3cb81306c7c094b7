package engine

import (
	"bytes"
	"encoding/json"
	"fmt"

	"naturalrights/internal/store"
)

// Handler is implemented once per action kind.
//
// CheckIsAuthorized never mutates state. Execute performs the effect and
// returns the result payload.
type Handler interface {
	CheckIsAuthorized(s *Service) (bool, error)
	Execute(s *Service) (any, error)
}

// caller is who an action runs as: the authenticated user (possibly empty
// during bootstrap) and the device that signed the batch.
type caller struct {
	userID   string
	deviceID string
}

// decodePayload strictly decodes raw into out. A missing payload decodes as {}.
func decodePayload(raw json.RawMessage, out any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

// checkIDs rejects payloads naming an id that could not be a record id.
// Unset optional ids are left to the handlers.
func checkIDs(p any) error {
	v, ok := p.(interface{ IDs() []string })
	if !ok {
		return nil
	}
	for _, id := range v.IDs() {
		if id != "" && !store.ValidID(id) {
			return fmt.Errorf("%w: id %q", ErrInvalidPayload, id)
		}
	}
	return nil
}
