package store

import (
	"encoding/json"
	"fmt"

	"naturalrights/internal/domain"
)

// decodeGrant is shared by the backends' prefix scans.
func decodeGrant(soul string, b []byte) (domain.Grant, error) {
	var g domain.Grant
	if err := json.Unmarshal(b, &g); err != nil {
		return domain.Grant{}, fmt.Errorf("decode grant %s: %w", soul, err)
	}
	return g, nil
}
