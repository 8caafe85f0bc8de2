package model

import (
	"encoding/json"
	"strings"

	"github.com/m-mizutani/gdstation/pkg/domain/types"
)

// EnclavePermission is what the API credentials may do in one enclave.
type EnclavePermission struct {
	ID     types.EnclaveID `json:"id"`
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	Read   bool            `json:"read"`
	Create bool            `json:"create"`
	Update bool            `json:"update"`
}

// UnmarshalJSON accepts the capability flags either as booleans or as the
// strings "true"/"false", which older API versions return.
func (x *EnclavePermission) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID     types.EnclaveID `json:"id"`
		Name   string          `json:"name"`
		Type   string          `json:"type"`
		Read   any             `json:"read"`
		Create any             `json:"create"`
		Update any             `json:"update"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*x = EnclavePermission{
		ID:     raw.ID,
		Name:   raw.Name,
		Type:   raw.Type,
		Read:   flag(raw.Read),
		Create: flag(raw.Create),
		Update: flag(raw.Update),
	}
	return nil
}

func flag(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(val, "true")
	default:
		return false
	}
}
