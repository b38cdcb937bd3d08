package lock

import (
	"encoding/json"
	"fmt"

	exerrors "github.com/mirkobrombin/go-exclusive/v1/errors"
)

// Record is the value stored under a lock key while some process believes it
// holds the lock. Absence of the key is the canonical unlocked state.
type Record struct {
	// LockUntil is the lease deadline in epoch seconds; 0 means the lock
	// never expires.
	LockUntil int64 `json:"lock_until"`
	// PID is the owning process id, used by the liveness probe.
	PID int `json:"pid"`
}

// Codec defines methods for encoding and decoding lock records.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSONCodec implements Codec using encoding/json.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (JSONCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func decodeRecord(c Codec, data []byte) (Record, error) {
	var r Record
	if err := c.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("%w: %v", exerrors.ErrBadRecord, err)
	}
	return r, nil
}
