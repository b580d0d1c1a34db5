package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// recordVersion is the current schema version for persisted JSON values
const recordVersion = 1

// record is the envelope every JSON value is persisted in. The version
// lets future field additions migrate older payloads on read instead of
// silently corrupting them.
type record struct {
	Version int             `json:"v"`
	Data    json.RawMessage `json:"data"`
}

// GetJSON reads the value for a key into out, migrating older persisted
// payloads to the current schema version first. Returns false when the key
// is absent, out is left untouched in that case.
func (s *Store) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return ok, err
	}

	data, err := migratePayload([]byte(raw))
	if err != nil {
		return false, fmt.Errorf("migrate %q: %w", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("unmarshal %q: %w", key, err)
	}
	return true, nil
}

// SetJSON marshals v, wraps it in the current envelope and stores it
func (s *Store) SetJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}

	rec, err := json.Marshal(record{Version: recordVersion, Data: data})
	if err != nil {
		return fmt.Errorf("marshal envelope %q: %w", key, err)
	}

	return s.Set(ctx, key, string(rec))
}

// migratePayload upgrades a persisted payload to the current record version.
// Payloads written before versioning are bare JSON values and read as v0.
func migratePayload(raw []byte) ([]byte, error) {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil || rec.Version == 0 || rec.Data == nil {
		// legacy v0 payload, the value itself
		return raw, nil
	}

	switch rec.Version {
	case recordVersion:
		return rec.Data, nil
	default:
		return nil, fmt.Errorf("unsupported record version %d", rec.Version)
	}
}
