package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON loads key and decodes it into v. A missing key returns
// model.ErrRecordNotFound unchanged; a value that does not decode is
// reported as an error like any other read failure.
func GetJSON(ctx context.Context, s Storage, key string, v any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key
func SetJSON(ctx context.Context, s Storage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}
