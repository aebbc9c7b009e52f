package serializer

import (
	"encoding/json"
	"errors"
)

// JSON serializes values with encoding/json.
type JSON struct{}

// NewJSON returns the JSON serializer.
func NewJSON() JSON {
	return JSON{}
}

func (JSON) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshalFailed, err)
	}
	return data, nil
}

func (JSON) Unmarshal(data []byte, dst any) error {
	if err := checkTarget(dst); err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.Join(ErrUnmarshalFailed, err)
	}
	return nil
}
