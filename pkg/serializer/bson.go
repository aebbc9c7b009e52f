package serializer

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// valueKey is the field holding the wrapped value.
const valueKey = "v"

// BSON serializes values with the MongoDB BSON codec.
type BSON struct{}

// NewBSON returns the BSON serializer.
func NewBSON() BSON {
	return BSON{}
}

func (BSON) Marshal(v any) ([]byte, error) {
	data, err := bson.Marshal(bson.D{{Key: valueKey, Value: v}})
	if err != nil {
		return nil, errors.Join(ErrMarshalFailed, err)
	}
	return data, nil
}

func (BSON) Unmarshal(data []byte, dst any) error {
	if err := checkTarget(dst); err != nil {
		return err
	}
	raw := bson.Raw(data)
	if err := raw.Validate(); err != nil {
		return errors.Join(ErrUnmarshalFailed, err)
	}
	value, err := raw.LookupErr(valueKey)
	if err != nil {
		return errors.Join(ErrUnmarshalFailed, err)
	}
	if err := value.Unmarshal(dst); err != nil {
		return errors.Join(ErrUnmarshalFailed, err)
	}
	return nil
}
