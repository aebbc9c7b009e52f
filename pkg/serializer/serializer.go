package serializer

import "reflect"

// Serializer turns values into bytes and back.
type Serializer interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, dst any) error
}

func checkTarget(dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrInvalidTarget
	}
	return nil
}
