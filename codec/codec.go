// Package codec is the single place where entity state and component schemas
// are converted to and from bytes.
package codec

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// Decode unmarshals bz into a value of type T.
func Decode[T any](bz []byte) (T, error) {
	var val T
	if err := json.Unmarshal(bz, &val); err != nil {
		return val, eris.Wrap(err, "")
	}
	return val, nil
}

// Encode marshals the given value to bytes.
func Encode(val any) ([]byte, error) {
	bz, err := json.Marshal(val)
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return bz, nil
}
