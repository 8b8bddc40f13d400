package codec_test

import (
	"testing"

	"pkg.world.dev/world-engine/lifecycle/assert"
	"pkg.world.dev/world-engine/lifecycle/codec"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := payload{Name: "energy", Count: 3}
	bz, err := codec.Encode(want)
	assert.NilError(t, err)

	got, err := codec.Decode[payload](bz)
	assert.NilError(t, err)
	assert.Equal(t, got, want)
}

func TestDecodeRejectsMalformedBytes(t *testing.T) {
	_, err := codec.Decode[payload]([]byte("{not json"))
	assert.IsError(t, err)
}

func TestDecodeIntoMismatchedShape(t *testing.T) {
	bz, err := codec.Encode(payload{Name: "energy"})
	assert.NilError(t, err)

	// Unknown fields are ignored, missing ones zeroed.
	type other struct {
		Level int `json:"level"`
	}
	got, err := codec.Decode[other](bz)
	assert.NilError(t, err)
	assert.Equal(t, got.Level, 0)
}
