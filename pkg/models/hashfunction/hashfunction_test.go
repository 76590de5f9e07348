package hashfunction_test

import (
	"testing"

	"github.com/cespare/xxhash"
	"github.com/go-faster/city"
	"github.com/pg-sharding/stmtrouter/pkg/models/hashfunction"
	"github.com/spaolacci/murmur3"
	"github.com/stretchr/testify/assert"
)

func TestEncodeUInt64(t *testing.T) {
	tests := []struct {
		name     string
		inp      uint64
		expected []byte
	}{
		{"Zero value", 0, []byte{0, 0, 0, 0, 0, 0, 0, 0}},
		{"Power of two: 2^7", 128, []byte{128, 1, 0, 0, 0, 0, 0, 0}},
		{"Power of two: 2^10", 1024, []byte{128, 8, 0, 0, 0, 0, 0, 0}},
		{"Arbitrary number: 12345", 12345, []byte{185, 96, 0, 0, 0, 0, 0, 0}},
		{"Maximum 56-bit - 1 value", 1<<56 - 1, []byte{255, 255, 255, 255, 255, 255, 255, 127}},
		{"Large number: 2^63", 1 << 63, []byte{128, 128, 128, 128, 128, 128, 128, 128, 128, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := hashfunction.EncodeUInt64(tt.inp)
			assert.Equal(t, tt.expected, result, "Test '%s': EncodeUInt64 should produce the expected result", tt.name)
		})
	}
}

func TestApplyHashFunction(t *testing.T) {
	enc42 := hashfunction.EncodeUInt64(42)

	tests := []struct {
		name  string
		input any
		hf    hashfunction.HashFunctionType
		want  uint64
	}{
		{"ident int", 42, hashfunction.HashFunctionIdent, 42},
		{"ident numeric string", "42", hashfunction.HashFunctionIdent, 42},
		{"murmur int", 42, hashfunction.HashFunctionMurmur, uint64(murmur3.Sum32(enc42))},
		{"murmur int64 agrees with int", int64(42), hashfunction.HashFunctionMurmur, uint64(murmur3.Sum32(enc42))},
		{"murmur string", "abc", hashfunction.HashFunctionMurmur, uint64(murmur3.Sum32([]byte("abc")))},
		{"city bytes", []byte("abc"), hashfunction.HashFunctionCity, uint64(city.Hash32([]byte("abc")))},
		{"xxhash int", 42, hashfunction.HashFunctionXX, xxhash.Sum64(enc42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := hashfunction.ApplyHashFunction(tt.input, tt.hf)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyHashFunctionErrors(t *testing.T) {
	_, err := hashfunction.ApplyHashFunction(3.14, hashfunction.HashFunctionMurmur)
	assert.Error(t, err)

	_, err = hashfunction.ApplyHashFunction("abc", hashfunction.HashFunctionIdent)
	assert.Error(t, err)

	_, err = hashfunction.ApplyHashFunction(1, hashfunction.HashFunctionType(42))
	assert.Error(t, err)
}

func TestHashFunctionByName(t *testing.T) {
	for _, name := range []string{"identity", "murmur", "city", "xxhash"} {
		hf, err := hashfunction.HashFunctionByName(name)
		assert.NoError(t, err)
		assert.Equal(t, name, hashfunction.ToString(hf))
	}

	_, err := hashfunction.HashFunctionByName("sha1")
	assert.Error(t, err)
}
