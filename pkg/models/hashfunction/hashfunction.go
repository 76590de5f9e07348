package hashfunction

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash"
	"github.com/go-faster/city"
	"github.com/spaolacci/murmur3"
)

type HashFunctionType int

/* Pre-defined hash functions */
const (
	HashFunctionIdent  = HashFunctionType(0)
	HashFunctionMurmur = HashFunctionType(1)
	HashFunctionCity   = HashFunctionType(2)
	HashFunctionXX     = HashFunctionType(3)
)

var (
	errUnknownValueType = func(v any, hf HashFunctionType) error {
		return fmt.Errorf("unknown type of value that the hash will be calculated from: %T for %s hash type", v, ToString(hf))
	}
)

func EncodeUInt64(input uint64) []byte {
	const ENCODING_BYTES_BIG = binary.MaxVarintLen64
	const ENCODING_BYTES = 8
	const BOUND = 1 << 56 /* 72057594037927936 */

	sz := ENCODING_BYTES
	if input >= BOUND {
		sz = ENCODING_BYTES_BIG
	}

	buf := make([]byte, sz)
	binary.PutUvarint(buf, input)
	return buf
}

// toBytes renders a bound parameter in the byte form every hash consumes.
// Integers are varint-encoded so that int and int64 of one value agree.
func toBytes(input any, hf HashFunctionType) ([]byte, error) {
	switch v := input.(type) {
	case int:
		return EncodeUInt64(uint64(v)), nil
	case int32:
		return EncodeUInt64(uint64(v)), nil
	case int64:
		return EncodeUInt64(uint64(v)), nil
	case uint32:
		return EncodeUInt64(uint64(v)), nil
	case uint64:
		return EncodeUInt64(v), nil
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, errUnknownValueType(input, hf)
	}
}

func applyIdent(input any) (uint64, error) {
	switch v := input.(type) {
	case int:
		return uint64(v), nil
	case int32:
		return uint64(v), nil
	case int64:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case uint64:
		return v, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("identity hash of non-numeric string %q", v)
		}
		return uint64(n), nil
	default:
		return 0, errUnknownValueType(input, HashFunctionIdent)
	}
}

// ApplyHashFunction maps a sharding value to an unsigned bucket key.
func ApplyHashFunction(input any, hf HashFunctionType) (uint64, error) {
	if hf == HashFunctionIdent {
		return applyIdent(input)
	}

	buf, err := toBytes(input, hf)
	if err != nil {
		return 0, err
	}

	switch hf {
	case HashFunctionMurmur:
		return uint64(murmur3.Sum32(buf)), nil
	case HashFunctionCity:
		return uint64(city.Hash32(buf)), nil
	case HashFunctionXX:
		return xxhash.Sum64(buf), nil
	default:
		return 0, fmt.Errorf("unknown hash function type: %d", hf)
	}
}

// HashFunctionByName returns the corresponding HashFunctionType based on the given hash function name.
func HashFunctionByName(hfn string) (HashFunctionType, error) {
	switch hfn {
	case "identity", "ident", "":
		return HashFunctionIdent, nil
	case "murmur":
		return HashFunctionMurmur, nil
	case "city":
		return HashFunctionCity, nil
	case "xxhash":
		return HashFunctionXX, nil
	default:
		return 0, fmt.Errorf("unknown hash function type: %s", hfn)
	}
}

// ToString converts a HashFunctionType to its corresponding string representation.
// If the input HashFunctionType is not recognized, an empty string is returned.
func ToString(hf HashFunctionType) string {
	switch hf {
	case HashFunctionIdent:
		return "identity"
	case HashFunctionMurmur:
		return "murmur"
	case HashFunctionCity:
		return "city"
	case HashFunctionXX:
		return "xxhash"
	}
	return ""
}
