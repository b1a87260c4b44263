package utils

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ToZeroLogArray logs a slice of Stringers (identities, tiers) as a zerolog array.
func ToZeroLogArray[T fmt.Stringer](arr []T) *zerolog.Array {
	ret := zerolog.Arr()

	for _, elem := range arr {
		ret.Str(elem.String())
	}

	return ret
}
