package field

import (
	"math/big"

	"github.com/bits-and-blooms/bitset"
)

// BitsLE returns the little-endian bit decomposition of v's canonical
// representative. The returned set is sized to the field's bit length, so
// positions past the representative's own length read as 0.
func BitsLE[F Element[F]](v F) *bitset.BitSet {
	var repr big.Int
	//
	v.BigInt(&repr)
	//
	bits := bitset.New(uint(BitLen[F]()))
	for i := 0; i < repr.BitLen(); i++ {
		if repr.Bit(i) == 1 {
			bits.Set(uint(i))
		}
	}
	//
	return bits
}
