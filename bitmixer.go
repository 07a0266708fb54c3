package complgen

import "github.com/cespare/xxhash/v2"

// PHI_C64 is the 64-bit golden ratio constant.
const PHI_C64 = uint64(0x9e3779b97f4a7c15)

func mix(key int) int {
	return mix32(key)
}

// mix32 is the 32-bit finalization step of MurmurHash3.
func mix32(v int) int {
	k := uint32(v)
	k = (k ^ (k >> 16)) * 0x85ebca6b
	k = (k ^ (k >> 13)) * 0xc2b2ae35
	return int(k ^ (k >> 16))
}

// mix64 is the 64-bit finalization step of MurmurHash3.
func mix64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}

// combine folds v into an order-dependent running hash.
func combine(h, v uint64) uint64 {
	return mix64(h*PHI_C64 + v)
}

func hashStrings(tag byte, parts ...string) uint64 {
	d := xxhash.New()
	_, _ = d.Write([]byte{tag})
	for _, p := range parts {
		_, _ = d.WriteString(p)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}
