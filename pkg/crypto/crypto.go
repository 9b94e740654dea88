package crypto

import (
	"crypto/rand"
	"math/big"
)

// RandIntn returns a uniform random value in [0, n). It panics if got a
// non-positive parameter.
func RandIntn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}

const float64Resolution = 1 << 53

// RandFloat returns a uniform random value in [0, 1).
func RandFloat() float64 {
	return float64(RandIntn(float64Resolution)) / float64Resolution
}
