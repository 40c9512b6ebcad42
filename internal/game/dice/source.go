package dice

import (
	"crypto/rand"
	"math/big"
)

// cryptoSource implements Source using crypto/rand.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return cryptoSource{}
}

// Intn returns a uniformly distributed int in [0, n).
//
// Precondition: n > 0. Panics if n <= 0 or crypto/rand fails.
func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// SequenceSource replays a fixed list of die faces. Each call to Intn returns
// the next face minus one, so a face of 6 on a d6 comes back as 5. The list
// wraps around when exhausted.
//
// Intended for tests and reproducible demonstrations; not safe for
// concurrent use.
type SequenceSource struct {
	faces []int
	next  int
}

// NewSequenceSource returns a SequenceSource replaying faces in order.
//
// Precondition: len(faces) > 0 and every face >= 1.
func NewSequenceSource(faces ...int) *SequenceSource {
	if len(faces) == 0 {
		panic("dice: NewSequenceSource requires at least one face")
	}
	return &SequenceSource{faces: faces}
}

// Intn returns the next configured face minus one, clamped into [0, n).
func (s *SequenceSource) Intn(n int) int {
	face := s.faces[s.next%len(s.faces)]
	s.next++
	v := face - 1
	if v < 0 {
		v = 0
	}
	if v >= n {
		v = n - 1
	}
	return v
}
